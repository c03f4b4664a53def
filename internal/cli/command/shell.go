package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/custrack-go/internal/cli/config"
	"github.com/yndnr/custrack-go/internal/cli/nav"
	"github.com/yndnr/custrack-go/internal/cli/output"
	"github.com/yndnr/custrack-go/internal/cli/repl"
	"github.com/yndnr/custrack-go/internal/core/domain"
	"github.com/yndnr/custrack-go/internal/infra/confloader"
)

// shellKey marks an app already running inside the shell, so nested
// shell invocations are rejected.
const shellKey = "custrack.shell"

// ShellCommand starts the interactive shell.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"sh"},
		Usage:   "Start the interactive shell",
		Action:  shellAction,
	}
}

// shellState tracks the view position the way the browser client
// tracks its route.
type shellState struct {
	env  *Env
	app  *cli.App
	path string
	// pendingLogin holds the login path carrying the redirect target
	// when a guarded view was refused.
	pendingLogin string
}

func shellAction(c *cli.Context) error {
	if _, nested := c.App.Metadata[shellKey]; nested {
		return exitErr("already inside a shell")
	}

	env := envFrom(c)
	st := &shellState{env: env, app: c.App, path: "/login"}
	c.App.Metadata[shellKey] = struct{}{}
	defer delete(c.App.Metadata, shellKey)

	// Inside the shell, a failed command must not terminate the
	// process; the error is printed and the loop continues.
	prevHandler := c.App.ExitErrHandler
	c.App.ExitErrHandler = func(*cli.Context, error) {}
	defer func() { c.App.ExitErrHandler = prevHandler }()

	// Resume the stored session, landing on the home view when it is
	// still valid.
	if env.Session.InitAuth(c.Context) {
		st.path = nav.HomePath
		env.Metrics.SetAuthenticated(true)
	}

	// Pick up config edits made while the shell is open, so output
	// format changes apply to the next rendered view.
	if w := watchConfig(env); w != nil {
		defer w.Stop()
	}

	history := env.Cfg.HistoryFile
	if history == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			history = filepath.Join(home, ".custrack", "history")
		}
	}

	r := repl.New(repl.Options{
		Input:       c.App.Reader,
		Output:      env.Out,
		HistoryFile: history,
		Prompt: func() string {
			return fmt.Sprintf("custrack:%s> ", st.path)
		},
		Commands: []string{
			"login", "logout", "whoami", "refresh", "status",
			"customer list", "customer get", "customer create",
			"customer update", "customer delete", "customer tracks",
			"track list", "track get-for-customer", "track create", "track update",
			"track delete", "track actions", "track export",
			"config show", "config set", "config path",
		},
		Execute:  st.execute,
		Navigate: st.navigate,
	})
	return r.Run()
}

func (s *shellState) execute(args []string) error {
	wasAuthed := s.env.Session.IsAuthenticated()

	if err := s.app.Run(append([]string{s.app.Name}, args...)); err != nil {
		return err
	}

	// A login that satisfied a guard redirect lands on the view the
	// user originally asked for.
	if !wasAuthed && s.env.Session.IsAuthenticated() {
		target := nav.HomePath
		if s.pendingLogin != "" {
			target = nav.ConsumeRedirect(s.pendingLogin)
			s.pendingLogin = ""
		}
		return s.navigate(target)
	}
	if wasAuthed && !s.env.Session.IsAuthenticated() {
		s.path = "/login"
	}
	return nil
}

// watchConfig reloads the shell's view settings when the config file
// changes on disk. A missing file or failed watcher is not fatal.
func watchConfig(env *Env) *confloader.Watcher {
	path := env.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	w, err := confloader.NewWatcher()
	if err != nil {
		return nil
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil
	}
	w.OnChange(func(changed string) {
		cfg, err := config.Load(changed, nil)
		if err != nil {
			return
		}
		env.Cfg.Output = cfg.Output
		env.Cfg.HistoryFile = cfg.HistoryFile
	})
	w.StartAsync()
	return w
}

func (s *shellState) navigate(path string) error {
	// A 401 may have cleared the persisted credential since the last
	// command; reconcile before trusting the in-memory state.
	if s.env.Session.Invalidated() {
		s.env.Session.Logout(context.Background())
		s.env.Metrics.SetAuthenticated(false)
		s.path = "/login"
	}

	res := nav.Resolve(s.env.Session.IsAuthenticated(), path)
	switch res.Decision {
	case nav.NotFound:
		return fmt.Errorf("no such view: %s", path)
	case nav.RedirectLogin:
		s.pendingLogin = res.Target
		s.path = "/login"
		fmt.Fprintln(s.env.Out, "Login required. Use: login -u USERNAME")
		return nil
	case nav.RedirectHome:
		return s.navigate(res.Target)
	}

	s.path = res.Route.Path
	if res.Param != "" {
		s.path = "/customers/" + res.Param
	}
	return s.render(res)
}

func formatterForEnv(env *Env) output.Formatter {
	return output.NewFormatter(output.Format(env.Cfg.Output), false)
}

func parseViewID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// render shows the view's content, the shell counterpart of mounting
// a page.
func (s *shellState) render(res nav.Resolution) error {
	ctx := context.Background()
	switch res.Route.Name {
	case "login":
		fmt.Fprintln(s.env.Out, "Use: login -u USERNAME")
		return nil
	case "customers":
		resp, err := s.env.Customers.List(ctx, domain.CustomerListQuery{Page: 1, Limit: 20})
		if err != nil {
			return err
		}
		f := formatterForEnv(s.env)
		if err := f.Format(s.env.Out, resp.Customers); err != nil {
			return err
		}
		fmt.Fprintf(s.env.Out, "\nTotal: %d customers\n", resp.Total)
		return nil
	case "customer-detail":
		id, err := parseViewID(res.Param)
		if err != nil {
			return err
		}
		tracks, err := s.env.Tracks.ForCustomer(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.env.Out, "Customer: %s (rate %d)\n\n", tracks.Customer.Name, tracks.Customer.Rate)
		return formatterForEnv(s.env).Format(s.env.Out, tracks.Tracks)
	case "tracks":
		resp, err := s.env.Tracks.List(ctx, domain.TrackListQuery{Page: 1, Limit: 20})
		if err != nil {
			return err
		}
		if err := formatterForEnv(s.env).Format(s.env.Out, resp.Tracks); err != nil {
			return err
		}
		fmt.Fprintf(s.env.Out, "\nTotal: %d tracks\n", resp.Total)
		return nil
	}
	return nil
}
