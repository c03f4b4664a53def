// Package command defines the custrack CLI commands.
//
// It uses urfave/cli/v2 for parsing and supports both one-shot
// invocations and the interactive shell.
package command

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/custrack-go/internal/cli/config"
	"github.com/yndnr/custrack-go/internal/cli/output"
	"github.com/yndnr/custrack-go/internal/credstore"
	"github.com/yndnr/custrack-go/internal/gateway"
	"github.com/yndnr/custrack-go/internal/infra/buildinfo"
	"github.com/yndnr/custrack-go/internal/infra/tlsroots"
	"github.com/yndnr/custrack-go/internal/session"
	"github.com/yndnr/custrack-go/internal/store"
	"github.com/yndnr/custrack-go/internal/telemetry/logger"
	"github.com/yndnr/custrack-go/internal/telemetry/metric"
)

// envKey is the metadata slot holding the runtime environment.
const envKey = "custrack.env"

// Env bundles everything a command needs. It is built once in the
// app's Before hook; tests inject their own.
type Env struct {
	Cfg        *config.CLIConfig
	ConfigPath string
	Creds      credstore.Store
	Gateway    *gateway.Client
	Session    *session.Manager
	Customers  *store.CustomerStore
	Tracks     *store.TrackStore
	Metrics    *metric.Collector
	Out        io.Writer
}

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "custrack",
		Usage:   "customer tracking CRM client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			RefreshCommand(),
			StatusCommand(),
			CustomerCommand(),
			TrackCommand(),
			ConfigCommand(),
			ShellCommand(),
		},
		Before: func(c *cli.Context) error {
			if _, ok := c.App.Metadata[envKey]; ok {
				return nil
			}
			env, err := buildEnv(c)
			if err != nil {
				return err
			}
			c.App.Metadata[envKey] = env
			return nil
		},
	}
	if app.Metadata == nil {
		app.Metadata = map[string]any{}
	}
	return app
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "CRM API base URL",
			EnvVars: []string{"CUSTRACK_SERVER"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path",
			EnvVars: []string{"CUSTRACK_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: table, json, yaml",
			EnvVars: []string{"CUSTRACK_OUTPUT"},
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "show additional columns",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable debug logging",
		},
	}
}

// buildEnv loads configuration, applies flag overrides and wires the
// gateway, session manager and stores.
func buildEnv(c *cli.Context) (*Env, error) {
	overrides := map[string]any{}
	if c.IsSet("server") {
		overrides["server"] = c.String("server")
	}
	if c.IsSet("output") {
		overrides["output"] = c.String("output")
	}
	if c.Bool("verbose") {
		overrides["log.level"] = "debug"
	}

	path := c.String("config")
	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)

	if _, err := config.EnsureClientID(cfg, path); err != nil {
		// A read-only home directory should not block the command.
		log.Warn("could not persist client id", "error", err)
	}

	creds := credstore.NewFileStore(cfg.CredentialDir)
	metrics := metric.NewCollector()
	opts := []gateway.Option{
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithMetrics(metrics),
		gateway.WithClientID(cfg.ClientID),
	}
	if cfg.TLS.Enabled() {
		hc, err := httpClientFor(cfg.TLS, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gateway.WithHTTPClient(hc))
	}
	gw := gateway.New(cfg.Server, creds, opts...)

	mgr := session.NewManager(gw, creds)

	return &Env{
		Cfg:        cfg,
		ConfigPath: path,
		Creds:      creds,
		Gateway:    gw,
		Session:    mgr,
		Customers:  store.NewCustomerStore(gw),
		Tracks:     store.NewTrackStore(gw),
		Metrics:    metrics,
		Out:        c.App.Writer,
	}, nil
}

// httpClientFor builds an HTTP client trusting the configured CAs in
// addition to the system roots.
func httpClientFor(t config.TLSSection, timeout time.Duration) (*http.Client, error) {
	pool := tlsroots.NewPool()
	if t.CAFile != "" {
		if err := pool.AddFile(t.CAFile); err != nil {
			return nil, err
		}
	}
	if t.CADir != "" {
		if err := pool.AddDir(t.CADir); err != nil {
			return nil, err
		}
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: pool.ClientConfig(),
		},
	}, nil
}

func envFrom(c *cli.Context) *Env {
	env, _ := c.App.Metadata[envKey].(*Env)
	return env
}

// requireSession restores the persisted session or fails the command
// with a hint.
func requireSession(c *cli.Context) (*Env, error) {
	env := envFrom(c)
	if env.Session.IsAuthenticated() {
		return env, nil
	}
	if !env.Session.InitAuth(c.Context) {
		return nil, exitErr("not logged in, run: custrack login")
	}
	return env, nil
}

// formatter builds the output formatter from the global flags and the
// configured default.
func formatter(c *cli.Context) output.Formatter {
	env := envFrom(c)
	format := env.Cfg.Output
	if c.IsSet("output") {
		format = c.String("output")
	}
	return output.NewFormatter(output.Format(format), c.Bool("wide"))
}

// exitErr wraps a message as a cli exit error with status 1.
func exitErr(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), 1)
}
