package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/custrack-go/internal/core/domain"
)

// LoginCommand authenticates against the CRM server.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in to the CRM server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "account username",
				EnvVars: []string{"CUSTRACK_USERNAME"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "account password (prompted when omitted)",
				EnvVars: []string{"CUSTRACK_PASSWORD"},
			},
		},
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	env := envFrom(c)

	username := c.String("username")
	if username == "" {
		fmt.Fprint(env.Out, "Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return exitErr("read username: %v", err)
		}
		username = strings.TrimSpace(line)
	}

	password := c.String("password")
	if password == "" {
		pw, err := promptPassword(env)
		if err != nil {
			return exitErr("read password: %v", err)
		}
		password = pw
	}

	result := env.Session.Login(c.Context, domain.Credentials{
		Username: username,
		Password: password,
	})
	if !result.Success {
		env.Metrics.SetAuthenticated(false)
		return exitErr("%s", result.Message)
	}

	env.Metrics.SetAuthenticated(true)
	fmt.Fprintf(env.Out, "Logged in as %s (%s)\n", result.User.Name, result.User.Username)
	return nil
}

func promptPassword(env *Env) (string, error) {
	fmt.Fprint(env.Out, "Password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(env.Out)
		return string(pw), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LogoutCommand ends the session.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Log out and discard the stored credential",
		Action: func(c *cli.Context) error {
			env := envFrom(c)
			env.Session.InitAuth(c.Context)
			env.Session.Logout(c.Context)
			env.Customers.ClearAll()
			env.Tracks.ClearAll()
			env.Metrics.SetAuthenticated(false)
			fmt.Fprintln(env.Out, "Logged out.")
			return nil
		},
	}
}

// WhoamiCommand shows the authenticated identity.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the current user",
		Action: func(c *cli.Context) error {
			env := envFrom(c)
			if !env.Session.InitAuth(c.Context) {
				return exitErr("not logged in")
			}
			user, ok := env.Session.CurrentUser(c.Context)
			if !ok {
				return exitErr("session expired, please log in again")
			}
			return formatter(c).Format(env.Out, user)
		},
	}
}

// RefreshCommand renews the bearer token.
func RefreshCommand() *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Renew the session token",
		Action: func(c *cli.Context) error {
			env := envFrom(c)
			if !env.Session.InitAuth(c.Context) {
				return exitErr("not logged in")
			}
			if !env.Session.RefreshToken(c.Context) {
				env.Metrics.SetAuthenticated(false)
				return exitErr("session expired, please log in again")
			}
			expiry, _ := env.Session.TokenExpiry()
			fmt.Fprintf(env.Out, "Token renewed, valid until %s\n",
				expiry.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// StatusCommand reports the session and connection state.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show session and connection status",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "metrics", Usage: "include request metrics"},
		},
		Action: func(c *cli.Context) error {
			env := envFrom(c)

			authenticated := env.Session.InitAuth(c.Context)

			status := struct {
				Server        string `json:"server"`
				ClientID      string `json:"client_id,omitempty"`
				Authenticated bool   `json:"authenticated"`
				Username      string `json:"username,omitempty"`
				TokenExpires  string `json:"token_expires,omitempty"`
			}{
				Server:        env.Cfg.Server,
				ClientID:      env.Cfg.ClientID,
				Authenticated: authenticated,
			}
			if user := env.Session.User(); user != nil {
				status.Username = user.Username
			}
			if expiry, ok := env.Session.TokenExpiry(); ok {
				status.TokenExpires = expiry.Local().Format(time.RFC3339)
			}

			if err := formatter(c).Format(env.Out, status); err != nil {
				return err
			}
			if c.Bool("metrics") {
				fmt.Fprintln(env.Out)
				return env.Metrics.WriteText(env.Out)
			}
			return nil
		},
	}
}
