package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/custrack-go/internal/cli/config"
	"github.com/yndnr/custrack-go/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file location",
				Action: configPath,
			},
			{
				Name:      "set",
				Usage:     "Set one configuration value",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "init",
				Usage:  "Write a config file with the current settings",
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	env := envFrom(c)
	return formatter(c).Format(env.Out, env.Cfg)
}

func configPath(c *cli.Context) error {
	env := envFrom(c)
	path := env.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fmt.Fprintln(env.Out, path)
	return nil
}

func configSet(c *cli.Context) error {
	env := envFrom(c)
	key, value := c.Args().Get(0), c.Args().Get(1)
	if key == "" || value == "" {
		return exitErr("usage: custrack config set KEY VALUE")
	}

	cfg := env.Cfg
	switch key {
	case "server":
		cfg.Server = value
	case "output":
		if _, err := output.ParseFormat(value); err != nil {
			return exitErr("%v", err)
		}
		cfg.Output = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return exitErr("invalid timeout %q", value)
		}
		cfg.Timeout = d
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "credential_dir":
		cfg.CredentialDir = value
	default:
		return exitErr("unknown config key %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return exitErr("%v", err)
	}
	if err := config.Save(cfg, env.ConfigPath); err != nil {
		return exitErr("%v", err)
	}

	fmt.Fprintf(env.Out, "%s set to %s\n", key, value)
	return nil
}

func configInit(c *cli.Context) error {
	env := envFrom(c)
	path := env.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := config.Save(env.Cfg, path); err != nil {
		return exitErr("%v", err)
	}
	fmt.Fprintf(env.Out, "Wrote %s\n", path)
	return nil
}
