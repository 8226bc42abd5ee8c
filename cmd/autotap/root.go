package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autotap/internal/config"
	"autotap/internal/logging"
)

// app carries what every subcommand shares: the viper instance, the loaded
// config and the process streams.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "autotap",
		Short: "Tap a list of screen points on a schedule",
		Long: `autotap cycles through a list of click points, tapping each one and waiting
its own interval before moving to the next. Points live in a YAML file that
can be edited with 'autotap points' or by hand while 'autotap run' is watching it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/autotap/config.yaml)")
	flags.String("points", "", "click point file (default is <config dir>/points.yaml)")
	flags.String("log-level", "", "log verbosity: debug|info|warn|error")
	flags.String("log-format", "", "log format: text|json")
	_ = a.v.BindPFlag("points_file", flags.Lookup("points"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newRunCmd(a),
		newPointsCmd(a),
		newDevicesCmd(a),
		newCaptureKeyCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) initConfig() error {
	// Defaults first so every key resolves without a config file.
	config.SetDefaults(a.v)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(config.ConfigDir())
		a.v.AddConfigPath(".")
	}

	a.v.AutomaticEnv()
	a.v.SetEnvPrefix(config.EnvPrefix)
	// AUTOTAP_SESSION_MAX_TAPS for session.max_taps
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return usageError{fmt.Errorf("failed to read config: %w", err)}
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return usageError{fmt.Errorf("invalid configuration: %w", err)}
	}
	a.cfg = cfg
	return nil
}

func (a *app) newLogger(out io.Writer) (*slog.Logger, error) {
	if out == nil {
		out = a.stderr
	}
	logger, err := logging.New(logging.Options{
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
		Output: out,
	})
	if err != nil {
		return nil, usageError{err}
	}
	return logger, nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))}
	}
	return nil
}
