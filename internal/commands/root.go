package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/payfield/internal/buildinfo"
	"github.com/cleared-dev/payfield/internal/config"
	"github.com/cleared-dev/payfield/internal/engine"
	"github.com/cleared-dev/payfield/internal/logging"
)

// ErrInvalid is returned when a command ran to completion but at least one
// value failed validation. The failure has already been reported on stdout.
var ErrInvalid = errors.New("validation failed")

var (
	okLabel   = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
)

type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "payfield",
		Short:   "Validate, format and redact payment form fields",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to payfield.yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each check to stderr")

	rootCmd.AddCommand(
		newInitCommand(),
		newValidateCommand(opts),
		newBatchCommand(opts),
		newSanitizeCommand(opts),
		newFormatCommand(opts),
		newParseCommand(opts),
	)

	return rootCmd
}

// setup loads the config and builds the logger and engine for a command.
func (o *globalOptions) setup(cmd *cobra.Command, now time.Time) (*engine.Engine, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}

	engineOpts := []engine.Option{engine.WithLogger(log.Named("engine"))}
	if !now.IsZero() {
		engineOpts = append(engineOpts, engine.WithClock(func() time.Time { return now }))
	}
	e, err := engine.New(cfg, engineOpts...)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("config loaded", zap.String("path", o.configPath))
	return e, log, nil
}
