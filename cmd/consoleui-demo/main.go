package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/xanthalas/consoleui/internal/config"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
)

// options holds the command line flags.
type options struct {
	configPath string
	device     string
	stepDelay  time.Duration
	watch      bool
	copy       bool
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "consoleui-demo",
		Short: "Play the consoleui widget demo",
		Long: `consoleui-demo builds a window with three overlapping textboxes and
steps through border, fill, write and z-order changes, redrawing only the
cells that change between steps.`,
		Example: `  # Run on the current terminal
  consoleui-demo

  # Use the tcell screen (q, Esc or Ctrl-C quits)
  consoleui-demo --device tcell

  # Print the final frame without a terminal
  consoleui-demo --device headless

  # Keep running and restyle when the config file changes
  consoleui-demo --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, path, opts, cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.toml (default $CONSOLEUI_HOME/config.toml)")
	rootCmd.Flags().StringVar(&opts.device, "device", "", "Terminal device: ansi, tcell or headless")
	rootCmd.Flags().DurationVar(&opts.stepDelay, "step-delay", 0, "Pause between demo steps")
	rootCmd.Flags().BoolVar(&opts.watch, "watch", false, "Reload the theme when the config file changes")
	rootCmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the final frame to the clipboard")
	rootCmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	rootCmd.AddCommand(newInitConfigCmd(&opts))
	return rootCmd
}

func (o *options) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	paths, err := config.DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigPath, nil
}

// apply overrides config values with the flags the user actually set.
func (o *options) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("device") {
		cfg.Device = o.device
	}
	if cmd.Flags().Changed("step-delay") {
		if o.stepDelay < 0 {
			return errors.New("--step-delay must not be negative")
		}
		cfg.StepDelayMs = int(o.stepDelay / time.Millisecond)
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}
	return nil
}

func newInitConfigCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			cfg, err := config.DefaultConfig()
			if err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
