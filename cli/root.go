package cli

import (
	"fmt"

	"food-order/config"
	"food-order/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and what PersistentPreRunE derives from them.
type RootOptions struct {
	EnvFile string
	Verbose bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the foodorder command tree. Without a subcommand
// it starts the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "foodorder",
		Short:         "Order food from the terminal or Telegram",
		Long:          "Sign up, log in, pick items from the menu and keep an order history in flat files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "env file to load instead of ./.env")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewSignupCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewOrderCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewBotCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	var envFiles []string
	if o.EnvFile != "" {
		envFiles = append(envFiles, o.EnvFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return WrapExitError(ExitCommandError, "config", err)
	}
	level := cfg.Log.Level
	if o.Verbose {
		level = "debug"
	}
	o.cfg = cfg
	o.log = logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format)
	return nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
