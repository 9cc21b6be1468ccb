package cli

import (
	"food-order/bot"
	"food-order/db"
	"food-order/models"
	"food-order/services"

	"github.com/spf13/cobra"
)

type credentialFlags struct {
	email    string
	password string
}

func (c *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "account password")
}

func NewShellCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive ordering shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

func runShell(cmd *cobra.Command, opts *RootOptions) error {
	return withService(cmd.Context(), opts, func(svc *services.Service) error {
		sh := NewShell(svc, cmd.InOrStdin(), cmd.OutOrStdout(), opts.log)
		return sh.Run(cmd.Context())
	})
}

func NewSignupCommand(opts *RootOptions) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *services.Service) error {
				if err := svc.SubmitSignup(cmd.Context(), creds.email, creds.password); err != nil {
					return commandError(opts.log, err)
				}
				printf(cmd, "Signup successful: account created.\n")
				return nil
			})
		},
	}
	creds.register(cmd)
	return cmd
}

// NewLoginCommand checks a credential pair without starting an order.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify account credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *services.Service) error {
				sess, err := svc.SubmitLogin(cmd.Context(), creds.email, creds.password)
				if err != nil {
					return commandError(opts.log, err)
				}
				printf(cmd, "Welcome, %s!\n", sess.Identifier())
				return nil
			})
		},
	}
	creds.register(cmd)
	return cmd
}

func NewMenuCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Print the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printf(cmd, "%s", services.RenderMenu(services.DefaultMenu()))
			return nil
		},
	}
}

func NewOrderCommand(opts *RootOptions) *cobra.Command {
	var (
		creds credentialFlags
		items []int
	)
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Log in and place one order",
		Long:  "Log in, add the given menu item numbers in order and complete the order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *services.Service) error {
				sess, err := svc.SubmitLogin(cmd.Context(), creds.email, creds.password)
				if err != nil {
					return commandError(opts.log, err)
				}
				for _, n := range items {
					if _, err := sess.AddItem(n); err != nil {
						return commandError(opts.log, err)
					}
				}
				printf(cmd, "%s", services.RenderCart(sess.Lines(), sess.Total()))
				order, err := sess.CompleteOrder(cmd.Context())
				if err != nil {
					return commandError(opts.log, err)
				}
				printf(cmd, "Your order has been placed.\nTotal: %s\n", models.FormatMoney(order.Total))
				return nil
			})
		},
	}
	creds.register(cmd)
	cmd.Flags().IntSliceVarP(&items, "item", "i", nil, "menu item number (repeatable)")
	return cmd
}

func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	var creds credentialFlags
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(svc *services.Service) error {
				sess, err := svc.SubmitLogin(cmd.Context(), creds.email, creds.password)
				if err != nil {
					return commandError(opts.log, err)
				}
				orders, err := sess.ViewHistory(cmd.Context())
				if err != nil {
					return commandError(opts.log, err)
				}
				printf(cmd, "%s", services.RenderHistory(orders))
				return nil
			})
		},
	}
	creds.register(cmd)
	return cmd
}

func NewBotCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Serve the ordering commands over Telegram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Telegram.Token == "" {
				return NewExitError(ExitCommandError, "TOKEN not set")
			}
			return withService(cmd.Context(), opts, func(svc *services.Service) error {
				b, err := bot.New(opts.cfg.Telegram.Token, svc, opts.log)
				if err != nil {
					return WrapExitError(ExitCommandError, "bot", err)
				}
				opts.log.Info().Str("bot", b.Username()).Msg("bot started")
				return b.Start(cmd.Context())
			})
		},
	}
}

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := db.Open(cmd.Context(), opts.cfg.DB)
			if err != nil {
				return WrapExitError(ExitCommandError, "db", err)
			}
			defer pool.Close()
			if err := db.ApplyMigrations(cmd.Context(), pool, opts.log); err != nil {
				return WrapExitError(ExitCommandError, "migrate", err)
			}
			printf(cmd, "Migrations applied.\n")
			return nil
		},
	}
}
