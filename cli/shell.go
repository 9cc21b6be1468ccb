package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"food-order/models"
	"food-order/services"
	"food-order/store"

	"github.com/rs/zerolog"
)

const shellHelp = `Commands:
  signup <email> <password>   create an account
  login <email> <password>    log in and start ordering
  menu [category]             show the menu
  add <item#> [item#...]      add menu items to your order
  remove <line#>              remove a line from your order
  cart                        show your order and total
  complete                    place the order
  history                     show your previous orders
  logout                      end the session
  quit                        leave
`

// Shell is the line-oriented terminal front-end. It holds at most one
// logged-in session at a time.
type Shell struct {
	svc     *services.Service
	in      io.Reader
	out     io.Writer
	log     zerolog.Logger
	session *services.Session
}

func NewShell(svc *services.Service, in io.Reader, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{svc: svc, in: in, out: out, log: log}
}

// Run reads commands until quit, end of input or ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(sh.out, "Welcome! Type 'help' for commands.")
	sc := bufio.NewScanner(sh.in)
	sh.prompt()
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := sh.Exec(ctx, sc.Text()); quit {
			return nil
		}
		sh.prompt()
	}
	return sc.Err()
}

func (sh *Shell) prompt() {
	if sh.session != nil {
		fmt.Fprintf(sh.out, "%s> ", sh.session.Identifier())
		return
	}
	fmt.Fprint(sh.out, "> ")
}

// Exec runs one command line and reports whether the shell should stop.
func (sh *Shell) Exec(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch name {
	case "quit", "exit":
		fmt.Fprintln(sh.out, "Bye.")
		return true
	case "help":
		fmt.Fprint(sh.out, shellHelp)
	case "signup":
		sh.signup(ctx, rest)
	case "login":
		sh.login(ctx, rest)
	case "logout":
		sh.logout()
	case "menu":
		sh.menu(args)
	case "add":
		sh.add(args)
	case "remove":
		sh.remove(args)
	case "cart":
		sh.cart()
	case "complete":
		sh.complete(ctx)
	case "history":
		sh.history(ctx)
	default:
		fmt.Fprintf(sh.out, "Unknown command %q. Type 'help' for commands.\n", name)
	}
	return false
}

// signup and login take everything after the email as the password.
func (sh *Shell) signup(ctx context.Context, rest string) {
	email, password, ok := services.SplitCredentials(rest)
	if !ok {
		fmt.Fprintln(sh.out, "Usage: signup <email> <password>")
		return
	}
	if err := sh.svc.SubmitSignup(ctx, email, password); err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprintln(sh.out, "Signup successful: account created.")
}

func (sh *Shell) login(ctx context.Context, rest string) {
	email, password, ok := services.SplitCredentials(rest)
	if !ok {
		fmt.Fprintln(sh.out, "Usage: login <email> <password>")
		return
	}
	sess, err := sh.svc.SubmitLogin(ctx, email, password)
	if err != nil {
		sh.fail(err)
		return
	}
	sh.session = sess
	fmt.Fprintf(sh.out, "Welcome, %s!\n", sess.Identifier())
	fmt.Fprint(sh.out, services.RenderMenu(sess.Menu()))
}

func (sh *Shell) logout() {
	if sh.session == nil {
		fmt.Fprintln(sh.out, "You are not logged in.")
		return
	}
	fmt.Fprintf(sh.out, "Goodbye, %s.\n", sh.session.Identifier())
	sh.session = nil
}

func (sh *Shell) menu(args []string) {
	m := sh.svc.Menu()
	if len(args) == 0 {
		fmt.Fprint(sh.out, services.RenderMenu(m))
		return
	}
	items := m.ByCategory(strings.Join(args, " "))
	if len(items) == 0 {
		fmt.Fprintf(sh.out, "No such category. Categories: %s\n", strings.Join(m.Categories(), ", "))
		return
	}
	for _, it := range items {
		fmt.Fprintf(sh.out, "  %2d. %s - %s\n", it.Number, it.Name, models.FormatMoney(it.Price))
	}
}

func (sh *Shell) add(args []string) {
	if !sh.requireSession() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "Usage: add <item#> [item#...]")
		return
	}
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			fmt.Fprintf(sh.out, "%q is not an item number.\n", a)
			return
		}
		line, err := sh.session.AddItem(n)
		if err != nil {
			sh.fail(err)
			return
		}
		fmt.Fprintf(sh.out, "Added %s. Total: %s\n", services.FormatLine(line), models.FormatMoney(sh.session.Total()))
	}
}

func (sh *Shell) remove(args []string) {
	if !sh.requireSession() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(sh.out, "Usage: remove <line#>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(sh.out, "%q is not a line number.\n", args[0])
		return
	}
	line, err := sh.session.RemoveItem(n - 1)
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprintf(sh.out, "Removed %s. Total: %s\n", services.FormatLine(line), models.FormatMoney(sh.session.Total()))
}

func (sh *Shell) cart() {
	if !sh.requireSession() {
		return
	}
	fmt.Fprint(sh.out, services.RenderCart(sh.session.Lines(), sh.session.Total()))
}

func (sh *Shell) complete(ctx context.Context) {
	if !sh.requireSession() {
		return
	}
	order, err := sh.session.CompleteOrder(ctx)
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprintf(sh.out, "Your order has been placed.\nTotal: %s\n", models.FormatMoney(order.Total))
}

func (sh *Shell) history(ctx context.Context) {
	if !sh.requireSession() {
		return
	}
	orders, err := sh.session.ViewHistory(ctx)
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprint(sh.out, services.RenderHistory(orders))
}

func (sh *Shell) requireSession() bool {
	if sh.session == nil {
		fmt.Fprintln(sh.out, "Please log in first.")
		return false
	}
	return true
}

// fail shows the notice for err; failures that are not plain notices are logged.
func (sh *Shell) fail(err error) {
	if !services.IsNotice(err) {
		sh.log.Error().Err(err).Msg("shell command failed")
	} else if errors.Is(err, store.ErrNoHistory) {
		sh.log.Debug().Msg("order history file missing")
	}
	fmt.Fprintln(sh.out, services.Notice(err))
}
