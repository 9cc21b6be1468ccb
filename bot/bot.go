package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"food-order/models"
	"food-order/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const helpText = `Commands:
/signup <email> <password> - create an account
/login <email> <password> - log in
/menu - show the menu
/add <item#> - add an item
/remove <line#> - remove a line from your order
/cart - show your order
/complete - place the order
/history - previous orders
/logout - log out`

// sender is the part of *tgbotapi.BotAPI the handlers need.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot serves the ordering commands to Telegram chats, one session per chat.
type Bot struct {
	api *tgbotapi.BotAPI
	out sender
	svc *services.Service
	log zerolog.Logger

	sessions   map[int64]*services.Session
	sessionsMu sync.RWMutex
}

func New(token string, svc *services.Service, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b := newBot(api, svc, log)
	b.api = api
	return b, nil
}

func newBot(out sender, svc *services.Service, log zerolog.Logger) *Bot {
	return &Bot{
		out:      out,
		svc:      svc,
		log:      log.With().Str("component", "bot").Logger(),
		sessions: make(map[int64]*services.Session),
	}
}

// Username returns the bot's Telegram handle.
func (b *Bot) Username() string {
	if b.api == nil {
		return ""
	}
	return b.api.Self.UserName
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Help"},
		tgbotapi.BotCommand{Command: "signup", Description: "Create an account"},
		tgbotapi.BotCommand{Command: "login", Description: "Log in"},
		tgbotapi.BotCommand{Command: "menu", Description: "Show the menu"},
		tgbotapi.BotCommand{Command: "cart", Description: "Show your order"},
		tgbotapi.BotCommand{Command: "complete", Description: "Place the order"},
		tgbotapi.BotCommand{Command: "history", Description: "Previous orders"},
		tgbotapi.BotCommand{Command: "logout", Description: "Log out"},
	)
	_, err := b.out.Request(cfg)
	return err
}

// Start long-polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn().Err(err).Msg("set bot commands")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one Telegram update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	msg := update.Message
	b.handleText(ctx, msg.Chat.ID, msg.MessageID, strings.TrimSpace(msg.Text))
}

func (b *Bot) handleText(ctx context.Context, chatID int64, messageID int, text string) {
	cmd, rest := parseCommand(text)
	args := strings.Fields(rest)
	switch cmd {
	case "start", "help":
		b.send(chatID, "Welcome to the food shop!\n\n"+helpText)
	case "signup":
		b.forget(chatID, messageID)
		b.handleSignup(ctx, chatID, rest)
	case "login":
		b.forget(chatID, messageID)
		b.handleLogin(ctx, chatID, rest)
	case "logout":
		b.handleLogout(chatID)
	case "menu":
		b.sendMenu(chatID)
	case "add":
		b.handleAdd(chatID, args)
	case "remove":
		b.handleRemove(chatID, args)
	case "cart":
		b.sendCart(chatID)
	case "complete":
		b.handleComplete(ctx, chatID)
	case "history":
		b.handleHistory(ctx, chatID)
	default:
		b.send(chatID, "I did not understand that.\n\n"+helpText)
	}
}

// parseCommand splits "/login@shop_bot a b" into ("login", "a b").
// Text that is not a command yields an empty name.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	name, rest, _ := strings.Cut(text, " ")
	name = strings.TrimPrefix(name, "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name), strings.TrimSpace(rest)
}

// forget deletes a message that carried a password.
func (b *Bot) forget(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.out.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Debug().Err(err).Int64("chat", chatID).Msg("delete credentials message")
	}
}

func (b *Bot) session(chatID int64) *services.Session {
	b.sessionsMu.RLock()
	defer b.sessionsMu.RUnlock()
	return b.sessions[chatID]
}

func (b *Bot) setSession(chatID int64, s *services.Session) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()
	if s == nil {
		delete(b.sessions, chatID)
		return
	}
	b.sessions[chatID] = s
}

// requireSession sends a notice and returns nil when the chat is not logged in.
func (b *Bot) requireSession(chatID int64) *services.Session {
	s := b.session(chatID)
	if s == nil {
		b.send(chatID, "Please log in first: /login <email> <password>")
	}
	return s
}

func (b *Bot) handleSignup(ctx context.Context, chatID int64, rest string) {
	email, password, ok := services.SplitCredentials(rest)
	if !ok {
		b.send(chatID, "Usage: /signup <email> <password>")
		return
	}
	if err := b.svc.SubmitSignup(ctx, email, password); err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, "Signup successful: account created. Now /login <email> <password>.")
}

func (b *Bot) handleLogin(ctx context.Context, chatID int64, rest string) {
	email, password, ok := services.SplitCredentials(rest)
	if !ok {
		b.send(chatID, "Usage: /login <email> <password>")
		return
	}
	sess, err := b.svc.SubmitLogin(ctx, email, password)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.setSession(chatID, sess)
	b.send(chatID, fmt.Sprintf("Welcome, %s!", sess.Identifier()))
	b.sendMenu(chatID)
}

func (b *Bot) handleLogout(chatID int64) {
	if b.session(chatID) == nil {
		b.send(chatID, "You are not logged in.")
		return
	}
	b.setSession(chatID, nil)
	b.send(chatID, "Logged out.")
}

func (b *Bot) handleAdd(chatID int64, args []string) {
	sess := b.requireSession(chatID)
	if sess == nil {
		return
	}
	if len(args) != 1 {
		b.send(chatID, "Usage: /add <item#>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		b.send(chatID, "Usage: /add <item#>")
		return
	}
	b.addItem(chatID, sess, n)
}

func (b *Bot) addItem(chatID int64, sess *services.Session, number int) {
	line, err := sess.AddItem(number)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, fmt.Sprintf("Added %s. Total: %s", services.FormatLine(line), models.FormatMoney(sess.Total())))
}

func (b *Bot) handleRemove(chatID int64, args []string) {
	sess := b.requireSession(chatID)
	if sess == nil {
		return
	}
	if len(args) != 1 {
		b.send(chatID, "Usage: /remove <line#>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		b.send(chatID, "Usage: /remove <line#>")
		return
	}
	b.removeLine(chatID, sess, n)
}

func (b *Bot) removeLine(chatID int64, sess *services.Session, lineNumber int) {
	line, err := sess.RemoveItem(lineNumber - 1)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, fmt.Sprintf("Removed %s. Total: %s", services.FormatLine(line), models.FormatMoney(sess.Total())))
}

// removeFromCart handles a cart button. The button carries the line number
// and item name it was drawn with; a tap on an outdated cart removes nothing.
func (b *Bot) removeFromCart(chatID int64, messageID int, sess *services.Session, arg string) {
	num, name, _ := strings.Cut(arg, ":")
	n, err := strconv.Atoi(num)
	if err != nil {
		return
	}
	lines := sess.Lines()
	if n < 1 || n > len(lines) || lines[n-1].Name != name {
		b.send(chatID, "That cart is out of date. Here is your current order.")
		b.redrawCart(chatID, messageID, sess)
		return
	}
	b.removeLine(chatID, sess, n)
	b.redrawCart(chatID, messageID, sess)
}

func (b *Bot) handleComplete(ctx context.Context, chatID int64) {
	sess := b.requireSession(chatID)
	if sess == nil {
		return
	}
	order, err := sess.CompleteOrder(ctx)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, fmt.Sprintf("Your order has been placed.\nTotal: %s", models.FormatMoney(order.Total)))
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) {
	sess := b.requireSession(chatID)
	if sess == nil {
		return
	}
	orders, err := sess.ViewHistory(ctx)
	if err != nil {
		b.fail(chatID, err)
		return
	}
	b.send(chatID, strings.TrimRight(services.RenderHistory(orders), "\n"))
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.out.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Debug().Err(err).Msg("answer callback")
	}
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	sess := b.requireSession(chatID)
	if sess == nil {
		return
	}

	action, arg, _ := strings.Cut(cq.Data, ":")
	switch action {
	case "add":
		if n, err := strconv.Atoi(arg); err == nil {
			b.addItem(chatID, sess, n)
		}
	case "remove":
		b.removeFromCart(chatID, cq.Message.MessageID, sess, arg)
	case "cart":
		b.sendCart(chatID)
	case "complete":
		b.handleComplete(ctx, chatID)
	default:
		b.log.Debug().Str("data", cq.Data).Msg("unknown callback")
	}
}

// fail sends the customer notice for err and logs unexpected failures.
func (b *Bot) fail(chatID int64, err error) {
	if !services.IsNotice(err) {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("command failed")
	}
	b.send(chatID, services.Notice(err))
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("send")
	}
}

func (b *Bot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.out.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat", chatID).Msg("send")
	}
}
