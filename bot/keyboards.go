package bot

import (
	"fmt"
	"strings"

	"food-order/models"
	"food-order/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// menuKeyboard has one "add" button per menu item, then cart and checkout.
func menuKeyboard(m *services.Menu) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range m.Items() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s - %s", it.Name, models.FormatMoney(it.Price)),
				fmt.Sprintf("add:%d", it.Number),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🛒 Cart", "cart"),
		tgbotapi.NewInlineKeyboardButtonData("✅ Complete order", "complete"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// cartKeyboard offers a remove button per line plus checkout.
func cartKeyboard(lines []models.OrderLine) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, l := range lines {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("❌ %d. %s", i+1, l.Name),
				fmt.Sprintf("remove:%d:%s", i+1, l.Name),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Complete order", "complete"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) sendMenu(chatID int64) {
	text := services.RenderMenu(b.svc.Menu()) + "\nTap an item to add it, or send /add <item#>."
	if b.session(chatID) == nil {
		b.send(chatID, text+"\nLog in first: /login <email> <password>")
		return
	}
	b.sendWithInline(chatID, text, menuKeyboard(b.svc.Menu()))
}

func (b *Bot) sendCart(chatID int64) {
	sess := b.requireSession(chatID)
	if sess == nil {
		return
	}
	lines := sess.Lines()
	text := cartText(lines, sess)
	if len(lines) == 0 {
		b.send(chatID, text)
		return
	}
	b.sendWithInline(chatID, text, cartKeyboard(lines))
}

// redrawCart rewrites a cart message in place so its buttons match the
// current order. An empty order loses its keyboard.
func (b *Bot) redrawCart(chatID int64, messageID int, sess *services.Session) {
	if messageID == 0 {
		return
	}
	lines := sess.Lines()
	kb := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	if len(lines) > 0 {
		kb = cartKeyboard(lines)
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, cartText(lines, sess))
	edit.ReplyMarkup = &kb
	if _, err := b.out.Send(edit); err != nil {
		b.log.Debug().Err(err).Int64("chat", chatID).Msg("redraw cart")
	}
}

func cartText(lines []models.OrderLine, sess *services.Session) string {
	return strings.TrimRight(services.RenderCart(lines, sess.Total()), "\n")
}
