package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/court_booking/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/courts - Список площадок\n" +
	"/slots <площадка> <YYYY-MM-DD> - Свободные слоты\n" +
	"/book <площадка> <клиент> <YYYY-MM-DD> <HH:MM> <минуты> - Разовая бронь\n" +
	"/book ... weekly <YYYY-MM-DD> <скидка> - Фиксированная бронь до даты\n" +
	"/confirm - Подтвердить рассчитанную бронь\n" +
	"/discard - Отказаться от рассчитанной брони\n" +
	"/cancel <id> - Отменить бронь (вся серия для фиксированной)\n" +
	"/day <YYYY-MM-DD> - Брони за день\n" +
	"/help - Показать эту справку"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("👋 Привет, %s!\n\nЗдесь можно бронировать площадки.\n\n%s",
			update.Message.From.FirstName, helpText))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCourts обрабатывает команду /courts [вид спорта]
func (h *Handlers) HandleCourts(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	sport := ""
	if args := commandArgs(update.Message.Text); len(args) > 0 {
		sport = args[0]
	}

	courts, err := h.catalogService.ListCourts(ctx, sport)
	if err != nil {
		h.logger.Error("Failed to list courts", zap.Error(err))
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatCourts(courts))
}

// HandleSlots обрабатывает команду /slots <площадка> <дата>
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		h.sendError(ctx, b, chatID, "Формат: /slots <площадка> <YYYY-MM-DD>")
		return
	}
	courtID, err := parseID(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}
	date, err := parseDate(args[1], h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	slots, err := h.bookingService.AvailableSlots(ctx, courtID, date)
	if err != nil {
		h.logger.Error("Failed to get available slots",
			zap.Int64("court_id", courtID),
			zap.Error(err),
		)
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatSlots(courtID, date, slots))
}

// HandleBook рассчитывает заявку и сохраняет её как черновик до /confirm
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	tpl, err := parseBookArgs(commandArgs(update.Message.Text), h.location)
	if err != nil {
		h.sendError(ctx, b, chatID, usageBook)
		return
	}

	quote, err := h.bookingService.Quote(ctx, tpl)
	if err != nil {
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	h.stateManager.SetDraft(chatID, &state.Draft{Template: tpl, Quote: quote})
	h.sendMessageWithKeyboard(ctx, b, chatID, formatQuote(tpl, quote), draftKeyboard())
}

// HandleConfirm регистрирует черновик
func (h *Handlers) HandleConfirm(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.confirmDraft(ctx, b, update.Message.Chat.ID)
}

// HandleDiscard удаляет черновик
func (h *Handlers) HandleDiscard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.discardDraft(ctx, b, update.Message.Chat.ID)
}

func (h *Handlers) confirmDraft(ctx context.Context, b *bot.Bot, chatID int64) {
	draft, ok := h.stateManager.TakeDraft(chatID)
	if !ok {
		h.sendError(ctx, b, chatID, "Нет брони для подтверждения. Используйте /book")
		return
	}

	reg, err := h.bookingService.Register(ctx, draft.Template)
	if err != nil {
		h.logger.Info("Registration rejected",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatRegistration(reg))
}

func (h *Handlers) discardDraft(ctx context.Context, b *bot.Bot, chatID int64) {
	if h.stateManager.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "Нечего отменять")
		return
	}
	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "Бронь не создана")
}

// HandleCancel обрабатывает команду /cancel <id>
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "Формат: /cancel <id брони>")
		return
	}
	id, err := parseID(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	deleted, err := h.bookingService.Cancel(ctx, id)
	if err != nil {
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Отменено броней: %d", deleted))
}

// HandleDay обрабатывает команду /day [дата]; без даты показывает сегодня
func (h *Handlers) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	date := time.Now().In(h.location)
	if args := commandArgs(update.Message.Text); len(args) > 0 {
		parsed, err := parseDate(args[0], h.location)
		if err != nil {
			h.sendError(ctx, b, chatID, formatError(err))
			return
		}
		date = parsed
	}

	reservations, err := h.bookingService.ListDay(ctx, date)
	if err != nil {
		h.logger.Error("Failed to list day", zap.Error(err))
		h.sendError(ctx, b, chatID, formatError(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatDay(date, reservations))
}

// HandleCallbackQuery обрабатывает кнопки под расчётом брони
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	h.answerCallback(ctx, b, callback.ID, "")

	msg := callback.Message.Message
	if msg == nil {
		return
	}

	switch callback.Data {
	case callbackConfirmDraft:
		h.confirmDraft(ctx, b, msg.Chat.ID)
	case callbackDiscardDraft:
		h.discardDraft(ctx, b, msg.Chat.ID)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", callback.Data))
	}
}
