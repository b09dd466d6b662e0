package bot

import (
	"context"
	"fmt"
	"log"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordich/internal/database"
	"github.com/example/wordich/internal/lesson"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot adapts the lesson service to Telegram. It renders QuizView and
// StepResult values as messages with inline keyboards and maps callbacks back
// onto service calls; it holds no learning logic of its own.
type Bot struct {
	api     *tgbotapi.BotAPI
	lessons *lesson.Service
	users   *database.UserRepository
	config  *BotConfig
}

// New creates a new bot instance over the lesson service.
func New(lessons *lesson.Service) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}
	return &Bot{
		api:     api,
		lessons: lessons,
		users:   database.NewUserRepository(),
		config:  DefaultConfig(),
	}, nil
}

// Start runs the update loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// Stop shuts down the update channel.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendReminder implements scheduler.Notifier: it tells the user how many
// words are waiting for review.
func (b *Bot) SendReminder(userID int64, dueCount int) error {
	text := fmt.Sprintf("⏰ Пора повторить слова! Тебя ждут %d слов(а).", dueCount)
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "📚 Начать урок", CallbackData: "learn"}},
	})
	_, err := b.api.Send(msg)
	return err
}

// handleUpdate routes one incoming update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			log.Printf("Error handling callback %q from %d: %v",
				update.CallbackQuery.Data, update.CallbackQuery.From.ID, err)
		}
	case update.Message != nil && update.Message.IsCommand():
		if err := b.handleCommand(ctx, update.Message); err != nil {
			log.Printf("Error handling command /%s from %d: %v",
				update.Message.Command(), update.Message.From.ID, err)
		}
	case update.Message != nil:
		// Plain text is only meaningful as a fill-in-blank answer.
		if err := b.handleTextAnswer(ctx, update.Message); err != nil {
			log.Printf("Error handling answer from %d: %v", update.Message.From.ID, err)
		}
	}
}

func (b *Bot) send(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) mainMenu() tgbotapi.InlineKeyboardMarkup {
	return createKeyboard([][]MenuButton{
		{{Text: "📚 Учить слова", CallbackData: "learn"}},
		{{Text: "📊 Статистика", CallbackData: "stats"}},
		{{Text: "🏆 Достижения", CallbackData: "achievements"}},
		{{Text: "⚙️ Настройки", CallbackData: "settings"}},
	})
}
