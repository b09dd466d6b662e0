package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordich/internal/lesson"
	"github.com/example/wordich/internal/quiz"
	"github.com/example/wordich/pkg/models"
)

// handleCommand routes bot commands.
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(ctx, message)
	case "learn":
		return b.startLesson(ctx, message.Chat.ID, message.From.ID)
	case "stats":
		return b.showStats(ctx, message.Chat.ID, message.From.ID)
	case "help":
		return b.send(message.Chat.ID,
			"Команды:\n/learn — начать урок\n/stats — статистика\n/help — помощь", nil)
	default:
		return b.send(message.Chat.ID, "Неизвестная команда. Попробуй /help.", nil)
	}
}

// handleStart registers the user on first contact and shows the level picker.
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	from := message.From
	user, err := b.users.GetOrCreate(ctx, from.ID, from.UserName, from.FirstName, from.LastName,
		b.config.DefaultLevel, b.config.DefaultDailyWords)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"🎯 *Wordich — твой репетитор английского*\n\n"+
			"Привет, %s! Я помогу выучить английские слова методом интервальных повторений.\n\n"+
			"• Уровень: %s\n• Слов в день: %d\n• Серия: %d дней\n\n"+
			"Выбери свой уровень:",
		from.FirstName, user.Level, user.DailyWords, user.Streak)

	var rows [][]MenuButton
	for _, level := range models.Levels {
		rows = append(rows, []MenuButton{{Text: level, CallbackData: "level_" + level}})
	}
	keyboard := createKeyboard(rows)
	return b.send(message.Chat.ID, text, &keyboard)
}

// handleCallback routes inline-keyboard presses.
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	// Acknowledge the press so the client stops the spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		return err
	}

	chatID := callback.Message.Chat.ID
	userID := callback.From.ID
	data := callback.Data

	switch {
	case data == "menu":
		keyboard := b.mainMenu()
		return b.send(chatID, "🏠 *Главное меню*", &keyboard)
	case data == "learn":
		return b.startLesson(ctx, chatID, userID)
	case data == "stats":
		return b.showStats(ctx, chatID, userID)
	case data == "achievements":
		return b.showAchievements(ctx, chatID, userID)
	case data == "settings":
		return b.showSettings(chatID)
	case data == "skip":
		return b.skipCurrent(ctx, chatID, userID)
	case data == "quit":
		b.lessons.DiscardSession(userID)
		keyboard := b.mainMenu()
		return b.send(chatID, "Урок прерван. Прогресс по отвеченным словам сохранён.", &keyboard)
	case strings.HasPrefix(data, "level_"):
		return b.setLevel(ctx, chatID, userID, strings.TrimPrefix(data, "level_"))
	case strings.HasPrefix(data, "daily_"):
		return b.setDailyWords(ctx, chatID, userID, strings.TrimPrefix(data, "daily_"))
	case strings.HasPrefix(data, "answer_"):
		return b.answerOption(ctx, chatID, userID, strings.TrimPrefix(data, "answer_"))
	default:
		return nil
	}
}

// startLesson opens a session and shows the first prompt. A live session is
// resumed rather than restarted; an empty batch is good news, not an error.
func (b *Bot) startLesson(ctx context.Context, chatID, userID int64) error {
	summary, err := b.lessons.StartLesson(ctx, userID)
	switch {
	case errors.Is(err, lesson.ErrDuplicateSession):
		return b.showPrompt(chatID, userID)
	case errors.Is(err, lesson.ErrEmptyBatch):
		keyboard := b.mainMenu()
		return b.send(chatID, "🎉 На сегодня всё! Нечего повторять и новых слов нет.", &keyboard)
	case err != nil:
		return err
	}

	if err := b.send(chatID, fmt.Sprintf(
		"📚 Урок начат: %d слов(а) — %d на повторение, %d новых.",
		summary.Total, summary.Due, summary.New), nil); err != nil {
		return err
	}
	return b.showPrompt(chatID, userID)
}

// showPrompt renders the current quiz.
func (b *Bot) showPrompt(chatID, userID int64) error {
	view, err := b.lessons.CurrentPrompt(userID)
	if errors.Is(err, lesson.ErrNoActiveSession) {
		keyboard := b.mainMenu()
		return b.send(chatID, "Нет активного урока. Начни новый!", &keyboard)
	}
	if err != nil {
		b.lessons.DiscardSession(userID)
		return err
	}

	text := fmt.Sprintf("❓ *Вопрос %d из %d*\n\n%s", view.Position, view.Total, view.Prompt)

	var rows [][]MenuButton
	if view.Kind == quiz.FillInBlank {
		text += fmt.Sprintf("\n\n_Подсказка: %s_\n\nНапиши ответ сообщением.", view.Hint)
	} else {
		for i, option := range view.Options {
			rows = append(rows, []MenuButton{{Text: option, CallbackData: answerCallback(view.Position, i)}})
		}
	}
	rows = append(rows, []MenuButton{
		{Text: "⏭ Пропустить", CallbackData: "skip"},
		{Text: "🚪 Завершить", CallbackData: "quit"},
	})

	keyboard := createKeyboard(rows)
	return b.send(chatID, text, &keyboard)
}

// answerOption resolves an option index against the pending quiz and submits
// it. The callback carries the step position the button was rendered for, so a
// double-tapped button cannot answer the question that replaced it.
func (b *Bot) answerOption(ctx context.Context, chatID, userID int64, answerData string) error {
	position, idx, err := parseAnswerData(answerData)
	if err != nil {
		return err
	}

	view, err := b.lessons.CurrentPrompt(userID)
	if errors.Is(err, lesson.ErrNoActiveSession) {
		return b.send(chatID, "Сессия истекла. Начни заново.", nil)
	}
	if err != nil {
		return err
	}
	if position != view.Position {
		return b.send(chatID, "Этот вопрос уже засчитан.", nil)
	}
	if idx < 0 || idx >= len(view.Options) {
		return fmt.Errorf("option index %d out of range", idx)
	}

	result, err := b.lessons.SubmitAnswer(ctx, userID, view.Options[idx])
	if err != nil {
		return b.reportStepError(chatID, err)
	}
	return b.showStepResult(chatID, userID, result)
}

// answerCallback encodes an option press as "answer_<position>_<index>".
func answerCallback(position, idx int) string {
	return fmt.Sprintf("answer_%d_%d", position, idx)
}

// parseAnswerData decodes the "<position>_<index>" payload of an option press.
func parseAnswerData(data string) (position, idx int, err error) {
	posData, idxData, ok := strings.Cut(data, "_")
	if !ok {
		return 0, 0, fmt.Errorf("bad answer callback %q", data)
	}
	position, err = strconv.Atoi(posData)
	if err != nil {
		return 0, 0, fmt.Errorf("bad answer position %q: %v", posData, err)
	}
	idx, err = strconv.Atoi(idxData)
	if err != nil {
		return 0, 0, fmt.Errorf("bad option index %q: %v", idxData, err)
	}
	return position, idx, nil
}

// handleTextAnswer treats plain text as the answer to a fill-in-blank quiz.
func (b *Bot) handleTextAnswer(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	view, err := b.lessons.CurrentPrompt(userID)
	if errors.Is(err, lesson.ErrNoActiveSession) {
		return nil // stray text, nothing to do
	}
	if err != nil {
		return err
	}
	if view.Kind != quiz.FillInBlank {
		return b.send(message.Chat.ID, "Выбери вариант кнопкой под вопросом.", nil)
	}

	result, err := b.lessons.SubmitAnswer(ctx, userID, message.Text)
	if err != nil {
		return b.reportStepError(message.Chat.ID, err)
	}
	return b.showStepResult(message.Chat.ID, userID, result)
}

func (b *Bot) skipCurrent(ctx context.Context, chatID, userID int64) error {
	result, err := b.lessons.SkipCurrent(ctx, userID)
	if err != nil {
		return b.reportStepError(chatID, err)
	}
	return b.showStepResult(chatID, userID, result)
}

// showStepResult sends the feedback line and either the next prompt or the
// final summary.
func (b *Bot) showStepResult(chatID, userID int64, result *lesson.StepResult) error {
	var feedback string
	if result.Correct {
		feedback = "✅ Правильно!"
	} else {
		feedback = fmt.Sprintf("❌ Неправильно. Правильный ответ: *%s*", result.CorrectAnswer)
	}

	if !result.Completed {
		if err := b.send(chatID, feedback, nil); err != nil {
			return err
		}
		return b.showPrompt(chatID, userID)
	}

	s := result.Summary
	text := fmt.Sprintf(
		"%s\n\n🎉 *Урок завершён!*\n\n• Правильно: %d из %d\n• Точность: %.1f%%\n• Время: %d мин",
		feedback, s.Correct, s.Total, s.Accuracy, int(s.Elapsed.Minutes()))
	switch {
	case s.Accuracy >= 90:
		text += "\n\n🌟 Отличный результат!"
	case s.Accuracy >= 70:
		text += "\n\n👍 Хорошая работа!"
	default:
		text += "\n\n💪 Тренируйся ещё, и результат улучшится!"
	}

	keyboard := b.mainMenu()
	return b.send(chatID, text, &keyboard)
}

func (b *Bot) reportStepError(chatID int64, err error) error {
	switch {
	case errors.Is(err, lesson.ErrNoActiveSession):
		return b.send(chatID, "Сессия истекла. Начни заново.", nil)
	case errors.Is(err, lesson.ErrStaleAnswer):
		return b.send(chatID, "Этот вопрос уже засчитан.", nil)
	default:
		return err
	}
}

// showStats renders the progress snapshot with per-level bars.
func (b *Bot) showStats(ctx context.Context, chatID, userID int64) error {
	snap, err := b.lessons.ProgressSnapshot(ctx, userID)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(
		"📊 *Твоя статистика*\n\n"+
			"🔥 Серия: %d дней\n🎯 Точность: %.1f%%\n📚 Всего повторений: %d\n"+
			"⭐️ Выучено слов: %d\n📅 Сегодня к повторению: %d\n\n*Прогресс по уровням:*\n",
		snap.Streak, snap.Accuracy, snap.TotalReviews, snap.WordsMastered, snap.DueToday)

	for _, level := range models.Levels {
		lc, ok := snap.Levels[level]
		if !ok || lc.Total == 0 {
			continue
		}
		percent := lc.Learned * 100 / lc.Total
		bar := strings.Repeat("█", percent/10) + strings.Repeat("░", 10-percent/10)
		text += fmt.Sprintf("%s: %s %d/%d (%d%%)\n", level, bar, lc.Learned, lc.Total, percent)
	}

	keyboard := b.mainMenu()
	return b.send(chatID, text, &keyboard)
}

// achievement is a badge the learner can unlock.
type achievement struct {
	Name     string
	Desc     string
	Emoji    string
	Unlocked bool
}

// achievementList evaluates every badge against the progress snapshot.
func achievementList(snap *lesson.ProgressSnapshot) []achievement {
	return []achievement{
		{"🔥 Новичок", "Выучить 10 слов", "⭐️", snap.WordsMastered >= 10},
		{"🔥 Ученик", "Выучить 100 слов", "🌟", snap.WordsMastered >= 100},
		{"🔥 Мастер", "Выучить 500 слов", "💫", snap.WordsMastered >= 500},
		{"📅 Трудоголик", "Заниматься 7 дней подряд", "📆", snap.Streak >= 7},
		{"📅 Легенда", "Заниматься 30 дней подряд", "🏆", snap.Streak >= 30},
		{"🎯 Снайпер", "Точность 90%", "🎯", snap.Accuracy >= 90},
	}
}

// showAchievements renders the badge list with lock markers.
func (b *Bot) showAchievements(ctx context.Context, chatID, userID int64) error {
	snap, err := b.lessons.ProgressSnapshot(ctx, userID)
	if err != nil {
		return err
	}

	text := "🏆 *Твои достижения*\n\n"
	for _, a := range achievementList(snap) {
		if a.Unlocked {
			text += fmt.Sprintf("%s *%s* - %s ✅\n", a.Emoji, a.Name, a.Desc)
		} else {
			text += fmt.Sprintf("🔒 %s - %s\n", a.Name, a.Desc)
		}
	}

	keyboard := b.mainMenu()
	return b.send(chatID, text, &keyboard)
}

func (b *Bot) showSettings(chatID int64) error {
	var rows [][]MenuButton
	for _, count := range b.config.DailyWordChoices {
		rows = append(rows, []MenuButton{{
			Text:         fmt.Sprintf("%d слов в день", count),
			CallbackData: "daily_" + strconv.Itoa(count),
		}})
	}
	rows = append(rows, []MenuButton{{Text: "◀️ Назад", CallbackData: "menu"}})
	keyboard := createKeyboard(rows)
	return b.send(chatID, "⚙️ *Настройки*\n\nСколько слов учить в день?", &keyboard)
}

func (b *Bot) setLevel(ctx context.Context, chatID, userID int64, level string) error {
	if err := b.users.SetLevel(ctx, userID, level); err != nil {
		return err
	}
	keyboard := b.mainMenu()
	return b.send(chatID, fmt.Sprintf("✅ Уровень %s выбран! Готов начать обучение.", level), &keyboard)
}

func (b *Bot) setDailyWords(ctx context.Context, chatID, userID int64, countData string) error {
	count, err := strconv.Atoi(countData)
	if err != nil {
		return fmt.Errorf("bad daily count %q: %v", countData, err)
	}
	if err := b.users.SetDailyWords(ctx, userID, count); err != nil {
		return err
	}
	keyboard := b.mainMenu()
	return b.send(chatID, fmt.Sprintf("✅ Установлено %d слов в день", count), &keyboard)
}
