package conversation

import (
	"fmt"
	"strconv"

	"github.com/ogurasousui/shift-checkin-bot/internal/core/checkin"
)

// コマンド名。チャネル側の "/start" 等から先頭のスラッシュを除いたものです。
const (
	CommandStart  = "start"
	CommandFinish = "finish"
	CommandHelp   = "help"
)

// 選択トークン。描画する選択肢と語彙が一対一で対応します。
const (
	tokenMoodBad       = "mood_bad"
	tokenMoodNeutral   = "mood_neutral"
	tokenMoodGood      = "mood_good"
	tokenMoodExcellent = "mood_excellent"

	tokenDiffGuests  = "diff_guests"
	tokenDiffKitchen = "diff_kitchen"
	tokenDiffQueue   = "diff_queue"
	tokenDiffTeam    = "diff_team"
	tokenDiffSelf    = "diff_self"
	tokenDiffOK      = "diff_ok"

	tokenScorePrefix = "score_"
)

var moodByToken = map[string]checkin.Mood{
	tokenMoodBad:       checkin.MoodBad,
	tokenMoodNeutral:   checkin.MoodNeutral,
	tokenMoodGood:      checkin.MoodGood,
	tokenMoodExcellent: checkin.MoodExcellent,
}

var difficultyByToken = map[string]checkin.Difficulty{
	tokenDiffGuests:  checkin.DifficultyGuests,
	tokenDiffKitchen: checkin.DifficultyKitchen,
	tokenDiffQueue:   checkin.DifficultyQueue,
	tokenDiffTeam:    checkin.DifficultyTeam,
	tokenDiffSelf:    checkin.DifficultySelf,
	tokenDiffOK:      checkin.DifficultyNone,
}

// lookupMood はトークンから気分を引きます。語彙と描画が揃っている限り
// 既定値には到達しません。
func lookupMood(token string) checkin.Mood {
	if mood, ok := moodByToken[token]; ok {
		return mood
	}
	return checkin.MoodNeutral
}

func lookupDifficulty(token string) checkin.Difficulty {
	if difficulty, ok := difficultyByToken[token]; ok {
		return difficulty
	}
	return checkin.DifficultyNone
}

func moodKeyboard() [][]Choice {
	return [][]Choice{
		{
			{Label: "😫 Тяжело", Token: tokenMoodBad},
			{Label: "😐 Нейтрально", Token: tokenMoodNeutral},
		},
		{
			{Label: "🙂 Хорошо", Token: tokenMoodGood},
			{Label: "🤩 Отлично", Token: tokenMoodExcellent},
		},
	}
}

func scoreKeyboard() [][]Choice {
	rows := make([][]Choice, 2)
	for i := 0; i < 10; i++ {
		label := strconv.Itoa(i + 1)
		rows[i/5] = append(rows[i/5], Choice{Label: label, Token: tokenScorePrefix + label})
	}
	return rows
}

func difficultyKeyboard() [][]Choice {
	return [][]Choice{
		{{Label: "Гости", Token: tokenDiffGuests}},
		{{Label: "Кухня", Token: tokenDiffKitchen}},
		{{Label: "Очередь", Token: tokenDiffQueue}},
		{{Label: "Команда", Token: tokenDiffTeam}},
		{{Label: "Моё состояние", Token: tokenDiffSelf}},
		{{Label: "Всё нормально", Token: tokenDiffOK}},
	}
}

// 支えになる一言。/help で乱数源から一つ選ばれます。
var supportTips = []string{
	"Сделай три медленных вдоха и выдоха. Минута тишины тоже считается отдыхом.",
	"Выпей стакан воды и разомни плечи. Телу легче — голове легче.",
	"Тяжёлая смена не делает тебя плохим работником. Это просто тяжёлая смена.",
	"Если успеваешь, выйди на 2 минуты на свежий воздух. Это честная пауза.",
	"Попробуй назвать про себя три вещи, которые сегодня уже получились.",
}

func textGreeting(displayName string) string {
	return fmt.Sprintf("Привет, %s! Я твой тихий помощник на смене.\nДля начала введи свой персональный код сотрудника:", displayName)
}

func textCodePromptRetry() string {
	return "Код не может быть пустым. Введи свой персональный код сотрудника:"
}

func textCodeStoreFailure() string {
	return "Не удалось обработать код. Попробуй ещё раз или обратись к управляющему."
}

func textCodeAccepted(code string) string {
	return fmt.Sprintf("Код '%s' принят! Какое у тебя настроение перед сменой?", code)
}

func textMorningMoodPrompt() string {
	return "Какое у тебя настроение перед сменой?"
}

func textMorningSaved(mood checkin.Mood) string {
	return fmt.Sprintf("Настроение '%s' сохранено. Хорошей смены! 🍰\nВ конце смены напиши /finish", mood)
}

func textMorningSaveFailure() string {
	return "Произошла ошибка при сохранении. Выбери настроение ещё раз:"
}

func textFinishPrompt() string {
	return "Смена подошла к концу! Оцени её по шкале от 1 до 10:"
}

func textMustStartFirst() string {
	return "Сначала нужно зарегистрироваться через команду /start"
}

func textFinishStoreFailure() string {
	return "Произошла ошибка. Попробуй ещё раз /finish"
}

func textScoreAccepted(score int) string {
	return fmt.Sprintf("Оценка %d/10 принята. Какое настроение после смены?", score)
}

func textDifficultyPrompt() string {
	return "Выбери главную сложность сегодня:"
}

func textGratitudePrompt() string {
	return "За что ты можешь себя поблагодарить сегодня? Напиши пару слов:"
}

func textGratitudePromptRetry() string {
	return "Напиши хотя бы пару слов — за что ты можешь себя поблагодарить сегодня?"
}

func textEveningSaved() string {
	return "Спасибо за честные ответы! Отдыхай и восстанавливай силы. 🍰\nЗавтра жду снова на /start"
}

func textEveningSaveFailure() string {
	return "Произошла ошибка при сохранении. Твои ответы не потерялись — отправь благодарность ещё раз:"
}

func textIdleHint() string {
	return "Я не понял это сообщение. Начни утро с /start, закончи смену через /finish, а если тяжело — напиши /help."
}

func textUnexpectedPrefix() string {
	return "Неожиданный ввод, воспользуйся меню.\n"
}
