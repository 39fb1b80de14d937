package checkin

import "time"

// Type はチェックインの時間帯区分です。
type Type string

const (
	TypeMorning Type = "morning"
	TypeEvening Type = "evening"
)

// Mood は選択肢として提示する気分の記号です。
type Mood string

const (
	MoodBad       Mood = "😫"
	MoodNeutral   Mood = "😐"
	MoodGood      Mood = "🙂"
	MoodExcellent Mood = "🤩"
)

// Difficulty はその日一番の困りごとの分類です。
type Difficulty string

const (
	DifficultyGuests  Difficulty = "Гости"
	DifficultyKitchen Difficulty = "Кухня"
	DifficultyQueue   Difficulty = "Очередь"
	DifficultyTeam    Difficulty = "Команда"
	DifficultySelf    Difficulty = "Моё состояние"
	DifficultyNone    Difficulty = "Всё нормально"
)

// Checkin は一回のチェックインを表す不変のイベントレコードです。
// 夕方のチェックインのみ ShiftScore / MainDifficulty / GratitudeText を持ちます。
type Checkin struct {
	ID             string
	EmployeeID     string
	Type           Type
	Mood           Mood
	ShiftScore     *int
	MainDifficulty *Difficulty
	GratitudeText  *string
	CreatedAt      time.Time
}

// ValidMood は気分が定義済みの記号かどうかを返します。
func ValidMood(mood Mood) bool {
	switch mood {
	case MoodBad, MoodNeutral, MoodGood, MoodExcellent:
		return true
	default:
		return false
	}
}

// ValidDifficulty は困りごとが定義済みの分類かどうかを返します。
func ValidDifficulty(difficulty Difficulty) bool {
	switch difficulty {
	case DifficultyGuests, DifficultyKitchen, DifficultyQueue, DifficultyTeam, DifficultySelf, DifficultyNone:
		return true
	default:
		return false
	}
}
