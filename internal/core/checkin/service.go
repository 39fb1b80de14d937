package checkin

import (
	"context"
	"strings"
	"time"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

const (
	minShiftScore = 1
	maxShiftScore = 10
)

// Service はチェックインに関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
}

// Recorder は会話エンジンから見たチェックイン操作の公開インターフェースです。
type Recorder interface {
	RecordMorning(ctx context.Context, in RecordMorningInput) (*Checkin, error)
	RecordEvening(ctx context.Context, in RecordEveningInput) (*Checkin, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// RecordMorningInput は朝のチェックイン登録の入力です。
type RecordMorningInput struct {
	EmployeeID string
	Mood       Mood
}

// RecordEveningInput は夕方のチェックイン登録の入力です。
type RecordEveningInput struct {
	EmployeeID     string
	Mood           Mood
	ShiftScore     int
	MainDifficulty Difficulty
	GratitudeText  string
}

// RecordMorning は気分のみを持つ朝のチェックインを記録します。
func (s *Service) RecordMorning(ctx context.Context, in RecordMorningInput) (*Checkin, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, ErrInvalidEmployeeID
	}
	if !ValidMood(in.Mood) {
		return nil, ErrInvalidMood
	}

	return s.repo.Insert(ctx, &Checkin{
		EmployeeID: in.EmployeeID,
		Type:       TypeMorning,
		Mood:       in.Mood,
		CreatedAt:  s.clock.Now(),
	})
}

// RecordEvening は評価・気分・困りごと・感謝の四項目が揃った夕方のチェックインを記録します。
func (s *Service) RecordEvening(ctx context.Context, in RecordEveningInput) (*Checkin, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, ErrInvalidEmployeeID
	}
	if !ValidMood(in.Mood) {
		return nil, ErrInvalidMood
	}
	if in.ShiftScore < minShiftScore || in.ShiftScore > maxShiftScore {
		return nil, ErrInvalidScore
	}
	if !ValidDifficulty(in.MainDifficulty) {
		return nil, ErrInvalidDifficulty
	}

	gratitude := strings.TrimSpace(in.GratitudeText)
	if gratitude == "" {
		return nil, ErrEmptyGratitude
	}

	score := in.ShiftScore
	difficulty := in.MainDifficulty

	return s.repo.Insert(ctx, &Checkin{
		EmployeeID:     in.EmployeeID,
		Type:           TypeEvening,
		Mood:           in.Mood,
		ShiftScore:     &score,
		MainDifficulty: &difficulty,
		GratitudeText:  &gratitude,
		CreatedAt:      s.clock.Now(),
	})
}
