package conversation

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/shift-checkin-bot/internal/core/checkin"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/employee"
)

// Rand は固定コンテンツからの選択に使う乱数源です。
type Rand interface {
	Intn(n int) int
}

// Engine は会話の状態機械です。現在のセッションと入力イベントから
// 次の状態・永続化の副作用・描画指示一つを決めます。
// トランスポート固有の型には一切依存しません。
type Engine struct {
	sessions  SessionStore
	employees employee.Directory
	checkins  checkin.Recorder
	rand      Rand
}

// NewEngine は Engine を生成します。rnd が nil の場合は時刻シードの乱数源を使います。
func NewEngine(sessions SessionStore, employees employee.Directory, checkins checkin.Recorder, rnd Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		sessions:  sessions,
		employees: employees,
		checkins:  checkins,
		rand:      rnd,
	}
}

// Handle は一つの入力イベントを処理し、描画指示をちょうど一つ返します。
// ストア呼び出しの失敗は利用者向けの再試行描画に変換した上で error としても
// 返すため、呼び出し側はログに残すだけで構いません。
func (e *Engine) Handle(ctx context.Context, sender Sender, event Event) (Render, error) {
	session, _ := e.sessions.Get(sender.ChannelUserID)

	switch ev := event.(type) {
	case Command:
		return e.handleCommand(ctx, sender, ev)
	case ButtonPress:
		return e.handleButton(ctx, sender, session, ev)
	case TextMessage:
		return e.handleText(ctx, sender, session, ev)
	default:
		return e.renderExpected(session), nil
	}
}

// handleCommand はトップレベルコマンドを処理します。コマンドは進行中の
// 会話を強制的に作り直します。
func (e *Engine) handleCommand(ctx context.Context, sender Sender, cmd Command) (Render, error) {
	switch cmd.Name {
	case CommandStart:
		e.sessions.Put(sender.ChannelUserID, Session{Phase: PhaseAwaitingCode})
		return Render{Body: textGreeting(sender.DisplayName)}, nil

	case CommandFinish:
		emp, err := e.employees.FindByChannelUser(ctx, sender.ChannelUserID)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			e.sessions.Clear(sender.ChannelUserID)
			return Render{Body: textMustStartFirst()}, nil
		}
		if err != nil {
			e.sessions.Clear(sender.ChannelUserID)
			return Render{Body: textFinishStoreFailure()}, err
		}
		e.sessions.Put(sender.ChannelUserID, Session{Phase: PhaseAwaitingEveningScore, EmployeeID: emp.ID})
		return Render{Body: textFinishPrompt(), Choices: scoreKeyboard()}, nil

	case CommandHelp:
		tip := supportTips[e.rand.Intn(len(supportTips))]
		return Render{Body: tip}, nil

	default:
		session, _ := e.sessions.Get(sender.ChannelUserID)
		return e.renderExpected(session), nil
	}
}

func (e *Engine) handleButton(ctx context.Context, sender Sender, session Session, press ButtonPress) (Render, error) {
	switch session.Phase {
	case PhaseAwaitingMorningMood:
		if !isMoodToken(press.Token) {
			return e.renderExpected(session), nil
		}
		mood := lookupMood(press.Token)
		if _, err := e.checkins.RecordMorning(ctx, checkin.RecordMorningInput{
			EmployeeID: session.EmployeeID,
			Mood:       mood,
		}); err != nil {
			// 失敗時はセッションを保ち、同じ選択をやり直せるようにします。
			return Render{Body: textMorningSaveFailure(), Choices: moodKeyboard(), EditInPlace: true}, err
		}
		e.sessions.Clear(sender.ChannelUserID)
		return Render{Body: textMorningSaved(mood), EditInPlace: true}, nil

	case PhaseAwaitingEveningScore:
		score, ok := parseScoreToken(press.Token)
		if !ok {
			return e.renderExpected(session), nil
		}
		session.Phase = PhaseAwaitingEveningMood
		session.EveningScore = score
		e.sessions.Put(sender.ChannelUserID, session)
		return Render{Body: textScoreAccepted(score), Choices: moodKeyboard(), EditInPlace: true}, nil

	case PhaseAwaitingEveningMood:
		if !isMoodToken(press.Token) {
			return e.renderExpected(session), nil
		}
		session.Phase = PhaseAwaitingEveningDifficulty
		session.EveningMood = lookupMood(press.Token)
		e.sessions.Put(sender.ChannelUserID, session)
		return Render{Body: textDifficultyPrompt(), Choices: difficultyKeyboard(), EditInPlace: true}, nil

	case PhaseAwaitingEveningDifficulty:
		if !isDifficultyToken(press.Token) {
			return e.renderExpected(session), nil
		}
		session.Phase = PhaseAwaitingEveningGratitude
		session.EveningDifficulty = lookupDifficulty(press.Token)
		e.sessions.Put(sender.ChannelUserID, session)
		return Render{Body: textGratitudePrompt(), EditInPlace: true}, nil

	default:
		return e.renderExpected(session), nil
	}
}

func (e *Engine) handleText(ctx context.Context, sender Sender, session Session, msg TextMessage) (Render, error) {
	switch session.Phase {
	case PhaseAwaitingCode:
		code := strings.TrimSpace(msg.Body)
		if code == "" {
			return Render{Body: textCodePromptRetry()}, nil
		}
		emp, err := e.employees.RegisterByCode(ctx, employee.RegisterByCodeInput{
			EmployeeCode:  code,
			ChannelUserID: sender.ChannelUserID,
		})
		if err != nil {
			// 状態は AwaitingCode のまま。再入力でやり直せます。
			return Render{Body: textCodeStoreFailure()}, err
		}
		session = Session{Phase: PhaseAwaitingMorningMood, EmployeeID: emp.ID}
		e.sessions.Put(sender.ChannelUserID, session)
		return Render{Body: textCodeAccepted(emp.EmployeeCode), Choices: moodKeyboard()}, nil

	case PhaseAwaitingEveningGratitude:
		gratitude := strings.TrimSpace(msg.Body)
		if gratitude == "" {
			return Render{Body: textGratitudePromptRetry()}, nil
		}
		if _, err := e.checkins.RecordEvening(ctx, checkin.RecordEveningInput{
			EmployeeID:     session.EmployeeID,
			Mood:           session.EveningMood,
			ShiftScore:     session.EveningScore,
			MainDifficulty: session.EveningDifficulty,
			GratitudeText:  gratitude,
		}); err != nil {
			// 集めた回答を失わないため、失敗時はセッションを消しません。
			return Render{Body: textEveningSaveFailure()}, err
		}
		e.sessions.Clear(sender.ChannelUserID)
		return Render{Body: textEveningSaved()}, nil

	default:
		return e.renderExpected(session), nil
	}
}

// renderExpected は現在の位相が期待していない入力へのフォールバックです。
// 状態は変えず、期待している問いかけを描画し直します。
func (e *Engine) renderExpected(session Session) Render {
	switch session.Phase {
	case PhaseAwaitingCode:
		return Render{Body: textUnexpectedPrefix() + textCodePromptRetry()}
	case PhaseAwaitingMorningMood:
		return Render{Body: textUnexpectedPrefix() + textMorningMoodPrompt(), Choices: moodKeyboard()}
	case PhaseAwaitingEveningScore:
		return Render{Body: textUnexpectedPrefix() + textFinishPrompt(), Choices: scoreKeyboard()}
	case PhaseAwaitingEveningMood:
		return Render{Body: textUnexpectedPrefix() + textScoreAccepted(session.EveningScore), Choices: moodKeyboard()}
	case PhaseAwaitingEveningDifficulty:
		return Render{Body: textUnexpectedPrefix() + textDifficultyPrompt(), Choices: difficultyKeyboard()}
	case PhaseAwaitingEveningGratitude:
		return Render{Body: textUnexpectedPrefix() + textGratitudePrompt()}
	default:
		return Render{Body: textIdleHint()}
	}
}

func isMoodToken(token string) bool {
	_, ok := moodByToken[token]
	return ok
}

func isDifficultyToken(token string) bool {
	_, ok := difficultyByToken[token]
	return ok
}

// parseScoreToken は score_1 〜 score_10 のみを受理します。
// Atoi が許す score_07 や score_+5 のような非正規形は往復一致で弾きます。
func parseScoreToken(token string) (int, bool) {
	raw, ok := strings.CutPrefix(token, tokenScorePrefix)
	if !ok {
		return 0, false
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < 1 || score > 10 || strconv.Itoa(score) != raw {
		return 0, false
	}
	return score, true
}
