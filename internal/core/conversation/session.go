package conversation

import (
	"sync"
	"time"

	"github.com/ogurasousui/shift-checkin-bot/internal/core/checkin"
)

// Phase は一人のユーザーの会話が状態機械のどこにいるかを表します。
type Phase string

const (
	// PhaseIdle は入力待ちのない初期・終端状態です。メニュー相当の状態も兼ねます。
	PhaseIdle                      Phase = "idle"
	PhaseAwaitingCode              Phase = "awaiting_code"
	PhaseAwaitingMorningMood       Phase = "awaiting_morning_mood"
	PhaseAwaitingEveningScore      Phase = "awaiting_evening_score"
	PhaseAwaitingEveningMood       Phase = "awaiting_evening_mood"
	PhaseAwaitingEveningDifficulty Phase = "awaiting_evening_difficulty"
	PhaseAwaitingEveningGratitude  Phase = "awaiting_evening_gratitude"
)

// Session はチャネルユーザーごとの一時的な会話状態です。
// 終端到達か上位コマンドによる再開始で破棄され、プロセスを跨いで保持されません。
type Session struct {
	Phase             Phase
	EmployeeID        string
	EveningScore      int
	EveningMood       checkin.Mood
	EveningDifficulty checkin.Difficulty
	UpdatedAt         time.Time
}

// SessionStore は進行中の会話状態をチャネルユーザー識別子で引く抽象です。
type SessionStore interface {
	Get(channelUserID string) (Session, bool)
	Put(channelUserID string, session Session)
	Clear(channelUserID string)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// MemoryStore はプロセス内マップによる SessionStore の実装です。
// idleTimeout を超えて更新のないセッションは放棄されたものとして破棄します。
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]Session
	idleTimeout time.Duration
	clock       Clock
}

// NewMemoryStore は MemoryStore を生成します。idleTimeout が 0 以下の場合は期限切れしません。
func NewMemoryStore(idleTimeout time.Duration, clock Clock) *MemoryStore {
	if clock == nil {
		clock = realClock{}
	}
	return &MemoryStore{
		sessions:    make(map[string]Session),
		idleTimeout: idleTimeout,
		clock:       clock,
	}
}

// Get は進行中のセッションを返します。期限切れのものはこの時点で破棄されます。
func (s *MemoryStore) Get(channelUserID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[channelUserID]
	if !ok {
		return Session{}, false
	}
	if s.expired(sess, s.clock.Now()) {
		delete(s.sessions, channelUserID)
		return Session{}, false
	}
	return sess, true
}

// Put はセッションを保存し、最終更新時刻を刻みます。
func (s *MemoryStore) Put(channelUserID string, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = s.clock.Now()
	s.sessions[channelUserID] = session
}

// Clear はセッションを破棄します。
func (s *MemoryStore) Clear(channelUserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, channelUserID)
}

// Sweep は期限切れセッションをまとめて破棄し、破棄した件数を返します。
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) expired(sess Session, now time.Time) bool {
	if s.idleTimeout <= 0 {
		return false
	}
	return now.Sub(sess.UpdatedAt) > s.idleTimeout
}
