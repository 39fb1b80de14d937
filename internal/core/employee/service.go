package employee

import (
	"context"
	"errors"
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

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は従業員に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// Directory は会話エンジンから見た従業員操作の公開インターフェースです。
type Directory interface {
	RegisterByCode(ctx context.Context, in RegisterByCodeInput) (*Employee, error)
	FindByChannelUser(ctx context.Context, channelUserID string) (*Employee, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// RegisterByCodeInput はコード入力による登録・付け替えの入力です。
type RegisterByCodeInput struct {
	EmployeeCode  string
	ChannelUserID string
}

// RegisterByCode は従業員コードをキーとした upsert を行います。
// 既存コードなら ChannelUserID を付け替え、未知のコードなら既定の勤務先で
// 新規作成します。挿入時の一意制約違反は並行登録とみなし、再読込して
// 付け替えに切り替えます。
func (s *Service) RegisterByCode(ctx context.Context, in RegisterByCodeInput) (*Employee, error) {
	code := strings.TrimSpace(in.EmployeeCode)
	if code == "" {
		return nil, ErrInvalidEmployeeCode
	}

	channelUserID := strings.TrimSpace(in.ChannelUserID)
	if channelUserID == "" {
		return nil, ErrInvalidChannelUserID
	}

	var registered *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByCode(txCtx, code)
		switch {
		case err == nil:
			rebound, err := s.repo.RebindChannelUser(txCtx, existing.ID, channelUserID, s.clock.Now())
			if err != nil {
				return err
			}
			registered = rebound
			return nil
		case errors.Is(err, ErrEmployeeNotFound):
			now := s.clock.Now()
			created, err := s.repo.Create(txCtx, &Employee{
				EmployeeCode:  code,
				ChannelUserID: channelUserID,
				Workplace:     DefaultWorkplace,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
			if errors.Is(err, ErrCodeAlreadyExists) {
				return s.recoverLostRace(txCtx, code, channelUserID, &registered)
			}
			if err != nil {
				return err
			}
			registered = created
			return nil
		default:
			return err
		}
	}); err != nil {
		return nil, err
	}

	return registered, nil
}

// recoverLostRace は挿入競合に敗れた側の経路です。勝者の行を読み直して付け替えます。
func (s *Service) recoverLostRace(ctx context.Context, code, channelUserID string, out **Employee) error {
	winner, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	rebound, err := s.repo.RebindChannelUser(ctx, winner.ID, channelUserID, s.clock.Now())
	if err != nil {
		return err
	}
	*out = rebound
	return nil
}

// FindByChannelUser はチャネル識別子で従業員を検索します。
func (s *Service) FindByChannelUser(ctx context.Context, channelUserID string) (*Employee, error) {
	if strings.TrimSpace(channelUserID) == "" {
		return nil, ErrInvalidChannelUserID
	}

	var found *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.repo.FindByChannelUser(txCtx, channelUserID)
		if err != nil {
			return err
		}
		found = emp
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}
