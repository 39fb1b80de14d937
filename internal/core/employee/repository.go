package employee

import (
	"context"
	"time"
)

// Repository は従業員永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	RebindChannelUser(ctx context.Context, id, channelUserID string, updatedAt time.Time) (*Employee, error)
	FindByCode(ctx context.Context, employeeCode string) (*Employee, error)
	FindByChannelUser(ctx context.Context, channelUserID string) (*Employee, error)
}
