package checkin

import "context"

// Repository はチェックイン永続化の抽象です。レコードは挿入のみで更新されません。
type Repository interface {
	Insert(ctx context.Context, checkin *Checkin) (*Checkin, error)
}
