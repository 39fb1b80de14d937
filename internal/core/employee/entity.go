package employee

import "time"

// DefaultWorkplace は現行スコープで固定されている勤務先です。
const DefaultWorkplace = "Cake&Breakfast"

// Employee は従業員エンティティです。
// EmployeeCode が自然キーで、ChannelUserID は端末の乗り換えや再ログインのたびに
// 同じコードへ付け替えられます。
type Employee struct {
	ID            string
	EmployeeCode  string
	ChannelUserID string
	Workplace     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
