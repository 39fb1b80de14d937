package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/employee"
	pgdb "github.com/ogurasousui/shift-checkin-bot/internal/platform/db/postgres"
)

const uniqueViolationCode = "23505"

// EmployeeRepository は PostgreSQL を利用した従業員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は従業員を新規作成します。ID はここで採番します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (id, employee_code, channel_user_id, workplace, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, employee_code, channel_user_id, workplace, created_at, updated_at
    `,
		uuid.NewString(),
		e.EmployeeCode,
		e.ChannelUserID,
		e.Workplace,
		e.CreatedAt,
		e.UpdatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// RebindChannelUser は既存従業員のチャネル識別子を付け替えます。
// updated_at はサービス層の Clock が刻んだ値をそのまま書きます。
func (r *EmployeeRepository) RebindChannelUser(ctx context.Context, id, channelUserID string, updatedAt time.Time) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET channel_user_id = $1,
               updated_at = $2
         WHERE id = $3
        RETURNING id, employee_code, channel_user_id, workplace, created_at, updated_at
    `, channelUserID, updatedAt, id)

	rebound, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return rebound, nil
}

// FindByCode は従業員コードで検索します。
func (r *EmployeeRepository) FindByCode(ctx context.Context, employeeCode string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_code, channel_user_id, workplace, created_at, updated_at
          FROM employees
         WHERE employee_code = $1
         LIMIT 1
    `, employeeCode)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindByChannelUser はチャネル識別子で検索します。複数いる場合は最後に
// 付け替えられたものを返します。
func (r *EmployeeRepository) FindByChannelUser(ctx context.Context, channelUserID string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, employee_code, channel_user_id, workplace, created_at, updated_at
          FROM employees
         WHERE channel_user_id = $1
         ORDER BY updated_at DESC
         LIMIT 1
    `, channelUserID)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id            string
		code          string
		channelUserID string
		workplace     string
		createdAt     time.Time
		updatedAt     time.Time
	)

	if err := row.Scan(&id, &code, &channelUserID, &workplace, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:            id,
		EmployeeCode:  code,
		ChannelUserID: channelUserID,
		Workplace:     workplace,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return employee.ErrCodeAlreadyExists
	}

	return err
}
