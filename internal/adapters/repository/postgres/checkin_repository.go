package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/shift-checkin-bot/internal/core/checkin"
	pgdb "github.com/ogurasousui/shift-checkin-bot/internal/platform/db/postgres"
)

const (
	checkinForeignKeyViolationCode = "23503"
	checkinCheckViolationCode      = "23514"
)

// CheckinRepository は PostgreSQL を利用したチェックイン永続化の実装です。
type CheckinRepository struct {
	pool pgdb.Queryer
}

// NewCheckinRepository は CheckinRepository を生成します。
func NewCheckinRepository(pool pgdb.Queryer) *CheckinRepository {
	return &CheckinRepository{pool: pool}
}

// Insert はチェックインを一件追加します。
func (r *CheckinRepository) Insert(ctx context.Context, c *checkin.Checkin) (*checkin.Checkin, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO checkins (id, employee_id, checkin_type, mood, shift_score, main_difficulty, gratitude_text, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, employee_id, checkin_type, mood, shift_score, main_difficulty, gratitude_text, created_at
    `,
		uuid.NewString(),
		c.EmployeeID,
		string(c.Type),
		string(c.Mood),
		nullableInt(c.ShiftScore),
		nullableDifficulty(c.MainDifficulty),
		nullableString(c.GratitudeText),
		c.CreatedAt,
	)

	inserted, err := scanCheckin(row)
	if err != nil {
		return nil, translateCheckinPgError(err)
	}
	return inserted, nil
}

func scanCheckin(row pgx.Row) (*checkin.Checkin, error) {
	var (
		id          string
		employeeID  string
		checkinType string
		mood        string
		score       sql.NullInt32
		difficulty  sql.NullString
		gratitude   sql.NullString
		createdAt   time.Time
	)

	if err := row.Scan(&id, &employeeID, &checkinType, &mood, &score, &difficulty, &gratitude, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, checkin.ErrEmployeeNotFound
		}
		return nil, err
	}

	result := &checkin.Checkin{
		ID:         id,
		EmployeeID: employeeID,
		Type:       checkin.Type(checkinType),
		Mood:       checkin.Mood(mood),
		CreatedAt:  createdAt,
	}

	if score.Valid {
		value := int(score.Int32)
		result.ShiftScore = &value
	}
	if difficulty.Valid {
		value := checkin.Difficulty(difficulty.String)
		result.MainDifficulty = &value
	}
	if gratitude.Valid {
		value := gratitude.String
		result.GratitudeText = &value
	}

	return result, nil
}

func translateCheckinPgError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkinForeignKeyViolationCode:
			return checkin.ErrEmployeeNotFound
		case checkinCheckViolationCode:
			return checkin.ErrInvalidScore
		}
	}

	return err
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableDifficulty(value *checkin.Difficulty) any {
	if value == nil {
		return nil
	}
	return string(*value)
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
