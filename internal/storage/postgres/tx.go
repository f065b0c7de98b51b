package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type txKey struct{}

func withTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// Constraint names from migrations mapped to the request field they guard.
var foreignKeyFields = map[string]string{
	"event_facilitators_facilitator_fkey":      "facilitators",
	"participants_age_group_fkey":              "age_group",
	"materials_target_group_fkey":              "target_group",
	"material_events_material_fkey":            "material",
	"material_events_event_fkey":               "event",
	"participant_attendances_participant_fkey": "participant",
	"participant_attendances_event_fkey":       "event",
}

var checkFields = map[string][2]string{
	"materials_stock_check":                 {"stock", "must be greater than or equal to 0"},
	"material_events_quantity_check":        {"quantity", "must be greater than 0"},
	"participant_attendances_lessons_check": {"lessons_attended", "must be greater than or equal to 0"},
	"events_dates_check":                    {"end_date", "must not be before start_date"},
}

// mapWriteError converts constraint violations into domain errors and
// wraps everything else with op.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			if field, ok := foreignKeyFields[pgErr.ConstraintName]; ok {
				return domain.NewValidationError(field, "object does not exist")
			}
			if pgErr.ConstraintName == "auth_tokens_user_fkey" {
				return domain.ErrUserNotFound
			}
		case "23514":
			if f, ok := checkFields[pgErr.ConstraintName]; ok {
				return domain.NewValidationError(f[0], f[1])
			}
		case "23505":
			if pgErr.ConstraintName == "users_username_key" {
				return domain.ErrUsernameTaken
			}
		case "22P02":
			return domain.ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// validID reports whether id can name a row. Malformed ids are answered
// without a round trip.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func validIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			out = append(out, id)
		}
	}
	return out
}

func missingRef(field, id string) error {
	return domain.NewValidationError(field, `invalid pk "`+id+`" - object does not exist`)
}
