package lead

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jamshidbekman/rivojbot/core/logger"
)

// PGStore keeps leads in the Postgres "leads" table. Ids come from a
// sequence and may have gaps after rolled back inserts.
type PGStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPGStore wraps an open connection pool.
func NewPGStore(db *sqlx.DB) *PGStore {
	return &PGStore{db: db, now: time.Now}
}

const insertLead = `
INSERT INTO leads (user_id, username, first_name, phone, role, problem, captured_at)
VALUES (:user_id, :username, :first_name, :phone, :role, :problem, :captured_at)
RETURNING id`

const selectLeads = `
SELECT id, user_id, username, first_name, phone, role, problem, captured_at
FROM leads
ORDER BY id`

func (s *PGStore) Append(ctx context.Context, l Lead) (Lead, error) {
	if err := l.Validate(); err != nil {
		return Lead{}, err
	}
	l = l.normalized()
	l.CapturedAt = s.now().UTC()

	rows, err := sqlx.NamedQueryContext(ctx, s.db, insertLead, l)
	if err != nil {
		s.logFailure(ctx, "append", err)
		return Lead{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	defer rows.Close()
	if !rows.Next() {
		err := rows.Err()
		if err == nil {
			err = fmt.Errorf("insert returned no id")
		}
		s.logFailure(ctx, "append", err)
		return Lead{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if err := rows.Scan(&l.ID); err != nil {
		s.logFailure(ctx, "append", err)
		return Lead{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return l, nil
}

func (s *PGStore) LoadAll(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := s.db.SelectContext(ctx, &leads, selectLeads); err != nil {
		s.logFailure(ctx, "load", err)
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	for i := range leads {
		leads[i].CapturedAt = leads[i].CapturedAt.UTC()
	}
	return leads, nil
}

func (s *PGStore) logFailure(ctx context.Context, op string, err error) {
	logger.Error(ctx, logger.CompLeads, "lead.store.fail",
		slog.String("status", "fail"),
		slog.String("driver", "postgres"),
		slog.String("op", op),
		logger.Err(err),
	)
}
