package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"immigration-engine/internal/casework"
	apperrors "immigration-engine/internal/common/errors"
	"immigration-engine/internal/common/logger"
	"immigration-engine/internal/common/metrics"
)

// PostgresStore persists cases in a single table with JSONB columns for the
// nested collections and a version column enforcing optimistic concurrency.
//
// Schema:
//
//	CREATE TABLE cases (
//	    id            UUID PRIMARY KEY,
//	    client_id     TEXT NOT NULL,
//	    consultant_id TEXT NOT NULL,
//	    program       TEXT NOT NULL,
//	    current_stage TEXT NOT NULL,
//	    timeline      JSONB NOT NULL DEFAULT '[]',
//	    documents     JSONB NOT NULL DEFAULT '[]',
//	    notes         JSONB NOT NULL DEFAULT '[]',
//	    fees          JSONB NOT NULL DEFAULT '{}',
//	    next_steps    JSONB NOT NULL DEFAULT '[]',
//	    version       BIGINT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE case_audit_log (
//	    id         UUID PRIMARY KEY,
//	    case_id    UUID NOT NULL,
//	    event_type TEXT NOT NULL,
//	    stage      TEXT NOT NULL,
//	    version    BIGINT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewPostgresStore creates a case store backed by the given connection.
func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: log}
}

// Create inserts a new case row and its creation audit entry.
func (s *PostgresStore) Create(ctx context.Context, c *casework.Case) error {
	timeline, documents, notes, fees, nextSteps, err := marshalCollections(c)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cases (
			id, client_id, consultant_id, program, current_stage,
			timeline, documents, notes, fees, next_steps,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.ClientID, c.ConsultantID, c.Program, string(c.CurrentStage),
		timeline, documents, notes, fees, nextSteps,
		c.Version, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewDatabaseWriteFailedError(err)
	}

	s.writeAudit(ctx, c, "case_created")
	return nil
}

// Get loads a case by ID.
func (s *PostgresStore) Get(ctx context.Context, caseID string) (*casework.Case, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, consultant_id, program, current_stage,
		       timeline, documents, notes, fees, next_steps,
		       version, created_at, updated_at
		FROM cases WHERE id = $1`, caseID)

	c, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewCaseNotFoundError(caseID)
	}
	if err != nil {
		return nil, apperrors.NewDatabaseReadFailedError(err)
	}
	return c, nil
}

// Update writes the mutated case guarded by the expected version. When the
// guarded UPDATE touches no row the case is re-read to distinguish a missing
// case from a version conflict, and on a conflict the current stored record
// is returned with the error.
func (s *PostgresStore) Update(ctx context.Context, c *casework.Case, expectedVersion int64) (*casework.Case, error) {
	timeline, documents, notes, fees, nextSteps, err := marshalCollections(c)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE cases SET
			current_stage = $1, timeline = $2, documents = $3, notes = $4,
			fees = $5, next_steps = $6, version = version + 1, updated_at = $7
		WHERE id = $8 AND version = $9`,
		string(c.CurrentStage), timeline, documents, notes,
		fees, nextSteps, now,
		c.ID, expectedVersion,
	)
	if err != nil {
		return nil, apperrors.NewDatabaseWriteFailedError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperrors.NewDatabaseWriteFailedError(err)
	}
	if affected == 0 {
		current, getErr := s.Get(ctx, c.ID)
		if getErr != nil {
			return nil, getErr
		}
		metrics.CaseStoreConflicts.Inc()
		return current, apperrors.NewConcurrentModificationError(c.ID, expectedVersion, current.Version)
	}

	updated := c.Clone()
	updated.Version = expectedVersion + 1
	updated.UpdatedAt = now

	s.writeAudit(ctx, updated, "case_updated")
	return updated, nil
}

// writeAudit records the mutation in the append-only audit table. Audit
// failures are logged but never fail the primary write.
func (s *PostgresStore) writeAudit(ctx context.Context, c *casework.Case, eventType string) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO case_audit_log (id, case_id, event_type, stage, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), c.ID, eventType, string(c.CurrentStage), c.Version, time.Now().UTC(),
	)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to write case audit entry", map[string]interface{}{
			"case_id":    c.ID,
			"event_type": eventType,
		})
	}
}

func marshalCollections(c *casework.Case) (timeline, documents, notes, fees, nextSteps []byte, err error) {
	if timeline, err = json.Marshal(c.Timeline); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal timeline: %w", err)
	}
	if documents, err = json.Marshal(c.Documents); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal documents: %w", err)
	}
	if notes, err = json.Marshal(c.Notes); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal notes: %w", err)
	}
	if fees, err = json.Marshal(c.Fees); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal fees: %w", err)
	}
	if nextSteps, err = json.Marshal(c.NextSteps); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal next steps: %w", err)
	}
	return timeline, documents, notes, fees, nextSteps, nil
}

func scanCase(row *sql.Row) (*casework.Case, error) {
	var (
		c         casework.Case
		stage     string
		timeline  []byte
		documents []byte
		notes     []byte
		fees      []byte
		nextSteps []byte
	)
	err := row.Scan(
		&c.ID, &c.ClientID, &c.ConsultantID, &c.Program, &stage,
		&timeline, &documents, &notes, &fees, &nextSteps,
		&c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CurrentStage = casework.Stage(stage)
	if err := json.Unmarshal(timeline, &c.Timeline); err != nil {
		return nil, fmt.Errorf("unmarshal timeline: %w", err)
	}
	if err := json.Unmarshal(documents, &c.Documents); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}
	if err := json.Unmarshal(notes, &c.Notes); err != nil {
		return nil, fmt.Errorf("unmarshal notes: %w", err)
	}
	if err := json.Unmarshal(fees, &c.Fees); err != nil {
		return nil, fmt.Errorf("unmarshal fees: %w", err)
	}
	if err := json.Unmarshal(nextSteps, &c.NextSteps); err != nil {
		return nil, fmt.Errorf("unmarshal next steps: %w", err)
	}
	return &c, nil
}
