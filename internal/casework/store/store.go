// Package store persists casework cases with optimistic concurrency: every
// write carries the version the writer last read, and a mismatch is rejected
// with the current authoritative case so the caller can re-apply and retry.
package store

import (
	"context"

	"immigration-engine/internal/casework"
)

// CaseStore is the persistence boundary for cases.
//
// Update succeeds only when the stored version equals expectedVersion; on
// success the stored version is bumped by one. On a version conflict the
// returned case is the current stored record and the error carries
// CONCURRENT_MODIFICATION.
type CaseStore interface {
	Create(ctx context.Context, c *casework.Case) error
	Get(ctx context.Context, caseID string) (*casework.Case, error)
	Update(ctx context.Context, c *casework.Case, expectedVersion int64) (*casework.Case, error)
}
