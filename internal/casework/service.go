package casework

import (
	"context"
	"errors"
	"time"

	"immigration-engine/internal/common/config"
	apperrors "immigration-engine/internal/common/errors"
	"immigration-engine/internal/common/logger"
	"immigration-engine/internal/common/metrics"
)

// caseStore is the persistence dependency of the service; the concrete
// implementations live in the store subpackage.
type caseStore interface {
	Create(ctx context.Context, c *Case) error
	Get(ctx context.Context, caseID string) (*Case, error)
	Update(ctx context.Context, c *Case, expectedVersion int64) (*Case, error)
}

// Service coordinates case mutations: it loads the current record, applies
// the requested change through the stage machine, and writes it back under
// the caller's expected version. A mutation either fully applies or leaves
// the stored case untouched.
type Service struct {
	store  caseStore
	cfg    config.CaseworkConfig
	policy Policy
	logger logger.Logger
	now    func() time.Time
}

// NewService builds a case service around the given store.
func NewService(store caseStore, cfg config.CaseworkConfig, log logger.Logger) *Service {
	return &Service{
		store:  store,
		cfg:    cfg,
		policy: PolicyFromConfig(cfg),
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateCase opens a new draft case for a client.
func (s *Service) CreateCase(ctx context.Context, clientID, consultantID, program string) (*Case, error) {
	if clientID == "" {
		return nil, apperrors.NewInvalidMutationError("client ID is required")
	}
	if program == "" {
		return nil, apperrors.NewInvalidMutationError("immigration program is required")
	}

	c := NewCase(clientID, consultantID, program, s.now())
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Case created", map[string]interface{}{
		"case_id":   c.ID,
		"client_id": clientID,
		"program":   program,
	})
	return c, nil
}

// GetCase returns the current stored case.
func (s *Service) GetCase(ctx context.Context, caseID string) (*Case, error) {
	return s.store.Get(ctx, caseID)
}

// Transition advances the case to the target stage under the expected
// version. Rejected transitions and version conflicts leave the stored case
// unchanged; a conflict returns the current authoritative record so the
// caller can decide whether to retry.
func (s *Service) Transition(ctx context.Context, caseID string, target Stage, actor, description string, explicit []ActionItem, expectedVersion int64) (*Case, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var from Stage
	updated, err := s.mutate(ctx, caseID, expectedVersion, func(c *Case) error {
		from = c.CurrentStage
		return ApplyTransition(c, target, actor, description, explicit, s.policy, s.now())
	})
	if err != nil {
		s.observeTransitionFailure(caseID, target, err)
		return updated, err
	}

	metrics.CaseTransitions.WithLabelValues(string(from), string(target)).Inc()
	s.logger.Info("Case stage advanced", map[string]interface{}{
		"case_id": caseID,
		"stage":   string(target),
		"version": updated.Version,
	})
	return updated, nil
}

// TransitionWithRetry is Transition with bounded automatic retries on
// version conflicts: each attempt re-reads the authoritative case and
// re-applies the transition against its current version. Policy errors
// (invalid transition, terminal stage) are never retried.
func (s *Service) TransitionWithRetry(ctx context.Context, caseID string, target Stage, actor, description string, explicit []ActionItem) (*Case, error) {
	retries := s.cfg.ConflictRetries
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		current, err := s.store.Get(ctx, caseID)
		if err != nil {
			return nil, err
		}

		updated, err := s.Transition(ctx, caseID, target, actor, description, explicit, current.Version)
		if err == nil {
			return updated, nil
		}
		if !apperrors.HasCode(err, apperrors.ErrCodeConcurrentModification) {
			return updated, err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return nil, lastErr
}

// AddFee charges a fee against the case.
func (s *Service) AddFee(ctx context.Context, caseID string, kind FeeKind, description string, amount int64, expectedVersion int64) (*Case, error) {
	return s.mutate(ctx, caseID, expectedVersion, func(c *Case) error {
		return AddFee(c, kind, description, amount, s.now())
	})
}

// AddPayment records a payment against the case.
func (s *Service) AddPayment(ctx context.Context, caseID string, amount int64, expectedVersion int64) (*Case, error) {
	return s.mutate(ctx, caseID, expectedVersion, func(c *Case) error {
		return AddPayment(c, amount, s.now())
	})
}

// AddDocument attaches a document type to the case.
func (s *Service) AddDocument(ctx context.Context, caseID string, doc DocumentType, expectedVersion int64) (*Case, error) {
	return s.mutate(ctx, caseID, expectedVersion, func(c *Case) error {
		return AddDocument(c, doc, s.now())
	})
}

// AddNote appends a note to the case.
func (s *Service) AddNote(ctx context.Context, caseID string, author, text string, expectedVersion int64) (*Case, error) {
	return s.mutate(ctx, caseID, expectedVersion, func(c *Case) error {
		return AddNote(c, author, text, s.now())
	})
}

// mutate is the shared load-apply-write path. The mutation runs on a copy,
// so a rejected change or a failed write never alters stored state. A
// version mismatch detected on the loaded copy short-circuits before the
// mutation is applied and returns the authoritative record.
func (s *Service) mutate(ctx context.Context, caseID string, expectedVersion int64, apply func(*Case) error) (*Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := s.store.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if current.Version != expectedVersion {
		metrics.CaseStoreConflicts.Inc()
		return current, apperrors.NewConcurrentModificationError(caseID, expectedVersion, current.Version)
	}

	working := current.Clone()
	if err := apply(working); err != nil {
		return nil, err
	}

	// A timeout that fires after the load must not reach the store as a
	// write; the stored case stays as it was.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, working, expectedVersion)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.GetTransitionTimeout())
}

func (s *Service) observeTransitionFailure(caseID string, target Stage, err error) {
	reason := "store_error"
	switch {
	case apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition):
		reason = "invalid_transition"
	case apperrors.HasCode(err, apperrors.ErrCodeTerminalStateViolation):
		reason = "terminal_stage"
	case apperrors.HasCode(err, apperrors.ErrCodeConcurrentModification):
		reason = "version_conflict"
	case apperrors.HasCode(err, apperrors.ErrCodeCaseNotFound):
		reason = "not_found"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		reason = "timeout"
	}
	metrics.CaseTransitionsRejected.WithLabelValues(reason).Inc()
	s.logger.WithError(err).Warn("Case transition rejected", map[string]interface{}{
		"case_id": caseID,
		"target":  string(target),
		"reason":  reason,
	})
}
