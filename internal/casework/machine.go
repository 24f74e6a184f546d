package casework

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"immigration-engine/internal/common/config"
	apperrors "immigration-engine/internal/common/errors"
)

// Policy carries the due-date offsets applied to the default action items
// generated when a case enters a stage.
type Policy struct {
	SubmittedDueDays int
	InvitedDueDays   int
	AppliedDueDays   int
}

// PolicyFromConfig maps the casework configuration section onto a Policy.
func PolicyFromConfig(cfg config.CaseworkConfig) Policy {
	return Policy{
		SubmittedDueDays: cfg.SubmittedDueDays,
		InvitedDueDays:   cfg.InvitedDueDays,
		AppliedDueDays:   cfg.AppliedDueDays,
	}
}

// NewCase builds a draft case. The timeline starts empty: events record
// accepted transitions, and creation is not a transition.
func NewCase(clientID, consultantID, program string, now time.Time) *Case {
	c := &Case{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		ConsultantID: consultantID,
		Program:      program,
		CurrentStage: StageDraft,
		Fees: Fees{
			GovernmentFees: []FeeItem{},
			ConsultantFees: []FeeItem{},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.NextSteps = append(c.NextSteps, ActionItem{
		ID:        uuid.New().String(),
		Title:     "Complete client profile and collect supporting documents",
		Status:    ActionPending,
		CreatedAt: now,
	})
	return c
}

// ApplyTransition advances the case to target, appending exactly one timeline
// event. The case is mutated only when the transition is accepted; rejected
// transitions leave it untouched.
//
// When the caller supplies explicit action items those are appended for the
// new stage; otherwise the stage's default next steps are generated from the
// policy.
func ApplyTransition(c *Case, target Stage, actor, description string, explicit []ActionItem, pol Policy, now time.Time) error {
	if c.CurrentStage.IsTerminal() {
		return apperrors.NewTerminalStateViolationError(string(c.CurrentStage))
	}
	if !target.IsValid() || !c.CurrentStage.CanTransitionTo(target) {
		return apperrors.NewInvalidTransitionError(string(c.CurrentStage), string(target))
	}

	if description == "" {
		description = fmt.Sprintf("Stage changed from %s to %s", c.CurrentStage, target)
	}
	c.CurrentStage = target
	c.Timeline = append(c.Timeline, TimelineEvent{
		ID:          uuid.New().String(),
		Date:        now,
		Stage:       target,
		Description: description,
		Actor:       actor,
	})
	if len(explicit) > 0 {
		c.NextSteps = append(c.NextSteps, explicit...)
	} else {
		c.NextSteps = append(c.NextSteps, defaultActions(target, pol, now)...)
	}
	c.UpdatedAt = now
	return nil
}

// defaultActions returns the stage's standard follow-ups. Terminal stages get
// a single wrap-up item with no due date.
func defaultActions(stage Stage, pol Policy, now time.Time) []ActionItem {
	item := func(title string, dueDays int) ActionItem {
		a := ActionItem{
			ID:        uuid.New().String(),
			Title:     title,
			Status:    ActionPending,
			CreatedAt: now,
		}
		if dueDays > 0 {
			due := now.AddDate(0, 0, dueDays)
			a.DueDate = &due
		}
		return a
	}

	switch stage {
	case StageSubmitted:
		return []ActionItem{item("Monitor expression-of-interest pool for invitation round", pol.SubmittedDueDays)}
	case StageInvited:
		return []ActionItem{item("Prepare and file complete application before invitation deadline", pol.InvitedDueDays)}
	case StageApplied:
		return []ActionItem{item("Track application processing and respond to requests for evidence", pol.AppliedDueDays)}
	case StageApproved:
		return []ActionItem{item("Send approval package and landing instructions to client", 0)}
	case StageRejected:
		return []ActionItem{item("Review refusal reasons and advise client on reapplication or appeal", 0)}
	default:
		return nil
	}
}

// AddFee appends a fee of the given kind and recomputes the amount due.
func AddFee(c *Case, kind FeeKind, description string, amount int64, now time.Time) error {
	if kind != FeeGovernment && kind != FeeConsultant {
		return apperrors.NewInvalidMutationError(fmt.Sprintf("unknown fee kind %q", kind))
	}
	if description == "" {
		return apperrors.NewInvalidMutationError("fee description is required")
	}
	if amount < 0 {
		return apperrors.NewInvalidMutationError("fee amount must not be negative")
	}
	fee := FeeItem{
		ID:          uuid.New().String(),
		Kind:        kind,
		Description: description,
		Amount:      amount,
	}
	if kind == FeeGovernment {
		c.Fees.GovernmentFees = append(c.Fees.GovernmentFees, fee)
	} else {
		c.Fees.ConsultantFees = append(c.Fees.ConsultantFees, fee)
	}
	c.Fees.recomputeTotalDue()
	c.UpdatedAt = now
	return nil
}

// AddPayment records a payment against the case and recomputes the amount due.
func AddPayment(c *Case, amount int64, now time.Time) error {
	if amount <= 0 {
		return apperrors.NewInvalidMutationError("payment amount must be positive")
	}
	c.Fees.TotalPaid += amount
	c.Fees.recomputeTotalDue()
	c.UpdatedAt = now
	return nil
}

// AddDocument attaches a document type. Attaching an already present type is
// a no-op rather than an error. Documents may be added in any stage,
// including terminal ones: record-keeping continues after a decision.
func AddDocument(c *Case, doc DocumentType, now time.Time) error {
	if doc == "" {
		return apperrors.NewInvalidMutationError("document type is required")
	}
	if c.HasDocument(doc) {
		return nil
	}
	c.Documents = append(c.Documents, doc)
	c.UpdatedAt = now
	return nil
}

// AddNote appends a note. Notes are allowed in every stage.
func AddNote(c *Case, author, text string, now time.Time) error {
	if text == "" {
		return apperrors.NewInvalidMutationError("note text is required")
	}
	c.Notes = append(c.Notes, Note{
		ID:        uuid.New().String(),
		Author:    author,
		Text:      text,
		CreatedAt: now,
	})
	c.UpdatedAt = now
	return nil
}
