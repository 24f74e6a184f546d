// Package casework manages the immigration case lifecycle: an ordered set of
// legally meaningful stages with an auditable append-only timeline, fees,
// documents, notes and derived next-step action items. All mutation goes
// through the stage machine and service; cases are never edited in place by
// callers.
package casework

import "time"

// Stage is a discrete phase of a case's lifecycle.
type Stage string

const (
	StageDraft     Stage = "draft"
	StageSubmitted Stage = "submitted"
	StageInvited   Stage = "invited"
	StageApplied   Stage = "applied"
	StageApproved  Stage = "approved"
	StageRejected  Stage = "rejected"
)

// allowedTransitions is the directed stage graph. approved and rejected are
// terminal.
var allowedTransitions = map[Stage][]Stage{
	StageDraft:     {StageSubmitted},
	StageSubmitted: {StageInvited, StageRejected},
	StageInvited:   {StageApplied, StageRejected},
	StageApplied:   {StageApproved, StageRejected},
	StageApproved:  {},
	StageRejected:  {},
}

// IsValid reports whether s is a known stage.
func (s Stage) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s Stage) IsTerminal() bool {
	return s == StageApproved || s == StageRejected
}

// CanTransitionTo reports whether target is in the allowed-next set of s.
func (s Stage) CanTransitionTo(target Stage) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TimelineEvent is one entry of the append-only case history. Insertion order
// is chronological order; prior events are never edited or removed.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Stage       Stage     `json:"stage"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
}

// DocumentType identifies a document kind attached to a case.
type DocumentType string

// Note is a free-form record-keeping entry.
type Note struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeeKind separates government from consultant fees.
type FeeKind string

const (
	FeeGovernment FeeKind = "government"
	FeeConsultant FeeKind = "consultant"
)

// FeeItem is one charged fee, in cents.
type FeeItem struct {
	ID          string  `json:"id"`
	Kind        FeeKind `json:"kind"`
	Description string  `json:"description"`
	Amount      int64   `json:"amount"`
}

// Fees aggregates a case's charges and payments. TotalDue is derived: it is
// recomputed on every fee or payment mutation and never goes negative.
type Fees struct {
	GovernmentFees []FeeItem `json:"governmentFees"`
	ConsultantFees []FeeItem `json:"consultantFees"`
	TotalPaid      int64     `json:"totalPaid"`
	TotalDue       int64     `json:"totalDue"`
}

// recomputeTotalDue keeps the derived aggregate consistent after any fee or
// payment mutation. Overpayment clamps to zero rather than going negative.
func (f *Fees) recomputeTotalDue() {
	var charged int64
	for _, fee := range f.GovernmentFees {
		charged += fee.Amount
	}
	for _, fee := range f.ConsultantFees {
		charged += fee.Amount
	}
	due := charged - f.TotalPaid
	if due < 0 {
		due = 0
	}
	f.TotalDue = due
}

// ActionStatus tracks an action item through its own small lifecycle.
type ActionStatus string

const (
	ActionPending    ActionStatus = "pending"
	ActionInProgress ActionStatus = "inProgress"
	ActionCompleted  ActionStatus = "completed"
	ActionCancelled  ActionStatus = "cancelled"
)

// ActionItem is one entry of a case's next-step list.
type ActionItem struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    ActionStatus `json:"status"`
	DueDate   *time.Time   `json:"dueDate,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Case is the aggregate mutated exclusively through the stage machine and the
// fee/document/note operations. Version supports optimistic concurrency.
type Case struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"clientId"`
	ConsultantID string          `json:"consultantId"`
	Program      string          `json:"immigrationProgram"`
	CurrentStage Stage           `json:"currentStage"`
	Timeline     []TimelineEvent `json:"timeline"`
	Documents    []DocumentType  `json:"documents"`
	Notes        []Note          `json:"notes"`
	Fees         Fees            `json:"fees"`
	NextSteps    []ActionItem    `json:"nextSteps"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// HasDocument reports whether the document type is already attached.
func (c *Case) HasDocument(doc DocumentType) bool {
	for _, d := range c.Documents {
		if d == doc {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores and callers never share mutable slices.
func (c *Case) Clone() *Case {
	out := *c
	out.Timeline = append([]TimelineEvent(nil), c.Timeline...)
	out.Documents = append([]DocumentType(nil), c.Documents...)
	out.Notes = append([]Note(nil), c.Notes...)
	out.NextSteps = make([]ActionItem, len(c.NextSteps))
	for i, item := range c.NextSteps {
		out.NextSteps[i] = item
		if item.DueDate != nil {
			due := *item.DueDate
			out.NextSteps[i].DueDate = &due
		}
	}
	out.Fees.GovernmentFees = append([]FeeItem(nil), c.Fees.GovernmentFees...)
	out.Fees.ConsultantFees = append([]FeeItem(nil), c.Fees.ConsultantFees...)
	return &out
}
