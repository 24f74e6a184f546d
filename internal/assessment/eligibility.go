package assessment

import (
	"fmt"

	"immigration-engine/internal/catalog"
	"immigration-engine/internal/profile"
)

// GateStatus is a gate predicate outcome.
type GateStatus string

const (
	GateSatisfied     GateStatus = "satisfied"
	GateFailed        GateStatus = "failed"
	GateIndeterminate GateStatus = "indeterminate"
)

// VerdictKind is the overall eligibility outcome.
type VerdictKind string

const (
	VerdictEligible    VerdictKind = "eligible"
	VerdictIneligible  VerdictKind = "ineligible"
	VerdictConditional VerdictKind = "conditional"
)

// GateResult is one gate's outcome with a human-readable reason for display.
type GateResult struct {
	GateID      string     `json:"gateId"`
	Description string     `json:"description"`
	Hard        bool       `json:"isHardRequirement"`
	Status      GateStatus `json:"status"`
	Reason      string     `json:"reason"`
}

// EligibilityVerdict is the evaluator output. FailedHardGates lists every
// failed hard gate, not just the first; callers need the full reason list.
type EligibilityVerdict struct {
	Verdict         VerdictKind  `json:"verdict"`
	Gates           []GateResult `json:"gates"`
	FailedHardGates []string     `json:"failedHardGates,omitempty"`
}

// Evaluate runs every gate of the entry against the profile. Verdict policy:
// any failed hard gate means ineligible; otherwise at least one indeterminate
// hard gate means conditional; otherwise eligible. Soft gates are reported but
// never affect the verdict. Missing tri-state data (unreported funds,
// unreported admissibility, unassessed credentials) resolves to indeterminate;
// absent list data (no language test, no work history) resolves to failed,
// since the requirement is simply not met.
func Evaluate(p *profile.NormalizedProfile, entry *catalog.RuleCatalogEntry) EligibilityVerdict {
	verdict := EligibilityVerdict{
		Gates: make([]GateResult, 0, len(entry.Gates)),
	}

	hardIndeterminate := false
	for _, gate := range entry.Gates {
		status, reason := evaluateGate(p, gate)
		verdict.Gates = append(verdict.Gates, GateResult{
			GateID:      gate.ID,
			Description: gate.Description,
			Hard:        gate.Hard,
			Status:      status,
			Reason:      reason,
		})
		if !gate.Hard {
			continue
		}
		switch status {
		case GateFailed:
			verdict.FailedHardGates = append(verdict.FailedHardGates, gate.ID)
		case GateIndeterminate:
			hardIndeterminate = true
		}
	}

	switch {
	case len(verdict.FailedHardGates) > 0:
		verdict.Verdict = VerdictIneligible
	case hardIndeterminate:
		verdict.Verdict = VerdictConditional
	default:
		verdict.Verdict = VerdictEligible
	}
	return verdict
}

func evaluateGate(p *profile.NormalizedProfile, gate catalog.EligibilityGate) (GateStatus, string) {
	switch gate.Kind {
	case catalog.GateMinLanguageCLB:
		lang := p.FirstLanguage()
		if lang == nil {
			return GateFailed, "no language test result on file"
		}
		if min := lang.CLB.Min(); min < gate.MinCLB {
			return GateFailed, fmt.Sprintf("weakest ability is CLB %d, minimum is CLB %d", min, gate.MinCLB)
		}
		return GateSatisfied, fmt.Sprintf("meets CLB %d in every ability", gate.MinCLB)

	case catalog.GateMinSkilledMonths:
		months := p.SkilledMonths(false)
		if months < gate.MinMonths {
			return GateFailed, fmt.Sprintf("%d months of skilled experience, minimum is %d", months, gate.MinMonths)
		}
		return GateSatisfied, fmt.Sprintf("%d months of skilled experience", months)

	case catalog.GateEducationCredential:
		best := p.BestCredential()
		if best == nil {
			return GateFailed, "no education credential on file"
		}
		if !best.Verified {
			return GateIndeterminate, "highest credential lacks an equivalency assessment"
		}
		return GateSatisfied, fmt.Sprintf("recognized %s credential", best.Level)

	case catalog.GateSettlementFunds:
		if p.SettlementFunds == nil {
			return GateIndeterminate, "settlement funds not reported"
		}
		if *p.SettlementFunds < gate.MinFunds {
			return GateFailed, fmt.Sprintf("reported funds %d below minimum %d", *p.SettlementFunds, gate.MinFunds)
		}
		return GateSatisfied, "settlement funds meet the minimum"

	case catalog.GateAdmissibility:
		if p.Admissible == nil {
			return GateIndeterminate, "admissibility not assessed"
		}
		if !*p.Admissible {
			return GateFailed, "applicant is inadmissible"
		}
		return GateSatisfied, "no admissibility concerns"

	case catalog.GateArrangedEmployment:
		if !p.HasJobOffer {
			return GateFailed, "no job offer on file"
		}
		return GateSatisfied, "valid job offer on file"

	case catalog.GateProvincialNomination:
		if !p.HasNomination {
			return GateFailed, "no provincial nomination certificate"
		}
		return GateSatisfied, "provincial nomination certificate on file"

	default:
		return GateIndeterminate, fmt.Sprintf("unknown gate kind %q", gate.Kind)
	}
}
