package assessment

import (
	"context"
	"encoding/json"
	"time"

	"immigration-engine/internal/catalog"
	"immigration-engine/internal/common/logger"
	"immigration-engine/internal/common/metrics"
	"immigration-engine/internal/common/observability"
	"immigration-engine/internal/models"
	"immigration-engine/internal/profile"
)

// Request identifies the profile and the program grid to assess against.
// Payload carries the raw intake JSON; Raw may be supplied directly by
// callers that already decoded it.
type Request struct {
	Payload     map[string]interface{} `json:"payload,omitempty"`
	Raw         *models.RawProfile     `json:"raw,omitempty"`
	Program     string                 `json:"program"`
	Country     string                 `json:"country"`
	VersionDate time.Time              `json:"versionDate"`
}

// Result is the combined assessment output surfaced to the external API.
type Result struct {
	Program    string                     `json:"program"`
	Profile    *profile.NormalizedProfile `json:"profile"`
	Score      ScoreBreakdown             `json:"score"`
	MaxScore   int                        `json:"maxScore"`
	Verdict    EligibilityVerdict         `json:"verdict"`
	Priority   string                     `json:"priority"`
	AssessedAt time.Time                  `json:"assessedAt"`
}

// Service orchestrates validate, normalize, score and evaluate. Stateless and
// safe for concurrent use across profiles.
type Service struct {
	catalog catalog.Store
	obs     *observability.Observability
	logger  logger.Logger
}

func NewService(store catalog.Store, obs *observability.Observability, log logger.Logger) *Service {
	return &Service{
		catalog: store,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"component": "assessment"}),
	}
}

// Assess runs the full pipeline. Scoring and gate evaluation never fail on
// missing applicant data; the only error paths are intake validation, an
// unsupported language test, and a missing catalog entry.
func (s *Service) Assess(ctx context.Context, req *Request) (*Result, error) {
	started := time.Now()

	raw := req.Raw
	if raw == nil {
		decoded, err := decodePayload(req.Payload)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}

	versionDate := req.VersionDate
	if versionDate.IsZero() {
		versionDate = started.UTC()
	}

	entry, err := s.catalog.Get(ctx, req.Program, req.Country, versionDate)
	if err != nil {
		return nil, err
	}

	normalized, err := profile.Normalize(raw)
	if err != nil {
		return nil, err
	}

	score := Score(normalized, entry)
	verdict := Evaluate(normalized, entry)

	result := &Result{
		Program:    entry.Program,
		Profile:    normalized,
		Score:      score,
		MaxScore:   entry.MaxScore(),
		Verdict:    verdict,
		Priority:   classifyPriority(score.TotalScore, entry.MaxScore()),
		AssessedAt: started.UTC(),
	}

	metrics.AssessmentsCompleted.WithLabelValues(entry.Program, string(verdict.Verdict)).Inc()
	metrics.AssessmentScore.WithLabelValues(entry.Program).Observe(float64(score.TotalScore))
	metrics.AssessmentDuration.WithLabelValues(entry.Program).Observe(time.Since(started).Seconds())
	if s.obs != nil {
		s.obs.RecordAssessment(ctx, string(verdict.Verdict))
		s.obs.RecordAssessmentDuration(ctx, time.Since(started), string(verdict.Verdict))
	}

	s.logger.Info("assessment completed", map[string]interface{}{
		"clientId": normalized.ClientID,
		"program":  entry.Program,
		"score":    score.TotalScore,
		"maxScore": result.MaxScore,
		"verdict":  verdict.Verdict,
		"priority": result.Priority,
	})

	return result, nil
}

// Ready reports whether the backing catalog can resolve the federal grid
// for the current date. Health endpoints use it as a readiness signal.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.catalog.Get(ctx, "express-entry-fsw", "CA", time.Now().UTC())
	return err
}

// decodePayload shape-checks the intake JSON and decodes it into the raw
// profile struct.
func decodePayload(payload map[string]interface{}) (*models.RawProfile, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	if err := profile.ValidateRaw(payload); err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var raw models.RawProfile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &raw, nil
}

// classifyPriority bands a score relative to the grid maximum for triage in
// the consultant workflow.
func classifyPriority(score, maxScore int) string {
	if maxScore <= 0 {
		return "standard"
	}
	pct := score * 100 / maxScore
	switch {
	case pct >= 80:
		return "high"
	case pct >= 50:
		return "standard"
	default:
		return "low"
	}
}
