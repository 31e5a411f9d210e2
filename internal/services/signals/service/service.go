// Package service implements the signal filter: the orchestration layer that
// gates generated signals through validation and the guardrail engine
package service

import (
	"context"
	"strings"
	"time"

	"brandgate/internal/core/guardrail"
	"brandgate/internal/core/score"
	"brandgate/internal/core/ucr"
	"brandgate/internal/core/validate"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/logger"
	pstrings "brandgate/internal/platform/strings"
	"brandgate/internal/services/signals/domain"

	"github.com/google/uuid"
)

// Config for the signals service
type Config struct {
	// EnrichTimeout bounds the single AI enrichment call; 0 means 10s
	EnrichTimeout time.Duration
	// MaxEnrich caps how many top-priority signals are annotated; 0 means 5
	MaxEnrich int
}

// defaultLookbackDays is the detection window when the caller sets none
const defaultLookbackDays = 30

// Service implements domain.DetectorPort
type Service struct {
	Insight domain.InsightPort // optional
	Cfg     Config
}

// New constructs the signals service. insight may be nil
func New(insight domain.InsightPort, cfg Config) *Service {
	if cfg.EnrichTimeout <= 0 {
		cfg.EnrichTimeout = 10 * time.Second
	}
	if cfg.MaxEnrich <= 0 {
		cfg.MaxEnrich = 5
	}
	return &Service{Insight: insight, Cfg: cfg}
}

// workingCompetitor is the resolved unit the generators run over
type workingCompetitor struct {
	rec    *ucr.Competitor // nil for legacy domain-list entries
	name   string
	domain string
}

// Detect runs the full pipeline: validate, resolve the working set, generate
// candidates, apply the guardrail and severity passes, optionally enrich, and
// build the summary and run trace. Fail-closed at the entry: a BLOCKED
// configuration produces an error and no signals
func (s *Service) Detect(ctx context.Context, cfg ucr.Configuration, in domain.DetectInput) (domain.DetectResult, error) {
	vr := validate.Check(cfg)
	if vr.Status == ucr.StatusBlocked {
		return domain.DetectResult{}, perr.BlockedErrf(
			"configuration blocked: %s", strings.Join(vr.BlockedReasons, "; "))
	}

	res := domain.DetectResult{Trace: s.newTrace(cfg)}

	ws := resolveWorkingSet(cfg)
	if len(ws) == 0 {
		res.FiltersApplied = append(res.FiltersApplied, "no_competitors")
		res.Signals = []domain.Signal{}
		res.Summary = summarize(nil)
		return res, nil
	}

	types := in.Types
	if len(types) == 0 {
		types = domain.DefaultTypes()
	}
	lookback := in.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}

	var candidates []domain.Signal
	for _, t := range types {
		batch := generate(t, ws, cfg)
		for i := range batch {
			// every signal carries the window it was detected over
			batch[i].ChangeData["lookbackDays"] = lookback
		}
		if len(batch) > 0 {
			res.RulesTriggered = append(res.RulesTriggered, string(t)+"_DETECTED")
		}
		candidates = append(candidates, batch...)
	}

	// Guardrail pass, non-strict: hard exclusion on the record still blocks
	kept := candidates[:0:0]
	blockedAny := false
	for _, sig := range candidates {
		check := guardrail.Check(cfg, sig.Title+" "+sig.Description+" "+sig.Keyword, false)
		if check.IsBlocked {
			blockedAny = true
			res.RulesTriggered = append(res.RulesTriggered, "GUARDRAIL_BLOCKED:"+string(sig.Type))
			continue
		}
		kept = append(kept, sig)
	}
	if blockedAny {
		res.FiltersApplied = append(res.FiltersApplied, "guardrails")
	}

	// Severity floor pass
	if in.MinSeverity != "" && in.MinSeverity.Valid() {
		floor := in.MinSeverity.Rank()
		filtered := kept[:0]
		for _, sig := range kept {
			if sig.Severity.Rank() >= floor {
				filtered = append(filtered, sig)
			}
		}
		if len(filtered) < len(kept) {
			res.FiltersApplied = append(res.FiltersApplied, "min_severity:"+string(in.MinSeverity))
		}
		kept = filtered
	}

	// Optional enrichment of the top-priority survivors. Best effort: a
	// provider failure or timeout never affects the signal set
	if s.Insight != nil {
		s.enrich(ctx, cfg, kept)
	}

	if kept == nil {
		kept = []domain.Signal{}
	}
	res.Signals = kept
	res.Summary = summarize(kept)
	return res, nil
}

// resolveWorkingSet prefers approved competitors, then the legacy flat domain
// lists, then gives up. Legacy lists are normalized and deduped: the same
// domain listed twice (or under www/scheme variants) enters the set once
func resolveWorkingSet(cfg ucr.Configuration) []workingCompetitor {
	var ws []workingCompetitor
	approved := cfg.ApprovedCompetitors()
	for i := range approved {
		ws = append(ws, workingCompetitor{
			rec:    &approved[i],
			name:   approved[i].Name,
			domain: ucr.NormalizeDomain(approved[i].Domain),
		})
	}
	if len(ws) > 0 {
		return ws
	}

	var domains []string
	for _, d := range append(append([]string{}, cfg.DirectCompetitors...), cfg.IndirectCompetitors...) {
		if nd := ucr.NormalizeDomain(d); nd != "" {
			domains = append(domains, nd)
		}
	}
	for _, nd := range pstrings.Dedup(domains) {
		ws = append(ws, workingCompetitor{name: nd, domain: nd})
	}
	return ws
}

func (s *Service) enrich(ctx context.Context, cfg ucr.Configuration, kept []domain.Signal) {
	var top []int
	for i := range kept {
		if kept[i].IsHighPriority() {
			top = append(top, i)
			if len(top) >= s.Cfg.MaxEnrich {
				break
			}
		}
	}
	if len(top) == 0 {
		return
	}

	ectx, cancel := context.WithTimeout(ctx, s.Cfg.EnrichTimeout)
	defer cancel()

	batch := make([]domain.Signal, 0, len(top))
	for _, i := range top {
		batch = append(batch, kept[i])
	}
	guidance, err := s.Insight.GenerateInsights(ectx, batch, cfg.Brand)
	if err != nil || strings.TrimSpace(guidance) == "" {
		if err != nil {
			logger.C(ctx).Warn().Err(err).Msg("signal enrichment skipped")
		}
		return
	}
	for _, i := range top {
		if kept[i].Recommendation != "" {
			kept[i].Recommendation += " "
		}
		kept[i].Recommendation += guidance
	}
}

func (s *Service) newTrace(cfg ucr.Configuration) domain.RunTrace {
	q := score.Compute(cfg)
	return domain.RunTrace{
		RunID:       uuid.NewString(),
		Operation:   "detect_signals",
		ContextID:   cfg.ID,
		ContextHash: cfg.Governance.ContextHash,
		Sections: []ucr.Section{
			ucr.SectionBrand, ucr.SectionCategory, ucr.SectionCompetitors,
			ucr.SectionDemand, ucr.SectionNegativeScope, ucr.SectionGovernance,
		},
		QualityScore: q.Overall,
		Grade:        q.Grade,
		StartedAt:    time.Now().UTC(),
	}
}

// summarize counts signals and picks the most frequent type; ties break to
// the type encountered first
func summarize(signals []domain.Signal) domain.Summary {
	sum := domain.Summary{
		Total:      len(signals),
		BySeverity: make(map[ucr.Severity]int),
		ByType:     make(map[domain.Type]int),
	}
	var order []domain.Type
	for _, sig := range signals {
		sum.BySeverity[sig.Severity]++
		if sum.ByType[sig.Type] == 0 {
			order = append(order, sig.Type)
		}
		sum.ByType[sig.Type]++
	}
	best := 0
	for _, t := range order {
		if sum.ByType[t] > best {
			best = sum.ByType[t]
			sum.TopType = t
		}
	}
	return sum
}
