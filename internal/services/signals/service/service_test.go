package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/services/signals/domain"
)

type fakeInsight struct {
	guidance string
	err      error
	delay    time.Duration
	calls    int
	batch    []domain.Signal
}

func (f *fakeInsight) GenerateInsights(ctx context.Context, sigs []domain.Signal, _ ucr.Brand) (string, error) {
	f.calls++
	f.batch = sigs
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.guidance, f.err
}

// detectConfig passes validation and feeds every generator
func detectConfig() ucr.Configuration {
	return ucr.Configuration{
		ID:   "ctx-1",
		Name: "acme launch",
		Brand: ucr.Brand{
			Name: "Acme", Domain: "acme.com", Industry: "saas", TargetMarket: "smb",
		},
		CategoryDefinition: ucr.CategoryDefinition{PrimaryCategory: "crm software"},
		Competitors: []ucr.Competitor{{
			Name:          "Rival",
			Domain:        "rival.com",
			Tier:          ucr.Tier1,
			Status:        ucr.StatusApproved,
			SerpOverlap:   85,
			SizeProximity: 80,
			Evidence: ucr.Evidence{
				WhySelected:        "head to head on crm",
				TopOverlapKeywords: []string{"crm pricing", "crm reviews", "crm migration"},
				SerpExamples:       []string{"best crm", "crm for smb"},
			},
		}},
		DemandDefinition: ucr.DemandDefinition{
			BrandKeywords: ucr.BrandKeywords{SeedTerms: []string{"acme crm"}},
			Themes:        []string{"ai assistants"},
		},
		StrategicIntent: ucr.StrategicIntent{PrimaryGoal: "grow smb pipeline"},
		Governance:      ucr.Governance{HumanVerified: true},
	}
}

func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestDetectBlockedConfig(t *testing.T) {
	cfg := detectConfig()
	cfg.Brand.Domain = ""

	svc := New(nil, Config{})
	_, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err == nil {
		t.Fatalf("blocked configuration must not detect")
	}
	if !perr.IsCode(err, perr.ErrorCodeContextBlocked) {
		t.Fatalf("error code = %v", perr.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "brand domain") {
		t.Fatalf("error = %q, want the blocking reason", err.Error())
	}
}

func TestDetectNoCompetitors(t *testing.T) {
	cfg := detectConfig()
	cfg.Competitors = nil

	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !hasString(res.FiltersApplied, "no_competitors") {
		t.Fatalf("filters = %v, want no_competitors", res.FiltersApplied)
	}
	if res.Signals == nil || len(res.Signals) != 0 {
		t.Fatalf("signals = %#v, want empty non-nil slice", res.Signals)
	}
	if res.Summary.Total != 0 {
		t.Fatalf("summary total = %d", res.Summary.Total)
	}
	if res.Trace.RunID == "" {
		t.Fatalf("an empty run still carries a trace")
	}
}

func TestDetectFullRun(t *testing.T) {
	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	// one ranking shift, two keywords (capped), one entrant, one theme
	if len(res.Signals) != 5 {
		t.Fatalf("signals = %d, want 5: %+v", len(res.Signals), res.Signals)
	}
	for _, marker := range []string{
		"RANKING_SHIFT_DETECTED", "NEW_KEYWORD_DETECTED",
		"SERP_ENTRANT_DETECTED", "DEMAND_INFLECTION_DETECTED",
	} {
		if !hasString(res.RulesTriggered, marker) {
			t.Fatalf("rules = %v, missing %s", res.RulesTriggered, marker)
		}
	}

	if res.Summary.Total != 5 {
		t.Fatalf("summary total = %d", res.Summary.Total)
	}
	if res.Summary.ByType[domain.TypeNewKeyword] != 2 {
		t.Fatalf("by type = %v", res.Summary.ByType)
	}
	if res.Summary.TopType != domain.TypeNewKeyword {
		t.Fatalf("top type = %s, want NEW_KEYWORD", res.Summary.TopType)
	}
	if res.Summary.BySeverity[ucr.SeverityHigh] != 1 {
		t.Fatalf("by severity = %v", res.Summary.BySeverity)
	}

	// an 85% overlap ranks high
	for _, sig := range res.Signals {
		if sig.Type == domain.TypeRankingShift && sig.Severity != ucr.SeverityHigh {
			t.Fatalf("ranking shift severity = %s", sig.Severity)
		}
	}
}

func TestDetectTypeSelection(t *testing.T) {
	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{
		Types: []domain.Type{domain.TypeDemandInflection},
	})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Signals) != 1 || res.Signals[0].Type != domain.TypeDemandInflection {
		t.Fatalf("signals = %+v", res.Signals)
	}
	if hasString(res.RulesTriggered, "RANKING_SHIFT_DETECTED") {
		t.Fatalf("unrequested type ran: %v", res.RulesTriggered)
	}
}

func TestDetectGuardrailDropsSignals(t *testing.T) {
	cfg := detectConfig()
	cfg.NegativeScope.ExcludedCompetitors = []string{"rival"}
	cfg.NegativeScope.EnforcementRules.HardExclusion = true

	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	// only the theme signal avoids the competitor name
	if len(res.Signals) != 1 || res.Signals[0].Type != domain.TypeDemandInflection {
		t.Fatalf("signals = %+v", res.Signals)
	}
	if !hasString(res.FiltersApplied, "guardrails") {
		t.Fatalf("filters = %v", res.FiltersApplied)
	}
	for _, marker := range []string{
		"GUARDRAIL_BLOCKED:RANKING_SHIFT",
		"GUARDRAIL_BLOCKED:NEW_KEYWORD",
		"GUARDRAIL_BLOCKED:SERP_ENTRANT",
	} {
		if !hasString(res.RulesTriggered, marker) {
			t.Fatalf("rules = %v, missing %s", res.RulesTriggered, marker)
		}
	}
}

func TestDetectGuardrailSoftModePassesAll(t *testing.T) {
	cfg := detectConfig()
	cfg.NegativeScope.ExcludedCompetitors = []string{"rival"}
	// hard exclusion off: the non-strict pass lets matches through

	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Signals) != 5 {
		t.Fatalf("signals = %d, want 5", len(res.Signals))
	}
	if hasString(res.FiltersApplied, "guardrails") {
		t.Fatalf("filters = %v, nothing should have been dropped", res.FiltersApplied)
	}
}

func TestDetectSeverityFloor(t *testing.T) {
	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{
		MinSeverity: ucr.SeverityHigh,
	})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Signals) != 1 || res.Signals[0].Type != domain.TypeRankingShift {
		t.Fatalf("signals = %+v, want the high ranking shift only", res.Signals)
	}
	if !hasString(res.FiltersApplied, "min_severity:high") {
		t.Fatalf("filters = %v", res.FiltersApplied)
	}
}

func TestDetectEnrichment(t *testing.T) {
	ins := &fakeInsight{guidance: "Defend branded SERPs this quarter."}
	svc := New(ins, Config{})

	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if ins.calls != 1 {
		t.Fatalf("insight calls = %d, want 1", ins.calls)
	}
	if len(ins.batch) != 1 || ins.batch[0].Type != domain.TypeRankingShift {
		t.Fatalf("enrichment batch = %+v, want the high-priority signal", ins.batch)
	}

	enriched := 0
	for _, sig := range res.Signals {
		if strings.HasSuffix(sig.Recommendation, ins.guidance) {
			enriched++
			if sig.Type != domain.TypeRankingShift {
				t.Fatalf("guidance landed on %s", sig.Type)
			}
		}
	}
	if enriched != 1 {
		t.Fatalf("enriched %d signals, want 1", enriched)
	}
}

func TestDetectEnrichmentFailureIsSwallowed(t *testing.T) {
	ins := &fakeInsight{err: context.DeadlineExceeded}
	svc := New(ins, Config{})

	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{})
	if err != nil {
		t.Fatalf("a failing provider must not fail detection: %v", err)
	}
	if len(res.Signals) != 5 {
		t.Fatalf("signals = %d, want the full set", len(res.Signals))
	}
	for _, sig := range res.Signals {
		if sig.Type == domain.TypeRankingShift && sig.Recommendation == "" {
			t.Fatalf("recommendation lost on failed enrichment")
		}
	}
}

func TestDetectEnrichmentTimeout(t *testing.T) {
	ins := &fakeInsight{guidance: "late advice", delay: time.Second}
	svc := New(ins, Config{EnrichTimeout: 10 * time.Millisecond})

	start := time.Now()
	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if took := time.Since(start); took > 500*time.Millisecond {
		t.Fatalf("detection waited %v on a slow provider", took)
	}
	for _, sig := range res.Signals {
		if strings.Contains(sig.Recommendation, "late advice") {
			t.Fatalf("timed-out guidance applied")
		}
	}
}

func TestDetectEnrichmentSkippedWithoutHighPriority(t *testing.T) {
	cfg := detectConfig()
	cfg.Competitors[0].SerpOverlap = 60 // medium pressure only

	ins := &fakeInsight{guidance: "anything"}
	svc := New(ins, Config{})
	if _, err := svc.Detect(context.Background(), cfg, domain.DetectInput{}); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if ins.calls != 0 {
		t.Fatalf("insight called %d times with no high-priority signals", ins.calls)
	}
}

func TestResolveWorkingSetDedupesLegacyDomains(t *testing.T) {
	cfg := ucr.Configuration{
		DirectCompetitors:   []string{"https://www.rival.com/", "rival.com", "  ", "other.io"},
		IndirectCompetitors: []string{"RIVAL.COM", "other.io"},
	}

	ws := resolveWorkingSet(cfg)
	if len(ws) != 2 {
		t.Fatalf("working set = %+v, want rival.com and other.io once each", ws)
	}
	if ws[0].domain != "rival.com" || ws[1].domain != "other.io" {
		t.Fatalf("working set order = %+v", ws)
	}
}

func TestDetectLookbackAnnotation(t *testing.T) {
	svc := New(nil, Config{})

	res, err := svc.Detect(context.Background(), detectConfig(), domain.DetectInput{LookbackDays: 7})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Signals) == 0 {
		t.Fatalf("expected signals")
	}
	for _, sig := range res.Signals {
		if got := sig.ChangeData["lookbackDays"]; got != 7 {
			t.Fatalf("%s lookbackDays = %v, want 7", sig.Type, got)
		}
	}

	// unset lookback falls back to the default window
	res, err = svc.Detect(context.Background(), detectConfig(), domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for _, sig := range res.Signals {
		if got := sig.ChangeData["lookbackDays"]; got != defaultLookbackDays {
			t.Fatalf("%s lookbackDays = %v, want %d", sig.Type, got, defaultLookbackDays)
		}
	}
}

func TestDetectLegacyCompetitorFallback(t *testing.T) {
	cfg := detectConfig()
	cfg.Competitors = nil
	cfg.DirectCompetitors = []string{"https://www.rival.com/", "other.io"}

	svc := New(nil, Config{})
	res, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if hasString(res.FiltersApplied, "no_competitors") {
		t.Fatalf("legacy lists should populate the working set")
	}
	// legacy entries carry no evidence, so only the demand generator fires
	if len(res.Signals) != 1 || res.Signals[0].Type != domain.TypeDemandInflection {
		t.Fatalf("signals = %+v", res.Signals)
	}
}

func TestDetectTrace(t *testing.T) {
	svc := New(nil, Config{})
	cfg := detectConfig()
	cfg.Governance.ContextHash = "abc123"

	res, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	tr := res.Trace
	if tr.RunID == "" || tr.Operation != "detect_signals" {
		t.Fatalf("trace = %+v", tr)
	}
	if tr.ContextID != "ctx-1" || tr.ContextHash != "abc123" {
		t.Fatalf("trace identity = %+v", tr)
	}
	if len(tr.Sections) == 0 || tr.StartedAt.IsZero() {
		t.Fatalf("trace provenance = %+v", tr)
	}
	if tr.QualityScore <= 0 || tr.Grade == "" {
		t.Fatalf("trace quality = %+v", tr)
	}
}

func TestDetectIdempotentSignalSet(t *testing.T) {
	svc := New(nil, Config{})
	cfg := detectConfig()

	a, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	b, err := svc.Detect(context.Background(), cfg, domain.DetectInput{})
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(a.Signals) != len(b.Signals) {
		t.Fatalf("signal counts differ: %d vs %d", len(a.Signals), len(b.Signals))
	}
	for i := range a.Signals {
		if a.Signals[i].Title != b.Signals[i].Title || a.Signals[i].Severity != b.Signals[i].Severity {
			t.Fatalf("signal %d differs:\n%+v\n%+v", i, a.Signals[i], b.Signals[i])
		}
	}
}
