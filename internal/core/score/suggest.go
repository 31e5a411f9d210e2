package score

import (
	"strings"

	"brandgate/internal/core/ucr"
)

// Priority buckets for improvement suggestions
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Suggestion names one concrete improvement to a context record
type Suggestion struct {
	Section    ucr.Section `json:"section"`
	Priority   Priority    `json:"priority"`
	Field      string      `json:"field"`
	Suggestion string      `json:"suggestion"`
	Impact     string      `json:"impact"`
}

// Dimension thresholds below which a suggestion is emitted
const (
	completenessFloor = 70
	confidenceFloor   = 50
	negativeFloor     = 40
	evidenceFloor     = 50
)

// Suggest inspects the four score dimensions and emits ordered improvement
// suggestions. Ordering is by priority bucket (critical, high, medium, low)
// and stable within a bucket
func Suggest(cfg ucr.Configuration) []Suggestion {
	q := Compute(cfg)

	var critical, high, medium, low []Suggestion

	if strings.TrimSpace(cfg.Brand.Domain) == "" {
		critical = append(critical, Suggestion{
			Section:    ucr.SectionBrand,
			Priority:   PriorityCritical,
			Field:      "brand.domain",
			Suggestion: "Set the brand domain; validation blocks every operation without it",
			Impact:     "unblocks validation",
		})
	}
	if strings.TrimSpace(cfg.CategoryDefinition.PrimaryCategory) == "" {
		critical = append(critical, Suggestion{
			Section:    ucr.SectionCategory,
			Priority:   PriorityCritical,
			Field:      "categoryDefinition.primaryCategory",
			Suggestion: "Set the primary category; validation blocks every operation without it",
			Impact:     "unblocks validation",
		})
	}

	if q.Completeness < completenessFloor {
		high = append(high, Suggestion{
			Section:    ucr.SectionBrand,
			Priority:   PriorityHigh,
			Field:      "brand",
			Suggestion: "Fill the remaining profile fields (industry, target market, goal)",
			Impact:     "raises completeness",
		})
	}
	if len(cfg.ApprovedCompetitors()) == 0 {
		high = append(high, Suggestion{
			Section:    ucr.SectionCompetitors,
			Priority:   PriorityHigh,
			Field:      "competitors",
			Suggestion: "Approve at least one competitor; signal detection needs a working set",
			Impact:     "enables signal detection",
		})
	}
	if q.NegativeStrength < negativeFloor {
		high = append(high, Suggestion{
			Section:    ucr.SectionNegativeScope,
			Priority:   PriorityHigh,
			Field:      "negativeScope",
			Suggestion: "Add exclusions across categories, keywords, use cases, and competitors",
			Impact:     "raises negative strength",
		})
	}

	if q.CompetitorConfidence < confidenceFloor && len(cfg.Competitors) > 0 {
		medium = append(medium, Suggestion{
			Section:    ucr.SectionCompetitors,
			Priority:   PriorityMedium,
			Field:      "competitors.evidence",
			Suggestion: "Attach evidence (rationale, overlap keywords, SERP examples) to competitors",
			Impact:     "raises competitor confidence",
		})
	}
	if q.EvidenceCoverage < evidenceFloor && len(cfg.Competitors) > 0 {
		medium = append(medium, Suggestion{
			Section:    ucr.SectionCompetitors,
			Priority:   PriorityMedium,
			Field:      "competitors.evidence",
			Suggestion: "Complete the evidence packs; partially filled packs weaken coverage",
			Impact:     "raises evidence coverage",
		})
	}
	if !cfg.NegativeScope.EnforcementRules.HardExclusion {
		medium = append(medium, Suggestion{
			Section:    ucr.SectionNegativeScope,
			Priority:   PriorityMedium,
			Field:      "negativeScope.enforcementRules.hardExclusion",
			Suggestion: "Enable hard exclusion so guardrail matches block regardless of caller flags",
			Impact:     "fail-closed enforcement",
		})
	}

	if !cfg.Governance.HumanVerified {
		low = append(low, Suggestion{
			Section:    ucr.SectionGovernance,
			Priority:   PriorityLow,
			Field:      "governance.humanVerified",
			Suggestion: "Have a human review and verify the context record",
			Impact:     "clears the needs-review status",
		})
	}

	out := make([]Suggestion, 0, len(critical)+len(high)+len(medium)+len(low))
	out = append(out, critical...)
	out = append(out, high...)
	out = append(out, medium...)
	out = append(out, low...)
	return out
}
