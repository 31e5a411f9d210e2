// Package validate evaluates section-by-section completeness of a context
// record. Only blocking reasons prevent downstream operations; warnings and
// review flags are informational
package validate

import (
	"strings"

	"brandgate/internal/core/ucr"
)

// Result is the validator verdict for one configuration
type Result struct {
	Status         ucr.ValidationStatus `json:"status"`
	BlockedReasons []string             `json:"blockedReasons,omitempty"`
	Warnings       []string             `json:"warnings,omitempty"`
	Sections       map[ucr.Section]bool `json:"sectionsValid"`
	IsValid        bool                 `json:"isValid"`
}

// Check evaluates every section in letter order and derives the final status.
// Rule order affects only message ordering, never the status itself.
// Pure and deterministic: same input, same result
func Check(cfg ucr.Configuration) Result {
	r := Result{Sections: make(map[ucr.Section]bool, 8)}
	for _, s := range ucr.Sections() {
		r.Sections[s] = true
	}

	// Section A: brand
	if strings.TrimSpace(cfg.Brand.Domain) == "" {
		r.block(ucr.SectionBrand, "Section A: brand domain is required")
	}
	if strings.TrimSpace(cfg.Brand.Name) == "" {
		r.warn("Section A: brand name is missing")
	}

	// Section B: category definition
	if strings.TrimSpace(cfg.CategoryDefinition.PrimaryCategory) == "" {
		r.block(ucr.SectionCategory, "Section B: primary category is required")
	}
	if !cfg.CategoryDefinition.HasFence() {
		r.warn("Section B: category fence incomplete; set both included and excluded categories")
	}
	if overlap := cfg.CategoryDefinition.FenceOverlap(); len(overlap) > 0 {
		r.warn("Section B: category fence lists overlap: " + strings.Join(overlap, ", "))
	}

	// Section C: competitors. An empty list marks the section invalid; a list
	// with zero approved entries only warns
	if len(cfg.Competitors) == 0 {
		r.Sections[ucr.SectionCompetitors] = false
		r.warn("Section C: no competitors defined")
	} else if len(cfg.ApprovedCompetitors()) == 0 {
		r.warn("Section C: no competitors approved yet")
	}

	// Section D: demand definition
	if len(cfg.DemandDefinition.BrandKeywords.SeedTerms) == 0 {
		r.warn("Section D: no seed brand keywords")
	}

	// Section E: strategic intent
	if strings.TrimSpace(cfg.StrategicIntent.PrimaryGoal) == "" {
		r.warn("Section E: no primary goal set")
	}

	// Section F is optional and always valid

	// Section G: negative scope
	if cfg.NegativeScope.TotalExclusions() == 0 {
		r.warn("Section G: no exclusions defined; guardrails may reject nothing")
	}
	if !cfg.NegativeScope.EnforcementRules.HardExclusion {
		r.warn("Section G: hard exclusion is disabled")
	}

	// Section H: governance
	if !cfg.Governance.HumanVerified {
		r.warn("Section H: context has not been human verified")
	}

	// Status derivation, in priority order
	switch {
	case len(r.BlockedReasons) > 0:
		r.Status = ucr.StatusBlocked
	case !cfg.Governance.HumanVerified:
		r.Status = ucr.StatusNeedsReview
	case len(r.Warnings) > 0:
		r.Status = ucr.StatusIncomplete
	default:
		r.Status = ucr.StatusComplete
	}
	r.IsValid = r.Status != ucr.StatusBlocked

	return r
}

func (r *Result) block(s ucr.Section, msg string) {
	r.Sections[s] = false
	r.BlockedReasons = append(r.BlockedReasons, msg)
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
