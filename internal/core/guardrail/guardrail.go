// Package guardrail enforces the negative scope of a context record over
// arbitrary text. Matching is lexical: case-insensitive substring containment
// over folded text, or explicit list membership; no semantic inference.
// This is the single fail-closed gate of the system: once hard exclusion is
// enabled, any match blocks regardless of caller-supplied leniency flags
package guardrail

import (
	"strings"

	"brandgate/internal/core/matchfold"
	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
)

// ViolationType names which exclusion list produced a violation
type ViolationType string

const (
	ViolationCategory   ViolationType = "category"
	ViolationKeyword    ViolationType = "keyword"
	ViolationUseCase    ViolationType = "use_case"
	ViolationCompetitor ViolationType = "competitor"
)

// Violation is one matched exclusion
type Violation struct {
	Type     ViolationType `json:"type"`
	Value    string        `json:"value"`
	Severity ucr.Severity  `json:"severity"`
	Reason   string        `json:"reason,omitempty"`
}

// CheckResult is the verdict for one text
type CheckResult struct {
	IsValid      bool        `json:"isValid"`
	Violations   []Violation `json:"violations,omitempty"`
	IsBlocked    bool        `json:"isBlocked"`
	CheckedRules []string    `json:"checkedRules"`
}

// Check matches text against every exclusion rule of cfg's negative scope.
// All matches are collected; nothing short-circuits. The verdict is blocked
// when any violation exists and either the caller asked for strict mode or
// the record enforces hard exclusion
func Check(cfg ucr.Configuration, text string, strict bool) CheckResult {
	folded := matchfold.Fold(text)
	ns := cfg.NegativeScope

	res := CheckResult{}

	res.checked("excluded_categories")
	for _, term := range ns.ExcludedCategories {
		if containsTerm(folded, term) {
			res.Violations = append(res.Violations, Violation{
				Type: ViolationCategory, Value: term, Severity: ucr.SeverityHigh,
			})
		}
	}

	res.checked("excluded_keywords")
	for _, term := range ns.ExcludedKeywords {
		if containsTerm(folded, term) {
			res.Violations = append(res.Violations, Violation{
				Type: ViolationKeyword, Value: term, Severity: ucr.SeverityHigh,
			})
		}
	}

	res.checked("excluded_competitors")
	for _, term := range ns.ExcludedCompetitors {
		if containsTerm(folded, term) {
			res.Violations = append(res.Violations, Violation{
				Type: ViolationCompetitor, Value: term, Severity: ucr.SeverityMedium,
			})
		}
	}

	// Detailed category exclusions in exact mode. "Exact" gates on the mode
	// flag only; the match itself is still substring containment, mirroring
	// the long-standing behavior callers depend on
	res.checked("category_exclusions:exact")
	for _, ex := range ns.CategoryExclusions {
		if ex.MatchType != ucr.MatchExact {
			continue
		}
		if containsTerm(folded, ex.Term) {
			res.Violations = append(res.Violations, Violation{
				Type: ViolationCategory, Value: ex.Term, Severity: ucr.SeverityHigh, Reason: ex.Reason,
			})
		}
	}

	res.IsBlocked = len(res.Violations) > 0 && (strict || ns.EnforcementRules.HardExclusion)
	res.IsValid = !res.IsBlocked
	return res
}

// MustCheck is the strict validate-or-raise entry point. It returns a
// guardrail-violation error carrying up to the top three violations, or nil
func MustCheck(cfg ucr.Configuration, text string) error {
	res := Check(cfg, text, true)
	if !res.IsBlocked {
		return nil
	}
	top := res.Violations
	if len(top) > 3 {
		top = top[:3]
	}
	parts := make([]string, 0, len(top))
	for _, v := range top {
		parts = append(parts, string(v.Type)+":"+v.Value+" ("+string(v.Severity)+")")
	}
	return perr.GuardrailErrf("text blocked by negative scope: %s", strings.Join(parts, ", "))
}

// CompetitorAllowed reports whether a competitor may enter the working set.
// Exact-mode exclusion terms require full equality after folding; everything
// else matches on substring containment in either direction
func CompetitorAllowed(cfg ucr.Configuration, name, domain string) bool {
	fname := matchfold.Fold(name)
	fdomain := matchfold.Fold(ucr.NormalizeDomain(domain))
	ns := cfg.NegativeScope

	for _, term := range ns.ExcludedCompetitors {
		if eitherContains(fname, term) || eitherContains(fdomain, term) {
			return false
		}
	}
	for _, ex := range ns.CompetitorExclusions {
		ft := matchfold.Fold(ex.Term)
		if ft == "" {
			continue
		}
		if ex.MatchType == ucr.MatchExact {
			if fname == ft || fdomain == ft {
				return false
			}
			continue
		}
		if eitherContains(fname, ex.Term) || eitherContains(fdomain, ex.Term) {
			return false
		}
	}
	return true
}

// containsTerm reports whether the folded text contains the folded term
func containsTerm(foldedText, term string) bool {
	ft := matchfold.Fold(term)
	return ft != "" && strings.Contains(foldedText, ft)
}

// eitherContains reports substring containment in either direction between a
// folded subject and a raw term
func eitherContains(foldedSubject, term string) bool {
	ft := matchfold.Fold(term)
	if ft == "" || foldedSubject == "" {
		return false
	}
	return strings.Contains(foldedSubject, ft) || strings.Contains(ft, foldedSubject)
}

func (r *CheckResult) checked(rule string) {
	r.CheckedRules = append(r.CheckedRules, rule)
}
