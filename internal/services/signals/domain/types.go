// Package domain defines the core types and ports for the signals service
package domain

import (
	"time"

	"brandgate/internal/core/ucr"
)

// Type names one kind of competitive signal
type Type string

const (
	// TypeRankingShift flags ranking pressure from a competitor
	TypeRankingShift Type = "RANKING_SHIFT"
	// TypeNewKeyword flags a competitor keyword the brand does not cover
	TypeNewKeyword Type = "NEW_KEYWORD"
	// TypeSerpEntrant flags a competitor newly visible on tracked SERPs
	TypeSerpEntrant Type = "SERP_ENTRANT"
	// TypeDemandInflection flags a demand theme moving in the category
	TypeDemandInflection Type = "DEMAND_INFLECTION"
)

// DefaultTypes is the signal-type set used when the caller does not pick one
func DefaultTypes() []Type {
	return []Type{TypeRankingShift, TypeNewKeyword, TypeSerpEntrant, TypeDemandInflection}
}

// Signal is one detected competitive event, ready for dashboard display
type Signal struct {
	Type           Type           `json:"signalType"`
	Severity       ucr.Severity   `json:"severity"`
	Competitor     string         `json:"competitor,omitempty"`
	Keyword        string         `json:"keyword,omitempty"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Impact         string         `json:"impact"`
	Recommendation string         `json:"recommendation"`
	ChangeData     map[string]any `json:"changeData,omitempty"`
}

// IsHighPriority reports whether the signal ranks high or critical
func (s Signal) IsHighPriority() bool { return s.Severity.IsHighPriority() }

// DetectInput controls one detection run
type DetectInput struct {
	Types        []Type       `json:"types,omitempty"`
	LookbackDays int          `json:"lookbackDays,omitempty"`
	MinSeverity  ucr.Severity `json:"minSeverity,omitempty"`
}

// RunTrace is the audit record of one detection run: which configuration was
// consulted, which sections, and the quality snapshot at run time. The core
// emits it; persisting it is a collaborator's job
type RunTrace struct {
	RunID        string        `json:"runId"`
	Operation    string        `json:"operation"`
	ContextID    string        `json:"contextId,omitempty"`
	ContextHash  string        `json:"contextHash,omitempty"`
	Sections     []ucr.Section `json:"sectionsConsulted"`
	QualityScore int           `json:"qualityScore"`
	Grade        ucr.Grade     `json:"grade"`
	StartedAt    time.Time     `json:"startedAt"`
}

// Summary aggregates a detection run for dashboards
type Summary struct {
	Total      int                  `json:"total"`
	BySeverity map[ucr.Severity]int `json:"bySeverity"`
	ByType     map[Type]int         `json:"byType"`
	TopType    Type                 `json:"topType,omitempty"`
}

// DetectResult is the full outcome of one detection run
type DetectResult struct {
	Signals        []Signal `json:"signals"`
	Trace          RunTrace `json:"runTrace"`
	Summary        Summary  `json:"summary"`
	FiltersApplied []string `json:"filtersApplied"`
	RulesTriggered []string `json:"rulesTriggered"`
}
