// Package ucr defines the user context record: the configuration object every
// competitive-intelligence operation is gated on. The package holds shape,
// invariant helpers, and derived values only; validation, scoring, and
// guardrail enforcement live in their own packages
package ucr

import "time"

// Section identifies one of the eight lettered sub-records of a Configuration
type Section string

const (
	// SectionBrand is section A, the brand profile
	SectionBrand Section = "A"
	// SectionCategory is section B, the category definition and fence
	SectionCategory Section = "B"
	// SectionCompetitors is section C, the competitor set
	SectionCompetitors Section = "C"
	// SectionDemand is section D, the demand definition
	SectionDemand Section = "D"
	// SectionIntent is section E, the strategic intent
	SectionIntent Section = "E"
	// SectionChannels is section F, the channel context (optional)
	SectionChannels Section = "F"
	// SectionNegativeScope is section G, the guardrails
	SectionNegativeScope Section = "G"
	// SectionGovernance is section H, governance and verification state
	SectionGovernance Section = "H"
)

// Sections lists all sections in letter order
func Sections() []Section {
	return []Section{
		SectionBrand, SectionCategory, SectionCompetitors, SectionDemand,
		SectionIntent, SectionChannels, SectionNegativeScope, SectionGovernance,
	}
}

// Tier buckets competitors by closeness
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
)

// Valid reports whether t is a known tier
func (t Tier) Valid() bool { return t == Tier1 || t == Tier2 || t == Tier3 }

// CompetitorStatus is the review state of a competitor record
type CompetitorStatus string

const (
	StatusApproved      CompetitorStatus = "approved"
	StatusRejected      CompetitorStatus = "rejected"
	StatusPendingReview CompetitorStatus = "pending_review"
)

// Valid reports whether s is a known status
func (s CompetitorStatus) Valid() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusPendingReview
}

// RiskTolerance expresses how aggressive downstream analysis may be
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// MatchType selects how an exclusion term is matched against text
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchSemantic MatchType = "semantic"
	MatchContains MatchType = "contains"
)

// Valid reports whether m is a known match type
func (m MatchType) Valid() bool {
	return m == MatchExact || m == MatchSemantic || m == MatchContains
}

// Severity grades violations and signals
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities low < medium < high < critical; unknown ranks lowest
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Valid reports whether s is a known severity
func (s Severity) Valid() bool { return s.Rank() > 0 }

// ValidationStatus is the overall verdict of the validator
type ValidationStatus string

const (
	StatusComplete    ValidationStatus = "COMPLETE"
	StatusIncomplete  ValidationStatus = "INCOMPLETE"
	StatusNeedsReview ValidationStatus = "NEEDS_REVIEW"
	StatusBlocked     ValidationStatus = "BLOCKED"
)

// Grade is the quality score letter band
type Grade string

const (
	GradeLow    Grade = "low"
	GradeMedium Grade = "medium"
	GradeHigh   Grade = "high"
)

// Brand is section A: who the analysis is for
type Brand struct {
	Name             string   `json:"name"`
	Domain           string   `json:"domain"`
	Industry         string   `json:"industry"`
	BusinessModel    string   `json:"businessModel"`
	TargetMarket     string   `json:"targetMarket"`
	PrimaryGeography []string `json:"primaryGeography,omitempty"`
	FundingStage     string   `json:"fundingStage,omitempty"`
}

// CategoryDefinition is section B: the category the brand competes in and the
// fence around it
type CategoryDefinition struct {
	PrimaryCategory    string   `json:"primaryCategory"`
	Included           []string `json:"included,omitempty"`
	Excluded           []string `json:"excluded,omitempty"`
	ApprovedCategories []string `json:"approvedCategories,omitempty"`
	SemanticExtensions []string `json:"semanticExtensions,omitempty"`
}

// Evidence is the supporting rationale attached to a competitor
type Evidence struct {
	WhySelected        string   `json:"whySelected,omitempty"`
	TopOverlapKeywords []string `json:"topOverlapKeywords,omitempty"`
	SerpExamples       []string `json:"serpExamples,omitempty"`
}

// Competitor is one record of section C
type Competitor struct {
	Name            string           `json:"name"`
	Domain          string           `json:"domain"`
	Tier            Tier             `json:"tier"`
	Status          CompetitorStatus `json:"status"`
	SimilarityScore float64          `json:"similarityScore,omitempty"`
	SerpOverlap     float64          `json:"serpOverlap,omitempty"`
	SizeProximity   float64          `json:"sizeProximity,omitempty"`
	Evidence        Evidence         `json:"evidence"`
}

// BrandKeywords holds branded seed terms of the demand definition
type BrandKeywords struct {
	SeedTerms []string `json:"seedTerms,omitempty"`
}

// NonBrandKeywords holds unbranded category terms of the demand definition
type NonBrandKeywords struct {
	CategoryTerms []string `json:"categoryTerms,omitempty"`
}

// DemandDefinition is section D
type DemandDefinition struct {
	BrandKeywords    BrandKeywords    `json:"brandKeywords"`
	NonBrandKeywords NonBrandKeywords `json:"nonBrandKeywords"`
	Themes           []string         `json:"themes,omitempty"`
}

// StrategicIntent is section E
type StrategicIntent struct {
	PrimaryGoal    string        `json:"primaryGoal"`
	SecondaryGoals []string      `json:"secondaryGoals,omitempty"`
	RiskTolerance  RiskTolerance `json:"riskTolerance,omitempty"`
	TimeHorizon    string        `json:"timeHorizon,omitempty"`
	Avoid          []string      `json:"avoid,omitempty"`
}

// ChannelContext is section F; optional and never required by validation
type ChannelContext struct {
	PaidChannels    []string `json:"paidChannels,omitempty"`
	OrganicChannels []string `json:"organicChannels,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// Exclusion is one detailed guardrail entry
type Exclusion struct {
	Term      string    `json:"term"`
	MatchType MatchType `json:"matchType"`
	Reason    string    `json:"reason,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// EnforcementRules toggle how hard the negative scope bites
type EnforcementRules struct {
	HardExclusion                    bool `json:"hardExclusion"`
	AllowModelSuggestion             bool `json:"allowModelSuggestion"`
	RequireHumanOverrideForExpansion bool `json:"requireHumanOverrideForExpansion"`
}

// AuditEntry records a change to the negative scope
type AuditEntry struct {
	ID     string    `json:"id"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

// NegativeScope is section G: the guardrails
type NegativeScope struct {
	ExcludedCategories  []string `json:"excludedCategories,omitempty"`
	ExcludedKeywords    []string `json:"excludedKeywords,omitempty"`
	ExcludedUseCases    []string `json:"excludedUseCases,omitempty"`
	ExcludedCompetitors []string `json:"excludedCompetitors,omitempty"`

	CategoryExclusions   []Exclusion `json:"categoryExclusions,omitempty"`
	KeywordExclusions    []Exclusion `json:"keywordExclusions,omitempty"`
	UseCaseExclusions    []Exclusion `json:"useCaseExclusions,omitempty"`
	CompetitorExclusions []Exclusion `json:"competitorExclusions,omitempty"`

	EnforcementRules EnforcementRules `json:"enforcementRules"`
	AuditLog         []AuditEntry     `json:"auditLog,omitempty"`
}

// QualitySnapshot is the advisory cached scorer output on governance.
// Display state only; callers recompute when they need a guarantee
type QualitySnapshot struct {
	Overall      int       `json:"overall"`
	Grade        Grade     `json:"grade"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// Governance is section H
type Governance struct {
	HumanVerified    bool             `json:"humanVerified"`
	ContextHash      string           `json:"contextHash,omitempty"`
	ContextVersion   int              `json:"contextVersion,omitempty"`
	ValidationStatus ValidationStatus `json:"validationStatus,omitempty"`
	QualityScore     *QualitySnapshot `json:"qualityScore,omitempty"`
}

// Configuration is the unit of work: one fully materialized context record.
// Constructed once per analysis session by a collaborator and passed by value
// into the core; the core never mutates it
type Configuration struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`

	Brand              Brand              `json:"brand"`
	CategoryDefinition CategoryDefinition `json:"categoryDefinition"`
	Competitors        []Competitor       `json:"competitors,omitempty"`
	DemandDefinition   DemandDefinition   `json:"demandDefinition"`
	StrategicIntent    StrategicIntent    `json:"strategicIntent"`
	ChannelContext     ChannelContext     `json:"channelContext"`
	NegativeScope      NegativeScope      `json:"negativeScope"`
	Governance         Governance         `json:"governance"`

	// Legacy flat domain lists kept for configurations created before the
	// structured competitor set existed; the signal filter falls back to them
	DirectCompetitors   []string `json:"directCompetitors,omitempty"`
	IndirectCompetitors []string `json:"indirectCompetitors,omitempty"`
}
