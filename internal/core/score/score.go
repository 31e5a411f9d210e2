// Package score computes the 0-100 quality score of a context record across
// four weighted dimensions. Pure functions; only CalculatedAt varies between
// calls on the same input
package score

import (
	"fmt"
	"math"
	"strings"
	"time"

	"brandgate/internal/core/ucr"
)

// Dimension weights; they sum to 1
const (
	weightCompleteness = 0.25
	weightCompetitors  = 0.25
	weightNegative     = 0.30
	weightEvidence     = 0.20
)

// Grade bands over the weighted overall
const (
	gradeHighFloor   = 75
	gradeMediumFloor = 50
)

// evidenceStrongFloor marks a competitor as "with evidence" for confidence
const evidenceStrongFloor = 50

// QualityScore is the scorer output; plain serializable data
type QualityScore struct {
	Completeness         int               `json:"completeness"`
	CompetitorConfidence int               `json:"competitorConfidence"`
	NegativeStrength     int               `json:"negativeStrength"`
	EvidenceCoverage     int               `json:"evidenceCoverage"`
	Overall              int               `json:"overall"`
	Grade                ucr.Grade         `json:"grade"`
	Breakdown            map[string]string `json:"breakdown"`
	CalculatedAt         time.Time         `json:"calculatedAt"`
}

// Snapshot reduces the score to the advisory cache stored on governance
func (q QualityScore) Snapshot() ucr.QualitySnapshot {
	return ucr.QualitySnapshot{Overall: q.Overall, Grade: q.Grade, CalculatedAt: q.CalculatedAt}
}

// Compute scores cfg across the four dimensions and derives overall and grade
func Compute(cfg ucr.Configuration) QualityScore {
	comp, compNote := completeness(cfg)
	conf, confNote := competitorConfidence(cfg)
	neg, negNote := negativeStrength(cfg)
	ev, evNote := evidenceCoverage(cfg)

	overall := int(math.Floor(
		weightCompleteness*float64(comp) +
			weightCompetitors*float64(conf) +
			weightNegative*float64(neg) +
			weightEvidence*float64(ev),
	))

	grade := ucr.GradeLow
	switch {
	case overall >= gradeHighFloor:
		grade = ucr.GradeHigh
	case overall >= gradeMediumFloor:
		grade = ucr.GradeMedium
	}

	return QualityScore{
		Completeness:         comp,
		CompetitorConfidence: conf,
		NegativeStrength:     neg,
		EvidenceCoverage:     ev,
		Overall:              overall,
		Grade:                grade,
		Breakdown: map[string]string{
			"completeness":         compNote,
			"competitorConfidence": confNote,
			"negativeStrength":     negNote,
			"evidenceCoverage":     evNote,
		},
		CalculatedAt: time.Now().UTC(),
	}
}

// AnalysisReady reports whether cfg is good enough to run analysis on:
// overall at least 50, at least one approved competitor, and a primary category
func AnalysisReady(cfg ucr.Configuration) bool {
	return Compute(cfg).Overall >= gradeMediumFloor &&
		len(cfg.ApprovedCompetitors()) > 0 &&
		strings.TrimSpace(cfg.CategoryDefinition.PrimaryCategory) != ""
}

// requiredFields names the seven completeness fields; only the present count
// matters, never iteration order
func requiredFields(cfg ucr.Configuration) map[string]string {
	return map[string]string{
		"name":                        cfg.Name,
		"brand.name":                  cfg.Brand.Name,
		"brand.domain":                cfg.Brand.Domain,
		"brand.industry":              cfg.Brand.Industry,
		"brand.targetMarket":          cfg.Brand.TargetMarket,
		"categoryDefinition.primary":  cfg.CategoryDefinition.PrimaryCategory,
		"strategicIntent.primaryGoal": cfg.StrategicIntent.PrimaryGoal,
	}
}

func completeness(cfg ucr.Configuration) (int, string) {
	fields := requiredFields(cfg)
	present := 0
	for _, v := range fields {
		if strings.TrimSpace(v) != "" {
			present++
		}
	}
	pts := int(math.Floor(float64(present) / float64(len(fields)) * 100))
	note := fmt.Sprintf("%d of %d required fields present", present, len(fields))
	if cfg.CategoryDefinition.HasFence() {
		pts += 15
		note += "; category fence bonus applied"
	}
	if pts > 100 {
		pts = 100
	}
	return pts, note
}

func competitorConfidence(cfg ucr.Configuration) (int, string) {
	total := len(cfg.Competitors)
	if total == 0 {
		return 0, "no competitors defined"
	}
	approved := len(cfg.ApprovedCompetitors())
	withEvidence := 0
	for _, c := range cfg.Competitors {
		if c.EvidenceStrength() >= evidenceStrongFloor {
			withEvidence++
		}
	}

	base := float64(total)/5*40 + float64(approved)/float64(total)*40
	if base > 80 {
		base = 80
	}
	pts := base + float64(withEvidence)/float64(total)*20
	if pts > 100 {
		pts = 100
	}
	note := fmt.Sprintf("%d competitors, %d approved, %d with strong evidence", total, approved, withEvidence)
	return int(math.Floor(pts)), note
}

func negativeStrength(cfg ucr.Configuration) (int, string) {
	ns := cfg.NegativeScope
	types := ns.DistinctExclusionTypes()
	total := ns.TotalExclusions()

	pts := types*20 + total*2
	if pts > 100 {
		pts = 100
	}
	note := fmt.Sprintf("%d exclusion types, %d exclusions total", types, total)
	if ns.EnforcementRules.HardExclusion {
		pts += 10
		note += "; hard exclusion enabled"
		if pts > 100 {
			pts = 100
		}
	}
	return pts, note
}

func evidenceCoverage(cfg ucr.Configuration) (int, string) {
	total := len(cfg.Competitors)
	if total == 0 {
		return 0, "no competitors defined"
	}
	filled := 0
	for _, c := range cfg.Competitors {
		if strings.TrimSpace(c.Evidence.WhySelected) != "" {
			filled++
		}
		if len(c.Evidence.TopOverlapKeywords) > 0 {
			filled++
		}
		if len(c.Evidence.SerpExamples) > 0 {
			filled++
		}
	}
	pts := int(math.Floor(float64(filled) / float64(3*total) * 100))
	note := fmt.Sprintf("%d of %d evidence fields filled", filled, 3*total)
	return pts, note
}
