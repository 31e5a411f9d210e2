package ucr

import "strings"

// EvidenceStrength scores a competitor's evidence pack: 25 points for each of
// a non-blank rationale, at least one overlap keyword, at least one SERP
// example, and a positive SERP overlap; capped at 100
func (c Competitor) EvidenceStrength() int {
	pts := 0
	if strings.TrimSpace(c.Evidence.WhySelected) != "" {
		pts += 25
	}
	if len(c.Evidence.TopOverlapKeywords) > 0 {
		pts += 25
	}
	if len(c.Evidence.SerpExamples) > 0 {
		pts += 25
	}
	if c.SerpOverlap > 0 {
		pts += 25
	}
	if pts > 100 {
		pts = 100
	}
	return pts
}

// HasSizeMismatch reports whether the competitor is far off the brand's size
func (c Competitor) HasSizeMismatch() bool { return c.SizeProximity < 40 }

// HasFence reports whether the category fence is set on both sides
func (d CategoryDefinition) HasFence() bool {
	return len(d.Included) > 0 && len(d.Excluded) > 0
}

// FenceOverlap returns terms present in both the included and excluded lists.
// Overlap is advisory: the validator warns on it but never blocks
func (d CategoryDefinition) FenceOverlap() []string {
	if len(d.Included) == 0 || len(d.Excluded) == 0 {
		return nil
	}
	ex := make(map[string]struct{}, len(d.Excluded))
	for _, e := range d.Excluded {
		ex[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	var out []string
	for _, in := range d.Included {
		if _, ok := ex[strings.ToLower(strings.TrimSpace(in))]; ok {
			out = append(out, in)
		}
	}
	return out
}

// TotalExclusions sums the lengths of every exclusion list, simple and detailed
func (n NegativeScope) TotalExclusions() int {
	return len(n.ExcludedCategories) + len(n.ExcludedKeywords) +
		len(n.ExcludedUseCases) + len(n.ExcludedCompetitors) +
		len(n.CategoryExclusions) + len(n.KeywordExclusions) +
		len(n.UseCaseExclusions) + len(n.CompetitorExclusions)
}

// DistinctExclusionTypes counts how many of the four exclusion kinds
// (categories, keywords, use cases, competitors) have at least one entry in
// either their simple or detailed list; at most 4
func (n NegativeScope) DistinctExclusionTypes() int {
	count := 0
	if len(n.ExcludedCategories)+len(n.CategoryExclusions) > 0 {
		count++
	}
	if len(n.ExcludedKeywords)+len(n.KeywordExclusions) > 0 {
		count++
	}
	if len(n.ExcludedUseCases)+len(n.UseCaseExclusions) > 0 {
		count++
	}
	if len(n.ExcludedCompetitors)+len(n.CompetitorExclusions) > 0 {
		count++
	}
	return count
}

// ApprovedCompetitors returns the competitors with approved status, in order
func (c Configuration) ApprovedCompetitors() []Competitor {
	var out []Competitor
	for _, cp := range c.Competitors {
		if cp.Status == StatusApproved {
			out = append(out, cp)
		}
	}
	return out
}

// IsHighPriority reports whether s ranks high or critical
func (s Severity) IsHighPriority() bool { return s.Rank() >= SeverityHigh.Rank() }
