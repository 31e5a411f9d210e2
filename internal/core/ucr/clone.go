package ucr

// Clone returns a deep copy of the configuration. Mutating operations in the
// engine (e.g. adding an exclusion) work on a clone so concurrent readers of
// the original never observe partial updates
func (c Configuration) Clone() Configuration {
	out := c

	out.Brand.PrimaryGeography = cloneStrings(c.Brand.PrimaryGeography)

	out.CategoryDefinition.Included = cloneStrings(c.CategoryDefinition.Included)
	out.CategoryDefinition.Excluded = cloneStrings(c.CategoryDefinition.Excluded)
	out.CategoryDefinition.ApprovedCategories = cloneStrings(c.CategoryDefinition.ApprovedCategories)
	out.CategoryDefinition.SemanticExtensions = cloneStrings(c.CategoryDefinition.SemanticExtensions)

	if c.Competitors != nil {
		out.Competitors = make([]Competitor, len(c.Competitors))
		for i, cp := range c.Competitors {
			cp.Evidence.TopOverlapKeywords = cloneStrings(cp.Evidence.TopOverlapKeywords)
			cp.Evidence.SerpExamples = cloneStrings(cp.Evidence.SerpExamples)
			out.Competitors[i] = cp
		}
	}

	out.DemandDefinition.BrandKeywords.SeedTerms = cloneStrings(c.DemandDefinition.BrandKeywords.SeedTerms)
	out.DemandDefinition.NonBrandKeywords.CategoryTerms = cloneStrings(c.DemandDefinition.NonBrandKeywords.CategoryTerms)
	out.DemandDefinition.Themes = cloneStrings(c.DemandDefinition.Themes)

	out.StrategicIntent.SecondaryGoals = cloneStrings(c.StrategicIntent.SecondaryGoals)
	out.StrategicIntent.Avoid = cloneStrings(c.StrategicIntent.Avoid)

	out.ChannelContext.PaidChannels = cloneStrings(c.ChannelContext.PaidChannels)
	out.ChannelContext.OrganicChannels = cloneStrings(c.ChannelContext.OrganicChannels)

	ns := &out.NegativeScope
	ns.ExcludedCategories = cloneStrings(c.NegativeScope.ExcludedCategories)
	ns.ExcludedKeywords = cloneStrings(c.NegativeScope.ExcludedKeywords)
	ns.ExcludedUseCases = cloneStrings(c.NegativeScope.ExcludedUseCases)
	ns.ExcludedCompetitors = cloneStrings(c.NegativeScope.ExcludedCompetitors)
	ns.CategoryExclusions = cloneExclusions(c.NegativeScope.CategoryExclusions)
	ns.KeywordExclusions = cloneExclusions(c.NegativeScope.KeywordExclusions)
	ns.UseCaseExclusions = cloneExclusions(c.NegativeScope.UseCaseExclusions)
	ns.CompetitorExclusions = cloneExclusions(c.NegativeScope.CompetitorExclusions)
	if c.NegativeScope.AuditLog != nil {
		ns.AuditLog = make([]AuditEntry, len(c.NegativeScope.AuditLog))
		copy(ns.AuditLog, c.NegativeScope.AuditLog)
	}

	if c.Governance.QualityScore != nil {
		qs := *c.Governance.QualityScore
		out.Governance.QualityScore = &qs
	}

	out.DirectCompetitors = cloneStrings(c.DirectCompetitors)
	out.IndirectCompetitors = cloneStrings(c.IndirectCompetitors)

	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneExclusions(in []Exclusion) []Exclusion {
	if in == nil {
		return nil
	}
	out := make([]Exclusion, len(in))
	copy(out, in)
	return out
}
