package service

import (
	"fmt"

	"brandgate/internal/core/ucr"
	"brandgate/internal/services/signals/domain"
)

// Generator thresholds over the evidence already in the record. The
// generators are pure functions of the working set, category, and demand
// definition, so repeated runs on the same configuration yield the same
// candidates
const (
	serpPressureFloor = 50.0
	serpCriticalFloor = 80.0
	keywordsPerRival  = 2
	themeCap          = 3
)

func generate(t domain.Type, ws []workingCompetitor, cfg ucr.Configuration) []domain.Signal {
	switch t {
	case domain.TypeRankingShift:
		return genRankingShift(ws, cfg)
	case domain.TypeNewKeyword:
		return genNewKeyword(ws)
	case domain.TypeSerpEntrant:
		return genSerpEntrant(ws)
	case domain.TypeDemandInflection:
		return genDemandInflection(cfg)
	default:
		return nil
	}
}

// genRankingShift flags competitors whose SERP overlap is high enough to
// squeeze the brand's rankings in the primary category
func genRankingShift(ws []workingCompetitor, cfg ucr.Configuration) []domain.Signal {
	var out []domain.Signal
	for _, w := range ws {
		if w.rec == nil || w.rec.SerpOverlap < serpPressureFloor {
			continue
		}
		sev := ucr.SeverityMedium
		if w.rec.SerpOverlap >= serpCriticalFloor {
			sev = ucr.SeverityHigh
		}
		out = append(out, domain.Signal{
			Type:        domain.TypeRankingShift,
			Severity:    sev,
			Competitor:  w.name,
			Keyword:     cfg.CategoryDefinition.PrimaryCategory,
			Title:       fmt.Sprintf("Ranking pressure from %s", w.name),
			Description: fmt.Sprintf("%s overlaps %.0f%% of tracked SERPs in %s", w.name, w.rec.SerpOverlap, cfg.CategoryDefinition.PrimaryCategory),
			Impact:      "organic visibility at risk on shared queries",
			Recommendation: fmt.Sprintf(
				"Review shared rankings against %s and defend the top positions", w.name),
			ChangeData: map[string]any{"serpOverlap": w.rec.SerpOverlap, "tier": string(w.rec.Tier)},
		})
	}
	return out
}

// genNewKeyword surfaces the strongest overlap keywords each competitor is
// already evidenced on
func genNewKeyword(ws []workingCompetitor) []domain.Signal {
	var out []domain.Signal
	for _, w := range ws {
		if w.rec == nil {
			continue
		}
		kws := w.rec.Evidence.TopOverlapKeywords
		if len(kws) > keywordsPerRival {
			kws = kws[:keywordsPerRival]
		}
		for _, kw := range kws {
			out = append(out, domain.Signal{
				Type:           domain.TypeNewKeyword,
				Severity:       ucr.SeverityMedium,
				Competitor:     w.name,
				Keyword:        kw,
				Title:          fmt.Sprintf("%s is visible for %q", w.name, kw),
				Description:    fmt.Sprintf("Overlap evidence places %s on %q", w.name, kw),
				Impact:         "keyword gap against a tracked competitor",
				Recommendation: fmt.Sprintf("Assess content coverage for %q", kw),
				ChangeData:     map[string]any{"keyword": kw},
			})
		}
	}
	return out
}

// genSerpEntrant flags competitors with SERP example evidence, i.e. already
// sighted on result pages the brand tracks
func genSerpEntrant(ws []workingCompetitor) []domain.Signal {
	var out []domain.Signal
	for _, w := range ws {
		if w.rec == nil || len(w.rec.Evidence.SerpExamples) == 0 {
			continue
		}
		sev := ucr.SeverityLow
		if w.rec.HasSizeMismatch() {
			// small or outsized entrants move fast; watch them closer
			sev = ucr.SeverityMedium
		}
		out = append(out, domain.Signal{
			Type:           domain.TypeSerpEntrant,
			Severity:       sev,
			Competitor:     w.name,
			Title:          fmt.Sprintf("%s sighted on tracked SERPs", w.name),
			Description:    fmt.Sprintf("%s appears on %d tracked result pages", w.name, len(w.rec.Evidence.SerpExamples)),
			Impact:         "a competitor is entering watched result pages",
			Recommendation: "Confirm the sighting and add the pages to monitoring",
			ChangeData:     map[string]any{"serpExamples": len(w.rec.Evidence.SerpExamples)},
		})
	}
	return out
}

// genDemandInflection emits one signal per demand theme, capped
func genDemandInflection(cfg ucr.Configuration) []domain.Signal {
	themes := cfg.DemandDefinition.Themes
	if len(themes) > themeCap {
		themes = themes[:themeCap]
	}
	var out []domain.Signal
	for _, theme := range themes {
		out = append(out, domain.Signal{
			Type:           domain.TypeDemandInflection,
			Severity:       ucr.SeverityMedium,
			Keyword:        theme,
			Title:          fmt.Sprintf("Demand theme: %s", theme),
			Description:    fmt.Sprintf("The demand definition tracks %q as a moving theme", theme),
			Impact:         "category demand may be shifting",
			Recommendation: fmt.Sprintf("Track query volume for %q against the category baseline", theme),
			ChangeData:     map[string]any{"theme": theme},
		})
	}
	return out
}
