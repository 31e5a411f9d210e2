package guardrail

import (
	"strings"
	"time"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"

	"github.com/google/uuid"
)

// ExclusionType selects which detailed exclusion list AddExclusion appends to
type ExclusionType string

const (
	ExclusionCategory   ExclusionType = "category"
	ExclusionKeyword    ExclusionType = "keyword"
	ExclusionUseCase    ExclusionType = "use_case"
	ExclusionCompetitor ExclusionType = "competitor"
)

// AddExclusion appends a timestamped exclusion entry and an audit log record,
// returning a new configuration. The input is never written through: the copy
// keeps concurrent readers of the original safe
func AddExclusion(
	cfg ucr.Configuration,
	typ ExclusionType,
	value string,
	matchType ucr.MatchType,
	reason string,
) (ucr.Configuration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ucr.Configuration{}, perr.Invalidf("exclusion value must not be empty")
	}
	if matchType == "" {
		matchType = ucr.MatchContains
	}
	if !matchType.Valid() {
		return ucr.Configuration{}, perr.Invalidf("unknown match type %q", matchType)
	}

	out := cfg.Clone()
	entry := ucr.Exclusion{
		Term:      value,
		MatchType: matchType,
		Reason:    reason,
		AddedAt:   time.Now().UTC(),
	}

	ns := &out.NegativeScope
	switch typ {
	case ExclusionCategory:
		ns.CategoryExclusions = append(ns.CategoryExclusions, entry)
	case ExclusionKeyword:
		ns.KeywordExclusions = append(ns.KeywordExclusions, entry)
	case ExclusionUseCase:
		ns.UseCaseExclusions = append(ns.UseCaseExclusions, entry)
	case ExclusionCompetitor:
		ns.CompetitorExclusions = append(ns.CompetitorExclusions, entry)
	default:
		return ucr.Configuration{}, perr.Invalidf("unknown exclusion type %q", typ)
	}

	ns.AuditLog = append(ns.AuditLog, ucr.AuditEntry{
		ID:     uuid.NewString(),
		Action: "add_exclusion",
		Detail: string(typ) + ":" + value + " (" + string(matchType) + ")",
		At:     entry.AddedAt,
	})

	return out, nil
}
