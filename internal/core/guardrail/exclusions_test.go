package guardrail

import (
	"testing"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
)

func TestAddExclusion(t *testing.T) {
	cfg := ucr.Configuration{
		NegativeScope: ucr.NegativeScope{
			KeywordExclusions: []ucr.Exclusion{{Term: "free", MatchType: ucr.MatchContains}},
		},
	}

	out, err := AddExclusion(cfg, ExclusionKeyword, "cheap", ucr.MatchExact, "brand safety")
	if err != nil {
		t.Fatalf("AddExclusion: %v", err)
	}

	if len(out.NegativeScope.KeywordExclusions) != 2 {
		t.Fatalf("keyword exclusions = %+v", out.NegativeScope.KeywordExclusions)
	}
	added := out.NegativeScope.KeywordExclusions[1]
	if added.Term != "cheap" || added.MatchType != ucr.MatchExact || added.Reason != "brand safety" {
		t.Fatalf("added entry = %+v", added)
	}
	if added.AddedAt.IsZero() {
		t.Fatalf("added entry not timestamped")
	}

	if len(out.NegativeScope.AuditLog) != 1 {
		t.Fatalf("audit log = %+v", out.NegativeScope.AuditLog)
	}
	entry := out.NegativeScope.AuditLog[0]
	if entry.ID == "" || entry.Action != "add_exclusion" {
		t.Fatalf("audit entry = %+v", entry)
	}
	if !entry.At.Equal(added.AddedAt) {
		t.Fatalf("audit time %v != exclusion time %v", entry.At, added.AddedAt)
	}

	// the input configuration is untouched
	if len(cfg.NegativeScope.KeywordExclusions) != 1 {
		t.Fatalf("input mutated: %+v", cfg.NegativeScope.KeywordExclusions)
	}
	if len(cfg.NegativeScope.AuditLog) != 0 {
		t.Fatalf("input audit log mutated: %+v", cfg.NegativeScope.AuditLog)
	}
}

func TestAddExclusionTargetsCorrectList(t *testing.T) {
	cases := []struct {
		typ  ExclusionType
		pick func(ns ucr.NegativeScope) []ucr.Exclusion
	}{
		{ExclusionCategory, func(ns ucr.NegativeScope) []ucr.Exclusion { return ns.CategoryExclusions }},
		{ExclusionKeyword, func(ns ucr.NegativeScope) []ucr.Exclusion { return ns.KeywordExclusions }},
		{ExclusionUseCase, func(ns ucr.NegativeScope) []ucr.Exclusion { return ns.UseCaseExclusions }},
		{ExclusionCompetitor, func(ns ucr.NegativeScope) []ucr.Exclusion { return ns.CompetitorExclusions }},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			out, err := AddExclusion(ucr.Configuration{}, tc.typ, "term", "", "")
			if err != nil {
				t.Fatalf("AddExclusion: %v", err)
			}
			got := tc.pick(out.NegativeScope)
			if len(got) != 1 || got[0].Term != "term" {
				t.Fatalf("list for %s = %+v", tc.typ, got)
			}
			if out.NegativeScope.TotalExclusions() != 1 {
				t.Fatalf("entry landed in more than one list")
			}
		})
	}
}

func TestAddExclusionDefaultsToContains(t *testing.T) {
	out, err := AddExclusion(ucr.Configuration{}, ExclusionKeyword, "cheap", "", "")
	if err != nil {
		t.Fatalf("AddExclusion: %v", err)
	}
	if out.NegativeScope.KeywordExclusions[0].MatchType != ucr.MatchContains {
		t.Fatalf("match type = %s, want contains", out.NegativeScope.KeywordExclusions[0].MatchType)
	}
}

func TestAddExclusionRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		typ   ExclusionType
		value string
		mt    ucr.MatchType
	}{
		{"empty value", ExclusionKeyword, "   ", ""},
		{"unknown type", ExclusionType("bogus"), "cheap", ""},
		{"unknown match type", ExclusionKeyword, "cheap", ucr.MatchType("fuzzy")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AddExclusion(ucr.Configuration{}, tc.typ, tc.value, tc.mt, "")
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("error code = %v", perr.CodeOf(err))
			}
		})
	}
}
