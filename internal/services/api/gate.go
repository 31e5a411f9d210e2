package api

import (
	stdhttp "net/http"

	"brandgate/internal/core/guardrail"
	"brandgate/internal/core/score"
	"brandgate/internal/core/ucr"
	"brandgate/internal/core/validate"
	phttp "brandgate/internal/platform/net/http"
)

// configEnvelope wraps the record for pure-function endpoints
type configEnvelope struct {
	Config ucr.Configuration `json:"config"`
}

type guardrailCheckRequest struct {
	Config ucr.Configuration `json:"config"`
	Text   string            `json:"text" validate:"required"`
	Strict bool              `json:"strict"`
}

type competitorAllowedRequest struct {
	Config ucr.Configuration `json:"config"`
	Name   string            `json:"name"`
	Domain string            `json:"domain"`
}

type competitorAllowedResponse struct {
	Allowed bool `json:"allowed"`
}

type addExclusionRequest struct {
	Config    ucr.Configuration `json:"config"`
	Type      string            `json:"type" validate:"required,oneof=category keyword use_case competitor"`
	Value     string            `json:"value" validate:"required"`
	MatchType ucr.MatchType     `json:"matchType,omitempty"`
	Reason    string            `json:"reason,omitempty"`
}

func mountGate(r phttp.Router) {
	phttp.PostJSON(r, "/validate", func(_ *stdhttp.Request, in configEnvelope) (any, error) {
		return validate.Check(in.Config), nil
	})

	phttp.PostJSON(r, "/score", func(_ *stdhttp.Request, in configEnvelope) (any, error) {
		return score.Compute(in.Config), nil
	})

	phttp.PostJSON(r, "/suggest", func(_ *stdhttp.Request, in configEnvelope) (any, error) {
		return score.Suggest(in.Config), nil
	})

	phttp.PostJSON(r, "/guardrails/check", func(_ *stdhttp.Request, in guardrailCheckRequest) (any, error) {
		return guardrail.Check(in.Config, in.Text, in.Strict), nil
	})

	phttp.PostJSON(r, "/competitors/allowed", func(_ *stdhttp.Request, in competitorAllowedRequest) (any, error) {
		return competitorAllowedResponse{
			Allowed: guardrail.CompetitorAllowed(in.Config, in.Name, in.Domain),
		}, nil
	})

	phttp.PostJSON(r, "/exclusions/add", func(_ *stdhttp.Request, in addExclusionRequest) (any, error) {
		return guardrail.AddExclusion(
			in.Config,
			guardrail.ExclusionType(in.Type),
			in.Value,
			in.MatchType,
			in.Reason,
		)
	})
}
