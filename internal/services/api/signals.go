package api

import (
	stdhttp "net/http"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/logger"
	phttp "brandgate/internal/platform/net/http"
	sigdomain "brandgate/internal/services/signals/domain"
)

type detectRequest struct {
	// Config is the inline record; ContextID loads a stored one instead.
	// Exactly one of the two must be supplied
	Config    *ucr.Configuration    `json:"config,omitempty"`
	ContextID string                `json:"contextId,omitempty"`
	Input     sigdomain.DetectInput `json:"input"`
}

func mountSignals(r phttp.Router, opt Options) {
	phttp.PostJSON(r, "/detect", func(req *stdhttp.Request, in detectRequest) (any, error) {
		cfg, err := resolveConfig(req, opt, in)
		if err != nil {
			return nil, err
		}

		res, err := opt.Signals.Detect(req.Context(), cfg, in.Input)
		if err != nil {
			return nil, err
		}

		// Trace persistence is best effort; the detection result stands either way
		if opt.Traces != nil {
			if werr := opt.Traces.Write(req.Context(), res.Trace); werr != nil {
				logger.C(req.Context()).Warn().Err(werr).Msg("run trace not persisted")
			}
		}
		return res, nil
	})
}

func resolveConfig(req *stdhttp.Request, opt Options, in detectRequest) (ucr.Configuration, error) {
	switch {
	case in.Config != nil && in.ContextID != "":
		return ucr.Configuration{}, perr.Invalidf("supply config or contextId, not both")
	case in.Config != nil:
		return *in.Config, nil
	case in.ContextID != "":
		if opt.Contexts == nil {
			return ucr.Configuration{}, perr.New(perr.ErrorCodeUnavailable, "context storage is not configured")
		}
		return opt.Contexts.Load(req.Context(), in.ContextID)
	default:
		return ucr.Configuration{}, perr.Invalidf("config or contextId is required")
	}
}
