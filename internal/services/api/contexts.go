package api

import (
	stdhttp "net/http"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
	phttp "brandgate/internal/platform/net/http"
	ctxservice "brandgate/internal/services/contexts/service"
)

func mountContexts(r phttp.Router, svc *ctxservice.Service) {
	if svc == nil {
		unavailable := func(_ *stdhttp.Request) (any, error) {
			return nil, perr.New(perr.ErrorCodeUnavailable, "context storage is not configured")
		}
		phttp.GetJSON(r, "/{id}", unavailable)
		r.Put("/{id}", phttp.JSONHandlerNoBody(unavailable))
		return
	}

	phttp.PutJSON(r, "/{id}", func(req *stdhttp.Request, cfg ucr.Configuration) (any, error) {
		cfg.ID = phttp.URLParam(req, "id")
		return svc.Save(req.Context(), cfg)
	})

	phttp.GetJSON(r, "/{id}", func(req *stdhttp.Request) (any, error) {
		return svc.Load(req.Context(), phttp.URLParam(req, "id"))
	})
}
