// Package api mounts the HTTP surface: the gating endpoints over the core,
// context record persistence, and signal detection
package api

import (
	phttp "brandgate/internal/platform/net/http"
	ctxservice "brandgate/internal/services/contexts/service"
	sigdomain "brandgate/internal/services/signals/domain"
)

// Options carries the collaborators handlers need. Contexts and Traces are
// optional; endpoints that need a missing one answer 503
type Options struct {
	Contexts *ctxservice.Service
	Signals  sigdomain.DetectorPort
	Traces   sigdomain.TraceWriterPort
}

// Mount registers all routes on r
func Mount(r phttp.Router, opt Options) {
	r.Route("/gate", func(g phttp.Router) {
		mountGate(g)
	})
	r.Route("/contexts", func(c phttp.Router) {
		mountContexts(c, opt.Contexts)
	})
	r.Route("/signals", func(sg phttp.Router) {
		mountSignals(sg, opt)
	})
}
