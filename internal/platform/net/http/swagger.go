package http

import (
	stdhttp "net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// docJSON is a static OpenAPI skeleton served at /swagger/doc.json.
// Endpoint docs live in the handler comments; this keeps the UI mountable
// without a generation step
const docJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "brandgate API",
    "description": "Context gating: validation, quality scoring, guardrails, and signal detection",
    "version": "0.1.0"
  },
  "basePath": "/",
  "paths": {}
}`

// MountSwagger serves the swagger UI and its doc.json under /swagger
func MountSwagger(r Router) {
	r.Get("/swagger/doc.json", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(docJSON))
	})
	r.Handle("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
