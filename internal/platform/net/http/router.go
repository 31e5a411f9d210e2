// Package http provides the HTTP transport platform: a chi-backed server,
// a small router facade, JSON binding, and envelope responses
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the platform handler type used everywhere
type Handler = func(stdhttp.ResponseWriter, *stdhttp.Request)

// Router is the minimal surface area handlers mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Delete(path string, h Handler)

	Handle(path string, h stdhttp.Handler)
	Use(mw ...func(stdhttp.Handler) stdhttp.Handler)
	Route(pattern string, fn func(Router))

	Mux() stdhttp.Handler
}

// AdaptChi wraps a chi router in the platform Router facade
func AdaptChi(m chi.Router) Router { return chiRouter{m: m} }

type chiRouter struct{ m chi.Router }

func (r chiRouter) Get(path string, h Handler)    { r.m.Get(path, h) }
func (r chiRouter) Post(path string, h Handler)   { r.m.Post(path, h) }
func (r chiRouter) Put(path string, h Handler)    { r.m.Put(path, h) }
func (r chiRouter) Delete(path string, h Handler) { r.m.Delete(path, h) }

func (r chiRouter) Handle(path string, h stdhttp.Handler) { r.m.Handle(path, h) }

func (r chiRouter) Use(mw ...func(stdhttp.Handler) stdhttp.Handler) { r.m.Use(mw...) }

func (r chiRouter) Route(pattern string, fn func(Router)) {
	r.m.Route(pattern, func(sub chi.Router) { fn(AdaptChi(sub)) })
}

func (r chiRouter) Mux() stdhttp.Handler { return r.m }

// URLParam returns a chi path parameter by name
func URLParam(r *stdhttp.Request, key string) string { return chi.URLParam(r, key) }
