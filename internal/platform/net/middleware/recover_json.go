package middleware

import (
	"net/http"
	"runtime/debug"

	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/logger"
	pnet "brandgate/internal/platform/net"
	phttp "brandgate/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 envelope instead of a dropped
// connection. http.ErrAbortHandler is re-raised so the server can abort
func RecoverJSON(next http.Handler) http.Handler {
	log := logger.Named("recover")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Error().
				Interface("panic", rec).
				Str("path", r.URL.Path).
				Str("request_id", pnet.RequestID(r.Context())).
				Bytes("stack", debug.Stack()).
				Msg("recovered panic")

			err := perr.PanicErrf("internal error")
			wr := perr.WireFrom(err)
			phttp.JSON(w, http.StatusInternalServerError, phttp.Envelope{
				StatusCode: http.StatusInternalServerError,
				Status:     http.StatusText(http.StatusInternalServerError),
				Code:       wr.Code,
				Error:      wr.Message,
				RequestID:  pnet.RequestID(r.Context()),
			})
		}()
		next.ServeHTTP(w, r)
	})
}
