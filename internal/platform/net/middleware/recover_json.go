package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/logger"
	pnet "flowqfit/internal/platform/net"
)

// RecoverJSON turns a panic into a JSON 500 and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			wire := perr.WireFrom(perr.PanicErrf("internal error"))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status_code": http.StatusInternalServerError,
				"status":      http.StatusText(http.StatusInternalServerError),
				"code":        wire.Code,
				"error":       wire.Message,
				"request_id":  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
