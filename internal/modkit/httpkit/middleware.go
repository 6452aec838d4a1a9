package httpkit

import (
	"net/http"
	"time"

	"flowqfit/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration
	SlowRequest time.Duration
	Metrics     *middleware.HTTPMetrics
}

// CommonStack returns the root middleware in the order they wrap requests
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Minute
	}
	mw := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
	}
	if o.Metrics != nil {
		mw = append(mw, o.Metrics.Handler)
	}
	return append(mw,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins, MaxAge: 300}),
		middleware.Heartbeat("/health"),
		middleware.Timeout(o.Timeout),
	)
}
