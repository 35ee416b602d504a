package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"sarcasm/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; zero values pick the defaults
type StackOptions struct {
	CORSOrigins []string
	Timeout     time.Duration // default 30s
	Slow        time.Duration // access log warns above this, default 1s
	MaxInFlight int           // 0 disables throttling
	SkipLog     []string      // paths left out of the access log
}

// CommonStack returns the baseline middleware slice for the API scope
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow <= 0 {
		o.Slow = time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestScope(),

		// safety
		middleware.RecoverJSON,
		middleware.Throttle(o.MaxInFlight),

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow, Skip: o.SkipLog}),

		// cross-origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Timeout(o.Timeout),
	}
}
