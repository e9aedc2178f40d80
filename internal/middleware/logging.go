package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/pcgsite/internal/logger"
	"github.com/yanizio/pcgsite/internal/requestinfo"
)

// RequestLogger attaches a child of base, tagged with the chi request id,
// to the request context and writes one access-log line per request.  It
// must run after chi's RequestID and requestinfo.Enrich.
func RequestLogger(base *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			l := base.With("req_id", chimw.GetReqID(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), l)))

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"dur_ms", time.Since(start).Milliseconds(),
			}
			if ri := requestinfo.FromContext(r.Context()); ri != nil {
				fields = append(fields,
					"ip", ri.Geo.IP.String(),
					"country", ri.Geo.CountryISO,
					"browser", ri.UA.Browser,
					"device", ri.UA.Device,
					"bot", ri.UA.IsBot,
				)
			}

			switch st := ww.Status(); {
			case st >= 500:
				l.Errorw("request", fields...)
			case st >= 400:
				l.Warnw("request", fields...)
			default:
				l.Infow("request", fields...)
			}
		})
	}
}
