package transport

import (
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"product-store/constant"
	"product-store/thirdparty/shield"
	"product-store/utils/errors"
	"product-store/utils/logger"
)

// ProtectMiddleware consults the protection decision service before any
// handler runs, deducting a fixed token cost per request. An evaluator
// failure surfaces as the generic 500, never as an implicit allow.
func ProtectMiddleware(gate shield.Client, requestCost int) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := gate.Evaluate(r.Context(), &shield.Request{
				IP:        clientIP(r),
				Method:    r.Method,
				Path:      r.URL.Path,
				UserAgent: r.UserAgent(),
				Requested: requestCost,
			})
			if err != nil {
				logger.Error("[ProtectMiddleware] error gate.Evaluate", zap.String("error", err.Error()))
				writeError(w, errors.SetCustomError(constant.ErrInternal))
				return
			}

			if decision.IsDenied() {
				switch decision.Reason {
				case shield.ReasonRateLimit:
					writeDenial(w, http.StatusTooManyRequests, constant.ErrorTypeMessage[constant.ErrTooManyRequests])
				case shield.ReasonBot:
					writeDenial(w, http.StatusForbidden, constant.ErrorTypeMessage[constant.ErrBotDetected])
				default:
					writeDenial(w, http.StatusForbidden, constant.ErrorTypeMessage[constant.ErrForbidden])
				}
				return
			}

			// Allowed traffic from hosting-provider ranges is still refused:
			// legitimate browsers do not originate there, automated clients do.
			if decision.IPHosting {
				writeDenial(w, http.StatusForbidden, constant.ErrorTypeMessage[constant.ErrForbidden])
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
