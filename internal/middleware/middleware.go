package middleware

import (
	"net/http"
	"strconv"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/metrics"
	"github.com/ravidu/futureminds/pkg/logging"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logging.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Middleware holds request-gate state. Auth and rate-limit settings come in
// at construction rather than from package globals.
type Middleware struct {
	authToken    string
	noAuthBypass bool
	limiter      *IPRateLimiter
	logger       *logging.Logger
}

func New(settings config.Settings) *Middleware {
	return &Middleware{
		authToken:    settings.AuthToken,
		noAuthBypass: settings.NoAuthBypass,
		limiter:      NewIPRateLimiter(config.RATE_LIMIT_PER_SECOND, config.BURST_RATE_LIMIT_PER_SECOND),
		logger:       logging.NewLogger("middleware"),
	}
}

// Wrap gates a handler behind trace injection, auth and per-IP rate limiting,
// and records request metrics on the way out.
func (m *Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200}
		re := m.processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func (m *Middleware) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = m.logger
	re.logger.Debug("new request received", "path", re.req.URL.Path)

	re = injectTrace(re)
	re = m.authenticate(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re
	}
	re = m.rateLimit(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re
	}
	return re
}
