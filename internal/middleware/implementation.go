package middleware

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/internal/handlers"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = uuid.New().String()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set("X-Trace-Id", trace)
	re.req = req.WithContext(ctx)
	return re
}

func (m *Middleware) authenticate(re requestResponseStruct) requestResponseStruct {
	if m.isValidBearerToken(re.req.Header.Get("Authorization")) {
		return re
	}
	re.badRequest = failureStruct{
		isBadRequest: true,
		httpCode:     http.StatusUnauthorized,
		errorMessage: "Unauthorized",
	}
	return re
}

func (m *Middleware) isValidBearerToken(authHeader string) bool {
	if m.noAuthBypass {
		m.logger.Warn("auth bypass active, no AUTH_TOKEN configured")
		return true
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(m.authToken)) == 1
}

func (m *Middleware) rateLimit(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !m.limiter.GetLimiter(ip).Allow() {
		re.logger.Warn("rate limit exceeded", "ip", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
	}
	return re
}

func handleBadRequest(re requestResponseStruct) {
	re.logger.Warn("rejected request",
		"httpCode", re.badRequest.httpCode,
		"errorMessage", re.badRequest.errorMessage,
		"ip", re.req.RemoteAddr)
	handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorMessage)
}
