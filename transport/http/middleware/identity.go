package middleware

import (
	"context"
	"net/http"
	"shareit/infras/otel"
	"shareit/permissions"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/transport/http/response"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Identity reads the caller id from the X-Sharer-User-Id header. The header is trusted as-is.
type Identity interface {
	Identify(next http.Handler) http.Handler
}

type identityImpl struct {
	otel       otel.Otel
	permission *permissions.PermissionData
}

func NewIdentityMiddleware(otel otel.Otel, permission *permissions.PermissionData) Identity {
	return &identityImpl{
		otel:       otel,
		permission: permission,
	}
}

// Identify rejects requests with a missing or non-numeric caller header, except on endpoints
// marked as skipped in the permissions file. A valid id is stored under constant.ContextKeyUserID.
func (m *identityImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "identity.middleware")

		if m.skip(request) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		header := strings.TrimSpace(request.Header.Get(constant.RequestHeaderSharerUserID))

		if header == "" {
			scope.TraceError(failure.MissingUserHeader)
			scope.End()
			response.WithError(writer, failure.MissingUserHeader)

			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			scope.TraceError(failure.InvalidUserHeader)
			scope.End()
			response.WithError(writer, failure.InvalidUserHeader)

			return
		}

		scope.SetAttribute("user.id", userID)
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *identityImpl) skip(request *http.Request) bool {
	path := request.URL.Path

	if rctx := chi.RouteContext(request.Context()); rctx != nil && rctx.Routes != nil {
		pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
		// Unmatched paths and methods are answered by the router's 404 and 405 handlers.
		if pattern == "" {
			return true
		}

		path = pattern
	}

	if m.permission == nil {
		return false
	}

	return m.permission.Skip || m.permission.FindPermissions(path, request.Method).Skip
}
