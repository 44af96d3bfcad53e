package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/auth"
	"github.com/ariahq/aria/pkg/httputil"
)

// AccountAuth rejects requests whose bearer token does not resolve to a
// session. The principal lands on the request context for handlers.
func AccountAuth(authenticator *auth.Authenticator, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authenticator.Authenticate(r.Context(), r)
			if err != nil {
				httputil.WriteAppError(w, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// DeviceAuth rejects requests unless the token is a device token for the
// device named in the route's {device_id} segment.
func DeviceAuth(authenticator *auth.Authenticator, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := mux.Vars(r)["device_id"]
			principal, err := authenticator.AuthenticateDevice(r.Context(), r, deviceID)
			if err != nil {
				httputil.WriteAppError(w, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}
