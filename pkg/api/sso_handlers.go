package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/httputil"
	"github.com/ariahq/aria/pkg/sso"
)

// stateCookieName carries the anti-forgery state across the provider
// round trip
const stateCookieName = "aria_sso_state"

// SSOHandlers serves the social-login redirect routes
type SSOHandlers struct {
	logger    *logrus.Logger
	providers *sso.Registry
}

// NewSSOHandlers creates the SSO handler group
func NewSSOHandlers(logger *logrus.Logger, providers *sso.Registry) *SSOHandlers {
	return &SSOHandlers{logger: logger, providers: providers}
}

// RegisterRoutes mounts the public login routes
func (h *SSOHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/{provider}", h.login).Methods("GET")
}

func (h *SSOHandlers) login(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]

	provider, err := h.providers.Lookup(name)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}

	state, err := sso.GenerateState()
	if err != nil {
		httputil.WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.WithField("provider", name).Info("social login initiated")
	http.Redirect(w, r, provider.AuthURL(state), http.StatusFound)
}
