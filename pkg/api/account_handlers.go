package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/auth"
	"github.com/ariahq/aria/pkg/httputil"
	"github.com/ariahq/aria/pkg/schema"
	"github.com/ariahq/aria/pkg/storage"
)

// preferencesSchema validates the preference update payload. Values outside
// the enumerated choices fail with field-level detail.
var preferencesSchema = schema.Schema{
	"dateFormat":        {Type: schema.String, Required: true, Choices: []string{"MM/DD/YYYY", "DD/MM/YYYY", "YYYY/MM/DD"}},
	"timeFormat":        {Type: schema.String, Required: true, Choices: []string{"12 Hour", "24 Hour"}},
	"measurementSystem": {Type: schema.String, Required: true, Choices: []string{"Imperial", "Metric"}},
}

// AccountHandlers serves the account-scoped profile, device, and preference
// routes
type AccountHandlers struct {
	logger      *logrus.Logger
	accounts    storage.AccountRepository
	devices     storage.DeviceRepository
	wakeWords   storage.WakeWordRepository
	geographies storage.GeographyRepository
	preferences storage.PreferenceRepository
	voices      storage.VoiceRepository
}

// NewAccountHandlers creates the account handler group
func NewAccountHandlers(
	logger *logrus.Logger,
	accounts storage.AccountRepository,
	devices storage.DeviceRepository,
	wakeWords storage.WakeWordRepository,
	geographies storage.GeographyRepository,
	preferences storage.PreferenceRepository,
	voices storage.VoiceRepository,
) *AccountHandlers {
	return &AccountHandlers{
		logger:      logger,
		accounts:    accounts,
		devices:     devices,
		wakeWords:   wakeWords,
		geographies: geographies,
		preferences: preferences,
		voices:      voices,
	}
}

// RegisterRoutes mounts the account routes; the router must carry the
// account auth middleware
func (h *AccountHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/account", h.getAccount).Methods("GET")
	r.HandleFunc("/account", h.deleteAccount).Methods("DELETE")
	r.HandleFunc("/devices", h.listDevices).Methods("GET")
	r.HandleFunc("/device-count", h.deviceCount).Methods("GET")
	r.HandleFunc("/wake-words", h.listWakeWords).Methods("GET")
	r.HandleFunc("/voices", h.listVoices).Methods("GET")
	r.HandleFunc("/geographies", h.listGeographies).Methods("GET")
	r.HandleFunc("/preferences", h.getPreferences).Methods("GET")
	r.HandleFunc("/preferences", h.setPreferences).Methods("POST")
}

func (h *AccountHandlers) principal(r *http.Request) *auth.Principal {
	principal, _ := auth.PrincipalFrom(r.Context())
	return principal
}

func (h *AccountHandlers) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccount(r.Context(), h.principal(r).AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, account)
}

func (h *AccountHandlers) deleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := h.principal(r).AccountID
	if err := h.accounts.DeleteAccount(r.Context(), accountID); err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	h.logger.WithField("account_id", accountID).Info("account deleted")
	httputil.WriteNoContent(w)
}

func (h *AccountHandlers) listDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.devices.GetDevicesByAccount(r.Context(), h.principal(r).AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, devices)
}

func (h *AccountHandlers) deviceCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.devices.GetDeviceCount(r.Context(), h.principal(r).AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, map[string]int{"deviceCount": count})
}

func (h *AccountHandlers) listWakeWords(w http.ResponseWriter, r *http.Request) {
	wakeWords, err := h.wakeWords.GetWakeWords(r.Context(), h.principal(r).AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, wakeWords)
}

func (h *AccountHandlers) listVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.voices.GetVoices(r.Context())
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, voices)
}

func (h *AccountHandlers) listGeographies(w http.ResponseWriter, r *http.Request) {
	geographies, err := h.geographies.GetAccountGeographies(r.Context(), h.principal(r).AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, geographies)
}

func (h *AccountHandlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.preferences.GetPreferences(r.Context(), h.principal(r).AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, prefs)
}

func (h *AccountHandlers) setPreferences(w http.ResponseWriter, r *http.Request) {
	payload, err := httputil.ParseJSONMap(r)
	if err != nil {
		httputil.WriteAppError(w, h.logger, apperr.Invalid("body", "invalid JSON"))
		return
	}

	normalized, err := preferencesSchema.Validate(payload)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}

	prefs := &storage.AccountPreferences{
		AccountID:         h.principal(r).AccountID,
		DateFormat:        normalized["dateFormat"].(string),
		TimeFormat:        normalized["timeFormat"].(string),
		MeasurementSystem: normalized["measurementSystem"].(string),
	}
	if err := h.preferences.UpsertPreferences(r.Context(), prefs); err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, prefs)
}
