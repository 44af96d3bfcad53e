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

// installSchema validates the install/uninstall payload for settings updates
var installSchema = schema.Schema{
	"section":        {Type: schema.String, Required: true, Choices: []string{storage.InstallSection, storage.UninstallSection}},
	"skillDisplayId": {Type: schema.String, Required: true},
}

// SkillHandlers serves the marketplace skill routes
type SkillHandlers struct {
	logger *logrus.Logger
	skills storage.SkillRepository
}

// NewSkillHandlers creates the skill handler group
func NewSkillHandlers(logger *logrus.Logger, skills storage.SkillRepository) *SkillHandlers {
	return &SkillHandlers{logger: logger, skills: skills}
}

// RegisterRoutes mounts the skill routes; the router must carry the account
// auth middleware
func (h *SkillHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/skills", h.listSkills).Methods("GET")
	r.HandleFunc("/skills/{skill_id}/settings", h.getSettings).Methods("GET")
	r.HandleFunc("/skills/{skill_id}/settings", h.updateSettings).Methods("PUT")
}

func (h *SkillHandlers) listSkills(w http.ResponseWriter, r *http.Request) {
	displays, err := h.skills.GetSkillDisplays(r.Context())
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, displays)
}

func (h *SkillHandlers) getSettings(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFrom(r.Context())
	skillID := mux.Vars(r)["skill_id"]

	settings, err := h.skills.GetSkillSettings(r.Context(), principal.AccountID, skillID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	httputil.WriteSuccess(w, settings)
}

// updateSettings appends an install or uninstall entry to the installer
// settings of every device set on the account. Rows are updated
// independently; when some rows succeed and a later one fails the result is
// a partial failure, never a silent rollback.
func (h *SkillHandlers) updateSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, _ := auth.PrincipalFrom(ctx)

	payload, err := httputil.ParseJSONMap(r)
	if err != nil {
		httputil.WriteAppError(w, h.logger, apperr.Invalid("body", "invalid JSON"))
		return
	}

	normalized, err := installSchema.Validate(payload)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	section := normalized["section"].(string)
	skillDisplayID := normalized["skillDisplayId"].(string)

	// The display row resolves the id to the skill name stored in settings
	// entries; an unknown id is a hard 404.
	display, err := h.skills.GetDisplayData(ctx, skillDisplayID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}

	settings, err := h.skills.GetInstallerSettings(ctx, principal.AccountID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}

	var applied int
	var firstErr error
	for i := range settings {
		row := &settings[i]
		entries := row.SettingsValues.Section(section)
		row.SettingsValues.SetSection(section, append(entries, storage.SkillEntry{Name: display.Name}))

		err := h.skills.UpdateSkillSettings(ctx, principal.AccountID, row.Devices, row.SettingsValues)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied++
	}

	if firstErr != nil {
		failed := len(settings) - applied
		if applied > 0 {
			httputil.WriteAppError(w, h.logger,
				apperr.PartialFailure("skill.settings.update", applied, failed, firstErr))
			return
		}
		httputil.WriteAppError(w, h.logger, firstErr)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"account_id": principal.AccountID,
		"skill":      display.Name,
		"section":    section,
	}).Info("skill settings updated")
	httputil.WriteSuccess(w, settings)
}
