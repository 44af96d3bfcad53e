package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/filestore"
	"github.com/ariahq/aria/pkg/httputil"
	"github.com/ariahq/aria/pkg/observability"
	"github.com/ariahq/aria/pkg/schema"
	"github.com/ariahq/aria/pkg/storage"
)

// sampleUploadedMessage confirms a sample upload, including the no-op case
// for an unconfigured wake word
const sampleUploadedMessage = "Wake word sample uploaded successfully"

// sampleSchema validates the multipart text fields of a sample upload
var sampleSchema = schema.Schema{
	"wake_word": {Type: schema.String, Required: true},
	"engine":    {Type: schema.String, Required: true},
	"timestamp": {Type: schema.Int, Required: true},
	"model":     {Type: schema.String, Required: true},
}

// DeviceHandlers serves the device-scoped public API
type DeviceHandlers struct {
	logger    *logrus.Logger
	metrics   *observability.Metrics
	accounts  storage.AccountRepository
	wakeWords storage.WakeWordRepository
	samples   storage.SampleRepository
	files     filestore.SampleStore

	// strictWakeWord turns the historical silent no-op on an unconfigured
	// wake word into a 404
	strictWakeWord bool
}

// NewDeviceHandlers creates the device handler group
func NewDeviceHandlers(
	logger *logrus.Logger,
	metrics *observability.Metrics,
	accounts storage.AccountRepository,
	wakeWords storage.WakeWordRepository,
	samples storage.SampleRepository,
	files filestore.SampleStore,
	strictWakeWord bool,
) *DeviceHandlers {
	return &DeviceHandlers{
		logger:         logger,
		metrics:        metrics,
		accounts:       accounts,
		wakeWords:      wakeWords,
		samples:        samples,
		files:          files,
		strictWakeWord: strictWakeWord,
	}
}

// RegisterRoutes mounts the device routes; the router must carry the device
// auth middleware
func (h *DeviceHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/device/{device_id}/wake-word-sample", h.uploadSample).Methods("POST")
}

// uploadSample ingests one wake word audio sample. The account is resolved
// from the authenticated device, never from client input. The audio file is
// durably written before the database row referencing it, so a stored row
// always points at an existing file.
func (h *DeviceHandlers) uploadSample(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := mux.Vars(r)["device_id"]

	payload, err := httputil.ParseMultipartForm(r)
	if err != nil {
		httputil.WriteAppError(w, h.logger, apperr.Invalid("body", "invalid multipart form"))
		return
	}

	normalized, err := sampleSchema.Validate(payload)
	var validErr *apperr.ValidationError
	if err != nil {
		validErr = err.(*apperr.ValidationError)
	}

	audioFile, header, err := httputil.FormFile(r, "audio_file")
	if err != nil {
		httputil.WriteAppError(w, h.logger, apperr.Invalid("audio_file", "unreadable audio file part"))
		return
	}
	validErr = schema.Check(validErr, audioFile != nil, "audio_file", "No audio file included in request")
	if validErr != nil {
		h.metrics.RecordSampleUpload("invalid", 0)
		httputil.WriteAppError(w, h.logger, validErr)
		return
	}
	defer audioFile.Close()

	wakeWordName := normalized["wake_word"].(string)
	timestamp := normalized["timestamp"].(int)

	account, err := h.accounts.GetAccountByDeviceID(ctx, deviceID)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}

	wakeWord, err := h.resolveWakeWord(ctx, account.ID, wakeWordName)
	if err != nil {
		httputil.WriteAppError(w, h.logger, err)
		return
	}
	if wakeWord == nil {
		// Not configured on this account: nothing to tag the sample with,
		// so the upload is acknowledged without persisting anything.
		h.logger.WithFields(logrus.Fields{
			"account_id": account.ID,
			"wake_word":  wakeWordName,
		}).Info("sample for unconfigured wake word ignored")
		h.metrics.RecordSampleUpload("skipped", 0)
		httputil.WriteSuccess(w, map[string]string{"message": sampleUploadedMessage})
		return
	}

	fileName := fmt.Sprintf("%s.%d.wav", account.ID, timestamp)
	if _, err := h.files.Save(ctx, wakeWord.SettingName, fileName, audioFile); err != nil {
		h.metrics.RecordSampleUpload("error", 0)
		httputil.WriteAppError(w, h.logger, apperr.Persistence("sample.file.write", err))
		return
	}

	sample := &storage.WakeWordSample{
		WakeWordID:    wakeWord.ID,
		AccountID:     account.ID,
		AudioFileName: fileName,
	}
	if err := h.samples.Add(ctx, sample); err != nil {
		h.metrics.RecordSampleUpload("error", header.Size)
		httputil.WriteAppError(w, h.logger, err)
		return
	}

	h.metrics.RecordSampleUpload("success", header.Size)
	httputil.WriteSuccess(w, map[string]string{"message": sampleUploadedMessage})
}

// resolveWakeWord finds the named wake word among those configured on the
// account. A missing wake word is nil in the default mode and NotFound in
// strict mode.
func (h *DeviceHandlers) resolveWakeWord(ctx context.Context, accountID, name string) (*storage.WakeWord, error) {
	configured, err := h.wakeWords.GetWakeWords(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for i := range configured {
		if configured[i].SettingName == name {
			return &configured[i], nil
		}
	}
	if h.strictWakeWord {
		return nil, apperr.NotFound("wake word", name)
	}
	return nil, nil
}
