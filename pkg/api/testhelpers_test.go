package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ariahq/aria/pkg/apperr"
	"github.com/ariahq/aria/pkg/auth"
	"github.com/ariahq/aria/pkg/observability"
	"github.com/ariahq/aria/pkg/storage"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.NewRegistry())
}

// withPrincipal attaches an authenticated principal the way the auth
// middleware would
func withPrincipal(r *http.Request, p *auth.Principal) *http.Request {
	return r.WithContext(auth.WithPrincipal(r.Context(), p))
}

// multipartRequest builds a multipart POST with the given text fields and an
// optional audio_file part
func multipartRequest(t *testing.T, url string, fields map[string]string, audio []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write field %s: %v", key, err)
		}
	}
	if audio != nil {
		part, err := writer.CreateFormFile("audio_file", "sample.wav")
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := part.Write(audio); err != nil {
			t.Fatalf("Failed to write file part: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest("POST", url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// Fake repositories. Each records calls and returns canned values, so tests
// can assert both responses and the absence of writes.

type fakeAccountRepo struct {
	account *storage.Account
	err     error
	deleted []string
	lookups int
}

func (f *fakeAccountRepo) GetAccount(ctx context.Context, id string) (*storage.Account, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil || f.account.ID != id {
		return nil, apperr.NotFound("account", id)
	}
	return f.account, nil
}

func (f *fakeAccountRepo) GetAccountByDeviceID(ctx context.Context, deviceID string) (*storage.Account, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if f.account == nil {
		return nil, apperr.NotFound("device", deviceID)
	}
	return f.account, nil
}

func (f *fakeAccountRepo) DeleteAccount(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeDeviceRepo struct {
	devices []storage.Device
	count   int
	err     error
}

func (f *fakeDeviceRepo) GetDevicesByAccount(ctx context.Context, accountID string) ([]storage.Device, error) {
	return f.devices, f.err
}

func (f *fakeDeviceRepo) GetDeviceCount(ctx context.Context, accountID string) (int, error) {
	return f.count, f.err
}

type fakeWakeWordRepo struct {
	wakeWords []storage.WakeWord
	err       error
}

func (f *fakeWakeWordRepo) GetWakeWords(ctx context.Context, accountID string) ([]storage.WakeWord, error) {
	return f.wakeWords, f.err
}

type fakeSampleRepo struct {
	added []storage.WakeWordSample
	err   error
}

func (f *fakeSampleRepo) Add(ctx context.Context, sample *storage.WakeWordSample) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, *sample)
	return nil
}

func (f *fakeSampleRepo) RetrieveByAccount(ctx context.Context, accountID string) ([]storage.WakeWordSample, error) {
	return f.added, nil
}

type fakeSkillRepo struct {
	displays []storage.SkillDisplay
	settings []storage.AccountSkillSetting

	// updateErrs maps the update call index to a forced error
	updateErrs map[int]error
	updates    []storage.AccountSkillSetting
	updateCall int
}

func (f *fakeSkillRepo) GetSkillDisplays(ctx context.Context) ([]storage.SkillDisplay, error) {
	return f.displays, nil
}

func (f *fakeSkillRepo) GetDisplayData(ctx context.Context, skillDisplayID string) (*storage.SkillDisplay, error) {
	for i := range f.displays {
		if f.displays[i].ID == skillDisplayID {
			return &f.displays[i], nil
		}
	}
	return nil, apperr.NotFound("skill display", skillDisplayID)
}

func (f *fakeSkillRepo) GetInstallerSettings(ctx context.Context, accountID string) ([]storage.AccountSkillSetting, error) {
	return f.settings, nil
}

func (f *fakeSkillRepo) GetSkillSettings(ctx context.Context, accountID, skillID string) ([]storage.AccountSkillSetting, error) {
	return f.settings, nil
}

func (f *fakeSkillRepo) UpdateSkillSettings(ctx context.Context, accountID string, devices []string, values storage.SettingsValues) error {
	call := f.updateCall
	f.updateCall++
	if err, ok := f.updateErrs[call]; ok {
		return err
	}
	f.updates = append(f.updates, storage.AccountSkillSetting{
		AccountID:      accountID,
		Devices:        devices,
		SettingsValues: values,
	})
	return nil
}

type fakeAgreementRepo struct {
	agreement *storage.Agreement
}

func (f *fakeAgreementRepo) GetActiveAgreement(ctx context.Context, agreementType string) (*storage.Agreement, error) {
	if f.agreement == nil || f.agreement.Type != agreementType {
		return nil, apperr.NotFound("agreement", agreementType)
	}
	return f.agreement, nil
}

type fakeGeographyRepo struct {
	geographies []storage.Geography
}

func (f *fakeGeographyRepo) GetAccountGeographies(ctx context.Context, accountID string) ([]storage.Geography, error) {
	return f.geographies, nil
}

type fakePreferenceRepo struct {
	prefs *storage.AccountPreferences
	saved []storage.AccountPreferences
}

func (f *fakePreferenceRepo) GetPreferences(ctx context.Context, accountID string) (*storage.AccountPreferences, error) {
	if f.prefs == nil {
		return nil, apperr.NotFound("preferences", accountID)
	}
	return f.prefs, nil
}

func (f *fakePreferenceRepo) UpsertPreferences(ctx context.Context, prefs *storage.AccountPreferences) error {
	f.saved = append(f.saved, *prefs)
	return nil
}

type fakeVoiceRepo struct {
	voices []storage.Voice
}

func (f *fakeVoiceRepo) GetVoices(ctx context.Context) ([]storage.Voice, error) {
	return f.voices, nil
}
