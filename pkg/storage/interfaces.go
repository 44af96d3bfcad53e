package storage

import "context"

// AccountRepository provides account lookups
type AccountRepository interface {
	// GetAccount returns the account with the given id, or NotFound
	GetAccount(ctx context.Context, id string) (*Account, error)

	// GetAccountByDeviceID resolves the account owning a device, or
	// NotFound. Device-scoped endpoints use this so repository calls are
	// always scoped to the verified account, never a client-supplied id.
	GetAccountByDeviceID(ctx context.Context, deviceID string) (*Account, error)

	// DeleteAccount removes the account row
	DeleteAccount(ctx context.Context, id string) error
}

// DeviceRepository provides device lookups scoped to an account
type DeviceRepository interface {
	GetDevicesByAccount(ctx context.Context, accountID string) ([]Device, error)
	GetDeviceCount(ctx context.Context, accountID string) (int, error)
}

// WakeWordRepository provides wake word lookups scoped to an account
type WakeWordRepository interface {
	// GetWakeWords returns the wake words configured on an account; an
	// account with none yields an empty slice, not an error
	GetWakeWords(ctx context.Context, accountID string) ([]WakeWord, error)
}

// SampleRepository records uploaded wake word samples
type SampleRepository interface {
	// Add inserts a sample row; the audio file must already be durably
	// written before Add is called
	Add(ctx context.Context, sample *WakeWordSample) error

	RetrieveByAccount(ctx context.Context, accountID string) ([]WakeWordSample, error)
}

// SkillRepository provides skill display metadata and per-account settings
type SkillRepository interface {
	GetSkillDisplays(ctx context.Context) ([]SkillDisplay, error)

	// GetDisplayData returns one skill's display metadata, or NotFound
	GetDisplayData(ctx context.Context, skillDisplayID string) (*SkillDisplay, error)

	// GetInstallerSettings returns the installer settings rows for an
	// account, one per device grouping
	GetInstallerSettings(ctx context.Context, accountID string) ([]AccountSkillSetting, error)

	GetSkillSettings(ctx context.Context, accountID, skillID string) ([]AccountSkillSetting, error)

	// UpdateSkillSettings writes one settings row back for the given
	// device set
	UpdateSkillSettings(ctx context.Context, accountID string, devices []string, values SettingsValues) error
}

// AgreementRepository serves versioned legal documents
type AgreementRepository interface {
	// GetActiveAgreement returns the current version of the named
	// agreement type, or NotFound
	GetActiveAgreement(ctx context.Context, agreementType string) (*Agreement, error)
}

// GeographyRepository provides location lookups scoped to an account
type GeographyRepository interface {
	GetAccountGeographies(ctx context.Context, accountID string) ([]Geography, error)
}

// PreferenceRepository reads and writes account display preferences
type PreferenceRepository interface {
	// GetPreferences returns the account's preferences, or NotFound when
	// none have been saved yet
	GetPreferences(ctx context.Context, accountID string) (*AccountPreferences, error)

	UpsertPreferences(ctx context.Context, prefs *AccountPreferences) error
}

// VoiceRepository lists the platform's text-to-speech voices
type VoiceRepository interface {
	GetVoices(ctx context.Context) ([]Voice, error)
}
