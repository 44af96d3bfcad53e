package storage

import (
	"encoding/json"
	"time"
)

// Account identifies a marketplace user
type Account struct {
	ID           string `json:"id"`
	EmailAddress string `json:"emailAddress"`
	Username     string `json:"username"`
	Membership   string `json:"membership,omitempty"`
}

// Device belongs to exactly one account
type Device struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"-"`
	Name        string    `json:"name"`
	Platform    string    `json:"platform"`
	CoreVersion string    `json:"coreVersion"`
	AddedAt     time.Time `json:"addedAt"`
}

// WakeWord is a wake word configured on an account
type WakeWord struct {
	ID          string `json:"id"`
	AccountID   string `json:"-"`
	SettingName string `json:"settingName"`
	Engine      string `json:"engine"`
}

// WakeWordSample references an uploaded audio file awaiting classification.
// DirectoryGroup stays nil until the external batch job assigns it.
type WakeWordSample struct {
	WakeWordID     string    `json:"wakeWordId"`
	AccountID      string    `json:"accountId"`
	AudioFileName  string    `json:"audioFileName"`
	AudioFileDate  time.Time `json:"audioFileDate"`
	DirectoryGroup *string   `json:"directoryGroup,omitempty"`
}

// SkillDisplay is read-only display metadata for a marketplace skill
type SkillDisplay struct {
	ID      string `json:"id"`
	SkillID string `json:"skillId"`
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
}

// SkillEntry is one element of an installer settings section
type SkillEntry struct {
	Name string `json:"name"`
}

// Installer settings section names
const (
	InstallSection   = "to_install"
	UninstallSection = "to_remove"
)

// SettingsValues is a per-skill settings blob. The two installer sections
// hold sequences of SkillEntry; other keys carry arbitrary skill settings.
type SettingsValues map[string]interface{}

// Section returns the named installer section as a typed entry list. It
// expects normalized values (see Normalize); anything else yields an empty
// list.
func (v SettingsValues) Section(name string) []SkillEntry {
	raw, ok := v[name]
	if !ok {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var entries []SkillEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// SetSection replaces the named installer section
func (v SettingsValues) SetSection(name string, entries []SkillEntry) {
	v[name] = entries
}

// Normalize rewrites legacy representations in place: historical rows stored
// installer sections as JSON-encoded strings rather than arrays. Migration
// happens once, at read time, so sections are always structured sequences
// by the time business logic sees them.
func (v SettingsValues) Normalize() {
	for _, section := range []string{InstallSection, UninstallSection} {
		raw, ok := v[section]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var entries []SkillEntry
		if err := json.Unmarshal([]byte(str), &entries); err != nil {
			// Unparseable legacy value; treat as empty rather than
			// carrying the string forward
			v[section] = []SkillEntry{}
			continue
		}
		v[section] = entries
	}
}

// AccountSkillSetting is a per-account, per-device-set settings blob for one
// skill
type AccountSkillSetting struct {
	AccountID      string         `json:"-"`
	Devices        []string       `json:"devices"`
	SettingsValues SettingsValues `json:"settingsValues"`
}

// Agreement is a versioned legal document served by the public agreement
// endpoint
type Agreement struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Version       string    `json:"version"`
	Content       string    `json:"content"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

// Geography is a location configured on an account
type Geography struct {
	ID       string `json:"id"`
	Country  string `json:"country"`
	Region   string `json:"region"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
}

// AccountPreferences holds per-account display preferences
type AccountPreferences struct {
	AccountID         string `json:"-"`
	DateFormat        string `json:"dateFormat"`
	TimeFormat        string `json:"timeFormat"`
	MeasurementSystem string `json:"measurementSystem"`
}

// Voice is a text-to-speech voice available on the platform
type Voice struct {
	ID          string `json:"id"`
	SettingName string `json:"settingName"`
	DisplayName string `json:"displayName"`
	Engine      string `json:"engine"`
}
