package repository

import (
	"encoding/json"
	"log"

	"wealthfolio/internal/models"
	"wealthfolio/internal/secrets"
	"wealthfolio/internal/storage"
)

const settingsKey = "settings"

// DefaultKeywords pre-selects the recurring utility charges on Russian
// invoices. Users replace the list via the settings endpoint.
var DefaultKeywords = []string{
	"ВОДООТВЕДЕНИЕ",
	"ГОРЯЧЕЕ В/С",
	"ХОЛОДНОЕ В/С",
	"ЭЛЕКТРОСНАБЖЕНИЕ ОДН",
	"ЭЛЕКТРИЧЕСТВО",
}

// storedSettings is the persisted shape; the API key stays encrypted and
// never appears in models.Settings responses.
type storedSettings struct {
	Keywords []string `json:"keywords"`
	APIKey   []byte   `json:"api_key,omitempty"`
}

// SettingsRepository stores the keyword list and the encrypted Gemini key.
type SettingsRepository struct {
	backend   storage.Backend
	encryptor *secrets.Encryptor
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(backend storage.Backend, encryptor *secrets.Encryptor) *SettingsRepository {
	return &SettingsRepository{backend: backend, encryptor: encryptor}
}

// Get returns the current settings, falling back to defaults when nothing
// was stored yet.
func (r *SettingsRepository) Get() (models.Settings, error) {
	stored, err := r.load()
	if err != nil {
		return models.Settings{}, err
	}
	return models.Settings{Keywords: stored.Keywords}, nil
}

// Update replaces the keyword list, keeping the stored API key intact.
func (r *SettingsRepository) Update(s models.Settings) error {
	stored, err := r.load()
	if err != nil {
		return err
	}
	if s.Keywords == nil {
		s.Keywords = []string{}
	}
	stored.Keywords = s.Keywords
	return r.save(stored)
}

// SetAPIKey encrypts and stores the Gemini API key. An empty key clears it.
func (r *SettingsRepository) SetAPIKey(key string) error {
	stored, err := r.load()
	if err != nil {
		return err
	}

	if key == "" {
		stored.APIKey = nil
		return r.save(stored)
	}

	sealed, err := r.encryptor.Encrypt(key)
	if err != nil {
		return err
	}
	stored.APIKey = sealed
	return r.save(stored)
}

// APIKey returns the decrypted stored key, or "" when none is stored or
// decryption fails (for example after rotating the encryption secret).
func (r *SettingsRepository) APIKey() string {
	stored, err := r.load()
	if err != nil || len(stored.APIKey) == 0 {
		return ""
	}
	key, err := r.encryptor.Decrypt(stored.APIKey)
	if err != nil {
		log.Printf("Stored API key unreadable: %v", err)
		return ""
	}
	return key
}

func (r *SettingsRepository) load() (storedSettings, error) {
	defaults := storedSettings{Keywords: append([]string(nil), DefaultKeywords...)}

	data, err := r.backend.Get(settingsKey)
	if err != nil {
		return storedSettings{}, err
	}
	if data == nil {
		return defaults, nil
	}

	var stored storedSettings
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("Corrupt settings blob, resetting: %v", err)
		return defaults, nil
	}
	if stored.Keywords == nil {
		stored.Keywords = append([]string(nil), DefaultKeywords...)
	}
	return stored, nil
}

func (r *SettingsRepository) save(s storedSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.backend.Set(settingsKey, data)
}
