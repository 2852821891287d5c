package settings

import (
	"encoding/json"
	"sync"

	"github.com/postpilot/postpilot/logger"
	"github.com/postpilot/postpilot/storage"
)

const (
	geminiKeyName = "gemini_api_key"
	authTokenName = "auth_token"
)

var log = logger.New("settings")

// Service holds the locally persisted client settings in memory. Values are
// seeded from the setting store once at construction and mirrored back on
// every change, so memory and store converge immediately after a set.
type Service struct {
	store storage.SettingStorage

	mu        sync.RWMutex
	geminiKey string
	authToken string
}

func NewService(store storage.SettingStorage) *Service {
	s := &Service{store: store}

	value, err := store.GetKey(geminiKeyName)
	if err == nil {
		s.geminiKey = decodeStoredKey(value)
	}

	token, err := store.GetKey(authTokenName)
	if err == nil {
		s.authToken = token
	}

	return s
}

// decodeStoredKey undoes the JSON encoding applied on store. Values written
// before encoding was introduced are returned as-is.
func decodeStoredKey(value string) string {
	var key string
	if err := json.Unmarshal([]byte(value), &key); err != nil {
		log.Debug().
			Str("name", geminiKeyName).
			Msg("stored key is not JSON-encoded, using raw value")
		return value
	}
	return key
}

// GeminiKey returns the configured Gemini API key, or an empty string when
// unset. The key format is opaque to this layer.
func (s *Service) GeminiKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.geminiKey
}

// SetGeminiKey updates the in-memory key and mirrors it to the setting store.
// The stored value is JSON-encoded; decodeStoredKey reverses this on load.
func (s *Service) SetGeminiKey(key string) error {
	s.mu.Lock()
	s.geminiKey = key
	s.mu.Unlock()

	encoded, err := json.Marshal(key)
	if err != nil {
		return err
	}

	return s.store.SetKey(geminiKeyName, string(encoded))
}

func (s *Service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authToken
}

func (s *Service) SetToken(token string) error {
	s.mu.Lock()
	s.authToken = token
	s.mu.Unlock()

	return s.store.SetKey(authTokenName, token)
}

// ClearToken evicts the stored auth token, forcing re-authentication on the
// next request that needs one.
func (s *Service) ClearToken() error {
	s.mu.Lock()
	s.authToken = ""
	s.mu.Unlock()

	err := s.store.DeleteKey(authTokenName)
	if err != nil && err != storage.ErrKeyNotFound {
		return err
	}
	return nil
}
