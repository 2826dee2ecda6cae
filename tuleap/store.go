package tuleap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	sectionName   = "tuleap"
	apiBaseURLKey = sectionName + ".apiBaseUrl"
	gitBaseURLKey = sectionName + ".gitBaseUrl"
)

// Store holds the Tuleap server settings of the running process. Values are loaded from a YAML
// file when the store is created and written back by Apply and Save. The setters only change
// the in-memory values.
type Store struct {
	path     string
	v        *viper.Viper
	mu       sync.RWMutex
	settings Settings
	notifier Notifier
}

// NewStore creates a store backed by the file at path. A missing file is not an error, the
// defaults are used until the first Save.
func NewStore(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(apiBaseURLKey, OrangeForgeAPIURL)
	v.SetDefault(gitBaseURLKey, OrangeForgeGitHTTPSURL)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
		log.Info().Msgf("No settings file found at %s, using defaults", path)
	}

	s := &Store{path: path, v: v}
	s.settings = s.fromViper()
	return s, nil
}

// WithNotifier makes Apply announce new settings through n.
func (s *Store) WithNotifier(n Notifier) *Store {
	s.notifier = n
	return s
}

// Path returns the location of the settings file
func (s *Store) Path() string {
	return s.path
}

func (s *Store) APIBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.APIBaseURL
}

func (s *Store) SetAPIBaseURL(apiBaseURL string) {
	s.mu.Lock()
	s.settings.APIBaseURL = apiBaseURL
	s.mu.Unlock()
}

func (s *Store) GitBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.GitBaseURL
}

func (s *Store) SetGitBaseURL(gitBaseURL string) {
	s.mu.Lock()
	s.settings.GitBaseURL = gitBaseURL
	s.mu.Unlock()
}

// Settings returns a copy of the current values
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Apply replaces both values and persists them. When the file cannot be written the
// previous values are kept. The notifier (if any) is only told about saved changes.
func (s *Store) Apply(settings Settings) error {
	s.mu.Lock()
	err := s.write(settings)
	if err == nil {
		s.settings = settings
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	log.Info().Msgf("Applied Tuleap settings: api=%s git=%s", settings.APIBaseURL, settings.GitBaseURL)
	if s.notifier != nil {
		s.notifier.SettingsChanged(settings)
	}
	return nil
}

// Save persists the current values
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.write(s.settings)
}

// Watch reloads the values whenever the settings file is changed by someone else.
// Reloaded values that differ from the current ones are passed to the notifier like
// applied ones. The file has to exist when Watch is called.
func (s *Store) Watch() {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		settings := s.fromViper()
		s.mu.Lock()
		changed := settings != s.settings
		s.settings = settings
		s.mu.Unlock()
		log.Info().Msgf("Reloaded Tuleap settings after %s on %s", e.Op, e.Name)
		if changed && s.notifier != nil {
			s.notifier.SettingsChanged(settings)
		}
	})
	s.v.WatchConfig()
}

func (s *Store) fromViper() Settings {
	return Settings{
		APIBaseURL: s.v.GetString(apiBaseURLKey),
		GitBaseURL: s.v.GetString(gitBaseURLKey),
	}
}

// write uses a throw-away viper instance: values set on s.v would shadow the
// file on later reloads.
func (s *Store) write(settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating settings directory: %w", err)
	}
	w := viper.New()
	w.SetConfigType("yaml")
	w.Set(apiBaseURLKey, settings.APIBaseURL)
	w.Set(gitBaseURLKey, settings.GitBaseURL)
	if err := w.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("error writing settings file %s: %w", s.path, err)
	}
	return nil
}
