package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is the full composer configuration. It is read from a YAML file and
// then overridden by environment variables.
type Settings struct {
	Agency         Agency   `yaml:"agency"`
	Agents         []Agent  `yaml:"agents" validate:"required,min=1,dive"`
	DefaultAgentID string   `yaml:"defaultAgentId"`
	OutputDir      string   `yaml:"outputDir" env:"COMPOSER_OUTPUT_DIR" validate:"required"`
	Timezone       string   `yaml:"timezone" env:"COMPOSER_TIMEZONE" validate:"required"`
	Log            Log      `yaml:"log"`
	Store          Store    `yaml:"store"`
	AI             AI       `yaml:"ai"`
	Gmail          Gmail    `yaml:"gmail"`
	Preview        Preview  `yaml:"preview"`
	Campaign       Campaign `yaml:"campaign"`
}

type Log struct {
	File  string `yaml:"file" env:"COMPOSER_LOG_FILE" validate:"required"`
	Level string `yaml:"level" env:"COMPOSER_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

type Store struct {
	Backend   string `yaml:"backend" env:"COMPOSER_STORE" validate:"oneof=file redis"`
	Path      string `yaml:"path" env:"COMPOSER_STORE_PATH"`
	RedisAddr string `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisDB   int    `yaml:"redisDb" env:"REDIS_DB"`
	// Prefix is prepended to the well-known collection keys in redis.
	Prefix string `yaml:"prefix"`
}

type AI struct {
	APIKey            string        `yaml:"-" env:"GEMINI_API_KEY"`
	TextModel         string        `yaml:"textModel" validate:"required"`
	ImageModel        string        `yaml:"imageModel" validate:"required"`
	VideoModel        string        `yaml:"videoModel" validate:"required"`
	Timeout           time.Duration `yaml:"timeout" env:"COMPOSER_AI_TIMEOUT"`
	VideoPollInterval time.Duration `yaml:"videoPollInterval"`
	VideoMaxDuration  time.Duration `yaml:"videoMaxDuration"`
	// VideoPlayerURL is a hosted page that plays ?video=<uri>; the hero
	// image of a video email links there.
	VideoPlayerURL string `yaml:"videoPlayerUrl" validate:"omitempty,url"`
	// Sanitize restricts AI-authored HTML to a safe subset before it is embedded.
	Sanitize bool `yaml:"sanitize"`
}

type Gmail struct {
	CredentialsFile string `yaml:"credentialsFile"`
	TokenFile       string `yaml:"tokenFile"`
}

type Preview struct {
	Addr string `yaml:"addr" env:"COMPOSER_PREVIEW_ADDR"`
}

type Campaign struct {
	WarnKB float64 `yaml:"warnKb"`
	ClipKB float64 `yaml:"clipKb"`
}

// Defaults returns the settings written when no config file exists yet.
func Defaults() Settings {
	return Settings{
		Agency:         DefaultAgency(),
		Agents:         DefaultAgents(),
		DefaultAgentID: "team",
		OutputDir:      "out",
		Timezone:       "America/New_York",
		Log:            Log{File: "composer.log", Level: "info"},
		Store:          Store{Backend: "file", Path: "data", RedisAddr: "localhost:6379"},
		AI: AI{
			TextModel:         "gemini-2.5-flash",
			ImageModel:        "imagen-4.0-generate-001",
			VideoModel:        "veo-2.0-generate-001",
			Timeout:           90 * time.Second,
			VideoPollInterval: 10 * time.Second,
			VideoMaxDuration:  10 * time.Minute,
			Sanitize:          true,
		},
		Gmail:    Gmail{CredentialsFile: "credentials.json", TokenFile: "token.json"},
		Preview:  Preview{Addr: "127.0.0.1:8089"},
		Campaign: Campaign{WarnKB: 80, ClipKB: 102},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Agent returns the agent with the given id, or the first agent.
func (s Settings) Agent(id string) Agent {
	for _, a := range s.Agents {
		if a.ID == id {
			return a
		}
	}
	if len(s.Agents) == 0 {
		return Agent{}
	}
	return s.Agents[0]
}

// Manager handles loading, saving, and accessing the composer settings.
type Manager struct {
	filePath string
	settings *Settings
	mu       sync.RWMutex
	validate *validator.Validate
}

// NewManager loads settings from filePath, creating the file with defaults
// when it does not exist.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{
		filePath: filePath,
		validate: validator.New(),
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load re-reads the settings file and applies environment overrides.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	s := Defaults()
	data, err := os.ReadFile(m.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		m.settings = &s
		if err := m.save(); err != nil {
			return fmt.Errorf("config: write defaults: %w", err)
		}
	case err != nil:
		return fmt.Errorf("config: read %s: %w", m.filePath, err)
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("config: parse %s: %w", m.filePath, err)
		}
	}

	if err := env.Parse(&s); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if s.AI.APIKey == "" {
		s.AI.APIKey = os.Getenv("API_KEY")
	}
	if err := m.validate.Struct(s); err != nil {
		return fmt.Errorf("config: invalid settings: %w", err)
	}
	m.settings = &s
	return nil
}

// save writes the current settings. Callers must hold the lock.
func (m *Manager) save() error {
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(m.filePath, data, 0o644)
}

// Settings returns a copy of the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := *m.settings
	s.Agents = append([]Agent(nil), m.settings.Agents...)
	return s
}

// SetDefaultAgent remembers the agent selected last and saves.
func (m *Manager) SetDefaultAgent(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings.DefaultAgentID == id {
		return nil
	}
	found := false
	for _, a := range m.settings.Agents {
		if a.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: unknown agent %q", id)
	}
	m.settings.DefaultAgentID = id
	return m.save()
}
