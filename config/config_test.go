package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "composer.yaml")

	m, err := NewManager(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "settings file should be written on first load")

	s := m.Settings()
	assert.Equal(t, "Bill Layne Insurance Agency", s.Agency.Name)
	assert.Equal(t, "team", s.Agents[0].ID)
	assert.Equal(t, 10*time.Second, s.AI.VideoPollInterval)
	assert.True(t, s.AI.Sanitize)
}

func TestLoadReadsFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.yaml")
	_, err := NewManager(path)
	require.NoError(t, err)

	t.Setenv("COMPOSER_OUTPUT_DIR", "/tmp/campaigns")
	t.Setenv("GEMINI_API_KEY", "test-key")

	m, err := NewManager(path)
	require.NoError(t, err)
	s := m.Settings()
	assert.Equal(t, "/tmp/campaigns", s.OutputDir)
	assert.Equal(t, "test-key", s.AI.APIKey)
	assert.Equal(t, "America/New_York", s.Timezone)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n"), 0o644))

	_, err := NewManager(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestAgentFallsBackToFirst(t *testing.T) {
	s := Defaults()
	assert.Equal(t, "Debbie Garner", s.Agent("debbie").Name)
	assert.Equal(t, "team", s.Agent("nobody").ID)
}

func TestSetDefaultAgent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)

	require.NoError(t, m.SetDefaultAgent("bill"))
	require.Error(t, m.SetDefaultAgent("ghost"))

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, "bill", reloaded.Settings().DefaultAgentID)
}

func TestAgencyLinks(t *testing.T) {
	a := DefaultAgency()
	assert.Equal(t, "tel:3368351993", a.PhoneLink())
	assert.Equal(t, "www.billlayneinsurance.com", a.WebsiteLabel())
	assert.Equal(t, "mailto:Bill@NCAutoandHome.com", a.MailtoLink())
}
