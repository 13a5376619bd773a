package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_SampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteSample(path))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Contacts.Personal, 1)
	assert.Equal(t, "John Doe", cfg.Contacts.Personal[0].Name)
	assert.Equal(t, "+1234567890", cfg.Contacts.Personal[0].Phone)
	require.Len(t, cfg.Contacts.Personal[0].Messages, 1)
	assert.Equal(t, MessageTypeText, cfg.Contacts.Personal[0].Messages[0].Type)
	assert.Equal(t, "09:00", cfg.Contacts.Personal[0].Messages[0].Time)

	require.Len(t, cfg.Contacts.Groups, 1)
	assert.Equal(t, "Family Group", cfg.Contacts.Groups[0].Name)
	require.Len(t, cfg.Contacts.Groups[0].Messages, 2)
	assert.Equal(t, MessageTypeImage, cfg.Contacts.Groups[0].Messages[1].Type)
	assert.Equal(t, "images/motivational_quote.jpg", cfg.Contacts.Groups[0].Messages[1].ImagePath)
	assert.Equal(t, "Daily motivation!", cfg.Contacts.Groups[0].Messages[1].Caption)

	assert.Equal(t, 20, cfg.Settings.WaitTime)
	assert.True(t, cfg.Settings.CloseTab)
	assert.Equal(t, []string{".jpg", ".jpeg", ".png", ".gif"}, cfg.Settings.ImageFormats)

	assert.Equal(t, 3, cfg.MessageCount())
}

func TestLoad_DefaultsWhenSettingsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `contacts:
  personal:
    - name: Ann
      phone: "+15551230000"
      messages:
        - type: text
          content: Hi
          time: "09:00"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultWaitTime, cfg.Settings.WaitTime)
	assert.Equal(t, DefaultCloseTab, cfg.Settings.CloseTab)
	assert.Equal(t, DefaultImageFormats, cfg.Settings.ImageFormats)
	assert.Equal(t, DefaultTimezone, cfg.Settings.Timezone)
}

func TestLoad_MalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("contacts: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	cfg := Empty()
	assert.Zero(t, cfg.MessageCount())
	assert.Equal(t, DefaultWaitTime, cfg.Settings.WaitTime)
	assert.True(t, cfg.Settings.CloseTab)
}
