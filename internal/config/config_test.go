package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, settings.OutputFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "json")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, settings.OutputFormat)
	assert.Equal(t, "ghp_test", settings.GitHubToken)
	assert.Equal(t, "xoxb-test", settings.SlackBotToken)
	assert.Equal(t, "C123", settings.SlackChannelID)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
