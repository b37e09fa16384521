package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	_ "github.com/joho/godotenv/autoload"
)

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Settings covers the CLI-level knobs: rendering, GitHub auth, and optional
// Slack delivery. AI provider selection lives in the ai factory, which reads
// its own environment through an explicit lookup function.
type Settings struct {
	OutputFormat   string
	GitHubToken    string
	SlackBotToken  string
	SlackChannelID string
}

// Load resolves settings from the environment and, when present, a
// repograde.yaml in the working directory. Environment values win.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("repograde")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetDefault("output_format", FormatMarkdown)

	_ = v.BindEnv("output_format", "OUTPUT_FORMAT")
	_ = v.BindEnv("github_token", "GITHUB_TOKEN")
	_ = v.BindEnv("slack_bot_token", "SLACK_BOT_TOKEN")
	_ = v.BindEnv("slack_channel_id", "SLACK_CHANNEL_ID")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	s := &Settings{
		OutputFormat:   strings.ToLower(v.GetString("output_format")),
		GitHubToken:    v.GetString("github_token"),
		SlackBotToken:  v.GetString("slack_bot_token"),
		SlackChannelID: v.GetString("slack_channel_id"),
	}
	if s.OutputFormat != FormatMarkdown && s.OutputFormat != FormatJSON {
		return nil, fmt.Errorf("invalid output format %q, expected %s or %s", s.OutputFormat, FormatMarkdown, FormatJSON)
	}
	return s, nil
}
