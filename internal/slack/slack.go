package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"repograde/internal/metrics"
)

type Config struct {
	BotToken  string
	ChannelID string
}

func (c Config) Enabled() bool {
	return c.BotToken != "" && c.ChannelID != ""
}

// SendScoreCard posts a block-formatted summary of a finished score card.
func SendScoreCard(card metrics.ScoreCard, config Config) error {
	api := slack.New(config.BotToken)

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			"plain_text",
			fmt.Sprintf("%s Repository Quality — %s", gradeEmoji(card.Grade), card.Repository),
			false, false,
		)),
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Overall:* %d/100 (%s)\n*README:* %d\n*Code quality:* %d\n*Scored by:* %s",
					card.Overall, card.Grade, card.Readme.Score, card.CodeQuality.Score, card.ScoredBy),
				false, false),
			nil, nil,
		),
	}

	if len(card.Security) > 0 {
		concerns := make([]string, len(card.Security))
		for i, c := range card.Security {
			concerns[i] = fmt.Sprintf("• %s", c)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Security concerns:*\n%s", strings.Join(concerns, "\n")),
				false, false),
			nil, nil,
		))
	}

	if len(card.Roadmap) > 0 {
		steps := make([]string, len(card.Roadmap))
		for i, s := range card.Roadmap {
			steps[i] = fmt.Sprintf("%d. %s", i+1, s)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("*Roadmap:*\n%s", strings.Join(steps, "\n")),
				false, false),
			nil, nil,
		))
	}

	if !card.GeneratedAt.IsZero() {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("mrkdwn",
				fmt.Sprintf("Generated at: %s", card.GeneratedAt.Format(time.RFC1123)),
				false, false),
		))
	}

	_, msgTimestamp, err := api.PostMessage(
		config.ChannelID,
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		log.Err(err).Str("channel", config.ChannelID).Msg("Failed to post Slack message")
		return err
	}

	log.Info().
		Str("channel", config.ChannelID).
		Str("timestamp", msgTimestamp).
		Msg("Score card posted to Slack")
	return nil
}

func gradeEmoji(grade string) string {
	switch grade {
	case "A", "B":
		return "🟢"
	case "C":
		return "🟡"
	case "D":
		return "🟠"
	default:
		return "🔴"
	}
}
