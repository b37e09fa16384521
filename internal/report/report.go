package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"repograde/internal/metrics"
)

func JSON(card metrics.ScoreCard) (string, error) {
	b, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal score card: %w", err)
	}
	return string(b) + "\n", nil
}

func Markdown(card metrics.ScoreCard) string {
	var out strings.Builder

	fmt.Fprintf(&out, "# Repository Quality Report — %s\n\n", card.Repository)
	if card.Description != "" {
		fmt.Fprintf(&out, "%s\n\n", card.Description)
	}
	fmt.Fprintf(&out, "**Overall: %d/100 (%s)** %s\n\n", card.Overall, card.Grade, gradeEmoji(card.Grade))
	fmt.Fprintf(&out, "Scored by %s", card.ScoredBy)
	if !card.GeneratedAt.IsZero() {
		fmt.Fprintf(&out, " at %s", card.GeneratedAt.Format(time.RFC1123))
	}
	out.WriteString("\n\n")

	out.WriteString("## Scores\n\n")
	fmt.Fprintf(&out, "| Component | Score |\n|---|---|\n")
	fmt.Fprintf(&out, "| README | %d |\n", card.Readme.Score)
	fmt.Fprintf(&out, "| Code quality | %d |\n", card.CodeQuality.Score)
	fmt.Fprintf(&out, "| Documentation | %d |\n\n", metrics.DocumentationScore(card.Checks))

	out.WriteString("## Project health\n\n")
	writeCheck(&out, "License", card.Checks.HasLicense)
	writeCheck(&out, "Changelog", card.Checks.HasChangelog)
	writeCheck(&out, "Contributing guide", card.Checks.HasContributing)
	writeCheck(&out, "Documentation", card.Checks.HasDocs)
	writeCheck(&out, "Tests", card.Checks.HasTests)
	writeCheck(&out, "CI/CD", card.Checks.HasCI)
	out.WriteString("\n")

	if len(card.Readme.Suggestions) > 0 {
		out.WriteString("## README suggestions\n\n")
		writeList(&out, card.Readme.Suggestions)
	}
	if len(card.CodeQuality.Insights) > 0 {
		out.WriteString("## Code quality insights\n\n")
		writeList(&out, card.CodeQuality.Insights)
	}
	if len(card.Security) > 0 {
		out.WriteString("## Security concerns\n\n")
		writeList(&out, card.Security)
	}
	if len(card.Roadmap) > 0 {
		out.WriteString("## Modernization roadmap\n\n")
		for i, step := range card.Roadmap {
			fmt.Fprintf(&out, "%d. %s\n", i+1, step)
		}
		out.WriteString("\n")
	}

	return out.String()
}

func writeCheck(out *strings.Builder, label string, ok bool) {
	mark := "❌"
	if ok {
		mark = "✅"
	}
	fmt.Fprintf(out, "- %s %s\n", mark, label)
}

func writeList(out *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(out, "- %s\n", item)
	}
	out.WriteString("\n")
}

func gradeEmoji(grade string) string {
	switch grade {
	case "A":
		return "🟢"
	case "B":
		return "🟢"
	case "C":
		return "🟡"
	case "D":
		return "🟠"
	default:
		return "🔴"
	}
}
