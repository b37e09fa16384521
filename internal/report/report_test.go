package report

import (
	"encoding/json"
	"strings"
	"testing"

	"repograde/internal/analyzer"
	"repograde/internal/metrics"
)

func sampleCard() metrics.ScoreCard {
	return metrics.ScoreCard{
		Repository:  "octocat/hello",
		Description: "A test repo",
		Languages:   []string{"Go"},
		Checks:      metrics.Checks{HasLicense: true, HasTests: true},
		Readme:      &analyzer.ReadmeAnalysis{Score: 80, Suggestions: []string{"add badges"}},
		CodeQuality: &analyzer.CodeQualityAnalysis{Score: 70, Insights: []string{"clear layering"}},
		Security:    []string{"token in sample config"},
		Roadmap:     []string{"add CI"},
		Overall:     68,
		Grade:       "C",
		ScoredBy:    "OpenAI",
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(sampleCard())

	for _, want := range []string{
		"# Repository Quality Report — octocat/hello",
		"**Overall: 68/100 (C)**",
		"| README | 80 |",
		"| Code quality | 70 |",
		"✅ License",
		"❌ CI/CD",
		"add badges",
		"clear layering",
		"token in sample config",
		"1. add CI",
		"Scored by OpenAI",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	card := sampleCard()
	card.Security = nil
	out := Markdown(card)
	if strings.Contains(out, "Security concerns") {
		t.Error("empty security section should be omitted")
	}
}

func TestJSON(t *testing.T) {
	out, err := JSON(sampleCard())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["repository"] != "octocat/hello" {
		t.Errorf("repository: got %v", decoded["repository"])
	}
	if decoded["overall"] != float64(68) {
		t.Errorf("overall: got %v", decoded["overall"])
	}
}
