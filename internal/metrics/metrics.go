// Package metrics turns fetched repository facts into a deterministic score
// card. AI-derived numbers (readme, code quality) arrive already computed;
// everything here is presence checks and weighted arithmetic.
package metrics

import (
	"strings"
	"time"

	"repograde/internal/analyzer"
	"repograde/internal/github"
)

type Checks struct {
	HasLicense      bool `json:"hasLicense"`
	HasChangelog    bool `json:"hasChangelog"`
	HasContributing bool `json:"hasContributing"`
	HasDocs         bool `json:"hasDocs"`
	HasTests        bool `json:"hasTests"`
	HasCI           bool `json:"hasCI"`
}

type ScoreCard struct {
	Repository  string                        `json:"repository"`
	Description string                        `json:"description,omitempty"`
	Languages   []string                      `json:"languages,omitempty"`
	Stars       int                           `json:"stars"`
	LastUpdate  time.Time                     `json:"lastUpdate"`
	Checks      Checks                        `json:"checks"`
	Readme      *analyzer.ReadmeAnalysis      `json:"readme"`
	CodeQuality *analyzer.CodeQualityAnalysis `json:"codeQuality"`
	Security    []string                      `json:"securityConcerns"`
	Roadmap     []string                      `json:"roadmap"`
	Overall     int                           `json:"overall"`
	Grade       string                        `json:"grade"`
	ScoredBy    string                        `json:"scoredBy"`
	GeneratedAt time.Time                     `json:"generatedAt"`
}

// Inspect derives presence checks from a top-level content listing plus the
// workflow probe.
func Inspect(entries []github.Entry, hasWorkflows bool) Checks {
	checks := Checks{HasCI: hasWorkflows}
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		switch {
		case strings.HasPrefix(name, "license") || strings.HasPrefix(name, "copying"):
			checks.HasLicense = true
		case strings.HasPrefix(name, "changelog"):
			checks.HasChangelog = true
		case strings.HasPrefix(name, "contributing"):
			checks.HasContributing = true
		case name == "docs" || name == "doc":
			checks.HasDocs = true
		case isTestEntry(name):
			checks.HasTests = true
		case !checks.HasCI && isCIConfig(name):
			checks.HasCI = true
		}
	}
	return checks
}

func isTestEntry(name string) bool {
	return name == "test" || name == "tests" || name == "spec" ||
		strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, ".test.js") ||
		strings.HasSuffix(name, ".test.ts") || strings.HasSuffix(name, "_test.py")
}

func isCIConfig(name string) bool {
	switch name {
	case ".travis.yml", ".gitlab-ci.yml", "jenkinsfile", ".circleci", "azure-pipelines.yml":
		return true
	}
	return false
}

// DocumentationScore rates the checks 0-100: license and docs weigh more
// than changelog and contributing guide.
func DocumentationScore(c Checks) int {
	score := 0
	if c.HasLicense {
		score += 30
	}
	if c.HasDocs {
		score += 30
	}
	if c.HasChangelog {
		score += 20
	}
	if c.HasContributing {
		score += 20
	}
	return score
}

// Overall combines the component scores with fixed weights: readme 30%,
// code quality 30%, documentation 25%, maintenance signals 15%.
func Overall(card *ScoreCard) int {
	maintenance := 0
	if card.Checks.HasTests {
		maintenance += 50
	}
	if card.Checks.HasCI {
		maintenance += 50
	}

	weighted := float64(card.Readme.Score)*0.30 +
		float64(card.CodeQuality.Score)*0.30 +
		float64(DocumentationScore(card.Checks))*0.25 +
		float64(maintenance)*0.15
	score := int(weighted + 0.5)
	if score > 100 {
		score = 100
	}
	return score
}

func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
