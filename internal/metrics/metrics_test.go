package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"repograde/internal/analyzer"
	"repograde/internal/github"
)

func TestInspect(t *testing.T) {
	entries := []github.Entry{
		{Name: "LICENSE", Type: "file"},
		{Name: "CHANGELOG.md", Type: "file"},
		{Name: "CONTRIBUTING.md", Type: "file"},
		{Name: "docs", Type: "dir"},
		{Name: "tests", Type: "dir"},
		{Name: "main.go", Type: "file"},
	}
	checks := Inspect(entries, false)
	assert.True(t, checks.HasLicense)
	assert.True(t, checks.HasChangelog)
	assert.True(t, checks.HasContributing)
	assert.True(t, checks.HasDocs)
	assert.True(t, checks.HasTests)
	assert.False(t, checks.HasCI)
}

func TestInspectEmpty(t *testing.T) {
	checks := Inspect(nil, false)
	assert.Equal(t, Checks{}, checks)
}

func TestInspectCISignals(t *testing.T) {
	assert.True(t, Inspect(nil, true).HasCI, "workflow probe")
	assert.True(t, Inspect([]github.Entry{{Name: ".travis.yml", Type: "file"}}, false).HasCI, "travis config")
	assert.True(t, Inspect([]github.Entry{{Name: "Jenkinsfile", Type: "file"}}, false).HasCI, "jenkinsfile")
}

func TestDocumentationScore(t *testing.T) {
	assert.Equal(t, 0, DocumentationScore(Checks{}))
	assert.Equal(t, 60, DocumentationScore(Checks{HasLicense: true, HasDocs: true}))
	assert.Equal(t, 100, DocumentationScore(Checks{HasLicense: true, HasDocs: true, HasChangelog: true, HasContributing: true}))
}

func TestOverallAndGrade(t *testing.T) {
	card := &ScoreCard{
		Checks: Checks{
			HasLicense: true, HasDocs: true, HasChangelog: true, HasContributing: true,
			HasTests: true, HasCI: true,
		},
		Readme:      &analyzer.ReadmeAnalysis{Score: 100},
		CodeQuality: &analyzer.CodeQualityAnalysis{Score: 100},
	}
	assert.Equal(t, 100, Overall(card))
	assert.Equal(t, "A", Grade(100))

	card.Readme.Score = 0
	card.CodeQuality.Score = 0
	card.Checks = Checks{}
	assert.Equal(t, 0, Overall(card))
	assert.Equal(t, "F", Grade(0))
}

func TestOverallWeighting(t *testing.T) {
	card := &ScoreCard{
		Checks:      Checks{HasTests: true}, // maintenance 50
		Readme:      &analyzer.ReadmeAnalysis{Score: 80},
		CodeQuality: &analyzer.CodeQualityAnalysis{Score: 60},
	}
	// 80*0.30 + 60*0.30 + 0*0.25 + 50*0.15 = 49.5, rounded to 50
	assert.Equal(t, 50, Overall(card))
	assert.Equal(t, "D", Grade(50))
}
