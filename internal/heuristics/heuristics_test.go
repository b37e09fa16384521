package heuristics

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

const richReadme = "# MyProject\n\n" +
	"[![build](https://img.shields.io/badge/build-passing-green)](https://ci.example.com)\n\n" +
	"MyProject does a great many useful things. " + longFiller + "\n\n" +
	"## Installation\n\nRun the installer.\n\n" +
	"## Usage\n\n```bash\nmyproject run\n```\n\n" +
	"See the [docs](https://example.com/docs) for more.\n"

const longFiller = "This paragraph exists to push the readme well past the five hundred character threshold so the length check passes. It repeats itself a little, the way real introductions do, describing features, goals, and the audience the project serves in more words than strictly necessary."

func TestScoreReadmeRich(t *testing.T) {
	score, suggestions := ScoreReadme(richReadme)
	if score != 100 {
		t.Errorf("score: got %d, want 100", score)
	}
	if len(suggestions) < 3 || len(suggestions) > 5 {
		t.Errorf("suggestions: got %d entries, want 3-5", len(suggestions))
	}
}

func TestScoreReadmeEmpty(t *testing.T) {
	score, suggestions := ScoreReadme("")
	if score != 0 {
		t.Errorf("score: got %d, want 0", score)
	}
	if len(suggestions) < 3 || len(suggestions) > 5 {
		t.Errorf("suggestions: got %d entries, want 3-5", len(suggestions))
	}
}

func TestScoreReadmeMediumLength(t *testing.T) {
	content := strings.Repeat("words and more words ", 12) // ~250 chars, no structure
	score, _ := ScoreReadme(content)
	if score != 10 {
		t.Errorf("score: got %d, want 10 for length-only credit", score)
	}
}

func TestScoreReadmeSuggestsMissingSections(t *testing.T) {
	_, suggestions := ScoreReadme("# Project\n\nShort description.")
	joined := strings.ToLower(strings.Join(suggestions, " "))
	if !strings.Contains(joined, "installation") {
		t.Errorf("expected an installation suggestion, got %v", suggestions)
	}
	if !strings.Contains(joined, "usage") {
		t.Errorf("expected a usage suggestion, got %v", suggestions)
	}
}

func TestRoadmapMissingTestsAndCI(t *testing.T) {
	steps := Roadmap(RepoContext{LastUpdate: time.Now(), HasTests: false, HasCICD: false})
	if !anyMatch(steps, `(?i)immediate.*test`) {
		t.Errorf("expected an immediate testing step, got %v", steps)
	}
	if !anyMatch(steps, `(?i)CI/CD`) {
		t.Errorf("expected a CI/CD step, got %v", steps)
	}
}

func TestRoadmapStaleDependencies(t *testing.T) {
	steps := Roadmap(RepoContext{
		LastUpdate: time.Now().AddDate(0, 0, -200),
		HasTests:   true,
		HasCICD:    true,
	})
	if !anyMatch(steps, `(?i)dependencies`) {
		t.Errorf("expected a dependency update step, got %v", steps)
	}
}

func TestRoadmapHealthyRepo(t *testing.T) {
	steps := Roadmap(RepoContext{LastUpdate: time.Now(), HasTests: true, HasCICD: true})
	if anyMatch(steps, `(?i)immediate.*test`) {
		t.Errorf("healthy repo should have no immediate testing step, got %v", steps)
	}
	if anyMatch(steps, `(?i)dependencies`) {
		t.Errorf("fresh repo should have no dependency step, got %v", steps)
	}
	if len(steps) != 2 {
		t.Errorf("expected only the two long-term steps, got %v", steps)
	}
}

func TestRoadmapOrdering(t *testing.T) {
	steps := Roadmap(RepoContext{
		LastUpdate: time.Now().AddDate(0, 0, -365),
		HasTests:   false,
		HasCICD:    false,
	})
	if len(steps) != 5 {
		t.Fatalf("expected 5 steps, got %d: %v", len(steps), steps)
	}
	if !strings.HasPrefix(steps[0], "Immediate:") || !strings.HasPrefix(steps[1], "Immediate:") {
		t.Errorf("immediate steps must come first, got %v", steps)
	}
	if !strings.HasPrefix(steps[3], "Long-term:") || !strings.HasPrefix(steps[4], "Long-term:") {
		t.Errorf("long-term steps must come last, got %v", steps)
	}
}

func anyMatch(items []string, pattern string) bool {
	re := regexp.MustCompile(pattern)
	for _, item := range items {
		if re.MatchString(item) {
			return true
		}
	}
	return false
}
