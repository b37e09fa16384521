// Package heuristics holds the deterministic scoring logic used when no AI
// provider is configured or a provider call fails. Everything here is pure:
// no I/O, no clock reads beyond computing an age, outputs clamped to their
// documented bounds.
package heuristics

import (
	"regexp"
	"strings"
	"time"
)

// NeutralArchitectureScore stands in for a code-quality score when no signal
// is available either way.
const NeutralArchitectureScore = 50

// StaleDependencyDays is the age beyond which a repository earns a
// dependency-refresh roadmap item.
const StaleDependencyDays = 180

// MaxScore bounds every 0-100 quality score.
const MaxScore = 100

type RepoContext struct {
	Technologies []string
	LastUpdate   time.Time
	HasTests     bool
	HasCICD      bool
}

var (
	headingPattern = regexp.MustCompile(`(?m)^# `)
	installPattern = regexp.MustCompile(`(?im)^#{1,6}[^\n]*(install|setup|getting started)`)
	usagePattern   = regexp.MustCompile(`(?im)^#{1,6}[^\n]*(usage|example|quick start)`)
	linkPattern    = regexp.MustCompile(`\[[^\]]*\]\(https?://`)
	badgePattern   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*(badge|shields\.io)[^)]*\)`)
)

// ScoreReadme rates readme content 0-100 from structural signals and returns
// 3-5 improvement suggestions. Each signal contributes a fixed number of
// points; the sum is capped at MaxScore.
func ScoreReadme(content string) (int, []string) {
	score := 0
	var suggestions []string

	switch {
	case len(content) >= 500:
		score += 20
	case len(content) >= 200:
		score += 10
		suggestions = append(suggestions, "Expand the README with more detail about what the project does")
	default:
		suggestions = append(suggestions, "Expand the README with more detail about what the project does")
	}

	if headingPattern.MatchString(content) {
		score += 15
	} else {
		suggestions = append(suggestions, "Add a top-level heading with the project name")
	}

	if installPattern.MatchString(content) {
		score += 15
	} else {
		suggestions = append(suggestions, "Add an installation or setup section")
	}

	if usagePattern.MatchString(content) {
		score += 15
	} else {
		suggestions = append(suggestions, "Add a usage section with examples")
	}

	if strings.Contains(content, "```") {
		score += 15
	} else {
		suggestions = append(suggestions, "Include fenced code blocks showing how to use the project")
	}

	if linkPattern.MatchString(content) {
		score += 10
	} else {
		suggestions = append(suggestions, "Link to related documentation or resources")
	}

	if badgePattern.MatchString(content) {
		score += 10
	} else {
		suggestions = append(suggestions, "Add status badges (build, version, license)")
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score, boundSuggestions(suggestions)
}

// Roadmap produces a prioritized modernization list. Order is fixed:
// immediate items first (testing, CI/CD), then a dependency refresh when the
// repository is stale, then the two standing long-term items.
func Roadmap(rc RepoContext) []string {
	var steps []string
	if !rc.HasTests {
		steps = append(steps, "Immediate: set up a testing framework and add unit tests")
	}
	if !rc.HasCICD {
		steps = append(steps, "Immediate: add a CI/CD pipeline (e.g. GitHub Actions)")
	}
	if daysSince(rc.LastUpdate) > StaleDependencyDays {
		steps = append(steps, "Update project dependencies; the repository has not been touched in over 6 months")
	}
	steps = append(steps,
		"Long-term: expand project documentation and contribution guides",
		"Long-term: raise test coverage and add integration tests",
	)
	return steps
}

func daysSince(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return int(time.Since(t).Hours() / 24)
}

// boundSuggestions pads to at least 3 entries and trims to at most 5,
// matching what the AI path is prompted to return.
func boundSuggestions(suggestions []string) []string {
	fillers := []string{
		"Keep the README up to date as the project evolves",
		"Add a contributing section describing how to get involved",
		"Document supported versions and compatibility",
	}
	for i := 0; len(suggestions) < 3; i++ {
		suggestions = append(suggestions, fillers[i])
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}
