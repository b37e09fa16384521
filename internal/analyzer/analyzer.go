package analyzer

import (
	"context"

	"github.com/rs/zerolog/log"

	"repograde/internal/ai"
	"repograde/internal/heuristics"
)

// Snapshot bounds keep prompts inside sane token budgets.
const (
	maxSnapshotFiles = 5
	maxSnapshotChars = 2000
)

type SourceFile struct {
	Path    string
	Content string
}

type ReadmeAnalysis struct {
	Score       int      `json:"score" jsonschema:"description=README quality score from 0-100"`
	Suggestions []string `json:"suggestions" jsonschema:"description=3-5 concrete improvement suggestions"`
}

type CodeQualityAnalysis struct {
	Score    int      `json:"score" jsonschema:"description=Architecture quality score from 0-100"`
	Insights []string `json:"insights" jsonschema:"description=3-5 observations about code structure and quality"`
}

// Analyzer wraps zero or one AI provider with deterministic fallbacks. Every
// operation except AnalyzeReadme degrades silently: a vendor failure, a
// network failure, or unparsable model output all land on the heuristic path.
type Analyzer struct {
	provider ai.Provider
}

// New accepts a nil provider, in which case every operation runs its
// heuristic path directly.
func New(provider ai.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

func (a *Analyzer) AIAvailable() bool {
	return a.provider != nil
}

// ProviderName is the configured provider's display name, or "" when none is
// configured. Used for report attribution.
func (a *Analyzer) ProviderName() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.ProviderName()
}

// AnalyzeReadme rates readme content and suggests improvements. It is the one
// operation gated on configuration: with no provider it returns a
// *ai.ConfigError so callers can tell "not configured" from "configured but
// degraded". Once a provider exists it never fails; mid-call errors fall back
// to the heuristic score.
func (a *Analyzer) AnalyzeReadme(ctx context.Context, readme string) (*ReadmeAnalysis, error) {
	if a.provider == nil {
		return nil, &ai.ConfigError{Message: "AI provider not configured"}
	}

	resp, err := a.provider.Analyze(ctx, ai.NewRequest(readme, readmePrompt()))
	if err != nil {
		return a.heuristicReadme(readme, err), nil
	}
	parsed, err := parseReadmeAnalysis(resp.Result)
	if err != nil {
		return a.heuristicReadme(readme, err), nil
	}
	return parsed, nil
}

func (a *Analyzer) heuristicReadme(readme string, cause error) *ReadmeAnalysis {
	log.Warn().Err(cause).Msg("README analysis degraded to heuristic scoring")
	score, suggestions := heuristics.ScoreReadme(readme)
	return &ReadmeAnalysis{Score: score, Suggestions: suggestions}
}

// AnalyzeCodeQuality rates a bounded snapshot of source files. It never
// fails: when unconfigured or on any error it returns the neutral default
// score with no insights.
func (a *Analyzer) AnalyzeCodeQuality(ctx context.Context, files []SourceFile) *CodeQualityAnalysis {
	neutral := &CodeQualityAnalysis{Score: heuristics.NeutralArchitectureScore, Insights: []string{}}
	if a.provider == nil {
		return neutral
	}

	resp, err := a.provider.Analyze(ctx, ai.NewRequest(snapshot(files), codeQualityPrompt()))
	if err != nil {
		log.Warn().Err(err).Msg("code quality analysis degraded to neutral default")
		return neutral
	}
	parsed, err := parseCodeQualityAnalysis(resp.Result)
	if err != nil {
		log.Warn().Err(err).Msg("code quality analysis degraded to neutral default")
		return neutral
	}
	return parsed
}

// ScanSecurity asks the provider for potential security concerns over a
// bounded snippet set. There is no exception path at all: unconfigured and
// failed both yield an empty list.
func (a *Analyzer) ScanSecurity(ctx context.Context, files []SourceFile) []string {
	if a.provider == nil {
		return []string{}
	}

	resp, err := a.provider.Analyze(ctx, ai.NewRequest(snapshot(files), securityPrompt))
	if err != nil {
		log.Warn().Err(err).Msg("security scan degraded to empty result")
		return []string{}
	}
	concerns, err := parseStringList(resp.Result)
	if err != nil {
		log.Warn().Err(err).Msg("security scan degraded to empty result")
		return []string{}
	}
	return concerns
}

// ModernizationRoadmap produces a prioritized step list. The heuristic
// roadmap is the entire behavior when unconfigured and the safety net on any
// failure, so the result is always non-empty.
func (a *Analyzer) ModernizationRoadmap(ctx context.Context, rc heuristics.RepoContext) []string {
	if a.provider == nil {
		return heuristics.Roadmap(rc)
	}

	resp, err := a.provider.Analyze(ctx, ai.NewRequest(roadmapContext(rc), roadmapPrompt))
	if err != nil {
		log.Warn().Err(err).Msg("roadmap generation degraded to heuristic steps")
		return heuristics.Roadmap(rc)
	}
	steps, err := parseStringList(resp.Result)
	if err != nil || len(steps) == 0 {
		log.Warn().Err(err).Msg("roadmap generation degraded to heuristic steps")
		return heuristics.Roadmap(rc)
	}
	return steps
}
