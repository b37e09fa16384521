package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"repograde/internal/ai"
	"repograde/internal/analyzer"
	"repograde/internal/config"
	"repograde/internal/github"
	"repograde/internal/heuristics"
	"repograde/internal/metrics"
	"repograde/internal/report"
	slackpkg "repograde/internal/slack"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	format := flag.String("format", "", "output format: markdown or json (overrides OUTPUT_FORMAT)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: repograde [flags] <owner>/<repo>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	owner, repo, ok := strings.Cut(flag.Arg(0), "/")
	if !ok || owner == "" || repo == "" {
		log.Fatal().Str("argument", flag.Arg(0)).Msg("Repository must be given as owner/repo")
	}

	settings, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if *format != "" {
		settings.OutputFormat = strings.ToLower(*format)
	}

	provider, err := ai.NewFromEnv(os.Getenv)
	if err != nil {
		var cfgErr *ai.ConfigError
		if !errors.As(err, &cfgErr) {
			log.Fatal().Err(err).Msg("Failed to construct AI provider")
		}
		log.Warn().Err(err).Msg("No usable AI provider, scoring heuristically")
		provider = nil
	} else {
		log.Info().Str("provider", provider.ProviderName()).Msg("AI provider configured")
	}

	ctx := context.Background()
	card, err := buildScoreCard(ctx, github.NewClient(settings.GitHubToken), analyzer.New(provider), owner, repo)
	if err != nil {
		log.Fatal().Err(err).Msg("Scoring failed")
	}

	var rendered string
	switch settings.OutputFormat {
	case config.FormatJSON:
		rendered, err = report.JSON(*card)
		if err != nil {
			log.Fatal().Err(err).Msg("Rendering failed")
		}
	default:
		rendered = report.Markdown(*card)
	}
	fmt.Print(rendered)

	slackConfig := slackpkg.Config{
		BotToken:  settings.SlackBotToken,
		ChannelID: settings.SlackChannelID,
	}
	if slackConfig.Enabled() {
		if err := slackpkg.SendScoreCard(*card, slackConfig); err != nil {
			log.Err(err).Msg("Slack delivery failed")
		}
	}
}

func buildScoreCard(ctx context.Context, gh *github.Client, anlz *analyzer.Analyzer, owner, repo string) (*metrics.ScoreCard, error) {
	repository, err := gh.Repository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	readme, err := gh.Readme(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	entries, err := gh.Contents(ctx, owner, repo, "")
	if err != nil {
		return nil, err
	}
	languages, err := gh.Languages(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	hasWorkflows, err := gh.HasWorkflows(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	checks := metrics.Inspect(entries, hasWorkflows)
	files := fetchSampleFiles(ctx, gh, owner, repo, entries)

	readmeAnalysis, err := anlz.AnalyzeReadme(ctx, readme)
	if err != nil {
		var cfgErr *ai.ConfigError
		if !errors.As(err, &cfgErr) {
			return nil, err
		}
		score, suggestions := heuristics.ScoreReadme(readme)
		readmeAnalysis = &analyzer.ReadmeAnalysis{Score: score, Suggestions: suggestions}
	}

	repoContext := heuristics.RepoContext{
		Technologies: languages,
		LastUpdate:   repository.PushedAt,
		HasTests:     checks.HasTests,
		HasCICD:      checks.HasCI,
	}

	card := &metrics.ScoreCard{
		Repository:  repository.FullName,
		Description: repository.Description,
		Languages:   languages,
		Stars:       repository.Stars,
		LastUpdate:  repository.PushedAt,
		Checks:      checks,
		Readme:      readmeAnalysis,
		CodeQuality: anlz.AnalyzeCodeQuality(ctx, files),
		Security:    anlz.ScanSecurity(ctx, files),
		Roadmap:     anlz.ModernizationRoadmap(ctx, repoContext),
		ScoredBy:    scoredBy(anlz),
		GeneratedAt: time.Now().UTC(),
	}
	card.Overall = metrics.Overall(card)
	card.Grade = metrics.Grade(card.Overall)
	return card, nil
}

var sourceExtensions = []string{".go", ".py", ".js", ".ts", ".rb", ".rs", ".java", ".c", ".cpp", ".cs"}

// fetchSampleFiles pulls the first few top-level source files for the code
// quality and security prompts. Fetch failures skip the file rather than
// aborting the run.
func fetchSampleFiles(ctx context.Context, gh *github.Client, owner, repo string, entries []github.Entry) []analyzer.SourceFile {
	var files []analyzer.SourceFile
	for _, entry := range entries {
		if len(files) == 5 {
			break
		}
		if entry.Type != "file" || !isSourceFile(entry.Name) {
			continue
		}
		content, err := gh.FileContent(ctx, owner, repo, entry.Path)
		if err != nil {
			log.Warn().Err(err).Str("path", entry.Path).Msg("Skipping unreadable file")
			continue
		}
		files = append(files, analyzer.SourceFile{Path: entry.Path, Content: content})
	}
	return files
}

func isSourceFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func scoredBy(anlz *analyzer.Analyzer) string {
	if anlz.AIAvailable() {
		return anlz.ProviderName()
	}
	return "heuristic analysis"
}
