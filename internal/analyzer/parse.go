package analyzer

import (
	"encoding/json"
	"strings"

	"repograde/internal/ai"
	"repograde/internal/heuristics"
)

// Models frequently wrap JSON in markdown fences or prose despite being told
// not to. extractJSON pulls the outermost object or array out of the raw
// text; anything beyond that is a parse failure, not something to repair.
func extractJSON(raw string, open, close byte) (string, error) {
	start := strings.IndexByte(raw, open)
	end := strings.LastIndexByte(raw, close)
	if start == -1 || end == -1 || end < start {
		return "", &ai.ParseError{Reason: "no JSON value found in model output"}
	}
	return raw[start : end+1], nil
}

func parseReadmeAnalysis(raw string) (*ReadmeAnalysis, error) {
	text, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}
	var parsed ReadmeAnalysis
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &ai.ParseError{Reason: err.Error()}
	}
	if parsed.Score < 0 || parsed.Score > heuristics.MaxScore {
		return nil, &ai.ParseError{Reason: "score out of range"}
	}
	if len(parsed.Suggestions) == 0 {
		return nil, &ai.ParseError{Reason: "no suggestions returned"}
	}
	return &parsed, nil
}

func parseCodeQualityAnalysis(raw string) (*CodeQualityAnalysis, error) {
	text, err := extractJSON(raw, '{', '}')
	if err != nil {
		return nil, err
	}
	var parsed CodeQualityAnalysis
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &ai.ParseError{Reason: err.Error()}
	}
	if parsed.Score < 0 || parsed.Score > heuristics.MaxScore {
		return nil, &ai.ParseError{Reason: "score out of range"}
	}
	if parsed.Insights == nil {
		parsed.Insights = []string{}
	}
	return &parsed, nil
}

func parseStringList(raw string) ([]string, error) {
	text, err := extractJSON(raw, '[', ']')
	if err != nil {
		return nil, err
	}
	var parsed []string
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, &ai.ParseError{Reason: err.Error()}
	}
	if parsed == nil {
		parsed = []string{}
	}
	return parsed, nil
}
