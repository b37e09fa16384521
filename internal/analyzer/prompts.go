package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"

	"repograde/internal/heuristics"
)

const securityPrompt = `You are a security reviewer. Inspect the following source snippets for potential security concerns: hardcoded secrets, injection risks, unsafe deserialization, missing input validation, outdated crypto.

Respond with a JSON array of short concern strings and nothing else. Respond with [] if you find nothing noteworthy.`

const roadmapPrompt = `You are a software modernization consultant. Given the repository facts below, produce a prioritized modernization roadmap.

Order the steps from most to least urgent. Respond with a JSON array of step strings and nothing else.`

func readmePrompt() string {
	return fmt.Sprintf(`You are a software quality analyst. Rate the README below for completeness, clarity, and usefulness to a new user.

Respond with a single JSON object matching this schema, and nothing else:
%s`, schemaText(&ReadmeAnalysis{}))
}

func codeQualityPrompt() string {
	return fmt.Sprintf(`You are a software architecture reviewer. Rate the overall structure and quality of the source snapshot below.

Respond with a single JSON object matching this schema, and nothing else:
%s`, schemaText(&CodeQualityAnalysis{}))
}

// snapshot serializes a bounded slice of files into prompt content: at most
// maxSnapshotFiles files, each truncated to maxSnapshotChars characters.
func snapshot(files []SourceFile) string {
	if len(files) > maxSnapshotFiles {
		files = files[:maxSnapshotFiles]
	}
	var out strings.Builder
	for _, f := range files {
		content := f.Content
		if len(content) > maxSnapshotChars {
			content = content[:maxSnapshotChars]
		}
		fmt.Fprintf(&out, "--- %s ---\n%s\n\n", f.Path, content)
	}
	return strings.TrimSpace(out.String())
}

func roadmapContext(rc heuristics.RepoContext) string {
	var out strings.Builder
	fmt.Fprintf(&out, "Technologies: %s\n", strings.Join(rc.Technologies, ", "))
	if !rc.LastUpdate.IsZero() {
		fmt.Fprintf(&out, "Days since last update: %d\n", int(time.Since(rc.LastUpdate).Hours()/24))
	}
	fmt.Fprintf(&out, "Has tests: %t\n", rc.HasTests)
	fmt.Fprintf(&out, "Has CI/CD: %t\n", rc.HasCICD)
	return out.String()
}

func schemaText(v any) string {
	b, _ := json.Marshal(generateSchema(v))
	return string(b)
}

func generateSchema(v any) map[string]any {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	s := r.Reflect(v)
	b, _ := json.Marshal(s)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
