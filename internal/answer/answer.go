package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docqa/internal/llmservice"
	"docqa/internal/models"
)

// Generator builds grounded prompts from retrieved chunks and parses model
// output into structured answers.
type Generator struct {
	llm llmservice.Generator
}

func NewGenerator(llm llmservice.Generator) *Generator {
	return &Generator{llm: llm}
}

// Generate answers one question from the retrieved chunks. Failures never
// propagate: a model-call error or unparsable output degrades into a
// best-effort Answer so one bad question cannot abort a batch.
func (g *Generator) Generate(ctx context.Context, question string, results []models.RetrievalResult) models.Answer {
	prompt := buildPrompt(question, results)

	raw, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("Model call failed")
		return models.Answer{
			Answer:    fmt.Sprintf("Error: %v", err),
			Rationale: models.RationaleCallFailure,
			Source:    models.Source{Page: models.UnknownPage(), TextSnippet: "Error occurred"},
		}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Answer{
			Answer:    "Unable to generate response",
			Rationale: models.RationaleEmptyOutput,
			Source:    models.Source{Page: models.UnknownPage(), TextSnippet: "No response generated"},
		}
	}

	parsed, ok := parseAnswer(raw)
	if !ok {
		log.Debug().Str("output", raw).Msg("Model output is not valid answer JSON")
		return models.Answer{
			Answer:    raw,
			Rationale: models.RationaleParseFailure,
			Source:    models.Source{Page: models.UnknownPage(), TextSnippet: "Response parsing error"},
		}
	}
	return parsed
}

// buildPrompt tags each retrieved chunk with its page number so the model can
// cite provenance, and instructs it to answer strictly from that context.
func buildPrompt(question string, results []models.RetrievalResult) string {
	var context strings.Builder
	for i, r := range results {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(fmt.Sprintf("(Page %d) %s", r.Chunk.PageNumber, r.Chunk.Content))
	}
	return fmt.Sprintf(models.AnswerPromptTemplate, context.String(), question)
}

func parseAnswer(raw string) (models.Answer, bool) {
	var parsed struct {
		Answer    string        `json:"answer"`
		Rationale string        `json:"rationale"`
		Source    models.Source `json:"source"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return models.Answer{}, false
	}
	if parsed.Answer == "" {
		return models.Answer{}, false
	}
	return models.Answer{
		Answer:    parsed.Answer,
		Rationale: parsed.Rationale,
		Source:    parsed.Source,
	}, true
}

// stripCodeFence unwraps JSON that the model wrapped in a markdown code
// block, a common failure mode of chat models asked for raw JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
