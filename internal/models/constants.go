package models

const (
	SystemVersion = "1.0.0"
	SystemName    = "LLM-Powered Query System"

	DefaultChunkSize    = 500 // characters
	DefaultChunkOverlap = 50  // characters
	DefaultTopK         = 3

	MinConfidence = 0.1
	MaxConfidence = 0.95
)

// rationale strings for degraded answers
const (
	RationaleParseFailure = "LLM response could not be parsed as JSON"
	RationaleEmptyOutput  = "LLM returned empty response"
	RationaleCallFailure  = "API call failed"
)

// Features enumerates what a Response reflects; reported in metadata.
var Features = []string{
	"semantic_search",
	"llm_reasoning",
	"confidence_scoring",
	"response_caching",
	"performance_metrics",
}

var AnswerPromptTemplate = `You are an expert insurance policy analyst. Use this context to answer accurately.

Context:
%s

Question:
%s

Respond in JSON format:
{
  "answer": "Your detailed answer here",
  "rationale": "Your reasoning for this answer",
  "source": {
    "page": page_number,
    "text_snippet": "Relevant text from the document"
  }
}
`
