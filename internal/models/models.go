package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Page holds the extracted plain text of one PDF page, 1-indexed.
type Page struct {
	Number int
	Text   string
}

// Chunk represents a retrievable slice of a page with metadata
type Chunk struct {
	Content    string
	PageNumber int
	ChunkID    int
}

// RetrievalResult is one chunk returned by a similarity search.
type RetrievalResult struct {
	Chunk Chunk
	Score float64
}

// PageRef is a page citation: a concrete page number, or "unknown" when the
// model output carried no usable source. Marshals as a JSON number or the
// string "unknown" accordingly.
type PageRef struct {
	Number int
	Known  bool
}

func KnownPage(n int) PageRef { return PageRef{Number: n, Known: true} }

func UnknownPage() PageRef { return PageRef{} }

func (p PageRef) String() string {
	if !p.Known {
		return "unknown"
	}
	return strconv.Itoa(p.Number)
}

func (p PageRef) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return json.Marshal("unknown")
	}
	return json.Marshal(p.Number)
}

func (p *PageRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		p.Number = n
		p.Known = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		p.Number = n
		p.Known = true
		return nil
	}
	*p = PageRef{}
	return nil
}

// Source cites where in the document an answer was grounded.
type Source struct {
	Page        PageRef `json:"page"`
	TextSnippet string  `json:"text_snippet"`
}

// Answer is the structured result for a single question.
type Answer struct {
	Answer        string  `json:"answer"`
	Rationale     string  `json:"rationale"`
	Source        Source  `json:"source"`
	Confidence    float64 `json:"confidence"`
	QuestionIndex int     `json:"question_index"`
}

// Metadata describes one processed request.
type Metadata struct {
	TotalQuestions  int      `json:"total_questions"`
	ResponseTime    float64  `json:"response_time"`
	DocumentPages   int      `json:"document_pages"`
	ChunksProcessed int      `json:"chunks_processed"`
	Timestamp       string   `json:"timestamp"`
	Cached          bool     `json:"cached"`
	SystemVersion   string   `json:"system_version"`
	Features        []string `json:"features"`
}

// Performance holds per-request timing breakdowns.
type Performance struct {
	TotalTime          float64 `json:"total_time"`
	AvgTimePerQuestion float64 `json:"avg_time_per_question"`
	QuestionsPerSecond float64 `json:"questions_per_second"`
}

// Response is the full payload for one (document, questions) request.
type Response struct {
	Answers     []Answer    `json:"answers"`
	Metadata    Metadata    `json:"metadata"`
	Performance Performance `json:"performance"`
}
