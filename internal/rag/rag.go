package rag

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"docqa/internal/answer"
	"docqa/internal/cache"
	"docqa/internal/chromemdb"
	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/embedding"
	"docqa/internal/llmservice"
	"docqa/internal/models"
)

// DocumentFetcher downloads a document URL into a transient file.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (path string, cleanup func(), err error)
}

// ExtractFunc turns a downloaded file into per-page text records.
type ExtractFunc func(path string) ([]models.Page, error)

// Pipeline runs the full retrieval-and-reasoning flow for one request:
// fetch, extract, chunk, index, then per-question retrieval and grounded
// generation, with whole responses memoized by request fingerprint.
type Pipeline struct {
	fetcher   DocumentFetcher
	extract   ExtractFunc
	chunker   *chunker.Chunker
	embedder  embedding.Embedder
	generator *answer.Generator
	cache     *cache.Cache
	topK      int
}

func NewPipeline(fetcher DocumentFetcher, extract ExtractFunc, embedder embedding.Embedder, llm llmservice.Generator, responses *cache.Cache, cfg *config.RAGConfig) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		extract:   extract,
		chunker:   chunker.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		embedder:  embedder,
		generator: answer.NewGenerator(llm),
		cache:     responses,
		topK:      cfg.TopK,
	}
}

// Process answers every question against the document at the given URL.
// Whole-document failures (fetch, parse, index embedding) abort with an
// error and leave the cache untouched; per-question model failures degrade
// into error answers without affecting sibling questions.
func (p *Pipeline) Process(ctx context.Context, document string, questions []string) (*models.Response, error) {
	start := time.Now()

	key := cache.Key(document, questions)
	if resp, ok := p.cache.Get(key); ok {
		log.Info().Str("key", key).Msg("Serving cached response")
		return resp, nil
	}

	path, cleanup, err := p.fetcher.Fetch(ctx, document)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pages, err := p.extract(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("pages", len(pages)).Msg("Extracted document pages")

	chunks := p.chunker.Split(pages)

	vectors, err := embedding.EmbedChunks(ctx, p.embedder, chunks)
	if err != nil {
		return nil, err
	}

	index, err := chromemdb.BuildIndex(ctx, chunks, vectors)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("chunks", index.Count()).Msg("Built vector index")

	answers := make([]models.Answer, 0, len(questions))
	for i, question := range questions {
		queryVec, err := embedding.EmbedQuery(ctx, p.embedder, question)
		if err != nil {
			return nil, err
		}
		results, err := index.Search(ctx, queryVec, p.topK)
		if err != nil {
			return nil, err
		}

		ans := p.generator.Generate(ctx, question, results)
		ans.Confidence = answer.Confidence(results)
		ans.QuestionIndex = i
		answers = append(answers, ans)
	}

	elapsed := time.Since(start).Seconds()
	resp := &models.Response{
		Answers: answers,
		Metadata: models.Metadata{
			TotalQuestions:  len(questions),
			ResponseTime:    round3(elapsed),
			DocumentPages:   len(pages),
			ChunksProcessed: len(chunks),
			Timestamp:       time.Now().Format(time.RFC3339),
			Cached:          false,
			SystemVersion:   models.SystemVersion,
			Features:        models.Features,
		},
		Performance: performance(elapsed, len(questions)),
	}

	p.cache.Put(key, resp)
	return resp, nil
}

func performance(elapsed float64, questions int) models.Performance {
	perf := models.Performance{TotalTime: round3(elapsed)}
	if questions > 0 {
		perf.AvgTimePerQuestion = round3(elapsed / float64(questions))
	}
	if elapsed > 0 {
		perf.QuestionsPerSecond = round2(float64(questions) / elapsed)
	}
	return perf
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
