package chromemdb

import (
	"context"
	"fmt"
	"testing"

	"docqa/internal/models"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	chunks := []models.Chunk{
		{Content: "exact match", PageNumber: 1, ChunkID: 1},
		{Content: "close match", PageNumber: 2, ChunkID: 1},
		{Content: "unrelated", PageNumber: 3, ChunkID: 1},
	}
	vectors := [][]float32{
		{1, 0},
		{0.8, 0.6},
		{0, 1},
	}
	idx, err := BuildIndex(context.Background(), chunks, vectors)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	return idx
}

func TestSearchOrdersByDescendingSimilarity(t *testing.T) {
	idx := buildTestIndex(t)

	results, err := idx.Search(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: score[%d]=%v > score[%d]=%v", i, results[i].Score, i-1, results[i-1].Score)
		}
	}
	if results[0].Chunk.Content != "exact match" || results[0].Chunk.PageNumber != 1 {
		t.Errorf("unexpected best result: %+v", results[0].Chunk)
	}
	if results[1].Chunk.Content != "close match" {
		t.Errorf("unexpected second result: %+v", results[1].Chunk)
	}
}

func TestSearchNeverExceedsK(t *testing.T) {
	idx := buildTestIndex(t)

	results, err := idx.Search(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestSearchClampsKToIndexSize(t *testing.T) {
	idx := buildTestIndex(t)

	results, err := idx.Search(context.Background(), []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected all 3 entries, got %d", len(results))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx, err := BuildIndex(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	results, err := idx.Search(context.Background(), []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "first", PageNumber: 1, ChunkID: 1},
		{Content: "second", PageNumber: 1, ChunkID: 2},
	}
	vectors := [][]float32{
		{1, 0},
		{1, 0},
	}
	idx, err := BuildIndex(context.Background(), chunks, vectors)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	results, err := idx.Search(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Content != "first" || results[1].Chunk.Content != "second" {
		t.Errorf("tie not broken by insertion order: %q, %q", results[0].Chunk.Content, results[1].Chunk.Content)
	}
}

// With more tied entries than k, the k survivors must be the earliest
// inserted ones, not whichever subset the underlying store walks first.
func TestSearchTieCutoffKeepsEarliestInserted(t *testing.T) {
	const n = 5
	chunks := make([]models.Chunk, n)
	vectors := make([][]float32, n)
	for i := range chunks {
		chunks[i] = models.Chunk{Content: fmt.Sprintf("chunk %d", i), PageNumber: 1, ChunkID: i + 1}
		vectors[i] = []float32{1, 0}
	}
	idx, err := BuildIndex(context.Background(), chunks, vectors)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	// Map iteration order varies per run, so repeat to catch an unstable cut.
	for iter := 0; iter < 20; iter++ {
		results, err := idx.Search(context.Background(), []float32{1, 0}, 3)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		for i, r := range results {
			if want := fmt.Sprintf("chunk %d", i); r.Chunk.Content != want {
				t.Fatalf("iteration %d: tie selection not insertion order: got %q at rank %d, want %q", iter, r.Chunk.Content, i, want)
			}
		}
	}
}

func TestBuildIndexLengthMismatch(t *testing.T) {
	_, err := BuildIndex(context.Background(), []models.Chunk{{Content: "a"}}, nil)
	if err == nil {
		t.Error("expected error for mismatched chunks and vectors")
	}
}
