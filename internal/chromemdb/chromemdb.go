package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"

	"github.com/philippgille/chromem-go"

	"docqa/internal/models"
)

const collectionName = "document"

// Index is an exact-similarity in-memory vector index over one document's
// chunks. It lives for a single pipeline run and is never persisted.
type Index struct {
	collection *chromem.Collection
	count      int
}

// BuildIndex stores one embedding per chunk in a fresh in-memory collection.
// Page number and insertion order travel as metadata so retrieval can recover
// provenance. chunks and vectors must be parallel slices.
func BuildIndex(ctx context.Context, chunks []models.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks and vectors length mismatch: %d != %d", len(chunks), len(vectors))
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %v", err)
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = chromem.Document{
			ID:      fmt.Sprintf("p%d-c%d", chunk.PageNumber, chunk.ChunkID),
			Content: chunk.Content,
			Metadata: map[string]string{
				"page":  strconv.Itoa(chunk.PageNumber),
				"chunk": strconv.Itoa(chunk.ChunkID),
				"seq":   strconv.Itoa(i),
			},
			Embedding: vectors[i],
		}
	}

	if len(docs) > 0 {
		if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("failed to add documents: %v", err)
		}
	}

	return &Index{collection: collection, count: len(docs)}, nil
}

// Count reports how many chunks are indexed.
func (idx *Index) Count() int { return idx.count }

// Search returns up to k chunks by descending cosine similarity. Fewer than k
// indexed entries returns all of them. Ties keep insertion order.
func (idx *Index) Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.RetrievalResult, error) {
	if idx.count == 0 || k <= 0 {
		return nil, nil
	}
	if k > idx.count {
		k = idx.count
	}

	// Query the whole collection, not just k entries: chromem picks which
	// tied entries survive its own cutoff in map-walk order, so the k cut
	// must happen here, after the stable sort. The collection is small and
	// per-request.
	res, err := idx.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       idx.count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	type scored struct {
		result models.RetrievalResult
		seq    int
	}
	items := make([]scored, 0, len(res))
	for _, r := range res {
		page, _ := strconv.Atoi(r.Metadata["page"])
		chunkID, _ := strconv.Atoi(r.Metadata["chunk"])
		seq, _ := strconv.Atoi(r.Metadata["seq"])
		items = append(items, scored{
			result: models.RetrievalResult{
				Chunk: models.Chunk{Content: r.Content, PageNumber: page, ChunkID: chunkID},
				Score: float64(r.Similarity),
			},
			seq: seq,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].result.Score != items[j].result.Score {
			return items[i].result.Score > items[j].result.Score
		}
		return items[i].seq < items[j].seq
	})

	if len(items) > k {
		items = items[:k]
	}
	results := make([]models.RetrievalResult, len(items))
	for i, it := range items {
		results[i] = it.result
	}
	return results, nil
}
