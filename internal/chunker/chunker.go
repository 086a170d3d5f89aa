package chunker

import (
	"strings"

	"docqa/internal/models"
)

// Chunker splits page text into overlapping segments of bounded size.
type Chunker struct {
	maxChars     int
	overlapChars int
}

func NewChunker(maxChars, overlapChars int) *Chunker {
	if maxChars <= 0 {
		maxChars = models.DefaultChunkSize
	}
	if overlapChars < 0 {
		overlapChars = 0
	}
	if overlapChars >= maxChars {
		overlapChars = maxChars / 2
	}
	return &Chunker{maxChars: maxChars, overlapChars: overlapChars}
}

// Split chunks every page independently. Chunks never cross page boundaries
// and each carries the page number of its source page. A page with no text
// contributes no chunks.
func (c *Chunker) Split(pages []models.Page) []models.Chunk {
	var chunks []models.Chunk
	for _, page := range pages {
		for i, content := range c.chunkContent(page.Text) {
			chunks = append(chunks, models.Chunk{
				Content:    content,
				PageNumber: page.Number,
				ChunkID:    i + 1,
			})
		}
	}
	return chunks
}

// chunkContent splits content into segments of at most maxChars with
// overlapChars of overlap between consecutive segments, preferring to break
// on a space, newline or sentence end near the cut point.
func (c *Chunker) chunkContent(content string) []string {
	content = strings.TrimSpace(content)
	contentLen := len(content)
	if contentLen == 0 {
		return nil
	}
	if contentLen <= c.maxChars {
		return []string{content}
	}

	var chunks []string
	start := 0
	for start < contentLen {
		end := min(start+c.maxChars, contentLen)

		// Look for a clean break point within the last 10% of the chunk,
		// but never further back than the overlap: the next chunk starts
		// overlapChars before the unshifted end, and a break beyond that
		// would leave a gap in coverage.
		if end < contentLen {
			lookBack := min(c.maxChars/10, end-start)
			if lookBack > c.overlapChars {
				lookBack = c.overlapChars
			}
			for i := end - 1; i >= end-lookBack && i > start; i-- {
				if content[i] == ' ' || content[i] == '\n' || content[i] == '.' {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(content[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		start += c.maxChars - c.overlapChars
		if start >= contentLen {
			break
		}
	}
	return chunks
}
