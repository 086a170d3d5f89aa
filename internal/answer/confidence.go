package answer

import (
	"math"

	"docqa/internal/models"
)

// Confidence derives a bounded score from the similarity scores of the chunks
// an answer was grounded on: the arithmetic mean clamped into [0.1, 0.95] and
// rounded to 3 decimals. No retrieval results yields the floor of 0.1.
//
// This is a heuristic proxy for grounding quality, not a calibrated
// probability; it has not been statistically validated.
func Confidence(results []models.RetrievalResult) float64 {
	if len(results) == 0 {
		return models.MinConfidence
	}
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	mean := sum / float64(len(results))
	clamped := math.Min(models.MaxConfidence, math.Max(models.MinConfidence, mean))
	return math.Round(clamped*1000) / 1000
}
