// Package ratings computes project rating aggregates from a snapshot of the
// review set. Aggregates are derived on demand and never persisted; an empty
// review set yields nil ("N/A"), never zero.
package ratings

import (
	"math"

	"github.com/medetk/volunteerhub/backend/internal/models"
)

// Overall returns the arithmetic mean of the reviews' overall ratings, or
// nil when there are no reviews.
func Overall(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, r := range reviews {
		sum += r.OverallRating
	}
	mean := float64(sum) / float64(len(reviews))
	return &mean
}

// KeyAverage returns the mean rating for one project key, counting only
// reviews that rated that key. Nil when no review carries the key.
func KeyAverage(reviews []models.Review, key string) *float64 {
	sum, n := 0, 0
	for _, r := range reviews {
		if v, ok := r.KeyRatings.Data()[key]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := float64(sum) / float64(n)
	return &mean
}

// Summarize bundles the overall mean and the per-key means for the given
// project keys. Keys with no ratings are omitted from KeyAverages.
func Summarize(keys []string, reviews []models.Review) models.RatingSummary {
	s := models.RatingSummary{
		OverallRating: Overall(reviews),
		KeyAverages:   make(map[string]float64, len(keys)),
		ReviewCount:   len(reviews),
	}
	for _, key := range keys {
		if avg := KeyAverage(reviews, key); avg != nil {
			s.KeyAverages[key] = Round1(*avg)
		}
	}
	if s.OverallRating != nil {
		rounded := Round1(*s.OverallRating)
		s.OverallRating = &rounded
	}
	return s
}

// Round1 rounds to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
