package product

import (
	"math"

	"github.com/go-restaurant-api/internal/domain"
)

// applyRating replaces raterID's earlier rating (if any) with value,
// appending it at the end, and returns the new list with its mean rounded
// to one decimal. The input slice is not modified.
func applyRating(ratings []domain.Rating, raterID string, value int) ([]domain.Rating, domain.AvgRating) {
	next := make([]domain.Rating, 0, len(ratings)+1)
	for _, r := range ratings {
		if r.UserID != raterID {
			next = append(next, r)
		}
	}
	next = append(next, domain.Rating{UserID: raterID, Value: value})
	return next, average(next)
}

// average is the mean rating rounded to one decimal, 0 for no ratings.
func average(ratings []domain.Rating) domain.AvgRating {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	mean := float64(sum) / float64(len(ratings))
	return domain.AvgRating(math.Round(mean*10) / 10)
}
