package services

import (
	"context"
	"math"
	"sort"

	"tripmatch/internal/models/db_models"
	"tripmatch/internal/repositories"
	"tripmatch/pkg/utils"
)

// SimilarMatch pairs a destination with its distance to the target in the
// normalized matching-feature space.
type SimilarMatch struct {
	Destination   db_models.Destination
	Distance      float64
	SimilarityPct float64
}

type SimilarityServiceInterface interface {
	// Nearest is the deterministic in-memory KNN over a fixed pool: never
	// the target itself, exactly min(k, len(pool)-1) results, ordered by
	// non-decreasing distance.
	Nearest(target *db_models.Destination, pool []db_models.Destination, k int) []SimilarMatch
	// NearestInCatalog answers catalog-wide lookups through the pgvector
	// index instead of loading every row.
	NearestInCatalog(ctx context.Context, destinationID string, k int) ([]SimilarMatch, error)
}

type SimilarityService struct {
	destRepo repositories.DestinationRepositoryInterface
	matcher  MatchingServiceInterface
}

func NewSimilarityService(destRepo repositories.DestinationRepositoryInterface, matcher MatchingServiceInterface) SimilarityServiceInterface {
	return &SimilarityService{
		destRepo: destRepo,
		matcher:  matcher,
	}
}

func (s *SimilarityService) Nearest(target *db_models.Destination, pool []db_models.Destination, k int) []SimilarMatch {
	if k <= 0 {
		return nil
	}

	scored := make([]ScoredDestination, 0, len(pool)+1)
	scored = append(scored, ScoredDestination{Destination: *target})
	for i := range pool {
		scored = append(scored, ScoredDestination{Destination: pool[i]})
	}
	ranges := s.matcher.FeatureRanges(scored)

	matches := make([]SimilarMatch, 0, len(pool))
	for i := range pool {
		if pool[i].ID == target.ID {
			continue
		}
		dist := normalizedDistance(target, &pool[i], ranges)
		matches = append(matches, SimilarMatch{
			Destination:   pool[i],
			Distance:      dist,
			SimilarityPct: similarityPct(dist),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

func (s *SimilarityService) NearestInCatalog(ctx context.Context, destinationID string, k int) ([]SimilarMatch, error) {
	target, err := s.destRepo.GetByID(ctx, destinationID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if target == nil {
		return nil, utils.ErrDestinationNotFound
	}

	neighbours, err := s.destRepo.NearestByVector(ctx, target.FeatureVec, k, target.ID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Re-derive normalized distances so the similarity percentage matches
	// what the in-memory path reports for the same pair.
	return s.Nearest(target, neighbours, k), nil
}

func normalizedDistance(a, b *db_models.Destination, ranges map[string]FeatureRange) float64 {
	fa, fb := a.Features(), b.Features()
	var sum float64
	for _, feature := range db_models.MatchingFeatureOrder {
		r, ok := ranges[feature]
		if !ok {
			r = FeatureRange{Min: 1, Max: 5}
		}
		d := normalizeValue(fa[feature], r.Min, r.Max) - normalizeValue(fb[feature], r.Min, r.Max)
		sum += d * d
	}
	return math.Sqrt(sum)
}

// similarityPct maps a normalized distance to a display percentage; the
// worst possible distance in the unit feature cube maps to 0.
func similarityPct(dist float64) float64 {
	maxDist := math.Sqrt(float64(len(db_models.MatchingFeatureOrder)))
	pct := (1 - dist/maxDist) * 100
	if pct < 0 {
		pct = 0
	}
	return roundScore(pct)
}
