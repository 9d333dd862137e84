package services

import (
	"context"
	"testing"

	"tripmatch/internal/models/db_models"
	"tripmatch/pkg/utils"
)

func similarityFixture() (SimilarityServiceInterface, *mockDestinationRepo, []db_models.Destination) {
	pool := []db_models.Destination{
		testDestination(1, "Lisbon", map[string]float64{"beach": 4, "culture": 4}),
		testDestination(2, "Porto", map[string]float64{"beach": 4, "culture": 4}),
		testDestination(3, "Barcelona", map[string]float64{"beach": 5, "culture": 4, "nightlife": 5}),
		testDestination(4, "Oslo", map[string]float64{"beach": 1, "nature": 5, "crowds": 2}),
		testDestination(5, "Reykjavik", map[string]float64{"beach": 1, "nature": 5, "crowds": 1}),
		testDestination(6, "Bangkok", map[string]float64{"food": 5, "nightlife": 5, "crowds": 5}),
		testDestination(7, "Rome", map[string]float64{"culture": 5, "food": 5, "crowds": 5}),
		testDestination(8, "Vienna", map[string]float64{"culture": 5, "safety": 5}),
		testDestination(9, "Marrakesh", map[string]float64{"culture": 4, "adventure": 4}),
		testDestination(10, "Sydney", map[string]float64{"beach": 5, "nature": 4}),
	}
	repo := &mockDestinationRepo{destinations: pool}
	svc := NewSimilarityService(repo, NewMatchingService())
	return svc, repo, pool
}

func TestNearest_ReturnsKOrderedNeighbours(t *testing.T) {
	svc, _, pool := similarityFixture()

	target := pool[0] // Lisbon
	matches := svc.Nearest(&target, pool, 3)

	if len(matches) != 3 {
		t.Fatalf("matches=%d want=3", len(matches))
	}
	for i, m := range matches {
		if m.Destination.ID == target.ID {
			t.Fatalf("match %d is the target itself", i)
		}
		if i > 0 && matches[i-1].Distance > m.Distance {
			t.Fatalf("distances not non-decreasing at %d: %v > %v", i, matches[i-1].Distance, m.Distance)
		}
		if m.SimilarityPct < 0 || m.SimilarityPct > 100 {
			t.Fatalf("similarity pct=%v out of range", m.SimilarityPct)
		}
	}

	// Porto shares every feature with Lisbon, so it has to be the closest.
	if matches[0].Destination.City != "Porto" {
		t.Fatalf("closest=%s want=Porto", matches[0].Destination.City)
	}
	if matches[0].Distance != 0 {
		t.Fatalf("identical features: distance=%v want=0", matches[0].Distance)
	}
	if matches[0].SimilarityPct != 100 {
		t.Fatalf("identical features: similarity=%v want=100", matches[0].SimilarityPct)
	}
}

func TestNearest_SmallPool(t *testing.T) {
	svc, _, pool := similarityFixture()

	target := pool[0]
	small := pool[:2] // target plus one other
	matches := svc.Nearest(&target, small, 5)
	if len(matches) != 1 {
		t.Fatalf("matches=%d want=1", len(matches))
	}

	if got := svc.Nearest(&target, small, 0); got != nil {
		t.Fatalf("k=0 must return nil, got %d", len(got))
	}
}

func TestNearestInCatalog_UnknownDestination(t *testing.T) {
	svc, _, _ := similarityFixture()

	_, err := svc.NearestInCatalog(context.Background(), "00000000-0000-0000-0000-000000000000", 3)
	if err != utils.ErrDestinationNotFound {
		t.Fatalf("err=%v want=ErrDestinationNotFound", err)
	}
}

func TestNearestInCatalog_UsesVectorIndex(t *testing.T) {
	svc, _, pool := similarityFixture()

	matches, err := svc.NearestInCatalog(context.Background(), pool[0].ID.String(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("matches=%d want=3", len(matches))
	}
	for _, m := range matches {
		if m.Destination.ID == pool[0].ID {
			t.Fatalf("vector lookup returned the target itself")
		}
	}
}
