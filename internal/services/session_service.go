package services

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripmatch/internal/models/db_models"
	"tripmatch/internal/models/request_models"
	"tripmatch/internal/models/response_models"
	"tripmatch/internal/repositories"
	"tripmatch/pkg/memcache"
	"tripmatch/pkg/utils"
)

const (
	TotalRounds       = 7
	LocationsPerRound = 3
	MaxDestinations   = 50

	// The first rounds sample uniformly at random: exploration before
	// exploitation, so the preference vector has signal to work with.
	coldStartRounds = 3
	guidedTopPool   = 10

	defaultMinTempC  = 15
	defaultMaxTempC  = 28
	defaultStyle     = "balanced"
	defaultOrigin    = "ZRH"
	defaultLeadDays  = 7
	similarNeighbors = 3
	topListSize      = 10
)

const (
	StateMatching = "matching"
	StateResults  = "results"
)

// MatchSession is the whole per-user state. It lives only in the TTL store;
// nothing survives the session.
type MatchSession struct {
	ID          string
	State       string
	TotalBudget float64
	TripDays    int
	Travelers   int
	TravelStyle string
	MinTempC    int
	MaxTempC    int
	UseWeather  bool
	Origin      string
	StartDate   time.Time
	EndDate     time.Time

	// Budget-filtered, weather-enriched candidate set, fixed at start.
	Candidates []ScoredDestination
	UsedIDs    map[string]bool
	Chosen     []db_models.Destination
	Round      int
	// Candidate IDs offered per round, so re-fetching a round is stable.
	RoundOffers map[int][]string
}

type SessionServiceInterface interface {
	StartSession(ctx context.Context, req request_models.StartSessionRequest) (response_models.SessionResponse, error)
	CurrentRound(ctx context.Context, sessionID string) (response_models.RoundResponse, error)
	Pick(ctx context.Context, sessionID, destinationID string) (response_models.SessionResponse, error)
	Results(ctx context.Context, sessionID string) (response_models.ResultResponse, error)
	Export(ctx context.Context, sessionID, format string) (filename string, body []byte, err error)
	Delete(sessionID string)
}

type SessionService struct {
	store      *memcache.Store[*MatchSession]
	destRepo   repositories.DestinationRepositoryInterface
	matching   MatchingServiceInterface
	budget     BudgetServiceInterface
	weather    WeatherServiceInterface
	flights    FlightServiceInterface
	images     ImageServiceInterface
	similarity SimilarityServiceInterface
	insights   InsightsServiceInterface
	export     ExportServiceInterface

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewSessionService(
	store *memcache.Store[*MatchSession],
	destRepo repositories.DestinationRepositoryInterface,
	matching MatchingServiceInterface,
	budget BudgetServiceInterface,
	weather WeatherServiceInterface,
	flights FlightServiceInterface,
	images ImageServiceInterface,
	similarity SimilarityServiceInterface,
	insights InsightsServiceInterface,
	export ExportServiceInterface,
) SessionServiceInterface {
	return &SessionService{
		store:      store,
		destRepo:   destRepo,
		matching:   matching,
		budget:     budget,
		weather:    weather,
		flights:    flights,
		images:     images,
		similarity: similarity,
		insights:   insights,
		export:     export,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *SessionService) StartSession(ctx context.Context, req request_models.StartSessionRequest) (response_models.SessionResponse, error) {
	if req.TotalBudget <= 0 || req.Travelers <= 0 {
		return response_models.SessionResponse{}, utils.ErrInvalidBudget
	}
	if req.TripDays <= 0 && req.StartDate == "" {
		return response_models.SessionResponse{}, utils.ErrInvalidBudget
	}

	style := req.TravelStyle
	if style == "" {
		style = defaultStyle
	}
	if !IsKnownStyle(style) {
		return response_models.SessionResponse{}, utils.ErrInvalidStyle
	}

	minTemp, maxTemp := defaultMinTempC, defaultMaxTempC
	if req.MinTempC != nil {
		minTemp = *req.MinTempC
	}
	if req.MaxTempC != nil {
		maxTemp = *req.MaxTempC
	}
	useWeather := true
	if req.UseWeather != nil {
		useWeather = *req.UseWeather
	}
	origin := req.Origin
	if origin == "" {
		origin = defaultOrigin
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return response_models.SessionResponse{}, utils.ErrInvalidBudget
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return response_models.SessionResponse{}, utils.ErrInvalidBudget
	}
	if start.IsZero() {
		start = time.Now().AddDate(0, 0, defaultLeadDays)
	}
	tripDays := req.TripDays
	if !end.IsZero() && end.After(start) {
		tripDays = int(end.Sub(start).Hours() / 24)
	} else {
		end = start.AddDate(0, 0, tripDays)
	}
	if tripDays <= 0 {
		return response_models.SessionResponse{}, utils.ErrInvalidBudget
	}

	catalog, err := s.destRepo.GetAll(ctx)
	if err != nil {
		return response_models.SessionResponse{}, utils.ErrDatabaseError
	}
	if len(catalog) == 0 {
		return response_models.SessionResponse{}, utils.ErrEmptyCatalog
	}

	matches := s.budget.FilterByBudget(catalog, req.TotalBudget, tripDays, req.Travelers)
	if len(matches) > MaxDestinations {
		matches = matches[:MaxDestinations]
	}

	if useWeather {
		window := &TravelWindow{Start: start, End: end}
		matches = s.weather.Enrich(ctx, matches, minTemp, maxTemp, window)
	}

	sess := &MatchSession{
		ID:          uuid.New().String(),
		State:       StateMatching,
		TotalBudget: req.TotalBudget,
		TripDays:    tripDays,
		Travelers:   req.Travelers,
		TravelStyle: style,
		MinTempC:    minTemp,
		MaxTempC:    maxTemp,
		UseWeather:  useWeather,
		Origin:      origin,
		StartDate:   start,
		EndDate:     end,
		Candidates:  matches,
		UsedIDs:     make(map[string]bool),
		RoundOffers: make(map[int][]string),
	}
	s.store.Set(sess.ID, sess)

	return sessionResponse(sess), nil
}

func (s *SessionService) CurrentRound(ctx context.Context, sessionID string) (response_models.RoundResponse, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return response_models.RoundResponse{}, utils.ErrSessionNotFound
	}
	if sess.State != StateMatching {
		return response_models.RoundResponse{}, utils.ErrSessionFinished
	}

	offered := s.ensureRoundOffers(sess)
	if len(offered) == 0 {
		// Nothing left to show: skip straight to results.
		sess.State = StateResults
		s.store.Set(sess.ID, sess)
		return response_models.RoundResponse{
			SessionID:   sess.ID,
			Round:       sess.Round + 1,
			TotalRounds: TotalRounds,
			State:       sess.State,
			Candidates:  []response_models.RoundCandidate{},
		}, nil
	}
	s.store.Set(sess.ID, sess)

	candidates := make([]response_models.RoundCandidate, 0, len(offered))
	for _, sd := range offered {
		candidates = append(candidates, response_models.RoundCandidate{
			Destination:   s.destinationResponse(ctx, &sd.Destination, false),
			TotalTripCost: sd.TotalTripCost,
			CurrentTempC:  sd.CurrentTempC,
			ForecastTempC: sd.ForecastTempC,
			RainDays:      sd.RainDays,
		})
	}

	return response_models.RoundResponse{
		SessionID:   sess.ID,
		Round:       sess.Round + 1,
		TotalRounds: TotalRounds,
		State:       sess.State,
		Candidates:  candidates,
	}, nil
}

func (s *SessionService) Pick(ctx context.Context, sessionID, destinationID string) (response_models.SessionResponse, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return response_models.SessionResponse{}, utils.ErrSessionNotFound
	}
	if sess.State != StateMatching {
		return response_models.SessionResponse{}, utils.ErrSessionFinished
	}

	offered := s.ensureRoundOffers(sess)
	if len(offered) == 0 {
		sess.State = StateResults
		s.store.Set(sess.ID, sess)
		return sessionResponse(sess), utils.ErrSessionFinished
	}

	var picked *ScoredDestination
	for i := range offered {
		if offered[i].ID.String() == destinationID {
			picked = offered[i]
			break
		}
	}
	if picked == nil {
		return response_models.SessionResponse{}, utils.ErrChoiceNotOffered
	}

	// Fold the pick into the preference signal and retire everything shown.
	sess.Chosen = append(sess.Chosen, picked.Destination)
	for _, sd := range offered {
		sess.UsedIDs[sd.ID.String()] = true
	}
	sess.Round++
	if sess.Round >= TotalRounds {
		sess.State = StateResults
	}
	s.store.Set(sess.ID, sess)

	return sessionResponse(sess), nil
}

func (s *SessionService) Results(ctx context.Context, sessionID string) (response_models.ResultResponse, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return response_models.ResultResponse{}, utils.ErrSessionNotFound
	}
	if sess.State != StateResults {
		return response_models.ResultResponse{}, utils.ErrSessionNotFinished
	}

	ranked := s.rankSession(sess)
	if len(ranked) == 0 {
		return response_models.ResultResponse{}, utils.ErrEmptyCatalog
	}

	best := ranked[0]
	s.refreshFlightPrice(ctx, sess, &best)

	preference := s.matching.PreferenceVector(sess.Chosen)
	ranges := s.matching.FeatureRanges(sess.Candidates)
	weights := StyleWeightsFor(sess.TravelStyle)
	breakdown := s.matching.MatchBreakdown(&best.Destination, preference, ranges, weights)

	top := make([]response_models.MatchResult, 0, topListSize)
	for i, sd := range ranked {
		if i >= topListSize {
			break
		}
		top = append(top, s.matchResult(ctx, &sd, i == 0))
	}

	pool := make([]db_models.Destination, 0, len(ranked))
	for i := range ranked {
		pool = append(pool, ranked[i].Destination)
	}
	similar := make([]response_models.SimilarDestination, 0, similarNeighbors)
	for _, m := range s.similarity.Nearest(&best.Destination, pool, similarNeighbors) {
		dest := m.Destination
		similar = append(similar, response_models.SimilarDestination{
			Destination:   s.destinationResponse(ctx, &dest, false),
			Distance:      m.Distance,
			SimilarityPct: m.SimilarityPct,
		})
	}

	picks := make([]response_models.RoundPick, 0, len(sess.Chosen))
	for i, c := range sess.Chosen {
		picks = append(picks, response_models.RoundPick{Round: i + 1, City: c.City, Country: c.Country})
	}

	return response_models.ResultResponse{
		SessionID:   sess.ID,
		Best:        s.matchResult(ctx, &best, true),
		Breakdown:   breakdown,
		Top:         top,
		Similar:     similar,
		Preferences: preference,
		Insights:    s.insights.Generate(sess.Chosen),
		Picks:       picks,
	}, nil
}

func (s *SessionService) Export(ctx context.Context, sessionID, format string) (string, []byte, error) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return "", nil, utils.ErrSessionNotFound
	}
	if sess.State != StateResults {
		return "", nil, utils.ErrSessionNotFinished
	}

	ranked := s.rankSession(sess)

	if format == "csv" {
		body, err := s.export.CSV(ranked, topListSize)
		if err != nil {
			return "", nil, err
		}
		return s.export.Filename("csv"), body, nil
	}

	doc := s.export.BuildDocument(sess, ranked)
	body, err := s.export.JSON(doc)
	if err != nil {
		return "", nil, err
	}
	return s.export.Filename("json"), body, nil
}

func (s *SessionService) Delete(sessionID string) {
	s.store.Delete(sessionID)
}

// ---- round candidate selection ----

// ensureRoundOffers picks (or re-reads) the candidates for the current
// round. Early rounds are uniform random; once three choices exist the
// selection mixes two of the current top ten with one wildcard so later
// rounds exploit the learned preferences without collapsing the variety.
func (s *SessionService) ensureRoundOffers(sess *MatchSession) []*ScoredDestination {
	if ids, ok := sess.RoundOffers[sess.Round]; ok {
		return s.candidatesByID(sess, ids)
	}

	available := make([]ScoredDestination, 0, len(sess.Candidates))
	for i := range sess.Candidates {
		if !sess.UsedIDs[sess.Candidates[i].ID.String()] {
			available = append(available, sess.Candidates[i])
		}
	}
	if len(available) == 0 {
		return nil
	}

	var offered []ScoredDestination
	if sess.Round < coldStartRounds || len(sess.Chosen) < coldStartRounds {
		if len(available) <= LocationsPerRound {
			offered = available
		} else {
			offered = s.sample(available, LocationsPerRound)
		}
	} else {
		ranked := s.matching.Rank(available, sess.Chosen, sess.TravelStyle, sess.UseWeather, DefaultWeatherWeight)
		if len(ranked) <= LocationsPerRound {
			offered = ranked
		} else {
			topPool := ranked
			if len(topPool) > guidedTopPool {
				topPool = ranked[:guidedTopPool]
			}
			offered = s.sample(topPool, 2)
			rest := make([]ScoredDestination, 0, len(ranked))
			for i := range ranked {
				if ranked[i].ID != offered[0].ID && ranked[i].ID != offered[1].ID {
					rest = append(rest, ranked[i])
				}
			}
			if len(rest) > 0 {
				offered = append(offered, s.sample(rest, 1)...)
			}
			s.shuffle(offered)
		}
	}

	ids := make([]string, 0, len(offered))
	for i := range offered {
		ids = append(ids, offered[i].ID.String())
	}
	sess.RoundOffers[sess.Round] = ids
	return s.candidatesByID(sess, ids)
}

func (s *SessionService) candidatesByID(sess *MatchSession, ids []string) []*ScoredDestination {
	out := make([]*ScoredDestination, 0, len(ids))
	for _, id := range ids {
		for i := range sess.Candidates {
			if sess.Candidates[i].ID.String() == id {
				out = append(out, &sess.Candidates[i])
				break
			}
		}
	}
	return out
}

func (s *SessionService) sample(pool []ScoredDestination, n int) []ScoredDestination {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()

	idx := s.rnd.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]ScoredDestination, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

func (s *SessionService) shuffle(dests []ScoredDestination) {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	s.rnd.Shuffle(len(dests), func(i, j int) {
		dests[i], dests[j] = dests[j], dests[i]
	})
}

// ---- helpers ----

func (s *SessionService) rankSession(sess *MatchSession) []ScoredDestination {
	return s.matching.Rank(sess.Candidates, sess.Chosen, sess.TravelStyle, sess.UseWeather, DefaultWeatherWeight)
}

// refreshFlightPrice swaps the catalog's stored price for a live quote on
// the winning destination. Any failure keeps the stored price.
func (s *SessionService) refreshFlightPrice(ctx context.Context, sess *MatchSession, best *ScoredDestination) {
	if !s.flights.Configured() || best.IataCode == "" {
		return
	}
	price, err := s.flights.QuotePrice(ctx, sess.Origin, best.IataCode, sess.StartDate, sess.EndDate, sess.Travelers)
	if err != nil {
		log.Printf("Flight quote unavailable for %s: %v", best.City, err)
		return
	}
	best.FlightPrice = price
	best.FlightTotal = price * float64(sess.Travelers)
	best.TotalTripCost = best.FlightTotal + best.DailyTotal
	best.BudgetRemaining = sess.TotalBudget - best.TotalTripCost
}

func (s *SessionService) destinationResponse(ctx context.Context, d *db_models.Destination, hero bool) response_models.Destination {
	var imageURL string
	if hero {
		imageURL = s.images.HeroURL(ctx, d.City, d.Country)
	} else {
		imageURL = s.images.ThumbnailURL(ctx, d.City, d.Country)
	}
	return response_models.Destination{
		ID:              d.ID.String(),
		City:            d.City,
		Country:         d.Country,
		Continent:       d.Continent,
		IataCode:        d.IataCode,
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
		AvgBudgetPerDay: d.AvgBudgetPerDay,
		FlightPrice:     d.FlightPrice,
		Climate:         d.Climate,
		BestMonths:      d.BestMonths,
		ImageURL:        imageURL,
	}
}

func (s *SessionService) matchResult(ctx context.Context, sd *ScoredDestination, hero bool) response_models.MatchResult {
	return response_models.MatchResult{
		Destination:   s.destinationResponse(ctx, &sd.Destination, hero),
		MatchScore:    sd.MatchScore,
		WeatherScore:  sd.WeatherScore,
		CombinedScore: sd.CombinedScore,
		CurrentTempC:  sd.CurrentTempC,
		ForecastTempC: sd.ForecastTempC,
		RainDays:      sd.RainDays,
		Cost: response_models.CostBreakdown{
			FlightTotal:     sd.FlightTotal,
			DailyTotal:      sd.DailyTotal,
			Total:           sd.TotalTripCost,
			BudgetRemaining: sd.BudgetRemaining,
		},
	}
}

func sessionResponse(sess *MatchSession) response_models.SessionResponse {
	return response_models.SessionResponse{
		SessionID:   sess.ID,
		State:       sess.State,
		Round:       sess.Round,
		TotalRounds: TotalRounds,
		Candidates:  len(sess.Candidates),
	}
}
