package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"tripmatch/internal/repositories"
)

const (
	amadeusTestBaseURL = "https://test.api.amadeus.com"
	amadeusProdBaseURL = "https://api.amadeus.com"
	flightCacheTTL     = 6 * time.Hour
)

type FlightServiceInterface interface {
	// QuotePrice returns the cheapest round-trip offer for the window.
	// Callers fall back to the catalog's stored price when this errors.
	QuotePrice(ctx context.Context, origin, destination string, departure, ret time.Time, adults int) (float64, error)
	Configured() bool
}

type AmadeusService struct {
	clientID     string
	clientSecret string
	baseURL      string
	cache        repositories.CacheRepository
	client       *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusService(cache repositories.CacheRepository) FlightServiceInterface {
	baseURL := amadeusTestBaseURL
	if os.Getenv("AMADEUS_ENV") == "production" {
		baseURL = amadeusProdBaseURL
	}
	return &AmadeusService{
		clientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		clientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		baseURL:      baseURL,
		cache:        cache,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *AmadeusService) Configured() bool {
	return s.clientID != "" && s.clientSecret != ""
}

func (s *AmadeusService) QuotePrice(ctx context.Context, origin, destination string, departure, ret time.Time, adults int) (float64, error) {
	if !s.Configured() {
		return 0, fmt.Errorf("amadeus not configured")
	}
	if adults <= 0 {
		adults = 1
	}

	depStr := departure.Format("2006-01-02")
	retStr := ret.Format("2006-01-02")
	cacheKey := fmt.Sprintf("flight:%s:%s:%s:%s", origin, destination, depStr, retStr)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if price, err := strconv.ParseFloat(cached, 64); err == nil {
			return price, nil
		}
	}

	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", depStr)
	q.Set("returnDate", retStr)
	q.Set("adults", strconv.Itoa(adults))
	q.Set("currencyCode", "CHF")
	q.Set("max", "3")

	body, err := s.doRequest(ctx, "/v2/shopping/flight-offers?"+q.Encode())
	if err != nil {
		return 0, err
	}

	var payload struct {
		Data []struct {
			Price struct {
				Total string `json:"total"`
			} `json:"price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("amadeus decode: %w", err)
	}
	if len(payload.Data) == 0 {
		return 0, fmt.Errorf("amadeus: no offers for %s-%s", origin, destination)
	}

	cheapest := -1.0
	for _, offer := range payload.Data {
		total, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil {
			continue
		}
		if cheapest < 0 || total < cheapest {
			cheapest = total
		}
	}
	if cheapest < 0 {
		return 0, fmt.Errorf("amadeus: no parsable offer price")
	}

	s.cache.Set(ctx, cacheKey, strconv.FormatFloat(cheapest, 'f', 2, 64), flightCacheTTL)
	return cheapest, nil
}

// ---- OAuth2 client-credentials token ----

func (s *AmadeusService) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.clientID)
	form.Set("client_secret", s.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("amadeus token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("amadeus token parse: %w", err)
	}

	s.mu.Lock()
	s.accessToken = result.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	s.mu.Unlock()
	return nil
}

func (s *AmadeusService) getToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	expired := time.Now().After(s.tokenExpiry)
	token := s.accessToken
	s.mu.Unlock()

	if expired || token == "" {
		if err := s.refreshToken(ctx); err != nil {
			return "", err
		}
		s.mu.Lock()
		token = s.accessToken
		s.mu.Unlock()
	}
	return token, nil
}

func (s *AmadeusService) doRequest(ctx context.Context, path string) ([]byte, error) {
	token, err := s.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("amadeus auth failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
