package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"tripmatch/internal/repositories"
)

const (
	unsplashBaseURL = "https://api.unsplash.com"
	imageCacheTTL   = 7 * 24 * time.Hour

	// Shown when the API key is unset, the call fails, or nothing matches.
	FallbackImageURL = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=800&h=400&fit=crop"
)

type ImageServiceInterface interface {
	ThumbnailURL(ctx context.Context, city, country string) string
	HeroURL(ctx context.Context, city, country string) string
}

type UnsplashService struct {
	accessKey string
	baseURL   string
	cache     repositories.CacheRepository
	client    *http.Client
}

func NewUnsplashService(cache repositories.CacheRepository) ImageServiceInterface {
	return &UnsplashService{
		accessKey: os.Getenv("UNSPLASH_ACCESS_KEY"),
		baseURL:   unsplashBaseURL,
		cache:     cache,
		client:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *UnsplashService) ThumbnailURL(ctx context.Context, city, country string) string {
	return s.imageURL(ctx, city, country, 800, 500)
}

func (s *UnsplashService) HeroURL(ctx context.Context, city, country string) string {
	return s.imageURL(ctx, city, country, 1600, 900)
}

func (s *UnsplashService) imageURL(ctx context.Context, city, country string, width, height int) string {
	cacheKey := strings.ToLower(fmt.Sprintf("image:%s|%s|%dx%d", city, country, width, height))
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		return cached
	}

	if s.accessKey == "" {
		return FallbackImageURL
	}

	query := strings.TrimSpace(fmt.Sprintf("%s %s travel landmark", city, country))

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return FallbackImageURL
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return FallbackImageURL
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FallbackImageURL
	}

	var payload struct {
		Results []struct {
			URLs struct {
				Raw string `json:"raw"`
			} `json:"urls"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Results) == 0 {
		return FallbackImageURL
	}

	imageURL := fmt.Sprintf("%s&w=%d&h=%d&fit=crop&q=80", payload.Results[0].URLs.Raw, width, height)
	s.cache.Set(ctx, cacheKey, imageURL, imageCacheTTL)
	return imageURL
}
