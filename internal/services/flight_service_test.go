package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tripmatch/internal/repositories"
)

func newTestAmadeusService(handler http.Handler) (*AmadeusService, *httptest.Server) {
	ts := httptest.NewServer(handler)
	svc := &AmadeusService{
		clientID:     "test-id",
		clientSecret: "test-secret",
		baseURL:      ts.URL,
		cache:        repositories.NewMemoryCache(),
		client:       ts.Client(),
	}
	return svc, ts
}

func amadeusHandler(t *testing.T, tokenRequests, offerRequests *int) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		*tokenRequests++
		if r.Method != http.MethodPost {
			t.Errorf("token method=%s want=POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" {
			t.Errorf("grant_type=%q", r.PostForm.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","expires_in":1799}`))
	})

	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		*offerRequests++
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer tok-123") {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("currencyCode") != "CHF" {
			t.Errorf("currency=%q want=CHF", r.URL.Query().Get("currencyCode"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"price":{"total":"412.50"}},
			{"price":{"total":"389.00"}},
			{"price":{"total":"455.20"}}]}`))
	})

	return mux
}

func TestQuotePrice_CheapestOfferAndCaching(t *testing.T) {
	var tokenRequests, offerRequests int
	svc, ts := newTestAmadeusService(amadeusHandler(t, &tokenRequests, &offerRequests))
	defer ts.Close()

	dep := time.Now().AddDate(0, 0, 7)
	ret := dep.AddDate(0, 0, 5)

	price, err := svc.QuotePrice(context.Background(), "ZRH", "LIS", dep, ret, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 389.00 {
		t.Fatalf("price=%v want=389 (cheapest offer)", price)
	}
	if tokenRequests != 1 {
		t.Errorf("token requests=%d want=1", tokenRequests)
	}

	// Same route and dates must hit the cache, not the API.
	if _, err := svc.QuotePrice(context.Background(), "ZRH", "LIS", dep, ret, 2); err != nil {
		t.Fatalf("cached quote: %v", err)
	}
	if offerRequests != 1 {
		t.Errorf("offer requests=%d want=1", offerRequests)
	}
}

func TestQuotePrice_TokenReused(t *testing.T) {
	var tokenRequests, offerRequests int
	svc, ts := newTestAmadeusService(amadeusHandler(t, &tokenRequests, &offerRequests))
	defer ts.Close()

	dep := time.Now().AddDate(0, 0, 7)
	ret := dep.AddDate(0, 0, 5)

	if _, err := svc.QuotePrice(context.Background(), "ZRH", "LIS", dep, ret, 1); err != nil {
		t.Fatalf("first quote: %v", err)
	}
	if _, err := svc.QuotePrice(context.Background(), "ZRH", "BKK", dep, ret, 1); err != nil {
		t.Fatalf("second quote: %v", err)
	}

	if tokenRequests != 1 {
		t.Errorf("token requests=%d want=1, token must be reused until expiry", tokenRequests)
	}
	if offerRequests != 2 {
		t.Errorf("offer requests=%d want=2", offerRequests)
	}
}

func TestQuotePrice_NoOffers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok-123","expires_in":1799}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	svc, ts := newTestAmadeusService(mux)
	defer ts.Close()

	dep := time.Now().AddDate(0, 0, 7)
	if _, err := svc.QuotePrice(context.Background(), "ZRH", "XXX", dep, dep.AddDate(0, 0, 3), 1); err == nil {
		t.Fatalf("expected error for empty offer list")
	}
}

func TestQuotePrice_NotConfigured(t *testing.T) {
	svc := &AmadeusService{cache: repositories.NewMemoryCache(), client: &http.Client{}}

	if svc.Configured() {
		t.Fatalf("service without credentials reports configured")
	}
	dep := time.Now()
	if _, err := svc.QuotePrice(context.Background(), "ZRH", "LIS", dep, dep, 1); err == nil {
		t.Fatalf("expected error when not configured")
	}
}
