package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tripmatch/internal/models/request_models"
	"tripmatch/internal/models/response_models"
	"tripmatch/pkg/utils"
)

type mockSessionService struct {
	startErr   error
	resultsErr error
	deleted    []string
}

func (m *mockSessionService) StartSession(ctx context.Context, req request_models.StartSessionRequest) (response_models.SessionResponse, error) {
	if m.startErr != nil {
		return response_models.SessionResponse{}, m.startErr
	}
	return response_models.SessionResponse{SessionID: "sess-1", State: "matching", TotalRounds: 7, Candidates: 12}, nil
}

func (m *mockSessionService) CurrentRound(ctx context.Context, sessionID string) (response_models.RoundResponse, error) {
	if sessionID != "sess-1" {
		return response_models.RoundResponse{}, utils.ErrSessionNotFound
	}
	return response_models.RoundResponse{SessionID: sessionID, Round: 1, TotalRounds: 7, State: "matching"}, nil
}

func (m *mockSessionService) Pick(ctx context.Context, sessionID, destinationID string) (response_models.SessionResponse, error) {
	if destinationID == "bad" {
		return response_models.SessionResponse{}, utils.ErrChoiceNotOffered
	}
	return response_models.SessionResponse{SessionID: sessionID, State: "matching", Round: 1, TotalRounds: 7}, nil
}

func (m *mockSessionService) Results(ctx context.Context, sessionID string) (response_models.ResultResponse, error) {
	if m.resultsErr != nil {
		return response_models.ResultResponse{}, m.resultsErr
	}
	return response_models.ResultResponse{SessionID: sessionID}, nil
}

func (m *mockSessionService) Export(ctx context.Context, sessionID, format string) (string, []byte, error) {
	if format == "csv" {
		return "travel_match_20260830_1504.csv", []byte("rank,city\n1,Lisbon\n"), nil
	}
	return "travel_match_20260830_1504.json", []byte(`{"results":{}}`), nil
}

func (m *mockSessionService) Delete(sessionID string) {
	m.deleted = append(m.deleted, sessionID)
}

func newSessionRouter(mock *mockSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewSessionController(mock)
	r.POST("/sessions", ctrl.Start)
	r.GET("/sessions/:id/round", ctrl.GetRound)
	r.POST("/sessions/:id/pick", ctrl.Pick)
	r.GET("/sessions/:id/results", ctrl.GetResults)
	r.GET("/sessions/:id/export", ctrl.Export)
	r.DELETE("/sessions/:id", ctrl.Delete)
	return r
}

func TestStartSession_OK(t *testing.T) {
	r := newSessionRouter(&mockSessionService{})

	body, _ := json.Marshal(request_models.StartSessionRequest{TotalBudget: 2000, TripDays: 5, Travelers: 2})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}

	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status=%q", resp.Status)
	}
}

func TestStartSession_MalformedBody(t *testing.T) {
	r := newSessionRouter(&mockSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("{not json"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}

func TestStartSession_ServiceErrorMapping(t *testing.T) {
	r := newSessionRouter(&mockSessionService{startErr: utils.ErrInvalidStyle})

	body, _ := json.Marshal(request_models.StartSessionRequest{TotalBudget: 2000, TripDays: 5, Travelers: 2, TravelStyle: "nope"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}

func TestGetRound_UnknownSession(t *testing.T) {
	r := newSessionRouter(&mockSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/unknown/round", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", w.Code)
	}
}

func TestPick_NotOffered(t *testing.T) {
	r := newSessionRouter(&mockSessionService{})

	body, _ := json.Marshal(request_models.PickRequest{DestinationID: "bad"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions/sess-1/pick", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}

func TestResults_NotFinished(t *testing.T) {
	r := newSessionRouter(&mockSessionService{resultsErr: utils.ErrSessionNotFinished})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1/results", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d want=409", w.Code)
	}
}

func TestExport_Download(t *testing.T) {
	r := newSessionRouter(&mockSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1/export?format=csv", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type=%q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".csv") {
		t.Errorf("content disposition=%q", cd)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	r := newSessionRouter(&mockSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sessions/sess-1/export?format=xml", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}

func TestDelete_CallsService(t *testing.T) {
	mock := &mockSessionService{}
	r := newSessionRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/sessions/sess-1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	if len(mock.deleted) != 1 || mock.deleted[0] != "sess-1" {
		t.Fatalf("deleted=%v", mock.deleted)
	}
}
