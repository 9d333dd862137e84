package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tripmatch/internal/models/request_models"
	"tripmatch/internal/services"
)

func newBudgetRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewBudgetController(services.NewBudgetService())
	r.POST("/budget/compute", ctrl.Compute)
	return r
}

func TestComputeBudget_OK(t *testing.T) {
	r := newBudgetRouter()

	body, _ := json.Marshal(request_models.BudgetComputeRequest{
		TotalBudget: 2000, FlightPrice: 300, DailyCost: 80, TripDays: 5, Travelers: 2,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/budget/compute", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}

	var resp struct {
		Data struct {
			Total           float64 `json:"total"`
			BudgetRemaining float64 `json:"budget_remaining"`
			WithinBudget    bool    `json:"within_budget"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Total != 1400 {
		t.Errorf("total=%v want=1400", resp.Data.Total)
	}
	if !resp.Data.WithinBudget {
		t.Errorf("expected within budget")
	}
}

func TestComputeBudget_Invalid(t *testing.T) {
	r := newBudgetRouter()

	body, _ := json.Marshal(request_models.BudgetComputeRequest{
		TotalBudget: 2000, FlightPrice: 300, DailyCost: 80, TripDays: 0, Travelers: 2,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/budget/compute", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}
