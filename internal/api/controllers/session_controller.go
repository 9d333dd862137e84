package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmatch/internal/models/request_models"
	"tripmatch/internal/services"
	"tripmatch/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
}

func NewSessionController(sessionService services.SessionServiceInterface) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// Start godoc
// @Summary Start a matching session
// @Description Create a session from budget, trip length and travel style
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body request_models.StartSessionRequest true "Session settings"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /sessions [post]
func (s *SessionController) Start(c *gin.Context) {
	var req request_models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ctx := context.Background()

	resp, err := s.sessionService.StartSession(ctx, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Session started")
}

// GetRound godoc
// @Summary Get the current round
// @Description Return the candidates offered in the session's current round
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /sessions/{id}/round [get]
func (s *SessionController) GetRound(c *gin.Context) {
	ctx := context.Background()

	resp, err := s.sessionService.CurrentRound(ctx, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Round retrieved")
}

// Pick godoc
// @Summary Pick a destination
// @Description Record the user's choice for the current round
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.PickRequest true "Chosen destination"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /sessions/{id}/pick [post]
func (s *SessionController) Pick(c *gin.Context) {
	var req request_models.PickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	ctx := context.Background()

	resp, err := s.sessionService.Pick(ctx, c.Param("id"), req.DestinationID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Choice recorded")
}

// GetResults godoc
// @Summary Get session results
// @Description Return the final ranking once all rounds are done
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /sessions/{id}/results [get]
func (s *SessionController) GetResults(c *gin.Context) {
	ctx := context.Background()

	resp, err := s.sessionService.Results(ctx, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Results retrieved")
}

// Export godoc
// @Summary Export session results
// @Description Download the results as a JSON document or a CSV table
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param format query string false "json or csv" default(json)
// @Success 200 {file} file
// @Failure 409 {object} utils.APIResponse
// @Router /sessions/{id}/export [get]
func (s *SessionController) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		utils.RespondError(c, http.StatusBadRequest, "Unsupported export format")
		return
	}

	ctx := context.Background()

	filename, body, err := s.sessionService.Export(ctx, c.Param("id"), format)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	contentType := "application/json"
	if format == "csv" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

// Delete godoc
// @Summary Delete a session
// @Description Drop the session and all its state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Router /sessions/{id} [delete]
func (s *SessionController) Delete(c *gin.Context) {
	s.sessionService.Delete(c.Param("id"))
	utils.RespondSuccess(c, nil, "Session deleted")
}
