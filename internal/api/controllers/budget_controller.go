package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmatch/internal/models/request_models"
	"tripmatch/internal/services"
	"tripmatch/pkg/utils"
)

type BudgetController struct {
	budgetService services.BudgetServiceInterface
}

func NewBudgetController(budgetService services.BudgetServiceInterface) *BudgetController {
	return &BudgetController{
		budgetService: budgetService,
	}
}

// Compute godoc
// @Summary Compute a trip budget
// @Description Break a total budget down into flight and daily costs
// @Tags Budget
// @Accept json
// @Produce json
// @Param request body request_models.BudgetComputeRequest true "Budget input"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /budget/compute [post]
func (b *BudgetController) Compute(c *gin.Context) {
	var req request_models.BudgetComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := b.budgetService.Compute(req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Budget computed")
}
