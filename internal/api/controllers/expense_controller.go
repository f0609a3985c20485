package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdeck/internal/models/request_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

type ExpenseController struct {
	expenseService services.ExpenseServiceInterface
}

func NewExpenseController(expenseService services.ExpenseServiceInterface) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
	}
}

// ListExpenses godoc
// @Summary List expenses, newest first
// @Tags Expenses
// @Produce json
// @Param view query string false "day or all" default(all)
// @Param day_id query string false "Required when view=day"
// @Success 200 {array} response_models.ExpenseView
// @Security BearerAuth
// @Router /expenses [get]
func (e *ExpenseController) ListExpenses(c *gin.Context) {
	view := c.DefaultQuery("view", services.ExpenseViewAll)

	expenses, err := e.expenseService.ListExpenses(c.Request.Context(), view, c.Query("day_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, expenses, "Expenses fetched successfully")
}

// Summary godoc
// @Summary Expense totals per currency, category and day
// @Tags Expenses
// @Produce json
// @Success 200 {object} response_models.ExpenseSummary
// @Security BearerAuth
// @Router /expenses/summary [get]
func (e *ExpenseController) Summary(c *gin.Context) {
	summary, err := e.expenseService.Summary(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Expense summary fetched successfully")
}

// CreateExpense godoc
// @Summary Record an expense
// @Description The amount is converted to TWD; the entered amount is kept as original_amount
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body request_models.CreateExpenseRequest true "Expense"
// @Success 201 {object} response_models.ExpenseView
// @Security BearerAuth
// @Router /expenses [post]
func (e *ExpenseController) CreateExpense(c *gin.Context) {
	var req request_models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "day_id and category are required")
		return
	}

	expense, err := e.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, expense, "Expense saved successfully")
}

func (e *ExpenseController) UpdateExpense(c *gin.Context) {
	var req request_models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid expense payload")
		return
	}

	expense, err := e.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, expense, "Expense updated successfully")
}

func (e *ExpenseController) DeleteExpense(c *gin.Context) {
	if err := e.expenseService.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Expense deleted successfully")
}
