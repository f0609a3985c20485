package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"tripdeck/internal/config"
	"tripdeck/pkg/middleware"
	"tripdeck/pkg/utils"
)

type Router struct {
	fx.In

	Config   *config.Config
	Issuer   *utils.TokenIssuer
	Auth     *AuthController
	Schedule *ScheduleController
	Expense  *ExpenseController
	Currency *CurrencyController
	Enrich   *EnrichController
	Image    *ImageController
}

// RegisterRoutes wires every API route. Reads need any session; writes and
// enrichment need a full session.
func RegisterRoutes(r *gin.Engine, rt Router) {
	authGroup := r.Group("/auth")
	authGroup.POST("/login", rt.Auth.Login)
	authGroup.POST("/view-only", rt.Auth.ViewOnly)

	session := r.Group("/", middleware.JWTAuthMiddleware(rt.Issuer))
	full := middleware.ModeMiddleware(utils.ModeFull)

	schedule := session.Group("/schedule")
	schedule.GET("", rt.Schedule.GetSchedule)
	schedule.GET("/days/:dayId", rt.Schedule.GetDay)
	schedule.POST("/days/:dayId/items", full, rt.Schedule.AddItem)
	schedule.PUT("/items/:itemId", full, rt.Schedule.UpdateItem)
	schedule.DELETE("/days/:dayId/items/:itemId", full, rt.Schedule.DeleteItem)
	schedule.PUT("/days/:dayId/order", full, rt.Schedule.ReorderItems)
	schedule.POST("/days/:dayId/move", full, rt.Schedule.MoveItem)
	schedule.POST("/days/:dayId/optimize", full, rt.Schedule.OptimizeDay)

	expenses := session.Group("/expenses")
	expenses.GET("", rt.Expense.ListExpenses)
	expenses.GET("/summary", rt.Expense.Summary)
	expenses.POST("", full, rt.Expense.CreateExpense)
	expenses.PUT("/:id", full, rt.Expense.UpdateExpense)
	expenses.DELETE("/:id", full, rt.Expense.DeleteExpense)

	currency := session.Group("/currency")
	currency.GET("/rates", rt.Currency.GetRates)
	currency.GET("/rate/:code", rt.Currency.GetRate)

	enrich := session.Group("/enrich", full, middleware.RateLimit(rt.Config.EnrichRPS))
	enrich.POST("/place", rt.Enrich.PlaceInfo)
	enrich.POST("/travel", rt.Enrich.TravelLeg)
	enrich.POST("/items/:itemId/coordinates", rt.Enrich.FillCoordinates)

	images := session.Group("/images", full)
	images.POST("/items/:itemId", rt.Image.UploadForItem)
	images.DELETE("", rt.Image.Delete)
}
