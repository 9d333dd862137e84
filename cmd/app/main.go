package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripmatch/cmd/fx/cachefx"
	"tripmatch/cmd/fx/catalogfx"
	"tripmatch/cmd/fx/controllersfx"
	"tripmatch/cmd/fx/dbfx"
	"tripmatch/cmd/fx/flightsfx"
	"tripmatch/cmd/fx/imagesfx"
	"tripmatch/cmd/fx/matchfx"
	"tripmatch/cmd/fx/sessionfx"
	"tripmatch/cmd/fx/weatherfx"
	"tripmatch/internal/api/controllers"
	"tripmatch/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		dbfx.Module,
		cachefx.Module,
		matchfx.Module,
		weatherfx.Module,
		flightsfx.Module,
		imagesfx.Module,
		catalogfx.Module,
		sessionfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	sessionController *controllers.SessionController,
	destinationsController *controllers.DestinationsController,
	budgetController *controllers.BudgetController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, sessionController, destinationsController, budgetController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	sessionController *controllers.SessionController,
	destinationsController *controllers.DestinationsController,
	budgetController *controllers.BudgetController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessionGroup := r.Group("/sessions")
	sessionGroup.POST("", sessionController.Start)
	sessionGroup.GET("/:id/round", sessionController.GetRound)
	sessionGroup.POST("/:id/pick", sessionController.Pick)
	sessionGroup.GET("/:id/results", sessionController.GetResults)
	sessionGroup.GET("/:id/export", sessionController.Export)
	sessionGroup.DELETE("/:id", sessionController.Delete)

	destGroup := r.Group("/destinations")
	destGroup.GET("", destinationsController.List)
	destGroup.GET("/:id", destinationsController.GetByID)
	destGroup.GET("/:id/similar", destinationsController.Similar)

	r.GET("/styles", destinationsController.ListTravelStyles)

	budgetGroup := r.Group("/budget")
	budgetGroup.POST("/compute", budgetController.Compute)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.POST("/destinations/import", destinationsController.ImportDestinations)
}
