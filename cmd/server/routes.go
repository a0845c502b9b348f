package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"revebot.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	setupHandler   *handlers.SetupHandler
	authMiddleware gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Onboarding wizard (protected)
		setup := v1.Group("/setup")
		setup.Use(d.authMiddleware)
		{
			setup.GET("/status", d.setupHandler.GetStatus)

			setup.GET("/step1", d.setupHandler.GetStep1)
			setup.POST("/step1", d.setupHandler.SubmitStep1)
			setup.GET("/step2", d.setupHandler.GetStep2)
			setup.POST("/step2", d.setupHandler.SubmitStep2)
			setup.GET("/step3", d.setupHandler.GetStep3)
			setup.POST("/step3", d.setupHandler.SubmitStep3)
			setup.GET("/step4", d.setupHandler.GetStep4)
			setup.POST("/step4", d.setupHandler.SubmitStep4)
		}
	}
}
