package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zing-keeper/internal/config"
	"zing-keeper/services"
)

type APIController struct{}

/**
 * Create new API controller instance
 * @returns {*APIController} New API controller instance
 * @description
 * - Handles the system-level routes (reload/check/healthz/metrics)
 */
func NewAPIController() *APIController {
	return &APIController{}
}

/**
 * Register all system API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.POST("/zing/api/v1/reload", a.ReloadConfig)
	r.POST("/zing/api/v1/check", a.Check)
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// @Summary Reload configuration
// @Description Reload the application configuration file
// @Tags Config
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /zing/api/v1/reload [post]
func (a *APIController) ReloadConfig(c *gin.Context) {
	if err := config.ReloadConfig(); err != nil {
		c.JSON(500, gin.H{
			"code":    "config.reload_failed",
			"message": "Failed to reload configuration: " + err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"status":  "success",
		"message": "Configuration reloaded successfully",
	})
}

// @Summary Run an update check
// @Description Immediately check every tracked package for updates and return the
// @Description per-package results, the pending issues and the scheduler state
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} models.CheckResponse
// @Router /zing/api/v1/check [post]
func (a *APIController) Check(c *gin.Context) {
	c.JSON(200, services.Check())
}

// @Summary Readiness probe
// @Description Report service version, start time, tracked package count and request counters
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(200, services.GetHealthz())
}
