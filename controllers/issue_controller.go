package controllers

import (
	"github.com/gin-gonic/gin"

	"zing-keeper/internal/config"
	"zing-keeper/services"
)

type IssueController struct {
	manager *services.PackageManager
}

/**
 * Create new issue controller instance
 * @param {*services.PackageManager} manager - Package manager instance
 */
func NewIssueController(manager *services.PackageManager) *IssueController {
	return &IssueController{
		manager: manager,
	}
}

/**
 * Register issue API routes to Gin engine
 */
func (i *IssueController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/zing/api/v1")
	api.GET("/issues", i.ListIssues)
	api.POST("/issues/:id/fix", i.FixIssue)
}

// @Summary List pending issues
// @Description Get all pending repair issues, oldest first
// @Tags Issues
// @Produce json
// @Success 200 {array} models.Issue
// @Router /zing/api/v1/issues [get]
func (i *IssueController) ListIssues(g *gin.Context) {
	g.JSON(200, i.manager.Issues().List())
}

// @Summary Fix an issue
// @Description Mark a repair issue as fixed; when it was the package's last restart
// @Description issue the waiting-restart flag is cleared too
// @Tags Issues
// @Param id path string true "Issue id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "{"code": "issue.not_found", "message": "Issue not found"}"
// @Router /zing/api/v1/issues/{id}/fix [post]
func (i *IssueController) FixIssue(g *gin.Context) {
	if err := i.manager.FixIssue(g.Param("id")); err != nil {
		if err == config.ErrIssueNotFound {
			g.JSON(404, gin.H{
				"code":    "issue.not_found",
				"message": "Issue not found",
			})
		} else {
			g.JSON(500, gin.H{
				"code":    "issue.fix_failed",
				"message": err.Error(),
			})
		}
		return
	}
	g.JSON(200, gin.H{"status": "success"})
}
