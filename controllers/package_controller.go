package controllers

import (
	"github.com/gin-gonic/gin"

	"zing-keeper/internal/config"
	"zing-keeper/services"
)

type PackageController struct {
	manager *services.PackageManager
}

/**
 * Create new package controller instance
 * @param {*services.PackageManager} manager - Package manager instance
 * @returns {*PackageController} New package controller instance
 * @example
 * manager := services.GetPackageManager()
 * controller := controllers.NewPackageController(manager)
 */
func NewPackageController(manager *services.PackageManager) *PackageController {
	return &PackageController{
		manager: manager,
	}
}

/**
 * Register all package API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for:
 *   - Package management (list/install/upgrade/delete)
 *   - Catalog (list/refresh)
 */
func (p *PackageController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/zing/api/v1")
	api.GET("/packages", p.ListPackages)
	api.POST("/packages/:id/install", p.InstallPackage)
	api.POST("/packages/:id/upgrade", p.UpgradePackage)
	api.DELETE("/packages/:id", p.DeletePackage)
	api.GET("/catalog", p.ListCatalog)
	api.POST("/catalog/refresh", p.RefreshCatalog)
}

// @Summary List tracked packages
// @Description Get every installed package with its version and update status
// @Tags Packages
// @Produce json
// @Success 200 {array} models.PackageDetail
// @Router /zing/api/v1/packages [get]
func (p *PackageController) ListPackages(g *gin.Context) {
	g.JSON(200, p.manager.List())
}

// @Summary Install package
// @Description Install a store package by id
// @Tags Packages
// @Param id path string true "Package id"
// @Success 200 {object} models.PackageDetail
// @Failure 404 {object} map[string]string "{"code": "package.not_found", "message": "Package not found"}"
// @Router /zing/api/v1/packages/{id}/install [post]
func (p *PackageController) InstallPackage(g *gin.Context) {
	detail, err := p.manager.Install(g.Param("id"))
	if err != nil {
		if err == config.ErrPackageNotFound {
			g.JSON(404, gin.H{
				"code":    "package.not_found",
				"message": "Package not found",
			})
		} else {
			g.JSON(500, gin.H{
				"code":    "package.install_failed",
				"message": err.Error(),
			})
		}
		return
	}
	g.JSON(200, detail)
}

// @Summary Upgrade package
// @Description Upgrade a tracked package to the latest version, or the tag given in ?version=
// @Tags Packages
// @Param id path string true "Package id"
// @Param version query string false "Target release tag"
// @Success 200 {object} models.PackageDetail
// @Failure 404 {object} map[string]string "{"code": "package.not_found", "message": "Package not found"}"
// @Router /zing/api/v1/packages/{id}/upgrade [post]
func (p *PackageController) UpgradePackage(g *gin.Context) {
	detail, err := p.manager.Upgrade(g.Param("id"), g.Query("version"))
	if err != nil {
		if err == config.ErrPackageNotFound {
			g.JSON(404, gin.H{
				"code":    "package.not_found",
				"message": "Package not found",
			})
		} else {
			g.JSON(500, gin.H{
				"code":    "package.upgrade_failed",
				"message": err.Error(),
			})
		}
		return
	}
	g.JSON(200, detail)
}

// @Summary Uninstall package
// @Description Remove a tracked package's files and stop tracking it
// @Tags Packages
// @Param id path string true "Package id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "{"code": "package.not_found", "message": "Package not found"}"
// @Router /zing/api/v1/packages/{id} [delete]
func (p *PackageController) DeletePackage(g *gin.Context) {
	if err := p.manager.Remove(g.Param("id")); err != nil {
		if err == config.ErrPackageNotFound {
			g.JSON(404, gin.H{
				"code":    "package.not_found",
				"message": "Package not found",
			})
		} else {
			g.JSON(500, gin.H{
				"code":    "package.remove_failed",
				"message": err.Error(),
			})
		}
		return
	}
	g.JSON(200, gin.H{"status": "success"})
}

// @Summary List store catalog
// @Description Get every package the store offers, flagged with installed state
// @Tags Catalog
// @Produce json
// @Success 200 {array} models.CatalogItem
// @Router /zing/api/v1/catalog [get]
func (p *PackageController) ListCatalog(g *gin.Context) {
	g.JSON(200, p.manager.ListCatalog())
}

// @Summary Refresh store catalog
// @Description Re-download store_list.yaml from the store server
// @Tags Catalog
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string "{"code": "catalog.refresh_failed", "message": "..."}"
// @Router /zing/api/v1/catalog/refresh [post]
func (p *PackageController) RefreshCatalog(g *gin.Context) {
	cfg := &config.Config
	client := services.GetStoreClient()
	if err := p.manager.Catalog().Refresh(client, cfg.Store.Owner, cfg.Store.CatalogRepo); err != nil {
		g.JSON(500, gin.H{
			"code":    "catalog.refresh_failed",
			"message": err.Error(),
		})
		return
	}
	g.JSON(200, gin.H{
		"status":   "success",
		"packages": len(p.manager.Catalog().List()),
	})
}
