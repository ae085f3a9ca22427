package server

import (
	"context"
	"fmt"
	"log"

	"zing-keeper/cmd/root"
	"zing-keeper/controllers"
	"zing-keeper/internal/config"
	"zing-keeper/internal/middleware"
	"zing-keeper/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the keeper HTTP service",
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(context.Background()); err != nil {
			log.Fatal(err)
		}
	},
}

/**
 * Start the keeper HTTP service
 * @description
 * - Loads catalog, state and issues, adopts pre-installed integrations
 * - Starts the periodic update checker
 * - Serves the package, catalog, issue and system routes
 */
func startServer(ctx context.Context) error {
	gin.SetMode(config.Config.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Metrics())

	manager := services.GetPackageManager()
	if err := manager.Init(); err != nil {
		return fmt.Errorf("initialize package manager failed: %v", err)
	}

	controllers.NewAPIController().RegisterRoutes(router)
	controllers.NewPackageController(manager).RegisterRoutes(router)
	controllers.NewIssueController(manager).RegisterRoutes(router)

	services.GetChecker().Start(ctx)

	return router.Run(config.Config.Server.Address)
}

func init() {
	root.RootCmd.AddCommand(serverCmd)
}
