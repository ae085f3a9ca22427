package catalog

import (
	"fmt"

	"zing-keeper/internal/config"
	"zing-keeper/services"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the store catalog from the store server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := refreshCatalog(); err != nil {
			fmt.Println(err)
		}
	},
}

func refreshCatalog() error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	cfg := &config.Config
	client := services.GetStoreClient()
	if err := manager.Catalog().Refresh(client, cfg.Store.Owner, cfg.Store.CatalogRepo); err != nil {
		return fmt.Errorf("Catalog refresh failed: %v", err)
	}
	fmt.Printf("Store catalog refreshed: %d packages\n", len(manager.Catalog().List()))
	return nil
}

func init() {
	catalogCmd.AddCommand(refreshCmd)
}
