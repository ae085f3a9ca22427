package catalog

import (
	"fmt"

	"zing-keeper/cmd/root"
	"zing-keeper/services"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Store catalog operations (show/refresh)",
	Long:  `Store catalog operations (show/refresh)`,
}

const catalogExample = `  # show the store catalog
  zing-keeper catalog show
  zing-keeper catalog refresh`

/**
 * Get a fully initialized package manager for CLI use
 */
func initManager() (*services.PackageManager, error) {
	manager := services.GetPackageManager()
	if err := manager.Init(); err != nil {
		return nil, fmt.Errorf("initialize package manager failed: %v", err)
	}
	return manager, nil
}

func init() {
	root.RootCmd.AddCommand(catalogCmd)

	catalogCmd.Example = catalogExample
}
