package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "zing-keeper",
	Short: "Package store keeper for the hub",
	Long:  `zing-keeper manages hub add-on packages: it lists the store catalog, installs and updates integrations, dashboard cards and blueprints, and keeps track of pending restart issues`,
}
