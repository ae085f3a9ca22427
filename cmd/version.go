package cmd

import (
	"fmt"

	"zing-keeper/cmd/root"
	"zing-keeper/services"

	"github.com/spf13/cobra"
)

func PrintVersions() {
	fmt.Printf("Version %s\n", services.SoftwareVer)
	fmt.Printf("Build Time: %s\n", services.BuildTime)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `The 'version' command shows version details including build time`,

	Run: func(cmd *cobra.Command, args []string) {
		PrintVersions()
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)

	versionCmd.Example = `  zing-keeper version`
}
