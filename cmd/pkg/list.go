package pkg

import (
	"fmt"

	"zing-keeper/internal/utils"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [package id]",
	Short: "List information of all tracked packages",
	Long:  "List information of all tracked packages, including installed and latest versions. If a package id is specified, only show detailed information of that package.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := listInfo(args); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 *	Fields displayed in list format
 */
type Package_Columns struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Installed string `json:"installed"`
	Latest    string `json:"latest"`
	Update    string `json:"update"`
	Restart   string `json:"restart"`
}

func listInfo(args []string) error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return listSpecificPackage(args[0])
	}

	details := manager.List()
	if len(details) == 0 {
		fmt.Println("No packages tracked")
		return nil
	}
	var dataList []*orderedmap.OrderedMap
	for _, detail := range details {
		row := Package_Columns{
			ID:        detail.ID,
			Type:      string(detail.State.Type),
			Installed: detail.State.InstalledVersion,
			Latest:    detail.State.LatestVersion,
			Update:    fmt.Sprintf("%v", detail.State.UpdateAvailable),
			Restart:   fmt.Sprintf("%v", detail.State.WaitingRestart),
		}
		recordMap, _ := utils.StructToOrderedMap(row)
		dataList = append(dataList, recordMap)
	}

	utils.PrintFormat(dataList)
	return nil
}

/**
 * List detailed information of one package
 */
func listSpecificPackage(id string) error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	state := manager.State().Get(id)
	if state == nil {
		return fmt.Errorf("Package '%s' not found", id)
	}
	fmt.Printf("=== Detailed information of package '%s' ===\n", id)
	fmt.Printf("Repository: %s/%s\n", state.Owner, state.Repo)
	fmt.Printf("Type: %s\n", state.Type)
	fmt.Printf("Source: %s\n", state.Source)
	fmt.Printf("Installed version: %s\n", state.InstalledVersion)
	if state.LatestVersion != "" {
		fmt.Printf("Latest server version: %s\n", state.LatestVersion)
	} else {
		fmt.Printf("Latest server version: Unable to retrieve\n")
	}
	fmt.Printf("Update available: %v\n", state.UpdateAvailable)
	fmt.Printf("Waiting restart: %v\n", state.WaitingRestart)
	fmt.Printf("Installed at: %s\n", state.InstallDate)
	if state.LastCheck != "" {
		fmt.Printf("Last checked: %s\n", state.LastCheck)
	}
	if state.ReleaseSummary != "" {
		fmt.Printf("Latest release: %s\n", state.ReleaseSummary)
	}
	return nil
}

func init() {
	packageCmd.AddCommand(listCmd)
}
