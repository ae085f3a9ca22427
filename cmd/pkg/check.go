package pkg

import (
	"fmt"

	"zing-keeper/internal/utils"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check all tracked packages for updates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkPackages(); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 *	Fields displayed in check output
 */
type Check_Columns struct {
	ID        string `json:"id"`
	Installed string `json:"installed"`
	Latest    string `json:"latest"`
	Update    string `json:"update"`
	Note      string `json:"note"`
}

func checkPackages() error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	results, _ := manager.CheckUpdates()
	if len(results) == 0 {
		fmt.Println("No packages tracked")
		return nil
	}
	var dataList []*orderedmap.OrderedMap
	updates := 0
	for _, result := range results {
		note := "-"
		switch {
		case result.Skipped:
			note = "skipped"
		case result.Error != "":
			note = result.Error
		}
		if result.UpdateAvailable {
			updates++
		}
		row := Check_Columns{
			ID:        result.ID,
			Installed: result.InstalledVersion,
			Latest:    result.LatestVersion,
			Update:    fmt.Sprintf("%v", result.UpdateAvailable),
			Note:      note,
		}
		recordMap, _ := utils.StructToOrderedMap(row)
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	fmt.Printf("%d of %d packages have updates available\n", updates, len(results))
	return nil
}

func init() {
	packageCmd.AddCommand(checkCmd)
}
