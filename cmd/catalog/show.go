package catalog

import (
	"fmt"

	"zing-keeper/internal/utils"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the store catalog",
	Long:  "Show every package the store offers, flagged with installed state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showCatalog(); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 *	Fields displayed in catalog output
 */
type Catalog_Columns struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Installed   string `json:"installed"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

func showCatalog() error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	items := manager.ListCatalog()
	if len(items) == 0 {
		fmt.Println("Store catalog is empty")
		return nil
	}
	var dataList []*orderedmap.OrderedMap
	for _, item := range items {
		version := "-"
		if item.Version != "" {
			version = item.Version
		}
		row := Catalog_Columns{
			ID:          item.ID,
			Type:        item.Type,
			Installed:   fmt.Sprintf("%v", item.Installed),
			Version:     version,
			Description: item.Description,
		}
		recordMap, _ := utils.StructToOrderedMap(row)
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	return nil
}

func init() {
	catalogCmd.AddCommand(showCmd)
}
