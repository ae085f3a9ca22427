package issue

import (
	"fmt"
	"time"

	"zing-keeper/internal/utils"

	"github.com/iancoleman/orderedmap"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending repair issues",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listIssues(); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 *	Fields displayed in issue output
 */
type Issue_Columns struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Package  string `json:"package"`
	Severity string `json:"severity"`
	Created  string `json:"created"`
}

func listIssues() error {
	manager, err := initManager()
	if err != nil {
		return err
	}
	issues := manager.Issues().List()
	if len(issues) == 0 {
		fmt.Println("No pending issues")
		return nil
	}
	var dataList []*orderedmap.OrderedMap
	for _, item := range issues {
		row := Issue_Columns{
			ID:       item.ID,
			Key:      item.Key,
			Package:  item.Package,
			Severity: string(item.Severity),
			Created:  item.CreatedAt.Format(time.RFC3339),
		}
		recordMap, _ := utils.StructToOrderedMap(row)
		dataList = append(dataList, recordMap)
	}
	utils.PrintFormat(dataList)
	return nil
}

func init() {
	issueCmd.AddCommand(listCmd)
}
