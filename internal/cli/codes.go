package cli

import (
	"github.com/spf13/cobra"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// NewCodesCmd returns the command listing the registered error codes.
func NewCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List error codes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			Table(codeRows())
		},
	}
}

func codeRows() [][]string {
	rows := [][]string{{"Code", "Description"}}
	for _, entry := range errx.ErrorRegistry() {
		rows = append(rows, []string{entry.Code, entry.Description})
	}
	return rows
}
