package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/suggest"
)

func newSuggestCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <description>...",
		Short: "Suggest ATO categories for an expense description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			categories := suggest.Categories(description)
			if len(categories) == 0 {
				fmt.Printf("No category suggestion for %q\n", description)
				return nil
			}
			for i, c := range categories {
				fmt.Printf("%d. %-4s %s\n", i+1, c, model.CategoryLabels[c])
			}
			return nil
		},
	}
}
