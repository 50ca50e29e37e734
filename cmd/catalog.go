package cmd

import (
	"fmt"

	"talentbridge_backend/internal/catalog"
	"talentbridge_backend/internal/model"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the question and roadmap catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a catalog file, or the embedded one when --file is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		c, err := catalog.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, f := range model.Fields {
			fmt.Fprintf(out, "%-12s %2d questions  %2d tasks  %d skills\n",
				f, len(c.Questions[f]), len(c.Tasks(f)), len(c.Skills(f)))
		}
		fmt.Fprintln(out, "catalog ok")
		return nil
	},
}

func init() {
	catalogValidateCmd.Flags().String("file", "", "Catalog YAML file (default: embedded catalog)")
	catalogCmd.AddCommand(catalogValidateCmd)
}
