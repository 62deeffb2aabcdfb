// cmd/dealcalc/activities.go
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rental-investment-workers/pkg/registry"
)

func newActivitiesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List the service task types the workers implement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.Default()
			if file != "" {
				reg, err = registry.LoadRegistry(file)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tNAME\tERROR CODES")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.TaskType, a.DisplayName, strings.Join(a.ErrorCodes, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "registry", "r", "", "registry JSON file (defaults to the built-in one)")
	return cmd
}
