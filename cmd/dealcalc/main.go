// cmd/dealcalc/main.go
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dealcalc",
		Short:        "Rental property deal calculator",
		Long:         "Forecast 30-year returns, check the 1% rules and solve IRRs without a running worker stack.",
		SilenceUsage: true,
	}
	root.AddCommand(newForecastCmd(), newClassifyCmd(), newIRRCmd(), newActivitiesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
