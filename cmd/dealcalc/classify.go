// cmd/dealcalc/classify.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-investment-workers/internal/investment"
)

func newClassifyCmd() *cobra.Command {
	var price, rent, sqft float64

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Check a property against the 1% rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if price <= 0 {
				return fmt.Errorf("--price must be positive")
			}
			c := investment.ClassifyProperty(price, rent, sqft)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rent-to-value: %.2f%% (%s)\n", c.RentToValueRatio, passFail(c.MeetsRentRule))
			fmt.Fprintf(out, "Sqft-to-value: %.2f%% (%s)\n", c.SqftToValueRatio, passFail(c.MeetsSqftRule))
			fmt.Fprintf(out, "Both rules: %s\n", passFail(c.MeetsCombinedRules))
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Purchase price")
	cmd.Flags().Float64Var(&rent, "rent", 0, "Monthly rent")
	cmd.Flags().Float64Var(&sqft, "sqft", 0, "Square footage")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
