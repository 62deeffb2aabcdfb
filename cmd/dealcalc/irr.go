// cmd/dealcalc/irr.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rental-investment-workers/internal/investment"
)

func newIRRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "irr CF0 CF1 [CF2...]",
		Short: "Solve the internal rate of return of yearly cash flows",
		Long:  "CF0 is the initial investment and is normally negative. Pass it after -- so the sign is not read as a flag.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flows := make([]float64, len(args))
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("cash flow %d: %w", i, err)
				}
				flows[i] = v
			}

			r := investment.IRR(flows)
			fmt.Fprintf(cmd.OutOrStdout(), "IRR: %s after %d iterations\n", formatIRR(r), r.Iterations)
			return nil
		},
	}
}
