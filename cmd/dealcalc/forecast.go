// cmd/dealcalc/forecast.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rental-investment-workers/internal/investment"
)

func newForecastCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project a scenario file over 30 years",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := loadScenario(file)
			if err != nil {
				return err
			}

			result, err := investment.Forecast(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			renderForecast(out, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "TOML scenario file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func renderForecast(w io.Writer, r investment.ForecastResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	p, m, ret := r.Purchase, r.MonthOne, r.Returns

	fmt.Fprintln(tw, "PURCHASE")
	fmt.Fprintf(tw, "  Price\t$%.2f\n", p.PurchasePrice)
	fmt.Fprintf(tw, "  Down payment\t$%.2f\n", p.DownPayment)
	fmt.Fprintf(tw, "  Loan\t$%.2f (LTV %.1f%%)\n", p.LoanAmount, p.LoanToValue)
	fmt.Fprintf(tw, "  Cash invested\t$%.2f\n", p.TotalCashInvested)
	fmt.Fprintf(tw, "  Monthly payment\t$%.2f\n", r.MonthlyPayment)

	fmt.Fprintln(tw, "MONTH ONE")
	fmt.Fprintf(tw, "  Effective income\t$%.2f\n", m.EffectiveGrossIncome)
	fmt.Fprintf(tw, "  Expenses\t$%.2f\n", m.Expenses.Total)
	fmt.Fprintf(tw, "  Cash flow\t$%.2f\n", m.CashFlow)

	fmt.Fprintln(tw, "RETURNS")
	fmt.Fprintf(tw, "  NOI\t$%.2f\n", ret.NetOperatingIncome)
	fmt.Fprintf(tw, "  Cap rate\t%.2f%%\n", ret.CapRate)
	fmt.Fprintf(tw, "  Cash on cash\t%.2f%%\n", ret.CashOnCashReturn)
	fmt.Fprintf(tw, "  GRM\t%.2f\n", ret.GrossRentMultiplier)
	fmt.Fprintf(tw, "  IRR 5y\t%s\n", formatIRR(ret.FiveYearIRR))
	fmt.Fprintf(tw, "  IRR 10y\t%s\n", formatIRR(ret.TenYearIRR))
	fmt.Fprintf(tw, "  IRR 15y\t%s\n", formatIRR(ret.FifteenYearIRR))
	fmt.Fprintf(tw, "  30y total return\t$%.2f (%.1f%% ROI)\n", ret.Lifetime.TotalReturn, ret.Lifetime.ReturnOnInvestment)

	fmt.Fprintln(tw, "YEAR\tCASH FLOW\tVALUE\tLOAN\tEQUITY")
	for _, y := range r.Projections {
		if y.Year == 1 || y.Year%5 == 0 {
			fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.0f\t%.0f\n", y.Year, y.CashFlow, y.PropertyValue, y.LoanBalance, y.Equity)
		}
	}
}

func formatIRR(r investment.IRRResult) string {
	if !r.Converged {
		return fmt.Sprintf("%.2f%% (not converged)", r.Rate)
	}
	return fmt.Sprintf("%.2f%%", r.Rate)
}
