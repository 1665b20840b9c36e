package main

import (
	"encoding/json"
	"fmt"
	"io"

	"churnboard/domain/customer"
	"churnboard/internal/config"
	"churnboard/internal/container"
	"churnboard/internal/dashboard"
	"churnboard/internal/format"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var start, end, output, file string
	var contracts []string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print churn metrics and insights for the configured source",
		Long: `Load the configured source (DATA_SOURCE, DATA_FILE, DATABASE_URL) and
print the dashboard figures.

Example: churnctl summary --file data/customers.xlsx --start 2024-01-01 --contract Monthly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := customer.ParseFilter(start, end, contracts)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if file != "" {
				cfg.Data.Source = config.SourceFile
				cfg.Data.File = file
			}

			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := c.Init(ctx); err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			if err := c.Dashboard.Load(ctx); err != nil {
				return err
			}
			sum, err := c.Dashboard.Summarize(ctx, f)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), sum, output)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV or XLSX file (overrides DATA_SOURCE/DATA_FILE)")
	cmd.Flags().StringVar(&start, "start", "", "First registration date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "Last registration date, YYYY-MM-DD")
	cmd.Flags().StringArrayVar(&contracts, "contract", nil, "Contract type to include (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, markdown or json")

	return cmd
}

func writeSummary(w io.Writer, sum *dashboard.Summary, output string) error {
	switch output {
	case "markdown", "md":
		_, err := w.Write(dashboard.ReportMarkdown(sum))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard.NewSummaryView(sum))
	case "text":
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if sum.Empty {
		_, err := fmt.Fprintln(w, "No customers match the selected filters.")
		return err
	}
	m, in := sum.Metrics, sum.Insights
	fmt.Fprintf(w, "Customers:            %s\n", format.Count(m.Total))
	fmt.Fprintf(w, "Canceled:             %s\n", format.Count(m.Canceled))
	fmt.Fprintf(w, "Churn rate:           %s\n", format.Percent(m.ChurnRate))
	fmt.Fprintf(w, "Lost revenue:         %s\n", format.Currency(m.LostRevenue))
	fmt.Fprintf(w, "Avg delay (canceled): %s\n", format.Days(in.AvgDelayCanceled))
	fmt.Fprintf(w, "Avg delay (active):   %s\n", format.Days(in.AvgDelayActive))
	_, err := fmt.Fprintf(w, "Worst contract:       %s\n", in.WorstContractType)
	return err
}
