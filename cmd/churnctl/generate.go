package main

import (
	"context"
	"fmt"
	"time"

	"churnboard/adapters/excel"
	"churnboard/adapters/sqlsource"
	"churnboard/domain/customer"
	"churnboard/internal/config"
	"churnboard/internal/container"
	"churnboard/internal/testkit"
	"churnboard/ports"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type generatorFlags struct {
	customers     int
	seed          uint64
	start, end    string
	malformedRate float64
}

func (g *generatorFlags) register(cmd *cobra.Command) {
	def := testkit.DefaultChurnConfig()
	cmd.Flags().IntVarP(&g.customers, "customers", "n", def.Customers, "Number of customers to generate")
	cmd.Flags().Uint64Var(&g.seed, "seed", def.Seed, "Random seed for deterministic output")
	cmd.Flags().StringVar(&g.start, "from", def.StartDate.Format(customer.DateLayout), "First registration date")
	cmd.Flags().StringVar(&g.end, "to", def.EndDate.Format(customer.DateLayout), "Registration dates fall before this day")
	cmd.Flags().Float64Var(&g.malformedRate, "malformed-rate", 0, "Share of rows with an unparseable registration date")
}

func (g *generatorFlags) generator() (*testkit.ChurnGenerator, error) {
	cfg := testkit.DefaultChurnConfig()
	cfg.Customers = g.customers
	cfg.Seed = g.seed
	cfg.MalformedDateRate = g.malformedRate

	var err error
	if cfg.StartDate, err = time.Parse(customer.DateLayout, g.start); err != nil {
		return nil, fmt.Errorf("invalid --from: %w", err)
	}
	if cfg.EndDate, err = time.Parse(customer.DateLayout, g.end); err != nil {
		return nil, fmt.Errorf("invalid --to: %w", err)
	}
	if cfg.Customers < 0 {
		return nil, fmt.Errorf("--customers must not be negative")
	}
	if cfg.MalformedDateRate < 0 || cfg.MalformedDateRate > 1 {
		return nil, fmt.Errorf("--malformed-rate must be within [0, 1]")
	}
	return testkit.NewChurnGenerator(cfg), nil
}

func newGenerateCmd() *cobra.Command {
	var flags generatorFlags
	var out string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic customer dataset to CSV or XLSX",
		Long: `Generate a seeded synthetic churn dataset. The file type follows the
extension of --out.

Example: churnctl generate --out data/customers.xlsx -n 5000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := flags.generator()
			if err != nil {
				return err
			}
			rows := gen.Rows()

			onRow, finish := progress(len(rows), "writing", quiet)
			if err := excel.WriteRows(out, gen.Headers(), rows, onRow); err != nil {
				return err
			}
			finish()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d customers to %s\n", len(rows), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "data/customers.csv", "Output file (.csv or .xlsx)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var flags generatorFlags
	var truncate, quiet bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a synthetic customer dataset into DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := flags.generator()
			if err != nil {
				return err
			}

			cfg, err := sqlConfig()
			if err != nil {
				return err
			}
			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := c.OpenDB(ctx)
			if err != nil {
				return err
			}
			defer c.Shutdown(ctx)

			writer, err := sqlsource.NewWriter(db, cfg.Database.Table)
			if err != nil {
				return err
			}
			if truncate {
				if err := writer.Truncate(ctx); err != nil {
					return fmt.Errorf("truncate %s: %w", cfg.Database.Table, err)
				}
			}

			n, err := seedRows(ctx, writer, gen, quiet)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d customers into %s\n", n, cfg.Database.Table)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Delete existing rows first")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the customer table in DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sqlConfig()
			if err != nil {
				return err
			}
			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			if _, err := c.OpenDB(cmd.Context()); err != nil {
				return err
			}
			return c.Shutdown(cmd.Context())
		},
	}
}

// seedRows writes every generated row to sink and returns how many were written.
func seedRows(ctx context.Context, sink ports.RowSink, gen *testkit.ChurnGenerator, quiet bool) (int, error) {
	rows := gen.Rows()
	onRow, finish := progress(len(rows), "seeding", quiet)
	if err := sink.WriteRows(ctx, gen.Headers(), rows, onRow); err != nil {
		return 0, err
	}
	finish()
	return len(rows), nil
}

// sqlConfig loads configuration as if DATA_SOURCE were sql.
func sqlConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

// progress returns a per-row callback and a finisher for a bar over n rows.
func progress(n int, label string, quiet bool) (func(), func()) {
	if quiet {
		return nil, func() {}
	}
	bar := progressbar.Default(int64(n), label)
	return func() { _ = bar.Add(1) }, func() { _ = bar.Finish() }
}
