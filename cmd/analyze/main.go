package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"agentmgr/adapters/stats/engine"
	"agentmgr/domain/agent"
	"agentmgr/domain/dataset"
	"agentmgr/internal/ingest"
	"agentmgr/internal/synthesis"
	"agentmgr/ports"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Offline analysis of CSV and Excel files",
	}

	rootCmd.AddCommand(
		newStatsCmd(),
		newOutliersCmd(),
		newReportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSource(path string) (*dataset.DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.ReadFile(f, path)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newStatsCmd() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Compute per-column descriptive statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadSource(args[0])
			if err != nil {
				return err
			}
			eng := engine.NewDefaultEngine()
			return printJSON(eng.Compute(ds, columns))
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Restrict analysis to these columns")
	return cmd
}

func newOutliersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outliers [file] [column]",
		Short: "Flag IQR outlier row indices for a numeric column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadSource(args[0])
			if err != nil {
				return err
			}
			eng := engine.NewDefaultEngine()

			column := args[1]
			result := map[string]interface{}{
				"column":   column,
				"outliers": eng.DetectOutliers(ds, column),
			}
			if lower, upper, ok := eng.OutlierBounds(ds, column); ok {
				result["lower_bound"] = lower
				result["upper_bound"] = upper
			}
			return printJSON(result)
		},
	}
	return cmd
}

func newReportCmd() *cobra.Command {
	var capabilities []string
	var markdown bool

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Synthesize a full analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadSource(args[0])
			if err != nil {
				return err
			}

			caps := make([]agent.Capability, 0, len(capabilities))
			for _, c := range capabilities {
				caps = append(caps, agent.Capability(c))
			}
			ag := agent.New("cli", agent.TypeAnalyzer, caps)

			eng := engine.NewDefaultEngine()
			synthesizer := synthesis.New(eng, synthesis.DefaultConfig())
			rep, err := synthesizer.Generate(context.Background(), ports.ReportRequest{
				Agent:  ag,
				Source: ds,
			})
			if err != nil {
				return err
			}

			if markdown {
				fmt.Println(rep.Summary)
				return nil
			}
			return printJSON(rep)
		},
	}

	cmd.Flags().StringSliceVar(&capabilities, "capabilities", []string{
		string(agent.CapStatisticalAnalysis),
		string(agent.CapChartGeneration),
		string(agent.CapTextSummarization),
	}, "Capability tags to apply")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the Markdown summary instead of JSON")
	return cmd
}
