package cmd

import (
	"github.com/spf13/cobra"

	"venue-intelligence/internal/analysis"
	"venue-intelligence/internal/common/config"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/oracle"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "analyze",
		Short: "Produce a venue analysis report",
		Long: "Produce a venue analysis report. The reasoning oracle is asked only when an API key " +
			"is given through --api-key or VENUECTL_API_KEY; otherwise the heuristic fallback is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequirement(opts.v.GetString("requirement"))
			if err != nil {
				return err
			}
			var venue models.Venue
			if err := readJSON(opts.v.GetString("venue"), "venue", &venue); err != nil {
				return err
			}

			log := opts.logger()
			oracleCfg := config.OracleConfig{
				Enabled: opts.v.GetString("api-key") != "",
				BaseURL: opts.v.GetString("oracle-url"),
				Model:   opts.v.GetString("model"),
				APIKey:  opts.v.GetString("api-key"),
				Timeout: opts.v.GetInt("timeout"),
			}

			var client oracle.Client
			if oracleCfg.Enabled {
				client = oracle.NewGeminiClient(oracleCfg, nil, log)
			}

			cfg := analysis.ConfigFrom(config.AnalysisConfig{MaxRetries: opts.v.GetInt("max-retries")}, oracleCfg)
			result, err := analysis.NewAnalyzer(cfg, client, analysis.NewMemoryStore(), log).Analyze(cmd.Context(), venue, req)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}
	c.Flags().String("venue", "", "venue JSON file")
	c.Flags().String("requirement", "", "event requirement JSON file")
	c.Flags().String("api-key", "", "reasoning oracle API key")
	c.Flags().String("oracle-url", "", "override the oracle base URL")
	c.Flags().String("model", oracle.DefaultModel, "oracle model name")
	c.Flags().Int("timeout", 30000, "oracle request timeout in milliseconds")
	c.Flags().Int("max-retries", 1, "oracle retries before falling back")
	_ = c.MarkFlagRequired("venue")
	_ = c.MarkFlagRequired("requirement")
	return c
}
