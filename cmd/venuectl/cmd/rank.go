package cmd

import (
	"github.com/spf13/cobra"

	"venue-intelligence/internal/venue/ranking"
)

func newRankCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "rank",
		Short: "Score venues against an event requirement and print the top picks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := readRequirement(opts.v.GetString("requirement"))
			if err != nil {
				return err
			}
			venues, err := readVenues(opts.v.GetString("venues"))
			if err != nil {
				return err
			}

			result, err := ranking.NewRanker(opts.logger(), ranking.WithTopN(opts.v.GetInt("top-n"))).Rank(req, venues)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}
	c.Flags().String("requirement", "", "event requirement JSON file")
	c.Flags().String("venues", "", "venue list JSON file")
	c.Flags().Int("top-n", ranking.DefaultTopN, "number of recommendations to keep")
	_ = c.MarkFlagRequired("requirement")
	_ = c.MarkFlagRequired("venues")
	return c
}
