package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/pagination"
)

func newFilterCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "filter",
		Short: "Apply browse-page facets to a venue list and print the visible window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			venues, err := readVenues(opts.v.GetString("venues"))
			if err != nil {
				return err
			}

			fs := models.FilterState{
				VenueTypes:           opts.v.GetStringSlice("type"),
				Amenities:            opts.v.GetStringSlice("amenity"),
				AvailabilityStatuses: opts.v.GetStringSlice("availability"),
				PriceRange:           models.Range{Min: opts.v.GetInt64("min-price"), Max: opts.v.GetInt64("max-price")},
				CapacityRange:        models.Range{Min: opts.v.GetInt64("min-capacity"), Max: opts.v.GetInt64("max-capacity")},
			}

			browser := pagination.NewBrowser(pagination.Config{
				PageSize:  opts.v.GetInt("page-size"),
				Increment: opts.v.GetInt("increment"),
			}, venues)
			window, err := browser.SetFilters(fs)
			if err != nil {
				return err
			}
			for i := 0; i < opts.v.GetInt("load-more") && window.HasMore; i++ {
				if window, err = browser.LoadMore(context.Background()); err != nil {
					return err
				}
			}
			return opts.print(cmd.OutOrStdout(), window)
		},
	}
	c.Flags().String("venues", "", "venue list JSON file")
	c.Flags().StringSlice("type", nil, "venue type to keep (repeatable)")
	c.Flags().StringSlice("amenity", nil, "amenity every venue must offer (repeatable)")
	c.Flags().StringSlice("availability", nil, "availability status to keep (repeatable)")
	c.Flags().Int64("min-price", 0, "minimum price per person")
	c.Flags().Int64("max-price", 0, "maximum price per person, 0 for no limit")
	c.Flags().Int64("min-capacity", 0, "minimum capacity")
	c.Flags().Int64("max-capacity", 0, "maximum capacity, 0 for no limit")
	c.Flags().Int("page-size", pagination.DefaultPageSize, "venues shown before any load-more")
	c.Flags().Int("increment", pagination.DefaultIncrement, "venues added per load-more")
	c.Flags().Int("load-more", 0, "number of load-more steps to apply")
	_ = c.MarkFlagRequired("venues")
	return c
}
