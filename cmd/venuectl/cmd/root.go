// Package cmd holds the venuectl commands. They run the ranking, filtering and
// analysis engines against local JSON files, without Zeebe or a database.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"venue-intelligence/internal/catalog"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
)

type options struct {
	v *viper.Viper
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}

	root := &cobra.Command{
		Use:           "venuectl",
		Short:         "Rank, filter and analyze event venues from JSON files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.v.BindPFlags(cmd.Flags())
		},
	}
	root.PersistentFlags().String("log-level", "warn", "log level written to stderr (debug, info, warn, error)")
	root.PersistentFlags().Bool("compact", false, "write compact JSON instead of indented")
	_ = opts.v.BindPFlags(root.PersistentFlags())

	opts.v.SetEnvPrefix("VENUECTL")
	opts.v.AutomaticEnv()

	root.AddCommand(newRankCmd(opts), newFilterCmd(opts), newAnalyzeCmd(opts), newRegistryCmd(opts))
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *options) logger() logger.Logger {
	return logger.NewStructured(o.v.GetString("log-level"), "console")
}

func (o *options) print(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	if !o.v.GetBool("compact") {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(value)
}

func readVenues(path string) ([]models.Venue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read venues: %w", err)
	}
	return catalog.DecodeVenues(raw)
}

func readJSON(path, what string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", what, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", what, err)
	}
	return nil
}

func readRequirement(path string) (models.EventRequirement, error) {
	var req models.EventRequirement
	if err := readJSON(path, "requirement", &req); err != nil {
		return req, err
	}
	req = req.Normalized()
	return req, req.Validate()
}
