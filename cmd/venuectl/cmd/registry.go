package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"venue-intelligence/pkg/registry"
)

func newRegistryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect or edit the activity registry",
	}
	cmd.PersistentFlags().String("path", "", "registry file (defaults to the registry built into the binary)")
	cmd.AddCommand(newRegistryListCmd(opts), newRegistryValidateCmd(opts), newRegistryUpdateCmd(opts))
	return cmd
}

func (o *options) loadRegistry() (*registry.ActivityRegistry, error) {
	if path := o.v.GetString("path"); path != "" {
		return registry.LoadRegistry(path)
	}
	return registry.Default()
}

func newRegistryListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every registered activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.loadRegistry()
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), reg.Activities)
		},
	}
}

func newRegistryValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check task type naming and uniqueness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.loadRegistry()
			if err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	}
}

func newRegistryUpdateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Set one field of an activity and write the file back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.v.GetString("path")
			if path == "" {
				return fmt.Errorf("--path is required for update")
			}
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			id, field, value := opts.v.GetString("id"), opts.v.GetString("field"), opts.v.GetString("value")
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := reg.Save(path, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", id, field, value)
			return nil
		},
	}
	cmd.Flags().String("id", "", "activity ID")
	cmd.Flags().String("field", "", "field to update (status, version, displayName, description, timeout, retries)")
	cmd.Flags().String("value", "", "new value")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
