package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/acrwebhooks/cmd/acrwebhooks/handlers"
)

// Cleanup returns the cleanup command.
//
// The cleanup command deletes a resource group left behind by a run that
// was interrupted or started with --keep.
func Cleanup() *cobra.Command {
	var resourceGroup string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete a resource group left behind by an earlier run",
		Long: `Cleanup deletes a resource group and everything in it.

A group that no longer exists is treated as already deleted.

Example:
  acrwebhooks cleanup --resource-group acrw-rg-1a2b3c4d

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), resourceGroup)
		},
	}

	cmd.Flags().StringVar(&resourceGroup, "resource-group", "", "Name of the resource group to delete (required)")
	_ = cmd.MarkFlagRequired("resource-group")

	return cmd
}
