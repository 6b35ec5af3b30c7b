package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/acrwebhooks/cmd/acrwebhooks/handlers"
)

// Run returns the run command.
func Run() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Create a registry with webhooks, push an image, and list deliveries",
		Long: `Run executes the full sample against Azure:

  1. Create a resource group and a container registry (admin user enabled)
  2. Create webhook #1 (push, delete) and webhook #2 (push, disabled)
  3. Ping webhook #1 and list its events
  4. Pull hello-world, commit a container, and push it to the registry
  5. List the events of webhook #1 again
  6. Delete the resource group

Credentials are read from AZURE_TENANT_ID, AZURE_CLIENT_ID,
AZURE_CLIENT_SECRET, and AZURE_SUBSCRIPTION_ID. When no local Docker engine
answers and HCLOUD_TOKEN is set, a temporary Hetzner Cloud host runs the engine.

Example:
  acrwebhooks run --location westeurope --sku Standard`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.Location, "location", "", "Azure region (overrides config)")
	cmd.Flags().StringVar(&opts.SKU, "sku", "", "Registry SKU: Basic, Standard or Premium (overrides config)")
	cmd.Flags().BoolVar(&opts.Keep, "keep", false, "Keep the resource group after the run")

	return cmd
}
