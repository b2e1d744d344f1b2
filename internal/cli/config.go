package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invtop/invtop/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <key> [value]",
		Short: "Get and set client options",
		Long: `Get and set client configuration options.

Examples:
  invtop config server.url                          # Get value
  invtop config server.url https://inv.example.com  # Set value
  invtop config server.token abc123                 # Set value
  invtop config ui.page_size 50                     # Set value
  invtop config --list                              # List all config`,
		RunE: runConfig,
	}

	cmd.Flags().BoolP("list", "l", false, "List all configuration")

	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	listAll, _ := cmd.Flags().GetBool("list")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if listAll {
		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			if key == "server.token" && value != "" {
				value = maskToken(value)
			}
			fmt.Printf("%s=%s\n", key, value)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: invtop config <key> [value]")
	}

	key := strings.ToLower(args[0])

	if len(args) == 1 {
		value, ok := cfg.Get(key)
		if !ok {
			return fmt.Errorf("unknown config key: %s (known: %s)", key, strings.Join(config.Keys(), ", "))
		}
		fmt.Println(value)
		return nil
	}

	if err := cfg.Set(key, args[1]); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Set %s\n", key)
	return nil
}

// maskToken keeps the last four characters so tokens can be told apart
// without printing them whole.
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
