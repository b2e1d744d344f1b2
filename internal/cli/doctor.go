package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invtop/invtop/internal/api"
	"github.com/invtop/invtop/internal/config"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and server connectivity",
		Long: `Run diagnostics to check if invtop is properly configured.

This command checks:
  - Client configuration (server URL and API token)
  - Server reachability
  - Authentication and assigned roles`,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(styles.Boldf("invtop doctor"))
	fmt.Println()

	allOK := true

	fmt.Print("Checking configuration... ")
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(styles.Redf("FAILED"))
		fmt.Printf("  %s\n", err)
		return nil
	}
	switch {
	case cfg.Server.URL == "":
		fmt.Println(styles.Redf("NO SERVER"))
		fmt.Println("  Run 'invtop config server.url <url>' to set one")
		allOK = false
	case cfg.Server.Token == "":
		fmt.Println(styles.Yellow("NO TOKEN"))
		fmt.Println("  Run 'invtop config server.token <token>' to authenticate")
		allOK = false
	default:
		fmt.Println(styles.Greenf("OK") + styles.Mutef(" (%s)", config.Path()))
	}

	if cfg.Server.URL == "" {
		return nil
	}

	client := api.New(cfg.Server.URL, cfg.Server.Token)

	fmt.Print("Checking server... ")
	if err := client.Ping(cmd.Context()); err != nil {
		fmt.Println(styles.Redf("UNREACHABLE"))
		fmt.Printf("  %s\n", err)
		fmt.Println()
		fmt.Println(styles.Redf("✗ Server is not reachable"))
		return nil
	}
	fmt.Println(styles.Greenf("OK") + styles.Mutef(" (%s)", cfg.Server.URL))

	fmt.Print("Checking authentication... ")
	rs, err := client.Roles(cmd.Context())
	if err != nil {
		fmt.Println(styles.Redf("FAILED"))
		fmt.Printf("  %s\n", err)
		allOK = false
	} else {
		fmt.Println(styles.Greenf("OK"))
		fmt.Println()
		fmt.Println(styles.Boldf("Assigned roles:"))
		for _, rule := range roles.Rules() {
			perms := make([]string, 0, 4)
			for _, p := range []string{roles.PermView, roles.PermAdd, roles.PermChange, roles.PermDelete} {
				if rs.Has(rule, p) {
					perms = append(perms, p)
				}
			}
			if len(perms) == 0 {
				fmt.Printf("  %-16s %s\n", rule, styles.Mute("none"))
			} else {
				fmt.Printf("  %-16s %s\n", rule, strings.Join(perms, ", "))
			}
		}
	}

	fmt.Println()
	if allOK {
		fmt.Println(styles.Greenf("✓ All checks passed"))
	} else {
		fmt.Println(styles.Yellow("! Some checks failed"))
	}
	return nil
}
