package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	path string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List Databricks profiles usable as source.sql.profile",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.path, "databrickscfg", "", "Path to the .databrickscfg file (default $HOME/.databrickscfg)")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	path := pc.path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, ".databrickscfg")
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	profiles, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, profile := range profiles {
		fmt.Fprintf(out, "%s\t%s\n", profile.Name, profile.Host)
	}
	return nil
}
