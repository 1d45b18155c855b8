package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/spf13/cobra"
)

// Session opens the configured dataset for a single command invocation.
type Session interface {
	Loader(ctx context.Context) (dataset.Loader, error)
	Service(ctx context.Context) (emissions.QueryService, error)
}

func addUserFlag(cmd *cobra.Command, user *string) {
	cmd.Flags().StringVar(user, "user", "", "User ID to query (e.g. User001)")
	_ = cmd.MarkFlagRequired("user")
}

type filterFlags struct {
	from       string
	to         string
	categories []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "First date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last date to include (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&f.categories, "category", nil, "Category to include, may be repeated")
}

func openService(ctx context.Context, session Session) (emissions.QueryService, error) {
	service, err := session.Service(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return service, nil
}

func validateUser(user string) error {
	if strings.TrimSpace(user) == "" {
		return fmt.Errorf("--user cannot be empty")
	}
	return nil
}
