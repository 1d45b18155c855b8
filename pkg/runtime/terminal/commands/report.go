package commands

import (
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

func NewReportCmd(session Session, reporter *export.Reporter) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a text report of a user's emissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateUser(user); err != nil {
				return err
			}

			ctx := cmd.Context()
			service, err := openService(ctx, session)
			if err != nil {
				return err
			}

			report := &domain.EmissionReport{
				User:    user,
				Summary: service.Summary(ctx, user),
				Monthly: service.Monthly(ctx, user),
				Budget:  service.Budget(ctx, user),
			}
			if span, ok := service.DateSpan(ctx, user); ok {
				report.Period = &span
			}

			return reporter.Handle(report)
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
