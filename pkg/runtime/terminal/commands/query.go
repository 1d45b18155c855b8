package commands

import (
	"fmt"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/spf13/cobra"
)

func NewSummaryCmd(session Session, reporter *export.Reporter) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a user's total and per-category emissions as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateUser(user); err != nil {
				return err
			}
			service, err := openService(cmd.Context(), session)
			if err != nil {
				return err
			}
			summary := service.Summary(cmd.Context(), user)
			return reporter.JSON(adapters.MapSummaryDomainToApi(summary))
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}

func NewMonthlyCmd(session Session, reporter *export.Reporter) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Print a user's emissions per month as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateUser(user); err != nil {
				return err
			}
			service, err := openService(cmd.Context(), session)
			if err != nil {
				return err
			}
			monthly := service.Monthly(cmd.Context(), user)
			return reporter.JSON(adapters.MapMonthlyDomainToApi(monthly))
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}

type TopDaysCmd struct {
	user     string
	n        int
	filter   filterFlags
	session  Session
	reporter *export.Reporter
}

func NewTopDaysCmd(session Session, reporter *export.Reporter) *cobra.Command {
	tc := &TopDaysCmd{session: session, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "top-days",
		Short: "Print a user's highest-emission records as JSON",
		RunE:  tc.run,
	}
	addUserFlag(cmd, &tc.user)
	cmd.Flags().IntVar(&tc.n, "n", 5, "Number of records to print")
	tc.filter.register(cmd)
	return cmd
}

func (tc *TopDaysCmd) run(cmd *cobra.Command, _ []string) error {
	if err := validateUser(tc.user); err != nil {
		return err
	}
	if tc.n <= 0 {
		return fmt.Errorf("--n must be positive, got %d", tc.n)
	}

	filter, err := emissions.ParseFilter(tc.filter.from, tc.filter.to, tc.filter.categories)
	if err != nil {
		return err
	}

	service, err := openService(cmd.Context(), tc.session)
	if err != nil {
		return err
	}

	records := service.TopDays(cmd.Context(), tc.user, filter, tc.n)
	return tc.reporter.JSON(adapters.MapEmissionRecordsDomainToApi(records))
}
