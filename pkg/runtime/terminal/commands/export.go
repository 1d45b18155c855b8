package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	user    string
	out     string
	format  string
	filter  filterFlags
	session Session
}

func NewExportCmd(session Session) *cobra.Command {
	ec := &ExportCmd{session: session}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's activity records as CSV or XLSX",
		RunE:  ec.run,
	}

	addUserFlag(cmd, &ec.user)
	cmd.Flags().StringVarP(&ec.out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&ec.format, "format", "", "Output format: csv or xlsx (default from --out, else csv)")
	ec.filter.register(cmd)

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	if err := validateUser(ec.user); err != nil {
		return err
	}

	format, err := ec.outputFormat()
	if err != nil {
		return err
	}

	filter, err := emissions.ParseFilter(ec.filter.from, ec.filter.to, ec.filter.categories)
	if err != nil {
		return err
	}

	service, err := openService(cmd.Context(), ec.session)
	if err != nil {
		return err
	}
	records := service.Activity(cmd.Context(), ec.user, filter)

	var w io.Writer = cmd.OutOrStdout()
	if ec.out != "" {
		f, err := os.Create(ec.out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case dataset.FormatXLSX:
		err = dataset.WriteXLSX(w, records)
	default:
		err = dataset.WriteCSV(w, records)
	}
	if err != nil {
		return err
	}

	if ec.out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d records to %s\n", len(records), ec.out)
	}
	return nil
}

func (ec *ExportCmd) outputFormat() (dataset.Format, error) {
	switch {
	case ec.format != "":
		format := dataset.Format(ec.format)
		if format != dataset.FormatCSV && format != dataset.FormatXLSX {
			return "", fmt.Errorf("unsupported format %q: expected csv or xlsx", ec.format)
		}
		return format, nil
	case ec.out != "":
		return dataset.FormatFromName(ec.out)
	default:
		return dataset.FormatCSV, nil
	}
}
