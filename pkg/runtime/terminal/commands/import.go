package commands

import (
	"fmt"

	"github.com/de-tools/carbon-atlas/pkg/services/workflow"
	"github.com/de-tools/carbon-atlas/pkg/store/duckdb"
	"github.com/de-tools/carbon-atlas/pkg/store/duckdb/emission"
	"github.com/spf13/cobra"
)

const defaultDBPath = "carbon-atlas.db"

type ImportCmd struct {
	dbPath  string
	session Session
}

func NewImportCmd(session Session) *cobra.Command {
	ic := &ImportCmd{session: session}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the configured dataset into a DuckDB database",
		Long: "Loads the configured source and replaces the emission_records table of the DuckDB " +
			"database, which can then be served with source.kind=sql and source.sql.driver=duckdb.",
		RunE: ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", defaultDBPath, "Path to the DuckDB database file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	loader, err := ic.session.Loader(ctx)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	emissionStore, err := emission.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create emission store: %w", err)
	}

	stats, err := workflow.Import(ctx, loader, emissionStore)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported %d records into %s\n", stats.RecordsCount, ic.dbPath)
	if stats.FirstRecordTime != nil && stats.LastRecordTime != nil {
		fmt.Fprintf(out, "dates %s to %s\n",
			stats.FirstRecordTime.Format("2006-01-02"),
			stats.LastRecordTime.Format("2006-01-02"))
	}
	return nil
}
