package terminal

import (
	"io"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/carbon-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry   source.Registry
	reporter   *export.Reporter
	configPath string
	rootCmd    *cobra.Command
	output     io.Writer
	logOutput  io.Writer
	session    commands.Session
}

// Options contain configuration for the CLI
type Options struct {
	Registry source.Registry
	Output   io.Writer
	// LogOutput receives structured logs, stderr by default.
	LogOutput io.Writer
	// Session overrides the config-driven dataset session.
	Session commands.Session
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Registry == nil {
		opts.Registry = source.DefaultRegistry()
	}

	cli := &CLI{
		registry:  opts.Registry,
		reporter:  export.NewReporter(opts.Output),
		output:    opts.Output,
		logOutput: opts.LogOutput,
		session:   opts.Session,
	}
	if cli.session == nil {
		cli.session = &configSession{cli: cli}
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "carbon",
		Short:         "Carbon emission reports from the configured dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOutput}).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	cmd.SetOut(cli.output)
	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", defaultConfigPath,
		"Path to the configuration file")

	cmd.AddCommand(commands.NewSummaryCmd(cli.session, cli.reporter))
	cmd.AddCommand(commands.NewMonthlyCmd(cli.session, cli.reporter))
	cmd.AddCommand(commands.NewReportCmd(cli.session, cli.reporter))
	cmd.AddCommand(commands.NewTopDaysCmd(cli.session, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.session))
	cmd.AddCommand(commands.NewImportCmd(cli.session))
	cmd.AddCommand(commands.NewProfilesCmd())

	return cmd
}
