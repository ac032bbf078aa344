package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"callclean/internal/config"
	"callclean/internal/engine"
	"callclean/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logging.InitFromEnv()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "callclean:", err)
		os.Exit(1)
	}
}

type flags struct {
	config      string
	input       string
	driver      string
	sheet       string
	format      string
	maxRows     int
	logLevel    string
	logJSON     bool
	metricsFile string
	unmapped    bool
}

// run parses args and cleans one file; reports go to out, usage to errOut.
func run(ctx context.Context, out, errOut io.Writer, args []string) error {
	cmd := newRootCmd(out)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(out io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "callclean [path]",
		Short: "Clean a customer call list and print it before and after",
		Long: `callclean loads a customer call list (xlsx or csv), prints it, then
fills missing cells, normalizes phone numbers and yes/no columns, drops
Not_Useful_Column, trims and title-cases names, removes duplicate rows and
prints the result.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.input = args[0]
			}
			cfg, err := config.Load(f.config, f.overrides(cmd))
			if err != nil {
				return err
			}
			e, err := engine.Bootstrap(cmd.Context(), cfg, out)
			if err != nil {
				return err
			}
			_, err = e.Run(cmd.Context())
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "config file (default "+config.DefaultFile+" when present)")
	fl.StringVarP(&f.input, "input", "i", "", "input file (default "+config.DefaultInput+")")
	fl.StringVar(&f.driver, "driver", "", "input driver: xlsx|csv (default by extension)")
	fl.StringVar(&f.sheet, "sheet", "", "sheet to read from an xlsx workbook (default first)")
	fl.StringVarP(&f.format, "format", "f", "", "report format: text|json|yaml")
	fl.IntVar(&f.maxRows, "max-rows", 0, "rows to print per report, 0 for all")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug|info|warn|error")
	fl.BoolVar(&f.logJSON, "log-json", false, "log as JSON")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	fl.BoolVar(&f.unmapped, "unmapped-true", true, "value for yes/no cells that match no synonym")
	return cmd
}

// overrides copies every flag the user set onto the loaded config.
func (f *flags) overrides(cmd *cobra.Command) func(*config.Config) {
	changed := cmd.Flags().Changed
	return func(c *config.Config) {
		if f.input != "" {
			c.Source.Path = f.input
		}
		if changed("driver") {
			c.Source.Driver = f.driver
		}
		if changed("sheet") {
			c.Source.Sheet = f.sheet
		}
		if changed("format") {
			c.Sink.Format = f.format
		}
		if changed("max-rows") {
			c.Sink.MaxRows = f.maxRows
		}
		if changed("log-level") {
			c.Log.Level = f.logLevel
		}
		if changed("log-json") {
			c.Log.JSON = f.logJSON
		}
		if changed("metrics-file") {
			c.Metrics.Textfile = f.metricsFile
		}
		if changed("unmapped-true") {
			c.Booleans.Unmapped = f.unmapped
		}
	}
}
