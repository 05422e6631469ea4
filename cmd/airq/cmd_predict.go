package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/config"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/output"
	"github.com/crimson-sun/airq/internal/output/stdout"
	"github.com/crimson-sun/airq/internal/output/terminal"
)

var predictFlags struct {
	json      bool
	pretty    bool
	verbosity string
	quiet     bool
}

var predictCmd = &cobra.Command{
	Use:   "predict [name=value ...]",
	Short: "Predict the category for one set of measurements",
	Long: `Predicts once and prints the result. Features not given on the command
line take their default value. A value that does not parse as a number is
reported and replaced by the default.`,
	Example: "  airq predict CO=3.5 PM10=200 NO2=60\n  airq predict --json Temperature=35",
	RunE:    runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.BoolVar(&predictFlags.json, "json", false, "Print JSON instead of a styled card")
	f.BoolVar(&predictFlags.pretty, "pretty", false, "Indent JSON output")
	f.StringVar(&predictFlags.verbosity, "verbosity", "", "JSON detail: minimal, standard or full")
	f.BoolVarP(&predictFlags.quiet, "quiet", "q", false, "Omit the heading in terminal output")
}

func predictOverrides(cfg *config.Config) {
	if predictFlags.json {
		cfg.Output.Format = "json"
	}
	if predictFlags.pretty {
		cfg.Output.Pretty = true
	}
	override(&cfg.Output.Verbosity, predictFlags.verbosity)
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(predictOverrides)
	if err != nil {
		return err
	}
	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	raw, err := parseAssignments(eng.Registry(), args)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, eng, collector.KindText)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	var out output.Output
	switch cfg.Output.Format {
	case "json":
		out = stdout.NewWriter(w, output.ParseVerbosity(cfg.Output.Verbosity), cfg.Output.Pretty)
	default:
		printer := p.Renderer().Printer()
		if !predictFlags.quiet {
			fmt.Fprint(w, terminal.Markdown("# "+printer.Sprintf("Air Quality Predictive Model"), 80))
		}
		out = terminal.NewWriter(w, printer)
	}
	defer out.Close()

	_, err = p.Run(cmd.Context(), raw, out)
	return err
}

// parseAssignments turns name=value arguments into raw form input. Names
// must be known features; values are left for the collector to parse.
func parseAssignments(reg *feature.Registry, args []string) (map[string]string, error) {
	raw := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q: want name=value", arg)
		}
		name = strings.TrimSpace(name)
		if _, known := reg.Index(name); !known {
			return nil, fmt.Errorf("unknown feature %q (known: %s)", name, strings.Join(reg.Names(), ", "))
		}
		raw[name] = value
	}
	return raw, nil
}
