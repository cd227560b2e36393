package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pedro-r-marques/devops-tutor/pkg/diagnose"
	"github.com/pedro-r-marques/devops-tutor/pkg/workflow"
	"github.com/pedro-r-marques/devops-tutor/pkg/yamlcheck"
)

var errInvalid = errors.New("invalid input")

type cliOptions struct {
	debug  bool
	lang   string
	strict bool
	list   bool
}

func newRootCmd() *cobra.Command {
	var opt cliOptions

	rootCmd := &cobra.Command{
		Use:           "pipeline-viz",
		Short:         "Visualize and explain CI/CD workflow files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if opt.debug {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&opt.debug, "debug", false, "enable debug logging")

	renderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the pipeline of a workflow file (stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, &opt)
		},
	}
	renderCmd.Flags().BoolVar(&opt.strict, "strict", false, "fail on dependency cycles")

	explainCmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Describe the triggers and jobs of a workflow file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args, &opt)
		},
	}
	explainCmd.Flags().StringVar(&opt.lang, "lang", "en", "explanation language (en, si)")

	orderCmd := &cobra.Command{
		Use:   "order [file]",
		Short: "Print the jobs of a workflow file in dependency order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, args, &opt)
		},
	}
	orderCmd.Flags().BoolVar(&opt.strict, "strict", false, "fail on dependency cycles")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a file is valid YAML and report what it contains",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}

	diagnoseCmd := &cobra.Command{
		Use:   "diagnose [logfile]",
		Short: "Explain a build or deployment error log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args, &opt)
		},
	}
	diagnoseCmd.Flags().StringVar(&opt.lang, "lang", "en", "explanation language (en, si)")
	diagnoseCmd.Flags().BoolVar(&opt.list, "list", false, "list the recognised error patterns")

	sampleCmd := &cobra.Command{
		Use:   "sample [name]",
		Short: "Print a built-in sample workflow, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSample,
	}

	rootCmd.AddCommand(renderCmd, explainCmd, orderCmd, validateCmd, diagnoseCmd, sampleCmd)
	return rootCmd
}

// readInput returns the named file, or standard input for no name or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = ioutil.ReadAll(cmd.InOrStdin())
	} else {
		data, err = ioutil.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return string(data), nil
}

// parseInput parses the workflow and applies the cycle policy. A failed
// Result is printed and reported as errInvalid.
func parseInput(cmd *cobra.Command, args []string, strict bool) (*workflow.Result, error) {
	content, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	result := workflow.Parse(content)
	if !result.Success {
		fmt.Fprintln(cmd.OutOrStdout(), workflow.FailureLine(result))
		return nil, errInvalid
	}
	if err := workflow.CheckAcyclic(result.Jobs); err != nil {
		if strict {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ Invalid workflow: %v\n", err)
			return nil, errInvalid
		}
		log.Warn().Err(err).Str("workflow", result.Name).Msg("ordering leniently")
	}
	log.Debug().Str("workflow", result.Name).Int("jobs", len(result.Jobs)).Msg("parsed")
	return result, nil
}

func runRender(cmd *cobra.Command, args []string, opt *cliOptions) error {
	result, err := parseInput(cmd, args, opt.strict)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), workflow.Render(result))
	return nil
}

func runExplain(cmd *cobra.Command, args []string, opt *cliOptions) error {
	result, err := parseInput(cmd, args, false)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), workflow.Explain(result, opt.lang))
	return nil
}

func runOrder(cmd *cobra.Command, args []string, opt *cliOptions) error {
	result, err := parseInput(cmd, args, opt.strict)
	if err != nil {
		return err
	}
	for _, name := range workflow.Order(result.Jobs) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	content, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	report := yamlcheck.Validate(content)
	fmt.Fprintln(cmd.OutOrStdout(), report.Summary())
	if !report.Valid {
		return errInvalid
	}
	return nil
}

func runDiagnose(cmd *cobra.Command, args []string, opt *cliOptions) error {
	if opt.list {
		for _, pattern := range diagnose.Patterns() {
			fmt.Fprintln(cmd.OutOrStdout(), pattern)
		}
		return nil
	}
	content, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), diagnose.Explain(content, opt.lang).String())
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	samples := workflow.NewSampleSet()
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, strings.Join(samples.Names(), "\n"))
		return nil
	}
	sample, err := samples.Get(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	io.WriteString(out, sample.YAML)
	return nil
}
