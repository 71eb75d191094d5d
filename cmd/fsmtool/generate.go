package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/fsmtool/internal/compiler"
	"github.com/aretw0/fsmtool/internal/generator"
	"github.com/aretw0/fsmtool/internal/logging"
	"github.com/aretw0/fsmtool/internal/validator"
	"github.com/aretw0/fsmtool/internal/watcher"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Render an FSM definition into the selected output formats",
	Long: `Parses a YAML state machine definition and renders it into every
requested output format. Use "-" as the input file to read from stdin.

Each format flag optionally takes a destination path; without one the
output goes to stdout.`,
	Example: `  # PlantUML diagram to stdout
  fsmtool generate fsm.yaml --plantuml

  # Stateflow script and YAML serialization to files
  fsmtool generate fsm.yaml --stateflow model.m --yaml out.yaml

  # Re-generate on every save
  fsmtool generate fsm.yaml --plantuml fsm.puml --watch`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringP(generator.FormatPlantUML, "p", "", "generate a PlantUML state diagram, to FILE or stdout")
	f.StringP(generator.FormatStateflow, "s", "", "generate a Simulink/Stateflow model script, to FILE or stdout")
	f.StringP(generator.FormatYAML, "y", "", "generate the corresponding YAML document, to FILE or stdout")
	f.StringP(generator.FormatAutosarC, "c", "", "generate C code for AUTOSAR Classic SW-Cs (not implemented yet)")
	f.StringP(generator.FormatHppCpp, "b", "", "generate C++ code for the HPP Application Framework (not implemented yet)")
	f.StringP(generator.FormatAnalyze, "a", "", "show a detailed analysis of the FSM (not implemented yet)")

	// A format flag without a value means "render to stdout".
	for _, format := range generator.Formats() {
		f.Lookup(format).NoOptDefVal = "-"
	}

	f.Bool("strict", false, "reject machines with structural errors (duplicate names, dangling targets)")
	f.Bool("watch", false, "keep running and re-generate whenever the input file changes")
}

type renderRequest struct {
	format string
	dest   string
}

func runGenerate(cmd *cobra.Command, input string) error {
	var requests []renderRequest
	for _, format := range generator.Formats() {
		if cmd.Flags().Changed(format) {
			dest, _ := cmd.Flags().GetString(format)
			requests = append(requests, renderRequest{format: format, dest: dest})
		}
	}
	if len(requests) == 0 {
		return errors.New("no output format selected (try --plantuml, --stateflow or --yaml)")
	}

	strict, _ := cmd.Flags().GetBool("strict")
	watch, _ := cmd.Flags().GetBool("watch")

	if !watch {
		return generateOnce(input, requests, strict)
	}

	if input == "-" {
		return errors.New("--watch cannot be combined with stdin input")
	}
	return generateLoop(input, requests, strict)
}

func generateOnce(input string, requests []renderRequest, strict bool) error {
	m, err := parseInput(compiler.NewParser(), input)
	if err != nil {
		return err
	}

	if strict {
		if err := validator.Check(m); err != nil {
			return err
		}
	}

	for _, req := range requests {
		gen, err := generator.ForFormat(req.format)
		if err != nil {
			return err
		}
		if err := generator.WriteOutput(gen, m, req.dest); err != nil {
			return err
		}
	}
	return nil
}

// generateLoop re-runs generation on every change to the input file until
// interrupted. Failures of individual runs are logged, not fatal: a syntax
// error mid-edit should not kill the loop.
func generateLoop(input string, requests []renderRequest, strict bool) error {
	logger := logging.NewDefault()

	w, err := watcher.New(input)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", input, err)
	}
	defer w.Close()

	if err := generateOnce(input, requests, strict); err != nil {
		logger.Error("generation failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", "input", input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("input changed, regenerating", "input", input)
			if err := generateOnce(input, requests, strict); err != nil {
				logger.Error("generation failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
