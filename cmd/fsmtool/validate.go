package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/fsmtool/internal/compiler"
	"github.com/aretw0/fsmtool/internal/validator"
	"github.com/aretw0/fsmtool/pkg/fsm"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an FSM definition for structural errors",
	Long: `Parses the definition and runs the structural pass: every state name
must be unique, every transition target must exist, and exactly one state
must match initial_state. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("State machine is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(input string) error {
	parser := compiler.NewParser()

	m, err := parseInput(parser, input)
	if err != nil {
		return err
	}
	return validator.Check(m)
}

// parseInput parses from a file path, or from stdin when input is "-".
func parseInput(parser *compiler.Parser, input string) (*fsm.Fsm, error) {
	if input == "-" {
		return parser.ParseReader(os.Stdin)
	}
	return parser.ParseFile(input)
}
