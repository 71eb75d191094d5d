package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fsmtool",
	Short: "fsmtool turns FSM definitions into diagrams, models and code",
	Long: `fsmtool parses finite state machine definitions written in YAML and
generates equivalent representations: PlantUML state diagrams, MATLAB
scripts that build Simulink/Stateflow models, and a round-trippable YAML
serialization of the same machine.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
