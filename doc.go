/*
Package fsmtool parses finite state machine definitions written in YAML and
renders them into equivalent target notations.

The pipeline is strictly linear: a YAML document is read into a generic
syntax tree, compiled into an immutable intermediate representation
(pkg/fsm), and handed to one or more independent generators, each a pure
function from the IR to one output format. Supported formats are PlantUML
state diagrams, MATLAB scripts that rebuild the machine as a
Simulink/Stateflow chart, and a YAML serialization that re-parses to the
same IR.

# Usage

	package main

	import (
		"log"
		"os"

		"github.com/aretw0/fsmtool"
	)

	func main() {
		m, err := fsmtool.Parse("fsm.yaml")
		if err != nil {
			log.Fatal(err)
		}

		if err := fsmtool.Validate(m); err != nil {
			log.Printf("structural warnings: %v", err)
		}

		if err := fsmtool.Render(m, fsmtool.FormatPlantUML, os.Stdout); err != nil {
			log.Fatal(err)
		}
	}

The fsmtool binary (cmd/fsmtool) wraps the same pipeline behind generate,
validate and serve commands.
*/
package fsmtool
