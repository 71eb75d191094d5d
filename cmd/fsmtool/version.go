package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/fsmtool"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fsmtool",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fsmtool version %s\n", fsmtool.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
