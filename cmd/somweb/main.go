package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "somweb",
	Short: "SOMweb garage door CLI",
	Long:  `A command line interface for operating SOMMER garage doors connected to a SOMweb gateway.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
