package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/uitheme/internal/transforms"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the transform units in execution order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		registry, _ := transforms.Default(transforms.Options{})
		out := cmd.OutOrStdout()
		for _, s := range registry.Stages() {
			meta := s.Unit.Metadata()
			fmt.Fprintf(out, "%-28s %-10s %s\n", meta.Name, s.Phase, meta.Description)
		}
		return nil
	},
}
