package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configShowCmd prints the effective, fully-resolved configuration (defaults
// layered under any config file and PERSIST_ environment overrides) as YAML,
// the way the teacher's renderer package marshals analysis output with
// yaml.Marshal rather than hand-building the text.
func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			_, err = os.Stdout.Write(out)

			return err
		},
	}
}
