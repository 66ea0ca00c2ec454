package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .uitheme.yaml config file",
	Long:  `Create a .uitheme.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# uitheme configuration
# Docs: https://github.com/yacobolo/uitheme

# Shared settings
verbose: false
output-format: text        # text | summary | full | json | markdown

# Session log and revert scripts
log:
  dir: .uitheme

# Transform settings
transform:
  src: src/components
  include:
    - "**/*.{tsx,jsx,ts}"
  exclude: []              # unit names, see: uitheme list
  dry-run: false
  concurrency: 0           # 0 = number of CPUs
  prefix: Catalyst
  utils-import: "@/lib/utils"
  nocheck-files:
    - combobox.tsx
    - listbox.tsx
    - dropdown.tsx
  lexical-regions: false
  mappings: []
  # mappings:
  #   - pattern: '\bbg-indigo-600\b'
  #     replacement: bg-primary
  #     description: brand buttons

# Audit settings
audit:
  strict: false
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
