package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default tetris config",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.arcade/configs/tetris.yaml or ./configs/tetris.yaml and edit
it, or pass it to 'tetris play --config <path>'.

Examples:
  tetris config > ~/.arcade/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		data := config.GetDefaultYAML("tetris")
		if len(data) == 0 {
			return errors.New("no embedded default config")
		}
		_, err := os.Stdout.Write(data)
		return err
	},
}
