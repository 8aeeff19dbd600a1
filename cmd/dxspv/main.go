package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dxspv/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dxspv",
	Short: "DXBC shader scanner and SPIR-V translator",
	Long:  `dxspv validates DXBC/TPF shader bytecode, reports its descriptor bindings and translates it to SPIR-V`,
}

func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.String()

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "config file (default dxspv.toml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "trace verbosity (off|error|warn|info|trace)")

	cobra.OnInitialize(setupColor)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func setupColor() {
	mode, _ := rootCmd.PersistentFlags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}
