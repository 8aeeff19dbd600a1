package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dxspv/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show dxspv build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch versionFormat {
		case "pretty":
			fmt.Printf("dxspv %s\n", version.Colored())
			if version.GitCommit != "" {
				fmt.Printf("  commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Printf("  built:  %s\n", version.BuildDate)
			}
			return nil
		case "json":
			payload := versionPayload{
				Tool:      "dxspv",
				Version:   version.String(),
				GitCommit: version.GitCommit,
				BuildDate: version.BuildDate,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		default:
			return fmt.Errorf("unknown format: %s", versionFormat)
		}
	},
}
