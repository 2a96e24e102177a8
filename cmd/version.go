package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

type versionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
	Module  string `json:"module,omitempty"`
}

func buildVersion() versionInfo {
	info := versionInfo{Version: version, Go: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.Module = bi.Main.Path
		if info.Version == "(devel)" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := buildVersion()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "siswa %s (%s)\n", info.Version, info.Go)
		return err
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "Print version details as JSON")
}
