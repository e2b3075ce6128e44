package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/VaticanUK/com-pact/pkg/cli/internal/output"
	"github.com/spf13/cobra"
)

// VersionOutput represents JSON output format
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show compact version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := resolveVersion()

		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, out)
		}
		fmt.Fprintf(w, "compact %s (%s, %s)\n", displayVersion(out.Version), out.Commit, out.Date)
		fmt.Fprintf(w, "%s %s/%s\n", out.Go, out.OS, out.Arch)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// resolveVersion fills values not injected at build time from the
// embedded module and VCS information.
func resolveVersion() VersionOutput {
	out := VersionOutput{
		Version: Version,
		Commit:  Commit,
		Date:    BuildDate,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = setting.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = setting.Value
			}
		case "vcs.modified":
			if setting.Value == "true" {
				out.Commit += "-dirty"
			}
		}
	}
	return out
}

// displayVersion prefixes release versions with "v".
func displayVersion(v string) string {
	if len(v) > 0 && v[0] != 'v' && v != "dev" && v != "(devel)" {
		return "v" + v
	}
	return v
}
