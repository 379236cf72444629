package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo is stamped by main from its ldflags.
type buildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

var build = buildInfo{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersionInfo records the values main was linked with. A "dev" version
// falls back to the module version when the binary came from go install.
func SetVersionInfo(v, c, d string) {
	if v == "dev" || v == "" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	build.Version, build.Commit, build.Date = v, c, d
}

func GetVersion() string {
	return build.Version
}

// userAgent is sent with every Tessera request.
func userAgent() string {
	return "tessera-gen/" + build.Version
}

func newVersionCmd() *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := build
			info.Go = runtime.Version()
			info.OS, info.Arch = runtime.GOOS, runtime.GOARCH

			switch {
			case asJSON:
				return WriteJSONSuccess(cmd.OutOrStdout(), info)
			case short:
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "tessera-gen %s\ncommit: %s\nbuilt: %s\ngo: %s\nos/arch: %s/%s\n",
					formatVersion(info.Version), info.Commit, info.Date, info.Go, info.OS, info.Arch)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the build information as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}

// formatVersion adds a "v" to release versions.
func formatVersion(v string) string {
	if v == "" || v == "dev" || v[0] == 'v' {
		return v
	}
	return "v" + v
}
