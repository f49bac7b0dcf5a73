package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/ui"
)

// CapsInfo is the JSON form of the capability report
type CapsInfo struct {
	Path   string      `json:"path,omitempty"`
	Groups []GroupInfo `json:"groups,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// GroupInfo is one capability group
type GroupInfo struct {
	Name     string   `json:"name"`
	Resolved []string `json:"resolved"`
	Missing  []string `json:"missing"`
}

var capsJSON bool

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Show which native functions the library exports",
	Long: `Load the native library and report, per capability group, which optional
symbols were resolved. Missing optional symbols degrade to no-ops.`,
	RunE: runCaps,
}

func init() {
	capsCmd.Flags().BoolVar(&capsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(capsCmd)
}

func runCaps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	b, err := loadLibrary()
	if err != nil {
		if capsJSON {
			return json.NewEncoder(out).Encode(CapsInfo{Error: err.Error()})
		}
		return err
	}
	defer unloadLibrary(b)

	caps := b.Capabilities()
	if capsJSON {
		info := CapsInfo{Path: b.Path()}
		for _, g := range caps.Groups() {
			info.Groups = append(info.Groups, GroupInfo{
				Name:     g.Name,
				Resolved: nonNil(g.Resolved),
				Missing:  nonNil(g.Missing),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintln(out, ui.RenderCapabilities(b.Path(), caps))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
