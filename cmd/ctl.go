package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bnema/uniwin/internal/config"
	"github.com/bnema/uniwin/internal/ipc"
)

var (
	ctlSocket string
	ctlJSON   bool
)

var ctlCmd = &cobra.Command{
	Use:   "ctl <command> [args...]",
	Short: "Control a running uniwin session",
	Long: `Send a command to a session started with "uniwin run".

Commands:
  status                       show window state
  fit [monitor]                fit the window to a monitor
  topmost|bottommost [on|off]  set or flip a window attribute
  borderless|transparent [on|off]
  clickthrough [on|off]
  alpha <0..1>                 set window opacity
  detach                       release the window`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCtl,
}

func init() {
	ctlCmd.Flags().StringVar(&ctlSocket, "socket", "", "control socket path (default from config)")
	ctlCmd.Flags().BoolVar(&ctlJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(ctlCmd)
}

func runCtl(cmd *cobra.Command, args []string) error {
	path := ctlSocket
	if path == "" {
		path = config.Get().Host.ControlSocket
	}

	client, err := ipc.NewClient(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := client.Send(ctx, ipc.Request{Command: args[0], Args: args[1:]})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ctlJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Fields)
	}

	keys := make([]string, 0, len(resp.Fields))
	for k := range resp.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %v\n", k, resp.Fields[k])
	}
	return nil
}
