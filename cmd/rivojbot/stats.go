package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/internal/admin"
	"github.com/jamshidbekman/rivojbot/internal/stats"
)

func newStatsCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print lead statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			res, err := openInfra(cfg)
			if err != nil {
				return err
			}
			defer res.close()
			defer logger.Shutdown()

			svc := admin.New(res.store, admin.Options{Location: cfg.Location()})
			return writeStats(cmd.OutOrStdout(), svc.Snapshot(cmd.Context()), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeStats(w io.Writer, snap stats.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	if _, err := fmt.Fprintf(w, "total: %d\ntoday: %d\n", snap.Total, snap.Today); err != nil {
		return err
	}
	fmt.Fprintln(w, "by role:")
	for _, rc := range snap.SortedRoles() {
		fmt.Fprintf(w, "  %-24s %d\n", rc.Role.Label(), rc.Count)
	}
	fmt.Fprintln(w, "by problem:")
	for _, pc := range snap.SortedProblems() {
		fmt.Fprintf(w, "  %-32s %d\n", pc.Problem.Label(), pc.Count)
	}
	return nil
}
