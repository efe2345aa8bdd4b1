package cli

import (
	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the current judging leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := newAPIClient().Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			return printLeaderboard(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().Int("limit", 10, "number of entries")
	return cmd
}
