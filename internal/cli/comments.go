package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <artwork-id>",
		Short: "Show the comment thread of an artwork",
		Long:  "Show the comments of an artwork as a thread, newest conversations first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runComments,
	}
}

func runComments(cmd *cobra.Command, args []string) error {
	artworkID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid artwork ID: %s", args[0])
	}

	nodes, err := newAPIClient().Thread(cmd.Context(), artworkID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, nodes)
	}

	fmt.Fprintf(out, "Comments for artwork %s:\n\n", artworkID)
	printNodes(out, nodes, 0)
	return nil
}
