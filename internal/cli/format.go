package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"lomba-poster/internal/client"
	"lomba-poster/internal/domain"
	"lomba-poster/internal/thread"
)

const timeLayout = "2006-01-02 15:04"

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printForest prints a locally built forest, marking entries still in flight.
func printForest(w io.Writer, forest []*thread.Node) {
	if len(forest) == 0 {
		fmt.Fprintln(w, "  (no comments yet)")
		return
	}
	thread.Walk(forest, func(n *thread.Node, depth int) {
		marker := ""
		if n.IsProvisional() {
			marker = " [sending]"
		}
		fmt.Fprintf(w, "%s- %s%s\n", indent(depth), n.Text, marker)
		fmt.Fprintf(w, "%s  %s  %s\n", indent(depth), n.Key(), n.CreatedAt.Local().Format(timeLayout))
	})
}

// printNodes prints a forest as returned by the API.
func printNodes(w io.Writer, nodes []client.ThreadNode, depth int) {
	if depth == 0 && len(nodes) == 0 {
		fmt.Fprintln(w, "  (no comments yet)")
		return
	}
	for _, n := range nodes {
		fmt.Fprintf(w, "%s- %s\n", indent(depth), n.Text)
		fmt.Fprintf(w, "%s  %s  %s\n", indent(depth), n.ID, n.CreatedAt.Local().Format(timeLayout))
		printNodes(w, n.Replies, depth+1)
	}
}

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}

func printLeaderboard(w io.Writer, entries []domain.LeaderboardEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No approved artworks yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tTITLE\tSTUDENT\tCLASS\tAVG\tJUDGES\tLIKES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%d\t%d\n",
			e.Rank, e.Title, e.StudentName, e.ClassName, e.AverageScore, e.JudgeCount, e.LikeCount)
	}
	return tw.Flush()
}
