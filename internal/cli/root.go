// Package cli defines the cobra command tree for lomba.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"lomba-poster/internal/client"
)

var (
	flagFormat  string
	flagAPIURL  string
	flagVisitor string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lomba",
		Short:         "School poster contest backend",
		Long:          "Run the poster contest API, manage its schema, and browse or post artwork comments from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagAPIURL, "api-url", envOr("API_URL", "http://localhost:8080"), "base URL of the lomba API")
	root.PersistentFlags().StringVar(&flagVisitor, "visitor", "", "visitor id sent as X-Visitor-ID")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCommentsCmd(),
		newCommentCmd(),
		newLeaderboardCmd(),
	)

	return root
}

func newAPIClient() *client.Client {
	var opts []client.Option
	if flagVisitor != "" {
		opts = append(opts, client.WithVisitorID(flagVisitor))
	}
	return client.New(flagAPIURL, opts...)
}

func isJSON() bool {
	return flagFormat == "json"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
