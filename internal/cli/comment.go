package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lomba-poster/internal/domain"
	"lomba-poster/internal/thread"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `comment <artwork-id> "text"`,
		Short: "Post a comment on an artwork",
		Long:  "Post a comment, optionally as a reply. The thread is shown with the comment in flight, then as confirmed by the server.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runComment,
	}
	cmd.Flags().String("reply-to", "", "id of the comment to reply to")
	return cmd
}

// announcingStore prints the optimistic thread right before the request leaves.
type announcingStore struct {
	next   thread.Store
	before func()
}

func (s *announcingStore) AddComment(ctx context.Context, artworkID uuid.UUID, payload domain.CommentPayload, parentID *uuid.UUID) (*domain.Artwork, error) {
	if s.before != nil {
		s.before()
	}
	return s.next.AddComment(ctx, artworkID, payload, parentID)
}

func runComment(cmd *cobra.Command, args []string) error {
	artworkID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid artwork ID: %s", args[0])
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("comment text is required")
	}

	var replyTo *uuid.UUID
	if raw, _ := cmd.Flags().GetString("reply-to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid reply-to ID: %s", raw)
		}
		replyTo = &id
	}

	api := newAPIClient()
	artwork, err := api.GetArtwork(cmd.Context(), artworkID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	plain := !isJSON()
	store := &announcingStore{next: api}
	section := thread.NewSection(*artwork, store)
	if plain {
		store.before = func() {
			fmt.Fprintln(out, "Sending...")
			printForest(out, section.Forest())
			fmt.Fprintln(out)
		}
	}

	if replyTo != nil {
		section.ReplyTo(*replyTo)
	}

	if err := section.Submit(cmd.Context(), text); err != nil {
		if plain {
			reportRollback(out, section)
		}
		return err
	}

	if !plain {
		return printJSON(out, section.Forest())
	}
	fmt.Fprintln(out, "Saved.")
	printForest(out, section.Forest())
	return nil
}

func reportRollback(out io.Writer, section *thread.Section) {
	fmt.Fprintln(out, "Not saved, thread restored:")
	printForest(out, section.Forest())
}
