package services

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/repositories"
)

// deleteComments removes the comments, every reply below them, and their likes
// and images. It must run inside a transaction.
func deleteComments(ctx context.Context, tx *repositories.Store, ids []uint) error {
	all := uniqueIDs(ids)
	seen := make(map[uint]bool, len(all))
	for _, id := range all {
		seen[id] = true
	}

	frontier := all
	for len(frontier) > 0 {
		replies, err := tx.Comments.GetReplyIDs(ctx, frontier)
		if err != nil {
			return err
		}
		var next []uint
		for _, id := range replies {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
				next = append(next, id)
			}
		}
		frontier = next
	}

	if err := tx.CommentLikes.DeleteByCommentIDs(ctx, all); err != nil {
		return err
	}
	if err := tx.Comments.DeleteImagesByCommentIDs(ctx, all); err != nil {
		return err
	}
	return tx.Comments.DeleteComments(ctx, all)
}

// deletePosts removes the posts with their comments, likes, images and tag
// links. It must run inside a transaction.
func deletePosts(ctx context.Context, tx *repositories.Store, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	commentIDs, err := tx.Comments.GetCommentIDsByPostIDs(ctx, ids)
	if err != nil {
		return err
	}
	if err := deleteComments(ctx, tx, commentIDs); err != nil {
		return err
	}
	if err := tx.PostLikes.DeleteByPostIDs(ctx, ids); err != nil {
		return err
	}
	if err := tx.Posts.DeleteImagesByPostIDs(ctx, ids); err != nil {
		return err
	}
	if err := tx.Posts.DeleteTagLinksByPostIDs(ctx, ids); err != nil {
		return err
	}
	return tx.Posts.DeletePosts(ctx, ids)
}
