package twitter

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"NewsThreader/internal/ports"
)

// DryRun logs posts instead of publishing them and hands out synthetic ids.
type DryRun struct {
	logger *slog.Logger
}

var _ ports.Poster = (*DryRun)(nil)

// NewDryRun builds the development poster.
func NewDryRun(logger *slog.Logger) *DryRun {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DryRun{logger: logger}
}

// CreatePost logs a standalone post.
func (d *DryRun) CreatePost(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	d.logger.Info("dry-run post", "id", id, "text", text)
	return id, nil
}

// CreateReply logs a reply.
func (d *DryRun) CreateReply(ctx context.Context, text, parentID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	d.logger.Info("dry-run reply", "id", id, "parent", parentID, "text", text)
	return id, nil
}
