package worker

import (
	"context"

	"github.com/vytor/userdirectory/internal/logger"
)

// PagePruner deletes expired page snapshots.
// This avoids import cycles by not importing the services package
type PagePruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// PrunePagesJob removes page snapshots older than the page TTL.
type PrunePagesJob struct {
	Pruner PagePruner
}

func (j *PrunePagesJob) Name() string { return "prune_pages" }

func (j *PrunePagesJob) Run(ctx context.Context) error {
	n, err := j.Pruner.PruneExpired(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.FromContext(ctx).Info("pruned %d expired pages", n)
	}
	return nil
}
