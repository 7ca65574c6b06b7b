package listing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"icatdirect/internal/config"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/domain/repositories"
	"icatdirect/internal/domain/services"
	"icatdirect/internal/queries"
)

type permissionResolver struct {
	executor repositories.QueryExecutor
	workers  int
}

// NewPermissionResolver creates a resolver issuing one query per entry.
// ResolveAll runs at most workers lookups at a time.
func NewPermissionResolver(executor repositories.QueryExecutor, workers int) services.PermissionResolver {
	if workers <= 0 {
		workers = config.DefaultPermissionWorkers
	}
	return &permissionResolver{
		executor: executor,
		workers:  workers,
	}
}

// Resolve returns the highest access level user holds on ref
func (r *permissionResolver) Resolve(ctx context.Context, user string, ref models.EntryRef) (*models.AccessLevel, error) {
	var (
		rows []models.Row
		err  error
	)

	switch ref.Type {
	case models.EntryTypeFile:
		dir, name := ref.Split()
		rows, err = r.executor.RunNamed(ctx, queries.FilePermissions, user, dir, name)
	case models.EntryTypeFolder:
		rows, err = r.executor.RunNamed(ctx, queries.FolderPermissions, user, ref.Path)
	default:
		return nil, fmt.Errorf("unknown entry type %q for %s", ref.Type, ref.Path)
	}
	if err != nil {
		return nil, err
	}

	return models.MaxAccessLevel(rows), nil
}

// ResolveAll resolves every ref concurrently. Each result lands in the slot of
// its ref, so output order matches input order. The first failure cancels the
// remaining lookups.
func (r *permissionResolver) ResolveAll(ctx context.Context, user string, refs []models.EntryRef) ([]*models.AccessLevel, error) {
	levels := make([]*models.AccessLevel, len(refs))
	if len(refs) == 0 {
		return levels, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, ref := range refs {
		g.Go(func() error {
			level, err := r.Resolve(gctx, user, ref)
			if err != nil {
				return fmt.Errorf("permission for %s: %w", ref.Path, err)
			}
			levels[i] = level
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return levels, nil
}
