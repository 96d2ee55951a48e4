package browse

import (
	"context"

	"github.com/tierview/tierview/pkg/meta"
)

// PathResolver normalizes raw request paths, resolves them against the
// metadata store, and builds breadcrumb ancestry for directory views.
type PathResolver struct {
	store meta.MetadataStore
}

// NewPathResolver creates a resolver over the given store.
func NewPathResolver(store meta.MetadataStore) *PathResolver {
	return &PathResolver{store: store}
}

// Resolve canonicalizes a raw path (empty input defaults to the root) and
// looks it up. Failures carry meta.ErrInvalidPath, meta.ErrNotFound or
// meta.ErrAccessDenied codes.
func (r *PathResolver) Resolve(ctx context.Context, raw string) (string, *meta.FileInfo, error) {
	path, err := meta.NormalizePath(raw)
	if err != nil {
		return "", nil, err
	}

	info, err := r.store.GetFileInfo(ctx, path)
	if err != nil {
		return path, nil, err
	}
	return path, info, nil
}

// Breadcrumbs resolves every proper ancestor of a canonical path, root
// first, excluding the path itself. One metadata lookup per ancestor.
//
// The root has no proper ancestors: the result is empty and the store is
// never consulted.
func (r *PathResolver) Breadcrumbs(ctx context.Context, path string) ([]*meta.FileInfo, error) {
	if path == meta.RootPath {
		return nil, nil
	}

	components := meta.SplitPath(path)
	crumbs := make([]*meta.FileInfo, 0, len(components))

	current := meta.RootPath
	info, err := r.store.GetFileInfo(ctx, current)
	if err != nil {
		return nil, err
	}
	crumbs = append(crumbs, info)

	// Every interior segment between root and the leaf, leaf excluded.
	for _, component := range components[:len(components)-1] {
		current = meta.JoinPath(current, component)
		info, err := r.store.GetFileInfo(ctx, current)
		if err != nil {
			return nil, err
		}
		crumbs = append(crumbs, info)
	}
	return crumbs, nil
}
