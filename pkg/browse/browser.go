// Package browse renders a browsable view of a distributed file namespace:
// bounded file previews, paginated directory listings with breadcrumb
// ancestry, and per-file storage location summaries.
package browse

import (
	"context"
	"errors"

	"github.com/tierview/tierview/pkg/content"
	"github.com/tierview/tierview/pkg/meta"
)

// Request carries the raw browse parameters as they arrived. Offset and
// Limit stay unparsed strings because both invalid-integer handling and
// pagination deferral depend on the raw form and on presence.
type Request struct {
	// Path is the raw namespace path (empty defaults to the root)
	Path string

	// Offset is the raw offset parameter, with a presence flag. For file
	// views it positions the preview; for directory views it paginates.
	Offset    string
	HasOffset bool

	// End, when present, switches the preview offset to be relative to
	// the end of the file.
	End bool

	// Limit is the raw pagination size parameter, with a presence flag
	Limit    string
	HasLimit bool
}

// Options configures a Browser.
type Options struct {
	// Meta is the metadata store resolving paths, listings and blocks
	Meta meta.MetadataStore

	// Content is the store file bytes are previewed from
	Content content.ContentStore

	// Backing optionally reports durable under-store locations; may be
	// the same store as Content or nil
	Backing content.ContentStore

	// WorkerWebPort is exposed on every view for cross-linking
	WorkerWebPort int

	// TierAliases is the ordered tier list, fastest first
	TierAliases []string

	// PreviewWindowBytes bounds the preview size (0 = DefaultPreviewBytes)
	PreviewWindowBytes int64
}

// Browser composes the four browse components behind a single request
// boundary. It holds only immutable handles and is safe for concurrent
// use; every view is built fresh per request.
type Browser struct {
	resolver  *PathResolver
	preview   *PreviewReader
	lister    *DirectoryLister
	locations *BlockLocationAggregator

	store         meta.MetadataStore
	workerWebPort int
	tiers         []string
}

// New creates a Browser from its collaborators.
func New(opts Options) *Browser {
	return &Browser{
		resolver:      NewPathResolver(opts.Meta),
		preview:       NewPreviewReader(opts.Content, opts.PreviewWindowBytes),
		lister:        NewDirectoryLister(opts.Meta),
		locations:     NewBlockLocationAggregator(opts.Meta, opts.Backing),
		store:         opts.Meta,
		workerWebPort: opts.WorkerWebPort,
		tiers:         opts.TierAliases,
	}
}

// Browse handles one request and always returns a renderable view.
//
// Every failure from resolution, preview, listing or aggregation is
// converted into the view's Error field; nothing propagates past this
// boundary except context cancellation, which the caller owns.
func (b *Browser) Browse(ctx context.Context, req Request) *View {
	view := &View{
		ViewingOffset: 0,
		WorkerWebPort: b.workerWebPort,
	}
	if len(b.tiers) > 0 {
		view.HighestTierAlias = b.tiers[0]
	}

	path, info, err := b.resolver.Resolve(ctx, req.Path)
	view.CurrentPath = path
	if err != nil {
		view.Error = describeError(err, path)
		return view
	}
	view.CurrentDirectory = newEntry(info)

	if !info.IsDirectory {
		b.browseFile(ctx, req, info, view)
		return view
	}
	b.browseDirectory(ctx, req, path, view)
	return view
}

// browseFile fills the preview section of the view.
func (b *Browser) browseFile(ctx context.Context, req Request, info *meta.FileInfo, view *View) {
	offset := EffectiveOffset(req.Offset, req.End, info.Length)
	view.ViewingOffset = offset

	text, _, err := b.preview.Read(ctx, info, offset)
	if err != nil {
		view.Error = "Error: File " + view.CurrentPath + " is not available " + err.Error()
		return
	}
	view.PreviewText = text

	blocks, err := b.store.GetFileBlockInfo(ctx, info.Path)
	if err != nil {
		view.Error = describeError(err, view.CurrentPath)
		return
	}
	for _, block := range blocks {
		view.FileBlocks = append(view.FileBlocks, newBlockView(block))
	}
}

// browseDirectory fills the listing section of the view.
func (b *Browser) browseDirectory(ctx context.Context, req Request, path string, view *View) {
	crumbs, err := b.resolver.Breadcrumbs(ctx, path)
	if err != nil {
		view.Error = describeError(err, path)
		return
	}
	view.Breadcrumbs = make([]*Entry, 0, len(crumbs))
	for _, crumb := range crumbs {
		view.Breadcrumbs = append(view.Breadcrumbs, newEntry(crumb))
	}

	children, err := b.lister.List(ctx, path)
	if err != nil {
		view.Error = describeError(err, path)
		return
	}

	entries := make([]*Entry, 0, len(children))
	for _, child := range children {
		entry := newEntry(child)
		if !child.IsDirectory && child.Length > 0 {
			locations, err := b.locations.Locations(ctx, child)
			if err != nil {
				// One stale entry fails the whole listing. Conservative,
				// but a partial location map would be misleading.
				view.Error = describeError(err, child.Path)
				return
			}
			entry.Locations = locations
		}
		entries = append(entries, entry)
	}
	view.TotalCount = len(entries)

	window := Window{
		Offset:    req.Offset,
		Limit:     req.Limit,
		HasOffset: req.HasOffset,
		HasLimit:  req.HasLimit,
	}
	if !window.Requested() {
		// No window requested: return everything and let the client,
		// which knows its page size, do the slicing.
		view.Entries = entries
		return
	}

	sliced, err := window.Slice(entries)
	if err != nil {
		view.Error = "Error: " + err.Error()
		return
	}
	view.Entries = sliced
}

// describeError maps a failure to the single user-facing error string.
func describeError(err error, path string) string {
	if code, ok := meta.CodeOf(err); ok {
		switch code {
		case meta.ErrNotFound, meta.ErrInvalidPath:
			return "Error: Invalid Path " + err.Error()
		case meta.ErrAccessDenied:
			return "Error: File " + path + " cannot be accessed " + err.Error()
		default:
			return "Error: File " + path + " is not available " + err.Error()
		}
	}
	if errors.Is(err, content.ErrContentNotFound) {
		return "Error: Invalid Path " + err.Error()
	}
	return "Error: File " + path + " is not available " + err.Error()
}
