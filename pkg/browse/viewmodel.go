package browse

import (
	"time"

	"github.com/tierview/tierview/pkg/meta"
)

// Entry is one namespace entry prepared for display.
type Entry struct {
	Path               string    `json:"path"`
	Name               string    `json:"name"`
	IsDirectory        bool      `json:"isDirectory"`
	Length             int64     `json:"length"`
	BlockSizeBytes     int64     `json:"blockSizeBytes"`
	Completed          bool      `json:"completed"`
	InMemoryPercentage int       `json:"inMemoryPercentage"`
	Persisted          bool      `json:"persisted"`
	LastModified       time.Time `json:"lastModified"`

	// Locations holds the merged address list for non-empty files:
	// in-memory replicas first, backing-store copies after. Directories
	// and empty files carry none.
	Locations []string `json:"locations,omitempty"`
}

// BlockView is per-block metadata rendered alongside a file preview.
type BlockView struct {
	ID        int64    `json:"id"`
	Offset    int64    `json:"offset"`
	Length    int64    `json:"length"`
	InMemory  bool     `json:"inMemory"`
	Tiers     []string `json:"tiers,omitempty"`
	Locations []string `json:"locations,omitempty"`
}

// View is the structured record handed to the renderer.
//
// Exactly one of the failure cases populates Error; on success it is empty
// and the path-kind decides which of the directory/file sections is filled.
// The view is always renderable: failures downgrade to the Error field
// instead of propagating.
type View struct {
	// CurrentPath is the canonical path being viewed
	CurrentPath string `json:"currentPath"`

	// Breadcrumbs are the proper ancestors of CurrentPath, root first,
	// excluding CurrentPath itself. Empty when viewing the root.
	Breadcrumbs []*Entry `json:"breadcrumbs"`

	// CurrentDirectory is the resolved entry for CurrentPath
	CurrentDirectory *Entry `json:"currentDirectory,omitempty"`

	// Entries are the directory's children, sorted by path, possibly
	// windowed by pagination. Nil for file views.
	Entries []*Entry `json:"entries,omitempty"`

	// TotalCount is the number of children before any pagination window
	TotalCount int `json:"totalCount"`

	// PreviewText is the rendered preview window or a diagnostic message.
	// Only set for file views.
	PreviewText string `json:"previewText,omitempty"`

	// FileBlocks is the per-block metadata for file views
	FileBlocks []*BlockView `json:"fileBlocks,omitempty"`

	// ViewingOffset is the effective byte offset the preview starts at
	ViewingOffset int64 `json:"viewingOffset"`

	// WorkerWebPort is the worker web UI port used for cross-linking
	WorkerWebPort int `json:"workerWebPort"`

	// HighestTierAlias names the fastest storage tier
	HighestTierAlias string `json:"highestTierAlias"`

	// Error is the single human-readable error for a failed request
	Error string `json:"error,omitempty"`
}

func newEntry(info *meta.FileInfo) *Entry {
	return &Entry{
		Path:               info.Path,
		Name:               info.Name,
		IsDirectory:        info.IsDirectory,
		Length:             info.Length,
		BlockSizeBytes:     info.BlockSizeBytes,
		Completed:          info.Completed,
		InMemoryPercentage: info.InMemoryPercentage,
		Persisted:          info.Persisted,
		LastModified:       info.LastModified,
	}
}

func newBlockView(block *meta.FileBlockInfo) *BlockView {
	view := &BlockView{
		ID:       block.BlockID,
		Offset:   block.Offset,
		Length:   block.Length,
		InMemory: len(block.Locations) > 0,
	}
	for _, location := range block.Locations {
		view.Tiers = append(view.Tiers, location.TierAlias)
		view.Locations = append(view.Locations, location.WorkerAddress.String())
	}
	view.Locations = append(view.Locations, block.UnderStoreLocations...)
	return view
}
