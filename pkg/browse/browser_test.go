package browse

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmemory "github.com/tierview/tierview/pkg/content/memory"
	"github.com/tierview/tierview/pkg/meta"
	metamemory "github.com/tierview/tierview/pkg/meta/memory"
)

// testNamespace wires a browser over fresh memory stores.
type testNamespace struct {
	meta    *metamemory.MemoryMetadataStore
	content *contentmemory.MemoryContentStore
	browser *Browser
}

func newTestNamespace(t *testing.T) *testNamespace {
	t.Helper()
	ctx := context.Background()

	metaStore, err := metamemory.NewMemoryMetadataStore(ctx)
	require.NoError(t, err)
	contentStore, err := contentmemory.NewMemoryContentStore(ctx, "worker-1:29999")
	require.NoError(t, err)

	return &testNamespace{
		meta:    metaStore,
		content: contentStore,
		browser: New(Options{
			Meta:          metaStore,
			Content:       contentStore,
			Backing:       contentStore,
			WorkerWebPort: 30000,
			TierAliases:   []string{"MEM", "SSD", "HDD"},
		}),
	}
}

func (ns *testNamespace) addFile(t *testing.T, path string, data []byte, blocks []*meta.FileBlockInfo) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, ns.content.Put(ctx, path, data))
	_, err := ns.meta.CreateFile(ctx, &meta.FileInfo{
		Path:           path,
		Length:         int64(len(data)),
		BlockSizeBytes: 512,
		Completed:      true,
		ContentID:      path,
	}, blocks)
	require.NoError(t, err)
}

func TestBrowseRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyNamespace", func(t *testing.T) {
		ns := newTestNamespace(t)

		view := ns.browser.Browse(ctx, Request{Path: ""})
		assert.Empty(t, view.Error)
		assert.Equal(t, "/", view.CurrentPath)
		assert.Empty(t, view.Breadcrumbs)
		assert.Empty(t, view.Entries)
		assert.Zero(t, view.TotalCount)
		assert.Equal(t, "MEM", view.HighestTierAlias)
		assert.Equal(t, 30000, view.WorkerWebPort)
	})
}

func TestBrowseFile(t *testing.T) {
	ctx := context.Background()
	data := bytes.Repeat([]byte("x"), 10000)

	t.Run("DefaultOffset", func(t *testing.T) {
		ns := newTestNamespace(t)
		ns.addFile(t, "/a.txt", data, nil)

		view := ns.browser.Browse(ctx, Request{Path: "/a.txt"})
		assert.Empty(t, view.Error)
		assert.Equal(t, int64(0), view.ViewingOffset)
		assert.Len(t, view.PreviewText, DefaultPreviewBytes)
	})

	t.Run("ForwardOffset", func(t *testing.T) {
		ns := newTestNamespace(t)
		ns.addFile(t, "/a.txt", data, nil)

		view := ns.browser.Browse(ctx, Request{Path: "/a.txt", Offset: "3000", HasOffset: true})
		assert.Empty(t, view.Error)
		assert.Equal(t, int64(3000), view.ViewingOffset)
		assert.Len(t, view.PreviewText, DefaultPreviewBytes)
	})

	t.Run("ReverseOffset", func(t *testing.T) {
		ns := newTestNamespace(t)
		ns.addFile(t, "/a.txt", data, nil)

		view := ns.browser.Browse(ctx, Request{Path: "/a.txt", Offset: "2000", HasOffset: true, End: true})
		assert.Empty(t, view.Error)
		assert.Equal(t, int64(8000), view.ViewingOffset)
		assert.Len(t, view.PreviewText, 2000)
	})

	t.Run("OffsetClampedToLength", func(t *testing.T) {
		ns := newTestNamespace(t)
		ns.addFile(t, "/a.txt", data, nil)

		view := ns.browser.Browse(ctx, Request{Path: "/a.txt", Offset: "20000", HasOffset: true})
		assert.Empty(t, view.Error, "empty tail is not an error")
		assert.Equal(t, int64(10000), view.ViewingOffset)
		assert.Empty(t, view.PreviewText)
	})

	t.Run("BlocksShownWithPreview", func(t *testing.T) {
		ns := newTestNamespace(t)
		blocks := []*meta.FileBlockInfo{{
			BlockID: 7, Length: 10000,
			Locations: []meta.BlockLocation{{
				WorkerAddress: meta.WorkerNetAddress{Host: "worker-1", RPCPort: 29999, WebPort: 30000},
				TierAlias:     "MEM",
			}},
		}}
		ns.addFile(t, "/a.txt", data, blocks)

		view := ns.browser.Browse(ctx, Request{Path: "/a.txt"})
		require.Len(t, view.FileBlocks, 1)
		assert.Equal(t, int64(7), view.FileBlocks[0].ID)
		assert.True(t, view.FileBlocks[0].InMemory)
		assert.Equal(t, []string{"MEM"}, view.FileBlocks[0].Tiers)
	})

	t.Run("IncompleteFileStillRendersBlocks", func(t *testing.T) {
		ns := newTestNamespace(t)
		_, err := ns.meta.CreateFile(ctx, &meta.FileInfo{
			Path: "/partial", Length: 100, Completed: false, ContentID: "/partial",
		}, []*meta.FileBlockInfo{{BlockID: 1, Length: 100}})
		require.NoError(t, err)

		view := ns.browser.Browse(ctx, Request{Path: "/partial"})
		assert.Empty(t, view.Error)
		assert.Equal(t, "The requested file is not complete yet.", view.PreviewText)
		assert.Len(t, view.FileBlocks, 1)
	})
}

func TestBrowseDirectory(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *testNamespace {
		ns := newTestNamespace(t)
		_, err := ns.meta.CreateDirectory(ctx, "/docs")
		require.NoError(t, err)
		for _, name := range []string{"e", "c", "a", "d", "b"} {
			ns.addFile(t, "/docs/"+name, []byte(strings.Repeat(name, 4)), []*meta.FileBlockInfo{{
				BlockID: 1, Length: 4,
				Locations: []meta.BlockLocation{{
					WorkerAddress: meta.WorkerNetAddress{Host: "worker-1", RPCPort: 29999},
					TierAlias:     "MEM",
				}},
				UnderStoreLocations: []string{"s3://bucket/docs/" + name},
			}})
		}
		return ns
	}

	t.Run("SortedWithBreadcrumbs", func(t *testing.T) {
		ns := seed(t)

		view := ns.browser.Browse(ctx, Request{Path: "/docs"})
		require.Empty(t, view.Error)
		require.Len(t, view.Breadcrumbs, 1)
		assert.Equal(t, "/", view.Breadcrumbs[0].Path)
		assert.Equal(t, 5, view.TotalCount)
		require.Len(t, view.Entries, 5)
		assert.Equal(t, "/docs/a", view.Entries[0].Path)
		assert.Equal(t, "/docs/e", view.Entries[4].Path)
	})

	t.Run("EntriesCarryLocations", func(t *testing.T) {
		ns := seed(t)

		view := ns.browser.Browse(ctx, Request{Path: "/docs"})
		require.Empty(t, view.Error)
		assert.Equal(t, []string{"worker-1:29999", "s3://bucket/docs/a"}, view.Entries[0].Locations)
	})

	t.Run("DirectoriesCarryNoLocations", func(t *testing.T) {
		ns := seed(t)
		_, err := ns.meta.CreateDirectory(ctx, "/docs/sub")
		require.NoError(t, err)

		view := ns.browser.Browse(ctx, Request{Path: "/docs"})
		require.Empty(t, view.Error)
		for _, entry := range view.Entries {
			if entry.IsDirectory {
				assert.Empty(t, entry.Locations)
			}
		}
	})

	t.Run("FirstPage", func(t *testing.T) {
		ns := seed(t)

		view := ns.browser.Browse(ctx, Request{
			Path: "/docs", Offset: "0", HasOffset: true, Limit: "2", HasLimit: true,
		})
		require.Empty(t, view.Error)
		assert.Equal(t, 5, view.TotalCount)
		require.Len(t, view.Entries, 2)
		assert.Equal(t, "/docs/a", view.Entries[0].Path)
		assert.Equal(t, "/docs/b", view.Entries[1].Path)
	})

	t.Run("WindowPastEnd", func(t *testing.T) {
		ns := seed(t)

		view := ns.browser.Browse(ctx, Request{
			Path: "/docs", Offset: "4", HasOffset: true, Limit: "2", HasLimit: true,
		})
		assert.Contains(t, view.Error, "out of bound")
		assert.Empty(t, view.Entries)
	})

	t.Run("BadPaginationInput", func(t *testing.T) {
		ns := seed(t)

		view := ns.browser.Browse(ctx, Request{
			Path: "/docs", Offset: "abc", HasOffset: true, Limit: "2", HasLimit: true,
		})
		assert.Contains(t, view.Error, "parse error")
	})
}

func TestBrowseErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingPath", func(t *testing.T) {
		ns := newTestNamespace(t)

		view := ns.browser.Browse(ctx, Request{Path: "/nope"})
		assert.Contains(t, view.Error, "Invalid Path")
	})

	t.Run("UnparseablePath", func(t *testing.T) {
		ns := newTestNamespace(t)

		view := ns.browser.Browse(ctx, Request{Path: "no-slash"})
		assert.Contains(t, view.Error, "Invalid Path")
	})

	t.Run("SingleErrorField", func(t *testing.T) {
		ns := newTestNamespace(t)

		view := ns.browser.Browse(ctx, Request{Path: "/nope"})
		assert.NotEmpty(t, view.Error)
		assert.Empty(t, view.PreviewText)
		assert.Empty(t, view.Entries)
	})

	t.Run("StaleLocationEntryFailsListing", func(t *testing.T) {
		// A child whose block lookup fails aborts the whole view.
		ns := newTestNamespace(t)
		staleMeta := &staleBlockStore{MetadataStore: ns.meta}
		browser := New(Options{
			Meta:        staleMeta,
			Content:     ns.content,
			TierAliases: []string{"MEM"},
		})
		ns.addFile(t, "/a", []byte("data"), nil)

		view := browser.Browse(ctx, Request{Path: "/"})
		assert.Contains(t, view.Error, "Invalid Path")
		assert.Empty(t, view.Entries)
	})
}

// staleBlockStore fails every block lookup, simulating an entry removed
// between listing and aggregation.
type staleBlockStore struct {
	meta.MetadataStore
}

func (s *staleBlockStore) GetFileBlockInfo(ctx context.Context, path string) ([]*meta.FileBlockInfo, error) {
	return nil, meta.NotFound(path)
}
