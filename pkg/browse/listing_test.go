package browse

import (
	"context"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierview/tierview/pkg/meta"
	metamemory "github.com/tierview/tierview/pkg/meta/memory"
)

func seedDirectory(t *testing.T, paths ...string) meta.MetadataStore {
	t.Helper()
	ctx := context.Background()

	store, err := metamemory.NewMemoryMetadataStore(ctx)
	require.NoError(t, err)
	for _, path := range paths {
		_, err := store.CreateFile(ctx, &meta.FileInfo{Path: path, Completed: true}, nil)
		require.NoError(t, err)
	}
	return store
}

func TestDirectoryListerSort(t *testing.T) {
	ctx := context.Background()

	t.Run("SortsAscendingByPath", func(t *testing.T) {
		store := seedDirectory(t, "/c", "/a", "/b")
		lister := NewDirectoryLister(store)

		children, err := lister.List(ctx, "/")
		require.NoError(t, err)
		require.Len(t, children, 3)
		assert.Equal(t, "/a", children[0].Path)
		assert.Equal(t, "/b", children[1].Path)
		assert.Equal(t, "/c", children[2].Path)
	})

	t.Run("SortIsIdempotent", func(t *testing.T) {
		store := seedDirectory(t, "/z", "/m", "/a", "/q")
		lister := NewDirectoryLister(store)

		first, err := lister.List(ctx, "/")
		require.NoError(t, err)
		second, err := lister.List(ctx, "/")
		require.NoError(t, err)

		for i := range first {
			assert.Equal(t, first[i].Path, second[i].Path)
		}
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		store := seedDirectory(t)
		lister := NewDirectoryLister(store)

		children, err := lister.List(ctx, "/")
		require.NoError(t, err)
		assert.Empty(t, children)
	})

	t.Run("MissingDirectoryFails", func(t *testing.T) {
		store := seedDirectory(t)
		lister := NewDirectoryLister(store)

		_, err := lister.List(ctx, "/missing")
		require.Error(t, err)
	})
}

func TestWindowSlice(t *testing.T) {
	entries := []*Entry{
		{Path: "/a"}, {Path: "/b"}, {Path: "/c"}, {Path: "/d"}, {Path: "/e"},
	}

	t.Run("NotRequestedWhenBothAbsent", func(t *testing.T) {
		window := Window{}
		assert.False(t, window.Requested())
	})

	t.Run("RequestedWhenEitherPresent", func(t *testing.T) {
		assert.True(t, Window{HasOffset: true}.Requested())
		assert.True(t, Window{HasLimit: true}.Requested())
	})

	t.Run("ExactSubsequence", func(t *testing.T) {
		window := Window{Offset: "0", Limit: "2", HasOffset: true, HasLimit: true}
		sliced, err := window.Slice(entries)
		require.NoError(t, err)
		require.Len(t, sliced, 2)
		assert.Equal(t, "/a", sliced[0].Path)
		assert.Equal(t, "/b", sliced[1].Path)
	})

	t.Run("InteriorWindow", func(t *testing.T) {
		window := Window{Offset: "2", Limit: "2", HasOffset: true, HasLimit: true}
		sliced, err := window.Slice(entries)
		require.NoError(t, err)
		require.Len(t, sliced, 2)
		assert.Equal(t, "/c", sliced[0].Path)
		assert.Equal(t, "/d", sliced[1].Path)
	})

	t.Run("FullRange", func(t *testing.T) {
		window := Window{Offset: "0", Limit: "5", HasOffset: true, HasLimit: true}
		sliced, err := window.Slice(entries)
		require.NoError(t, err)
		assert.Len(t, sliced, 5)
	})

	t.Run("ZeroLimitIsEmpty", func(t *testing.T) {
		window := Window{Offset: "3", Limit: "0", HasOffset: true, HasLimit: true}
		sliced, err := window.Slice(entries)
		require.NoError(t, err)
		assert.Empty(t, sliced)
	})

	t.Run("NonIntegerIsParseError", func(t *testing.T) {
		window := Window{Offset: "x", Limit: "2", HasOffset: true, HasLimit: true}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrBadPaginationInput)
	})

	t.Run("MissingLimitIsParseError", func(t *testing.T) {
		window := Window{Offset: "0", HasOffset: true}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrBadPaginationInput)
	})

	t.Run("NegativeOffsetIsOutOfBounds", func(t *testing.T) {
		window := Window{Offset: "-1", Limit: "2", HasOffset: true, HasLimit: true}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrPaginationOutOfBounds)
	})

	t.Run("WindowPastEndIsOutOfBounds", func(t *testing.T) {
		window := Window{Offset: "4", Limit: "2", HasOffset: true, HasLimit: true}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrPaginationOutOfBounds)
	})

	t.Run("NeverSilentlyTruncates", func(t *testing.T) {
		window := Window{Offset: "3", Limit: "100", HasOffset: true, HasLimit: true}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrPaginationOutOfBounds)
	})

	t.Run("MaxIntOffsetDoesNotOverflow", func(t *testing.T) {
		// offset+limit would wrap negative and slip past a summed bounds
		// check, panicking on the slice expression.
		window := Window{
			Offset:    strconv.Itoa(math.MaxInt),
			Limit:     "1",
			HasOffset: true,
			HasLimit:  true,
		}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrPaginationOutOfBounds)
	})

	t.Run("MaxIntLimitDoesNotOverflow", func(t *testing.T) {
		window := Window{
			Offset:    "1",
			Limit:     strconv.Itoa(math.MaxInt),
			HasOffset: true,
			HasLimit:  true,
		}
		_, err := window.Slice(entries)
		assert.ErrorIs(t, err, ErrPaginationOutOfBounds)
	})
}
