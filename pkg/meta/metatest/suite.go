// Package metatest provides a reusable conformance suite for
// meta.MetadataStore implementations.
//
// The suite tests the interface contract, not implementation details, so it
// can be run unchanged against the memory and badger stores.
package metatest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tierview/tierview/pkg/meta"
)

// StoreTestSuite exercises the MetadataStore contract.
type StoreTestSuite struct {
	// NewStore creates a fresh store for each test, ensuring isolation.
	NewStore func(t *testing.T) meta.MetadataStore
}

// Run executes all tests in the suite.
func (suite *StoreTestSuite) Run(test *testing.T) {
	test.Run("Root", suite.runRootTests)
	test.Run("Lookup", suite.runLookupTests)
	test.Run("Listing", suite.runListingTests)
	test.Run("Blocks", suite.runBlockTests)
	test.Run("Create", suite.runCreateTests)
}

func (suite *StoreTestSuite) runRootTests(t *testing.T) {
	ctx := context.Background()

	t.Run("RootExistsOnFreshStore", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		info, err := store.GetFileInfo(ctx, meta.RootPath)
		require.NoError(t, err)
		assert.Equal(t, meta.RootPath, info.Path)
		assert.True(t, info.IsDirectory)
	})

	t.Run("RootListingIsEmpty", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		listing, err := store.ListDirectory(ctx, meta.RootPath)
		require.NoError(t, err)
		assert.Empty(t, listing)
	})
}

func (suite *StoreTestSuite) runLookupTests(t *testing.T) {
	ctx := context.Background()

	t.Run("ResolvesCreatedDirectory", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateDirectory(ctx, "/data")
		require.NoError(t, err)

		info, err := store.GetFileInfo(ctx, "/data")
		require.NoError(t, err)
		assert.Equal(t, "/data", info.Path)
		assert.Equal(t, "data", info.Name)
		assert.True(t, info.IsDirectory)
	})

	t.Run("MissingPathIsNotFound", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.GetFileInfo(ctx, "/nope")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrNotFound, code)
	})

	t.Run("RelativePathIsInvalid", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.GetFileInfo(ctx, "no/leading/slash")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrInvalidPath, code)
	})

	t.Run("NonCanonicalPathIsInvalid", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.GetFileInfo(ctx, "/data/../data/")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrInvalidPath, code)
	})
}

func (suite *StoreTestSuite) runListingTests(t *testing.T) {
	ctx := context.Background()

	t.Run("ListsImmediateChildrenOnly", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateDirectory(ctx, "/data")
		require.NoError(t, err)
		_, err = store.CreateDirectory(ctx, "/data/sub")
		require.NoError(t, err)
		_, err = store.CreateFile(ctx, &meta.FileInfo{Path: "/data/a.txt", Length: 3, Completed: true}, nil)
		require.NoError(t, err)

		listing, err := store.ListDirectory(ctx, "/data")
		require.NoError(t, err)
		require.Len(t, listing, 2)

		paths := []string{listing[0].Path, listing[1].Path}
		assert.ElementsMatch(t, []string{"/data/sub", "/data/a.txt"}, paths)
	})

	t.Run("SiblingPrefixDoesNotLeak", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateDirectory(ctx, "/data")
		require.NoError(t, err)
		_, err = store.CreateDirectory(ctx, "/database")
		require.NoError(t, err)
		_, err = store.CreateFile(ctx, &meta.FileInfo{Path: "/database/x", Completed: true}, nil)
		require.NoError(t, err)

		listing, err := store.ListDirectory(ctx, "/data")
		require.NoError(t, err)
		assert.Empty(t, listing)
	})

	t.Run("ListingFileIsNotDirectory", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateFile(ctx, &meta.FileInfo{Path: "/a.txt", Completed: true}, nil)
		require.NoError(t, err)

		_, err = store.ListDirectory(ctx, "/a.txt")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrNotDirectory, code)
	})

	t.Run("ListingMissingDirectoryIsNotFound", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.ListDirectory(ctx, "/missing")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrNotFound, code)
	})
}

func (suite *StoreTestSuite) runBlockTests(t *testing.T) {
	ctx := context.Background()

	blocks := []*meta.FileBlockInfo{
		{
			BlockID: 1, Offset: 0, Length: 512,
			Locations: []meta.BlockLocation{
				{WorkerAddress: meta.WorkerNetAddress{Host: "worker-1", RPCPort: 29999, WebPort: 30000}, TierAlias: "MEM"},
				{WorkerAddress: meta.WorkerNetAddress{Host: "worker-2", RPCPort: 29999, WebPort: 30000}, TierAlias: "MEM"},
			},
			UnderStoreLocations: []string{"s3://bucket/a"},
		},
		{BlockID: 2, Offset: 512, Length: 100},
	}

	t.Run("ReturnsBlocksInOrder", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateFile(ctx, &meta.FileInfo{Path: "/a.bin", Length: 612, BlockSizeBytes: 512, Completed: true}, blocks)
		require.NoError(t, err)

		got, err := store.GetFileBlockInfo(ctx, "/a.bin")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].BlockID)
		assert.Equal(t, int64(2), got[1].BlockID)
		require.Len(t, got[0].Locations, 2)
		assert.Equal(t, "worker-1", got[0].Locations[0].WorkerAddress.Host)
		assert.Equal(t, []string{"s3://bucket/a"}, got[0].UnderStoreLocations)
	})

	t.Run("EmptyFileHasNoBlocks", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateFile(ctx, &meta.FileInfo{Path: "/empty", Completed: true}, nil)
		require.NoError(t, err)

		got, err := store.GetFileBlockInfo(ctx, "/empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("MissingFileIsNotFound", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.GetFileBlockInfo(ctx, "/missing")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrNotFound, code)
	})
}

func (suite *StoreTestSuite) runCreateTests(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicatePathIsRejected", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateDirectory(ctx, "/data")
		require.NoError(t, err)

		_, err = store.CreateDirectory(ctx, "/data")
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrAlreadyExists, code)
	})

	t.Run("MissingParentIsRejected", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateFile(ctx, &meta.FileInfo{Path: "/no/parent.txt"}, nil)
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrNotFound, code)
	})

	t.Run("FileParentIsRejected", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		_, err := store.CreateFile(ctx, &meta.FileInfo{Path: "/a.txt", Completed: true}, nil)
		require.NoError(t, err)

		_, err = store.CreateFile(ctx, &meta.FileInfo{Path: "/a.txt/child"}, nil)
		require.Error(t, err)
		code, ok := meta.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, meta.ErrNotDirectory, code)
	})

	t.Run("CreateStampsModificationTime", func(t *testing.T) {
		store := suite.NewStore(t)
		defer store.Close()

		before := time.Now().Add(-time.Second)
		info, err := store.CreateDirectory(ctx, "/stamped")
		require.NoError(t, err)
		assert.True(t, info.LastModified.After(before))
	})
}
