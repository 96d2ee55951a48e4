package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tierview/tierview/pkg/content"
	contentMemory "github.com/tierview/tierview/pkg/content/memory"
	"github.com/tierview/tierview/pkg/meta"
)

// seedDemoNamespace populates the stores with a small browsable tree so the
// console has something to show out of the box.
func seedDemoNamespace(ctx context.Context, metaStore meta.MetadataStore, contentStore content.ContentStore, tiers []string) error {
	memStore, ok := contentStore.(*contentMemory.MemoryContentStore)
	if !ok {
		return fmt.Errorf("demo namespace requires the memory content store")
	}

	topTier := "MEM"
	if len(tiers) > 0 {
		topTier = tiers[0]
	}

	worker := meta.WorkerNetAddress{Host: "localhost", RPCPort: 29999, WebPort: 30000}

	if _, err := metaStore.CreateDirectory(ctx, "/docs"); err != nil {
		return fmt.Errorf("failed to create /docs: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{"/readme.txt", "Welcome to TierView!\nBrowse the namespace from the root.\n"},
		{"/docs/getting-started.txt", "Point your browser at /api/v1/browse?path=/\n"},
		{"/docs/large.txt", strings.Repeat("The quick brown fox jumps over the lazy dog.\n", 200)},
	}

	for _, f := range files {
		contentID := "demo-" + strings.TrimPrefix(f.path, "/")

		if err := memStore.Put(ctx, contentID, []byte(f.content)); err != nil {
			return fmt.Errorf("failed to write content for %s: %w", f.path, err)
		}

		blocks := []*meta.FileBlockInfo{{
			BlockID: 1,
			Length:  int64(len(f.content)),
			Locations: []meta.BlockLocation{{
				WorkerAddress: worker,
				TierAlias:     topTier,
			}},
		}}

		if _, err := metaStore.CreateFile(ctx, &meta.FileInfo{
			Path:               f.path,
			Length:             int64(len(f.content)),
			BlockSizeBytes:     512 * 1024,
			Completed:          true,
			InMemoryPercentage: 100,
			ContentID:          contentID,
		}, blocks); err != nil {
			return fmt.Errorf("failed to create %s: %w", f.path, err)
		}
	}

	return nil
}
