package browse

import (
	"context"
	"errors"

	"github.com/tierview/tierview/pkg/content"
	"github.com/tierview/tierview/pkg/meta"
)

// sampleBlock selects which block's replicas stand in for the whole file.
// The first block is a representative sample, not a full per-block map;
// callers needing full fidelity iterate FileBlocks on the preview view.
const sampleBlock = 0

// BlockLocationAggregator merges in-memory replica addresses with
// backing-store addresses into one ordered list per file.
type BlockLocationAggregator struct {
	meta    meta.MetadataStore
	backing content.ContentStore
}

// NewBlockLocationAggregator creates an aggregator. The backing store is
// optional; when nil, only locations recorded in block metadata are
// reported.
func NewBlockLocationAggregator(metaStore meta.MetadataStore, backing content.ContentStore) *BlockLocationAggregator {
	return &BlockLocationAggregator{meta: metaStore, backing: backing}
}

// Locations returns the merged address list for a non-empty file:
// in-memory replica addresses of the sample block in their reported order,
// followed by backing-store addresses in their reported order. Duplicates
// are kept; no deduplication happens at any point.
//
// Directories and empty files carry no locations; callers skip them
// before asking.
func (a *BlockLocationAggregator) Locations(ctx context.Context, info *meta.FileInfo) ([]string, error) {
	blocks, err := a.meta.GetFileBlockInfo(ctx, info.Path)
	if err != nil {
		return nil, err
	}
	if len(blocks) <= sampleBlock {
		return nil, nil
	}

	block := blocks[sampleBlock]
	addrs := make([]string, 0, len(block.Locations)+len(block.UnderStoreLocations))
	for _, location := range block.Locations {
		addrs = append(addrs, location.WorkerAddress.String())
	}
	addrs = append(addrs, block.UnderStoreLocations...)

	// Block records may predate persistence; if the file is persisted but
	// no under-store copy is recorded, ask the backing store directly.
	if len(block.UnderStoreLocations) == 0 && info.Persisted && a.backing != nil {
		underAddrs, err := a.backing.Locations(ctx, info.ContentID)
		if err != nil {
			if errors.Is(err, content.ErrContentNotFound) {
				return addrs, nil
			}
			return nil, err
		}
		addrs = append(addrs, underAddrs...)
	}

	return addrs, nil
}
