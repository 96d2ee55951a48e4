package meta

import (
	"net"
	"strconv"
	"time"
)

// FileInfo describes a single file or directory in the namespace.
//
// FileInfo is produced by the metadata store and is read-only to consumers.
// The browse layer wraps it into view entries; it never mutates it.
type FileInfo struct {
	// Path is the absolute, canonical path of the entry (e.g. "/data/a.txt")
	Path string

	// Name is the last path component ("/" for the root)
	Name string

	// IsDirectory reports whether the entry is a directory
	IsDirectory bool

	// Length is the file length in bytes (0 for directories)
	Length int64

	// BlockSizeBytes is the block size used to split the file's content
	BlockSizeBytes int64

	// Completed reports whether the file has been fully written.
	// Incomplete files cannot be previewed.
	Completed bool

	// InMemoryPercentage is the share of the file's bytes currently held
	// by the in-memory tier, in the range [0, 100]
	InMemoryPercentage int

	// Persisted reports whether a copy exists in the backing store
	Persisted bool

	// LastModified is the last modification timestamp
	LastModified time.Time

	// ContentID references the file's bytes in the content store.
	// Empty for directories.
	ContentID string
}

// WorkerNetAddress identifies a worker node holding block replicas.
type WorkerNetAddress struct {
	// Host is the worker hostname or IP
	Host string

	// RPCPort is the worker's data transfer port
	RPCPort int

	// WebPort is the worker's web UI port, used for cross-linking
	WebPort int
}

// String renders the address as "host:rpcPort".
func (a WorkerNetAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.RPCPort))
}

// BlockLocation is one in-memory replica of a block on a worker.
type BlockLocation struct {
	// WorkerAddress is the worker holding the replica
	WorkerAddress WorkerNetAddress

	// TierAlias names the storage tier holding the replica (e.g. "MEM")
	TierAlias string
}

// FileBlockInfo describes one block of a file and every place its data
// can be found.
type FileBlockInfo struct {
	// BlockID uniquely identifies the block within the namespace
	BlockID int64

	// Offset is the block's byte offset within the file
	Offset int64

	// Length is the block's length in bytes
	Length int64

	// Locations lists the in-memory replicas, in the order the block
	// service reported them
	Locations []BlockLocation

	// UnderStoreLocations lists backing-store copies of the block's data,
	// in the order the backing store reported them
	UnderStoreLocations []string
}
