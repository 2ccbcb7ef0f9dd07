package virtual

import (
	"context"

	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
)

// DirectoryChild is either a Directory or a Leaf, as returned by
// Directory.VirtualLookup().
type DirectoryChild struct {
	directory Directory
	leaf      Leaf
}

// FromDirectory creates a DirectoryChild that contains a directory.
func (DirectoryChild) FromDirectory(directory Directory) DirectoryChild {
	return DirectoryChild{directory: directory}
}

// FromLeaf creates a DirectoryChild that contains a leaf.
func (DirectoryChild) FromLeaf(leaf Leaf) DirectoryChild {
	return DirectoryChild{leaf: leaf}
}

// IsSet returns true if the DirectoryChild contains either a directory
// or leaf.
func (c DirectoryChild) IsSet() bool {
	return c.directory != nil || c.leaf != nil
}

// GetNode returns the value of the child as a single object, making it
// possible to call into methods that are both provided by the directory
// and leaf types.
func (c DirectoryChild) GetNode() Node {
	if c.directory != nil {
		return c.directory
	}
	if c.leaf != nil {
		return c.leaf
	}
	panic("Child is not set")
}

// GetPair returns the value of the child as a directory or leaf object,
// making it possible to call into directory/leaf specific methods.
func (c DirectoryChild) GetPair() (Directory, Leaf) {
	return c.directory, c.leaf
}

// DirectoryEntryReporter is used by VirtualReadDir() to report
// individual directory entries.
type DirectoryEntryReporter interface {
	// ReportEntry is called for every entry in the directory. The
	// next cookie is the value that needs to be provided to
	// VirtualReadDir() to resume enumeration after this entry. When
	// false is returned, the caller has no more space to store
	// entries and enumeration stops.
	ReportEntry(nextCookie uint64, name path.Component, child DirectoryChild, attributes *Attributes) bool
}

// Directory node that is exposed through FUSE using
// SimpleRawFileSystem. The names of all of these operations are
// prefixed with 'Virtual' to ensure they don't collide with
// filesystem.Directory.
type Directory interface {
	Node

	// VirtualLookup obtains the inode corresponding with a child
	// stored within the directory.
	VirtualLookup(ctx context.Context, name path.Component, requested AttributesMask, out *Attributes) (DirectoryChild, Status)
	// VirtualReadDir reports files and directories stored within
	// the directory, starting at the entry identified by
	// firstCookie. Cookie zero corresponds to the first entry.
	VirtualReadDir(ctx context.Context, firstCookie uint64, requested AttributesMask, reporter DirectoryEntryReporter) Status
}

// EmptyDirectoryLinkCount is the value that should be assigned to
// fuse.Attr.Nlink for directory nodes that do not have any child
// directories. Every child directory adds one to it, due to its ".."
// entry.
const EmptyDirectoryLinkCount uint32 = 2
