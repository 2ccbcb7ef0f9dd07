package virtual

import (
	"context"

	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
	"github.com/buildbarn/bb-storage/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Namespace is an index of all nodes of a virtual file system whose
// structure is immutable, keyed by inode number. It is constructed once
// by walking the directory hierarchy, after which it can be shared by
// any number of goroutines without synchronization.
type Namespace struct {
	rootDirectory      Directory
	rootInodeNumber    uint64
	children           map[uint64]DirectoryChild
	parentInodeNumbers map[uint64]uint64
}

// NewNamespace creates a Namespace by recursively listing the contents
// of a root directory. All directories reachable from the root
// directory must be immutable, as any changes made after this function
// returns will not be reflected.
func NewNamespace(ctx context.Context, rootDirectory Directory) (*Namespace, error) {
	var attributes Attributes
	rootDirectory.VirtualGetAttributes(ctx, AttributesMaskInodeNumber, &attributes)
	rootInodeNumber := attributes.GetInodeNumber()

	n := &Namespace{
		rootDirectory:   rootDirectory,
		rootInodeNumber: rootInodeNumber,
		children: map[uint64]DirectoryChild{
			rootInodeNumber: DirectoryChild{}.FromDirectory(rootDirectory),
		},
		parentInodeNumbers: map[uint64]uint64{
			// The parent of the root directory is the root
			// directory itself.
			rootInodeNumber: rootInodeNumber,
		},
	}
	if err := n.addDirectoryContents(ctx, rootDirectory, rootInodeNumber); err != nil {
		return nil, util.StatusWrap(err, "Failed to index root directory")
	}
	return n, nil
}

type namespaceEntry struct {
	name        path.Component
	child       DirectoryChild
	inodeNumber uint64
}

// namespaceEntryCollector is a DirectoryEntryReporter that is used by
// NewNamespace() to capture the full contents of a directory.
type namespaceEntryCollector struct {
	entries []namespaceEntry
}

func (c *namespaceEntryCollector) ReportEntry(nextCookie uint64, name path.Component, child DirectoryChild, attributes *Attributes) bool {
	c.entries = append(c.entries, namespaceEntry{
		name:        name,
		child:       child,
		inodeNumber: attributes.GetInodeNumber(),
	})
	return true
}

func (n *Namespace) addDirectoryContents(ctx context.Context, directory Directory, directoryInodeNumber uint64) error {
	var collector namespaceEntryCollector
	if s := directory.VirtualReadDir(ctx, 0, AttributesMaskFileType|AttributesMaskInodeNumber, &collector); s != StatusOK {
		return status.Errorf(codes.Internal, "Failed to list contents of directory with inode number %d", directoryInodeNumber)
	}

	for _, entry := range collector.entries {
		childDirectory, _ := entry.child.GetPair()
		if existing, ok := n.children[entry.inodeNumber]; ok {
			// Leaves may be placed in multiple directories.
			// Directories may not, as that would make the
			// parent directory ambiguous.
			if existing != entry.child || childDirectory != nil {
				return status.Errorf(codes.InvalidArgument, "Inode number %d of %#v is already in use by another file", entry.inodeNumber, entry.name.String())
			}
			continue
		}

		n.children[entry.inodeNumber] = entry.child
		if childDirectory != nil {
			n.parentInodeNumbers[entry.inodeNumber] = directoryInodeNumber
			if err := n.addDirectoryContents(ctx, childDirectory, entry.inodeNumber); err != nil {
				return util.StatusWrapf(err, "Failed to index directory %#v", entry.name.String())
			}
		}
	}
	return nil
}

// GetRootDirectory returns the root directory of the namespace.
func (n *Namespace) GetRootDirectory() Directory {
	return n.rootDirectory
}

// GetRootInodeNumber returns the inode number of the root directory.
func (n *Namespace) GetRootInodeNumber() uint64 {
	return n.rootInodeNumber
}

// GetNode returns the directory or leaf having a given inode number.
func (n *Namespace) GetNode(inodeNumber uint64) (Node, Status) {
	child, ok := n.children[inodeNumber]
	if !ok {
		return nil, StatusErrNoEnt
	}
	return child.GetNode(), StatusOK
}

// GetDirectory returns the directory having a given inode number. If
// the inode number corresponds to a leaf, StatusErrNoEnt is returned,
// as no directory by that inode number exists.
func (n *Namespace) GetDirectory(inodeNumber uint64) (Directory, Status) {
	if directory, _ := n.children[inodeNumber].GetPair(); directory != nil {
		return directory, StatusOK
	}
	return nil, StatusErrNoEnt
}

// GetLeaf returns the leaf having a given inode number. If the inode
// number corresponds to a directory, StatusErrNoEnt is returned.
func (n *Namespace) GetLeaf(inodeNumber uint64) (Leaf, Status) {
	if _, leaf := n.children[inodeNumber].GetPair(); leaf != nil {
		return leaf, StatusOK
	}
	return nil, StatusErrNoEnt
}

// GetParentInodeNumber returns the inode number of the directory that
// contains the directory having a given inode number. This is needed
// to fill in the ".." entry returned by readdir().
func (n *Namespace) GetParentInodeNumber(directoryInodeNumber uint64) (uint64, Status) {
	parentInodeNumber, ok := n.parentInodeNumbers[directoryInodeNumber]
	if !ok {
		return 0, StatusErrNoEnt
	}
	return parentInodeNumber, StatusOK
}
