// Package hello contains the definition of a file system that consists
// of a root directory containing a single read-only text file.
package hello

import (
	"context"
	"time"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
	"github.com/buildbarn/bb-storage/pkg/util"
)

const (
	// RootDirectoryInodeNumber is the inode number of the root
	// directory. It is equal to the node ID that FUSE uses for the
	// root directory.
	RootDirectoryInodeNumber uint64 = 1
	// FileInodeNumber is the inode number of the file stored in
	// the root directory.
	FileInodeNumber uint64 = 2

	// DefaultFileName is the name of the file stored in the root
	// directory, if no other name is provided.
	DefaultFileName = "hello.txt"
	// DefaultFileContents are the contents of the file stored in
	// the root directory, if no other contents are provided.
	DefaultFileContents = "Hello World!\n"
	// DefaultOwnerUserID and DefaultOwnerGroupID are the user and
	// group IDs that own all files, if no others are provided.
	DefaultOwnerUserID  uint32 = 501
	DefaultOwnerGroupID uint32 = 20
	// DefaultValidity is the amount of time the kernel may cache
	// directory entries and attributes, if no other duration is
	// provided.
	DefaultValidity = time.Second

	blockSizeBytes = 512

	rootDirectoryPermissions virtual.Permissions = 0o755
	filePermissions          virtual.Permissions = 0o644
)

// Options that can be used to alter the contents of the file system.
type Options struct {
	FileName     path.Component
	FileContents []byte
	OwnerUserID  uint32
	OwnerGroupID uint32
}

// NewDefaultOptions returns the options that yield a root directory
// containing "hello.txt", having contents "Hello World!\n".
func NewDefaultOptions() *Options {
	return &Options{
		FileName:     path.MustNewComponent(DefaultFileName),
		FileContents: []byte(DefaultFileContents),
		OwnerUserID:  DefaultOwnerUserID,
		OwnerGroupID: DefaultOwnerGroupID,
	}
}

func newCommonAttributes(options *Options, inodeNumber uint64, permissions virtual.Permissions) *virtual.Attributes {
	return (&virtual.Attributes{}).
		SetAllTimes(time.Unix(0, 0)).
		SetBlockSize(blockSizeBytes).
		SetDeviceNumber(0).
		SetFlags(0).
		SetInodeNumber(inodeNumber).
		SetOwnerGroupID(options.OwnerGroupID).
		SetOwnerUserID(options.OwnerUserID).
		SetPermissions(permissions)
}

// NewNamespace creates the namespace of the file system. In addition
// to the namespace, it returns the file stored in the root directory,
// so that its attributes may be reported when new files are created.
func NewNamespace(ctx context.Context, options *Options) (*virtual.Namespace, virtual.Leaf, error) {
	file := virtual.NewStaticFile(
		newCommonAttributes(options, FileInodeNumber, filePermissions),
		options.FileContents)
	rootDirectory := virtual.NewStaticDirectory(
		newCommonAttributes(options, RootDirectoryInodeNumber, rootDirectoryPermissions),
		[]virtual.StaticDirectoryEntry{
			{Name: options.FileName, Child: virtual.DirectoryChild{}.FromLeaf(file)},
		})
	namespace, err := virtual.NewNamespace(ctx, rootDirectory)
	if err != nil {
		return nil, nil, util.StatusWrap(err, "Failed to create namespace")
	}
	return namespace, file, nil
}
