//go:build darwin || linux
// +build darwin linux

package fuse

import (
	"context"
	"log"
	"syscall"
	"time"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/writeback"
	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
	"github.com/hanwen/go-fuse/v2/fuse"
)

const (
	// AttributesMaskForFUSEAttr is the attributes mask to use for
	// VirtualGetAttributes() to populate all relevant fields of
	// fuse.Attr.
	AttributesMaskForFUSEAttr = virtual.AttributesMaskBlockCount |
		virtual.AttributesMaskBlockSize |
		virtual.AttributesMaskDeviceNumber |
		virtual.AttributesMaskFileType |
		virtual.AttributesMaskInodeNumber |
		virtual.AttributesMaskLastAccessTime |
		virtual.AttributesMaskLastDataModificationTime |
		virtual.AttributesMaskLastStatusChangeTime |
		virtual.AttributesMaskLinkCount |
		virtual.AttributesMaskOwnerGroupID |
		virtual.AttributesMaskOwnerUserID |
		virtual.AttributesMaskPermissions |
		virtual.AttributesMaskSizeBytes
	// AttributesMaskForFUSEDirEntry is the attributes mask to use
	// for VirtualReadDir() to populate all relevant fields of
	// fuse.DirEntry.
	AttributesMaskForFUSEDirEntry = virtual.AttributesMaskFileType |
		virtual.AttributesMaskInodeNumber
)

func toFUSEStatus(s virtual.Status) fuse.Status {
	switch s {
	case virtual.StatusOK:
		return fuse.OK
	case virtual.StatusErrIO:
		return fuse.EIO
	case virtual.StatusErrNoEnt:
		return fuse.ENOENT
	default:
		panic("Unknown status")
	}
}

type simpleRawFileSystem struct {
	// Operations that are not implemented explicitly, such as
	// SetAttr(), Mkdir() and Unlink(), return ENOSYS.
	fuse.RawFileSystem

	namespace     *virtual.Namespace
	createdLeaf   virtual.Leaf
	sink          writeback.Sink
	authenticator Authenticator
}

// NewSimpleRawFileSystem creates a go-fuse RawFileSystem that converts
// flat FUSE operations to calls against a fixed hierarchy of Directory
// and Leaf objects.
//
// As the hierarchy is immutable, there is no need to track lookup
// counts of nodes. Node IDs handed out to the kernel are simply the
// inode numbers of the nodes in the Namespace. Node ID
// fuse.FUSE_ROOT_ID always refers to the root directory.
//
// Data written into any of the files is not reflected in the
// hierarchy. It is forwarded to a write-back sink instead, regardless
// of the file or offset at which it is written. Similarly, mknod()
// truncates the write-back sink and reports the attributes of
// createdLeaf, regardless of the name or file type requested.
func NewSimpleRawFileSystem(namespace *virtual.Namespace, createdLeaf virtual.Leaf, sink writeback.Sink, authenticator Authenticator) fuse.RawFileSystem {
	return &simpleRawFileSystem{
		RawFileSystem: fuse.NewDefaultRawFileSystem(),

		namespace:     namespace,
		createdLeaf:   createdLeaf,
		sink:          sink,
		authenticator: authenticator,
	}
}

func toFUSEFileType(fileType filesystem.FileType) uint32 {
	switch fileType {
	case filesystem.FileTypeBlockDevice:
		return syscall.S_IFBLK
	case filesystem.FileTypeCharacterDevice:
		return syscall.S_IFCHR
	case filesystem.FileTypeDirectory:
		return syscall.S_IFDIR
	case filesystem.FileTypeFIFO:
		return syscall.S_IFIFO
	case filesystem.FileTypeRegularFile:
		return syscall.S_IFREG
	case filesystem.FileTypeSocket:
		return syscall.S_IFSOCK
	case filesystem.FileTypeSymlink:
		return syscall.S_IFLNK
	default:
		panic("Unknown file type")
	}
}

func toFUSETime(t time.Time) (uint64, uint32) {
	return uint64(t.Unix()), uint32(t.Nanosecond())
}

func populateAttr(attributes *virtual.Attributes, out *fuse.Attr) {
	if blockCount, ok := attributes.GetBlockCount(); ok {
		out.Blocks = blockCount
	}
	if blockSize, ok := attributes.GetBlockSize(); ok {
		out.Blksize = blockSize
	}
	if deviceNumber, ok := attributes.GetDeviceNumber(); ok {
		out.Rdev = deviceNumber
	}

	out.Ino = attributes.GetInodeNumber()
	out.Nlink = attributes.GetLinkCount()
	out.Mode = toFUSEFileType(attributes.GetFileType())

	if lastAccessTime, ok := attributes.GetLastAccessTime(); ok {
		out.Atime, out.Atimensec = toFUSETime(lastAccessTime)
	}
	if lastDataModificationTime, ok := attributes.GetLastDataModificationTime(); ok {
		out.Mtime, out.Mtimensec = toFUSETime(lastDataModificationTime)
	}
	if lastStatusChangeTime, ok := attributes.GetLastStatusChangeTime(); ok {
		out.Ctime, out.Ctimensec = toFUSETime(lastStatusChangeTime)
	}
	if ownerGroupID, ok := attributes.GetOwnerGroupID(); ok {
		out.Gid = ownerGroupID
	}
	if ownerUserID, ok := attributes.GetOwnerUserID(); ok {
		out.Uid = ownerUserID
	}

	permissions, ok := attributes.GetPermissions()
	if !ok {
		panic("Attributes do not contain mandatory permissions attribute")
	}
	out.Mode |= permissions.ToMode()

	sizeBytes, ok := attributes.GetSizeBytes()
	if !ok {
		panic("Attributes do not contain mandatory size attribute")
	}
	out.Size = sizeBytes
}

func populateEntryOut(attributes *virtual.Attributes, out *fuse.EntryOut) {
	populateAttr(attributes, &out.Attr)
	out.NodeId = out.Ino
}

// channelBackedContext is an implementation of context.Context around
// the cancellation channel that go-fuse provides. It does not have any
// values or deadline associated with it.
type channelBackedContext struct {
	cancel <-chan struct{}
}

var _ context.Context = channelBackedContext{}

func (ctx channelBackedContext) Deadline() (time.Time, bool) {
	var t time.Time
	return t, false
}

func (ctx channelBackedContext) Done() <-chan struct{} {
	return ctx.cancel
}

func (ctx channelBackedContext) Err() error {
	select {
	case <-ctx.cancel:
		return context.Canceled
	default:
		return nil
	}
}

func (ctx channelBackedContext) Value(key any) any {
	return nil
}

func (rfs *simpleRawFileSystem) createContext(cancel <-chan struct{}, caller *fuse.Caller) (context.Context, fuse.Status) {
	return rfs.authenticator.Authenticate(channelBackedContext{cancel: cancel}, caller)
}

// getInodeNumber converts a node ID provided by the kernel to an inode
// number in the namespace.
func (rfs *simpleRawFileSystem) getInodeNumber(nodeID uint64) uint64 {
	if nodeID == fuse.FUSE_ROOT_ID {
		return rfs.namespace.GetRootInodeNumber()
	}
	return nodeID
}

func (rfs *simpleRawFileSystem) String() string {
	return "SimpleRawFileSystem"
}

func (rfs *simpleRawFileSystem) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	ctx, s := rfs.createContext(cancel, &header.Caller)
	if s != fuse.OK {
		return s
	}

	i, vs := rfs.namespace.GetDirectory(rfs.getInodeNumber(header.NodeId))
	if vs != virtual.StatusOK {
		return toFUSEStatus(vs)
	}
	component, ok := path.NewComponent(name)
	if !ok {
		return fuse.ENOENT
	}

	var attributes virtual.Attributes
	if _, vs := i.VirtualLookup(ctx, component, AttributesMaskForFUSEAttr, &attributes); vs != virtual.StatusOK {
		return toFUSEStatus(vs)
	}
	populateEntryOut(&attributes, out)
	return fuse.OK
}

func (rfs *simpleRawFileSystem) Forget(nodeID, nLookup uint64) {
	// Nodes are never removed from the namespace, meaning there
	// is no need to track lookup counts.
}

func (rfs *simpleRawFileSystem) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	ctx, s := rfs.createContext(cancel, &input.Caller)
	if s != fuse.OK {
		return s
	}

	i, vs := rfs.namespace.GetNode(rfs.getInodeNumber(input.NodeId))
	if vs != virtual.StatusOK {
		return toFUSEStatus(vs)
	}

	var attributes virtual.Attributes
	i.VirtualGetAttributes(ctx, AttributesMaskForFUSEAttr, &attributes)
	populateAttr(&attributes, &out.Attr)
	return fuse.OK
}

func (rfs *simpleRawFileSystem) Mknod(cancel <-chan struct{}, input *fuse.MknodIn, name string, out *fuse.EntryOut) fuse.Status {
	ctx, s := rfs.createContext(cancel, &input.Caller)
	if s != fuse.OK {
		return s
	}

	if err := rfs.sink.Create(); err != nil {
		log.Printf("Failed to create node %#v in directory %d: %s", name, input.NodeId, err)
		return fuse.EIO
	}

	var attributes virtual.Attributes
	rfs.createdLeaf.VirtualGetAttributes(ctx, AttributesMaskForFUSEAttr, &attributes)
	populateEntryOut(&attributes, out)
	return fuse.OK
}

func (rfs *simpleRawFileSystem) Open(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	if _, s := rfs.createContext(cancel, &input.Caller); s != fuse.OK {
		return s
	}

	// Files are stateless, meaning that all of them can share the
	// same file handle.
	out.Fh = 1
	out.OpenFlags = input.Flags
	return fuse.OK
}

func (rfs *simpleRawFileSystem) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	i, vs := rfs.namespace.GetLeaf(rfs.getInodeNumber(input.NodeId))
	if vs != virtual.StatusOK {
		return nil, toFUSEStatus(vs)
	}

	nRead, _, vs := i.VirtualRead(buf, input.Offset)
	if vs != virtual.StatusOK {
		return nil, toFUSEStatus(vs)
	}
	return fuse.ReadResultData(buf[:nRead]), fuse.OK
}

func (rfs *simpleRawFileSystem) Release(cancel <-chan struct{}, input *fuse.ReleaseIn) {}

func (rfs *simpleRawFileSystem) Write(cancel <-chan struct{}, input *fuse.WriteIn, data []byte) (uint32, fuse.Status) {
	if _, s := rfs.createContext(cancel, &input.Caller); s != fuse.OK {
		return 0, s
	}

	n, err := rfs.sink.Persist(data)
	if err != nil {
		log.Printf("Failed to write %d bytes at offset %d of node %d: %s", len(data), input.Offset, input.NodeId, err)
		return 0, fuse.EIO
	}
	return uint32(n), fuse.OK
}

func (rfs *simpleRawFileSystem) Flush(cancel <-chan struct{}, input *fuse.FlushIn) fuse.Status {
	return fuse.OK
}

func (rfs *simpleRawFileSystem) Fsync(cancel <-chan struct{}, input *fuse.FsyncIn) fuse.Status {
	// Every write is persisted by the time Write() returns.
	return fuse.OK
}

func (rfs *simpleRawFileSystem) OpenDir(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	if _, s := rfs.createContext(cancel, &input.Caller); s != fuse.OK {
		return s
	}

	_, vs := rfs.namespace.GetDirectory(rfs.getInodeNumber(input.NodeId))
	return toFUSEStatus(vs)
}

// dirEntryList is the subset of fuse.DirEntryList that is used by
// ReadDir().
type dirEntryList interface {
	AddDirEntry(e fuse.DirEntry) bool
}

var _ dirEntryList = (*fuse.DirEntryList)(nil)

const dotDotEntriesCount uint64 = 2

func toFUSEDirEntry(name path.Component, attributes *virtual.Attributes, offset uint64) fuse.DirEntry {
	return fuse.DirEntry{
		Mode: toFUSEFileType(attributes.GetFileType()),
		Name: name.String(),
		Ino:  attributes.GetInodeNumber(),
		Off:  offset,
	}
}

type readDirReporter struct {
	out dirEntryList
}

func (r *readDirReporter) ReportEntry(nextCookie uint64, name path.Component, child virtual.DirectoryChild, attributes *virtual.Attributes) bool {
	return r.out.AddDirEntry(toFUSEDirEntry(name, attributes, dotDotEntriesCount+nextCookie))
}

func (rfs *simpleRawFileSystem) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	return rfs.readDir(cancel, input, out)
}

func (rfs *simpleRawFileSystem) readDir(cancel <-chan struct{}, input *fuse.ReadIn, out dirEntryList) fuse.Status {
	ctx, s := rfs.createContext(cancel, &input.Caller)
	if s != fuse.OK {
		return s
	}

	inodeNumber := rfs.getInodeNumber(input.NodeId)
	i, vs := rfs.namespace.GetDirectory(inodeNumber)
	if vs != virtual.StatusOK {
		return toFUSEStatus(vs)
	}
	parentInodeNumber, vs := rfs.namespace.GetParentInodeNumber(inodeNumber)
	if vs != virtual.StatusOK {
		return toFUSEStatus(vs)
	}

	// Inject "." and ".." entries at the start of the results.
	dotDotEntries := [...]fuse.DirEntry{
		{Mode: fuse.S_IFDIR, Name: ".", Ino: inodeNumber},
		{Mode: fuse.S_IFDIR, Name: "..", Ino: parentInodeNumber},
	}
	offset := input.Offset
	for ; offset < dotDotEntriesCount; offset++ {
		entry := dotDotEntries[offset]
		entry.Off = offset + 1
		if !out.AddDirEntry(entry) {
			return fuse.OK
		}
	}

	return toFUSEStatus(
		i.VirtualReadDir(
			ctx,
			offset-dotDotEntriesCount,
			AttributesMaskForFUSEDirEntry,
			&readDirReporter{out: out}))
}

func (rfs *simpleRawFileSystem) ReleaseDir(input *fuse.ReleaseIn) {}

func (rfs *simpleRawFileSystem) StatFs(cancel <-chan struct{}, input *fuse.InHeader, out *fuse.StatfsOut) fuse.Status {
	// Announce support for filenames up to 255 bytes in size. This
	// seems to be the common limit for UNIX file systems. Setting
	// this value is necessary to make pathconf(path, _PC_NAME_MAX)
	// work.
	out.NameLen = 255
	return fuse.OK
}
