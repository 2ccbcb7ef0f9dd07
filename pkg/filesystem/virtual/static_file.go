package virtual

import (
	"context"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// blockCountUnitSizeBytes is the size of the units in which st_blocks
// is expressed, regardless of the preferred I/O block size.
const blockCountUnitSizeBytes = 512

type staticFile struct {
	attributes Attributes
	contents   []byte
}

// NewStaticFile creates a regular file whose contents are provided in
// the form of a byte slice. The contents are immutable. The caller
// must not modify the byte slice after calling this function.
//
// Attributes such as the inode number, permissions, ownership and
// timestamps are taken from the provided attributes. The file type,
// size and block count are derived from the contents. The link count
// defaults to one.
func NewStaticFile(attributes *Attributes, contents []byte) Leaf {
	f := &staticFile{
		contents: contents,
	}
	f.attributes.SetLinkCount(1)
	f.attributes.CopyFrom(attributes)
	sizeBytes := uint64(len(contents))
	f.attributes.
		SetBlockCount((sizeBytes + blockCountUnitSizeBytes - 1) / blockCountUnitSizeBytes).
		SetFileType(filesystem.FileTypeRegularFile).
		SetSizeBytes(sizeBytes)
	return f
}

func (f *staticFile) VirtualGetAttributes(ctx context.Context, requested AttributesMask, attributes *Attributes) {
	attributes.CopyFrom(&f.attributes)
}

func (f *staticFile) VirtualRead(buf []byte, offset uint64) (int, bool, Status) {
	buf, eof := BoundReadToFileSize(buf, offset, uint64(len(f.contents)))
	if len(buf) > 0 {
		copy(buf, f.contents[offset:])
	}
	return len(buf), eof, StatusOK
}
