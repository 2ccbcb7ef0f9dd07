package virtual

// Leaf node that is exposed through FUSE using SimpleRawFileSystem.
// Within this file system the only kind of leaf is a regular file whose
// contents are immutable.
type Leaf interface {
	Node

	VirtualRead(buf []byte, offset uint64) (n int, eof bool, s Status)
}

// BoundReadToFileSize is a helper function for implementations of
// VirtualRead() to limit the read size to the actual file size.
func BoundReadToFileSize(buf []byte, offset, size uint64) ([]byte, bool) {
	if offset >= size {
		// Read starting at or past end-of-file.
		return nil, true
	}
	if remaining := size - offset; uint64(len(buf)) >= remaining {
		// Read ending at or past end-of-file.
		return buf[:remaining], true
	}
	return buf, false
}
