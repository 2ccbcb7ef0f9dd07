package writeback

import (
	"os"
	"path/filepath"

	"github.com/buildbarn/bb-storage/pkg/util"
)

const localFileSinkFileMode = 0o644

type localFileSink struct {
	path string
}

// NewLocalFileSink creates a Sink that stores all data in a single file
// in a directory on the local file system.
//
// The file is opened on demand for every call and closed before
// returning. No file descriptors are held open between calls, meaning
// that the file may be removed or rotated externally at any point in
// time. Concurrent calls are not serialized against each other.
func NewLocalFileSink(directoryPath, fileName string) Sink {
	return &localFileSink{
		path: filepath.Join(directoryPath, fileName),
	}
}

func (s *localFileSink) Create() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, localFileSinkFileMode)
	if err != nil {
		return util.StatusWrapf(err, "Failed to create file %#v", s.path)
	}
	if err := f.Close(); err != nil {
		return util.StatusWrapf(err, "Failed to close file %#v", s.path)
	}
	return nil
}

func (s *localFileSink) Persist(data []byte) (int, error) {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, localFileSinkFileMode)
	if err != nil {
		return 0, util.StatusWrapf(err, "Failed to open file %#v", s.path)
	}
	// os.File.Write() returns io.ErrShortWrite if fewer bytes than
	// requested were written.
	n, err := f.Write(data)
	if err != nil {
		f.Close()
		return n, util.StatusWrapf(err, "Failed to write to file %#v", s.path)
	}
	if err := f.Close(); err != nil {
		return n, util.StatusWrapf(err, "Failed to close file %#v", s.path)
	}
	return n, nil
}
