//go:build darwin || linux
// +build darwin linux

package fuse

import (
	go_fuse "github.com/hanwen/go-fuse/v2/fuse"
)

// DirEntryList is the subset of go_fuse.DirEntryList that is used by
// ReadDir(). It can be implemented by tests to inspect the entries
// returned.
type DirEntryList = dirEntryList

// ReadDirToList calls into ReadDir() of a RawFileSystem created using
// NewSimpleRawFileSystem(), storing results in an arbitrary
// DirEntryList.
func ReadDirToList(rfs go_fuse.RawFileSystem, cancel <-chan struct{}, input *go_fuse.ReadIn, out DirEntryList) go_fuse.Status {
	return rfs.(*simpleRawFileSystem).readDir(cancel, input, out)
}
