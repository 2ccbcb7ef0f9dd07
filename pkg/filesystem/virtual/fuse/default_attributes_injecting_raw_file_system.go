//go:build darwin || linux
// +build darwin linux

package fuse

import (
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

type defaultAttributesInjectingRawFileSystem struct {
	fuse.RawFileSystem

	attrOut  fuse.AttrOut
	entryOut fuse.EntryOut
}

// NewDefaultAttributesInjectingRawFileSystem creates a decorator for
// RawFileSystem that places default values into AttrOut and EntryOut
// structures before they are passed on to FUSE operations. This means
// their values are only retained if the underlying implementation
// doesn't fill in values explicitly.
//
// It is used to attach entry and attribute validity durations to all
// replies, so that the kernel may cache them.
func NewDefaultAttributesInjectingRawFileSystem(base fuse.RawFileSystem, entryValid, attrValid time.Duration) fuse.RawFileSystem {
	entryValidNsec := entryValid.Nanoseconds()
	attrValidNsec := attrValid.Nanoseconds()
	return &defaultAttributesInjectingRawFileSystem{
		RawFileSystem: base,

		attrOut: fuse.AttrOut{
			AttrValid:     uint64(attrValidNsec / 1e9),
			AttrValidNsec: uint32(attrValidNsec % 1e9),
		},
		entryOut: fuse.EntryOut{
			EntryValid:     uint64(entryValidNsec / 1e9),
			EntryValidNsec: uint32(entryValidNsec % 1e9),
			AttrValid:      uint64(attrValidNsec / 1e9),
			AttrValidNsec:  uint32(attrValidNsec % 1e9),
		},
	}
}

func (rfs *defaultAttributesInjectingRawFileSystem) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	*out = rfs.entryOut
	return rfs.RawFileSystem.Lookup(cancel, header, name, out)
}

func (rfs *defaultAttributesInjectingRawFileSystem) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	*out = rfs.attrOut
	return rfs.RawFileSystem.GetAttr(cancel, input, out)
}

func (rfs *defaultAttributesInjectingRawFileSystem) Mknod(cancel <-chan struct{}, input *fuse.MknodIn, name string, out *fuse.EntryOut) fuse.Status {
	*out = rfs.entryOut
	return rfs.RawFileSystem.Mknod(cancel, input, name, out)
}
