//go:build darwin || linux
// +build darwin linux

package fuse_test

import (
	"testing"
	"time"

	"github.com/buildbarn/bb-hello-writeback/internal/mock"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual/fuse"
	go_fuse "github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDefaultAttributesInjectingRawFileSystem(t *testing.T) {
	ctrl := gomock.NewController(t)

	namespace, file := newTestNamespace(t)
	sink := mock.NewMockSink(ctrl)
	rfs := fuse.NewDefaultAttributesInjectingRawFileSystem(
		fuse.NewSimpleRawFileSystem(namespace, file, sink, fuse.AllowAuthenticator),
		time.Minute+time.Second/2,
		time.Minute/2+time.Second/4)

	t.Run("Lookup", func(t *testing.T) {
		// Lookup() is an example of an operation that returns
		// an EntryOut through an output parameter.
		var entryOut go_fuse.EntryOut
		require.Equal(
			t,
			go_fuse.OK,
			rfs.Lookup(nil, &go_fuse.InHeader{NodeId: go_fuse.FUSE_ROOT_ID}, "hello.txt", &entryOut))
		require.Equal(
			t,
			go_fuse.EntryOut{
				NodeId:         2,
				EntryValid:     60,
				EntryValidNsec: 500000000,
				AttrValid:      30,
				AttrValidNsec:  250000000,
				Attr:           expectedFileAttr,
			},
			entryOut)
	})

	t.Run("LookupFailure", func(t *testing.T) {
		// Validity durations are also attached to failed
		// lookups, though the kernel will ignore them.
		var entryOut go_fuse.EntryOut
		require.Equal(
			t,
			go_fuse.ENOENT,
			rfs.Lookup(nil, &go_fuse.InHeader{NodeId: go_fuse.FUSE_ROOT_ID}, "nonexistent", &entryOut))
	})

	t.Run("GetAttr", func(t *testing.T) {
		// GetAttr() is an example of an operation that returns
		// an AttrOut through an output parameter.
		var attrOut go_fuse.AttrOut
		require.Equal(
			t,
			go_fuse.OK,
			rfs.GetAttr(nil, &go_fuse.GetAttrIn{InHeader: go_fuse.InHeader{NodeId: go_fuse.FUSE_ROOT_ID}}, &attrOut))
		require.Equal(
			t,
			go_fuse.AttrOut{
				AttrValid:     30,
				AttrValidNsec: 250000000,
				Attr:          expectedRootDirectoryAttr,
			},
			attrOut)
	})

	t.Run("Mknod", func(t *testing.T) {
		sink.EXPECT().Create()

		var entryOut go_fuse.EntryOut
		require.Equal(
			t,
			go_fuse.OK,
			rfs.Mknod(nil, &go_fuse.MknodIn{InHeader: go_fuse.InHeader{NodeId: go_fuse.FUSE_ROOT_ID}}, "abc", &entryOut))
		require.Equal(
			t,
			go_fuse.EntryOut{
				NodeId:         2,
				EntryValid:     60,
				EntryValidNsec: 500000000,
				AttrValid:      30,
				AttrValidNsec:  250000000,
				Attr:           expectedFileAttr,
			},
			entryOut)
	})

	t.Run("OneSecond", func(t *testing.T) {
		rfs := fuse.NewDefaultAttributesInjectingRawFileSystem(
			fuse.NewSimpleRawFileSystem(namespace, file, sink, fuse.AllowAuthenticator),
			time.Second,
			time.Second)

		var entryOut go_fuse.EntryOut
		require.Equal(
			t,
			go_fuse.OK,
			rfs.Lookup(nil, &go_fuse.InHeader{NodeId: go_fuse.FUSE_ROOT_ID}, "hello.txt", &entryOut))
		require.Equal(t, uint64(1), entryOut.EntryValid)
		require.Equal(t, uint32(0), entryOut.EntryValidNsec)
		require.Equal(t, uint64(1), entryOut.AttrValid)
		require.Equal(t, uint32(0), entryOut.AttrValidNsec)
	})
}
