package virtual_test

import (
	"context"
	"testing"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/stretchr/testify/require"
)

func TestStaticFile(t *testing.T) {
	f := virtual.NewStaticFile(
		(&virtual.Attributes{}).
			SetInodeNumber(2).
			SetPermissions(0o644),
		[]byte("Hello World!\n"))

	t.Run("GetAttributes", func(t *testing.T) {
		var out virtual.Attributes
		f.VirtualGetAttributes(context.Background(), virtual.AttributesMaskSizeBytes, &out)
		require.Equal(
			t,
			(&virtual.Attributes{}).
				SetBlockCount(1).
				SetFileType(filesystem.FileTypeRegularFile).
				SetInodeNumber(2).
				SetLinkCount(1).
				SetPermissions(0o644).
				SetSizeBytes(13),
			&out)
	})

	t.Run("ReadFull", func(t *testing.T) {
		var buf [100]byte
		n, eof, s := f.VirtualRead(buf[:], 0)
		require.Equal(t, virtual.StatusOK, s)
		require.True(t, eof)
		require.Equal(t, []byte("Hello World!\n"), buf[:n])
	})

	t.Run("ReadPartial", func(t *testing.T) {
		var buf [5]byte
		n, eof, s := f.VirtualRead(buf[:], 6)
		require.Equal(t, virtual.StatusOK, s)
		require.False(t, eof)
		require.Equal(t, []byte("World"), buf[:n])
	})

	t.Run("ReadTail", func(t *testing.T) {
		var buf [100]byte
		n, eof, s := f.VirtualRead(buf[:], 6)
		require.Equal(t, virtual.StatusOK, s)
		require.True(t, eof)
		require.Equal(t, []byte("World!\n"), buf[:n])
	})

	t.Run("ReadAtEOF", func(t *testing.T) {
		var buf [100]byte
		n, eof, s := f.VirtualRead(buf[:], 13)
		require.Equal(t, virtual.StatusOK, s)
		require.True(t, eof)
		require.Equal(t, 0, n)
	})

	t.Run("ReadBeyondEOF", func(t *testing.T) {
		var buf [100]byte
		n, eof, s := f.VirtualRead(buf[:], 1000)
		require.Equal(t, virtual.StatusOK, s)
		require.True(t, eof)
		require.Equal(t, 0, n)
	})

	t.Run("LinkCountOverride", func(t *testing.T) {
		f := virtual.NewStaticFile(
			(&virtual.Attributes{}).
				SetInodeNumber(3).
				SetLinkCount(4),
			nil)
		var out virtual.Attributes
		f.VirtualGetAttributes(context.Background(), virtual.AttributesMaskLinkCount, &out)
		require.Equal(t, uint32(4), out.GetLinkCount())
		sizeBytes, ok := out.GetSizeBytes()
		require.True(t, ok)
		require.Equal(t, uint64(0), sizeBytes)
	})
}
