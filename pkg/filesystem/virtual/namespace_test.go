package virtual_test

import (
	"context"
	"testing"

	"github.com/buildbarn/bb-hello-writeback/internal/mock"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
	"github.com/buildbarn/bb-storage/pkg/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNamespace(t *testing.T) {
	ctx := context.Background()

	file := virtual.NewStaticFile((&virtual.Attributes{}).SetInodeNumber(3), []byte("Hello"))
	subdirectory := virtual.NewStaticDirectory(
		(&virtual.Attributes{}).SetInodeNumber(2),
		[]virtual.StaticDirectoryEntry{
			{Name: path.MustNewComponent("file"), Child: virtual.DirectoryChild{}.FromLeaf(file)},
		})
	rootDirectory := virtual.NewStaticDirectory(
		(&virtual.Attributes{}).SetInodeNumber(1),
		[]virtual.StaticDirectoryEntry{
			{Name: path.MustNewComponent("subdirectory"), Child: virtual.DirectoryChild{}.FromDirectory(subdirectory)},
			// The same leaf may be placed in multiple
			// directories under the same inode number.
			{Name: path.MustNewComponent("link"), Child: virtual.DirectoryChild{}.FromLeaf(file)},
		})
	namespace, err := virtual.NewNamespace(ctx, rootDirectory)
	require.NoError(t, err)

	t.Run("Root", func(t *testing.T) {
		require.Equal(t, rootDirectory, namespace.GetRootDirectory())
		require.Equal(t, uint64(1), namespace.GetRootInodeNumber())
	})

	t.Run("GetNode", func(t *testing.T) {
		node, s := namespace.GetNode(1)
		require.Equal(t, virtual.StatusOK, s)
		require.Equal(t, rootDirectory, node)

		node, s = namespace.GetNode(3)
		require.Equal(t, virtual.StatusOK, s)
		require.Equal(t, file, node)

		_, s = namespace.GetNode(4)
		require.Equal(t, virtual.StatusErrNoEnt, s)
	})

	t.Run("GetDirectory", func(t *testing.T) {
		directory, s := namespace.GetDirectory(2)
		require.Equal(t, virtual.StatusOK, s)
		require.Equal(t, subdirectory, directory)

		// Leaves and nonexistent inode numbers should not
		// resolve to a directory.
		_, s = namespace.GetDirectory(3)
		require.Equal(t, virtual.StatusErrNoEnt, s)
		_, s = namespace.GetDirectory(4)
		require.Equal(t, virtual.StatusErrNoEnt, s)
	})

	t.Run("GetLeaf", func(t *testing.T) {
		leaf, s := namespace.GetLeaf(3)
		require.Equal(t, virtual.StatusOK, s)
		require.Equal(t, file, leaf)

		_, s = namespace.GetLeaf(1)
		require.Equal(t, virtual.StatusErrNoEnt, s)
		_, s = namespace.GetLeaf(4)
		require.Equal(t, virtual.StatusErrNoEnt, s)
	})

	t.Run("GetParentInodeNumber", func(t *testing.T) {
		// The root directory is its own parent.
		parentInodeNumber, s := namespace.GetParentInodeNumber(1)
		require.Equal(t, virtual.StatusOK, s)
		require.Equal(t, uint64(1), parentInodeNumber)

		parentInodeNumber, s = namespace.GetParentInodeNumber(2)
		require.Equal(t, virtual.StatusOK, s)
		require.Equal(t, uint64(1), parentInodeNumber)

		// Leaves have no unique parent.
		_, s = namespace.GetParentInodeNumber(3)
		require.Equal(t, virtual.StatusErrNoEnt, s)
	})
}

func TestNamespaceInodeNumberCollision(t *testing.T) {
	ctx := context.Background()

	t.Run("LeafReusesDirectoryInodeNumber", func(t *testing.T) {
		rootDirectory := virtual.NewStaticDirectory(
			(&virtual.Attributes{}).SetInodeNumber(1),
			[]virtual.StaticDirectoryEntry{
				{
					Name:  path.MustNewComponent("file"),
					Child: virtual.DirectoryChild{}.FromLeaf(virtual.NewStaticFile((&virtual.Attributes{}).SetInodeNumber(1), nil)),
				},
			})
		_, err := virtual.NewNamespace(ctx, rootDirectory)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Failed to index root directory: Inode number 1 of \"file\" is already in use by another file"), err)
	})

	t.Run("DistinctLeaves", func(t *testing.T) {
		rootDirectory := virtual.NewStaticDirectory(
			(&virtual.Attributes{}).SetInodeNumber(1),
			[]virtual.StaticDirectoryEntry{
				{
					Name:  path.MustNewComponent("a"),
					Child: virtual.DirectoryChild{}.FromLeaf(virtual.NewStaticFile((&virtual.Attributes{}).SetInodeNumber(2), nil)),
				},
				{
					Name:  path.MustNewComponent("b"),
					Child: virtual.DirectoryChild{}.FromLeaf(virtual.NewStaticFile((&virtual.Attributes{}).SetInodeNumber(2), nil)),
				},
			})
		_, err := virtual.NewNamespace(ctx, rootDirectory)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Failed to index root directory: Inode number 2 of \"b\" is already in use by another file"), err)
	})
}

func TestNamespaceReadDirFailure(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	rootDirectory := mock.NewMockVirtualDirectory(ctrl)
	rootDirectory.EXPECT().VirtualGetAttributes(ctx, virtual.AttributesMaskInodeNumber, gomock.Any()).Do(
		func(ctx context.Context, requested virtual.AttributesMask, out *virtual.Attributes) {
			out.SetInodeNumber(1)
		})
	rootDirectory.EXPECT().VirtualReadDir(ctx, uint64(0), virtual.AttributesMaskFileType|virtual.AttributesMaskInodeNumber, gomock.Any()).
		Return(virtual.StatusErrIO)

	_, err := virtual.NewNamespace(ctx, rootDirectory)
	testutil.RequireEqualStatus(t, status.Error(codes.Internal, "Failed to index root directory: Failed to list contents of directory with inode number 1"), err)
}
