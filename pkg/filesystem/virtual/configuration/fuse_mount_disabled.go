//go:build !darwin && !linux
// +build !darwin,!linux

package configuration

import (
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/writeback"
	"github.com/buildbarn/bb-storage/pkg/program"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (m *fuseMount) Expose(terminationGroup program.Group, namespace *virtual.Namespace, createdLeaf virtual.Leaf, sink writeback.Sink) error {
	return status.Error(codes.Unimplemented, "FUSE is not supported on this platform")
}
