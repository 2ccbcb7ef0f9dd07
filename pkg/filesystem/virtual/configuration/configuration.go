package configuration

import (
	"time"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/writeback"
	"github.com/buildbarn/bb-storage/pkg/program"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MountConfiguration contains the options that are used to expose a
// virtual file system to the kernel using FUSE.
type MountConfiguration struct {
	// Path at which the file system needs to be mounted.
	MountPath string
	// Name of the file system, as shown by mount(8).
	FSName string
	// Unmount the file system when the program terminates.
	AutoUnmount bool
	// Permit access by the super user, in addition to the user that
	// mounted the file system.
	AllowRoot bool
	// Permit access by all users.
	AllowOther bool
	// Call mount(2) directly, as opposed to using fusermount(1).
	DirectMount bool
	// Log all FUSE requests and responses.
	Debug bool
	// Amount of time the kernel may cache directory entries and
	// file attributes.
	EntryValidity     time.Duration
	AttributeValidity time.Duration
	// Optional JMESPath expression to extract authentication
	// metadata from the credentials of the calling process.
	InHeaderAuthenticationMetadataJmespathExpression string
}

// Mount of a virtual file system that has been created using
// NewMountFromConfiguration(), but that hasn't been exposed to the
// kernel yet. Before calling Expose(), the caller has the possibility
// to construct the namespace.
type Mount interface {
	Expose(terminationGroup program.Group, namespace *virtual.Namespace, createdLeaf virtual.Leaf, sink writeback.Sink) error
}

type fuseMount struct {
	configuration MountConfiguration
}

// NewMountFromConfiguration creates a new FUSE mount based on options
// specified in a configuration message. Processing of incoming
// requests only starts after Expose() is called.
func NewMountFromConfiguration(configuration *MountConfiguration) (Mount, error) {
	if configuration.MountPath == "" {
		return nil, status.Error(codes.InvalidArgument, "No mount path provided")
	}
	if configuration.EntryValidity < 0 || configuration.AttributeValidity < 0 {
		return nil, status.Error(codes.InvalidArgument, "Validity durations cannot be negative")
	}
	return &fuseMount{
		configuration: *configuration,
	}, nil
}
