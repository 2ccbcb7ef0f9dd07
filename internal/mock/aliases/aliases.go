package aliases

import (
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
)

// This file contains aliases for some of the interfaces provided by the
// virtual file system package. These aliases are used to rename them
// to prevent naming collisions with other interface types for which we
// want to generate mocks.

// VirtualDirectory is an alias of virtual.Directory.
type VirtualDirectory = virtual.Directory

// VirtualLeaf is an alias of virtual.Leaf.
type VirtualLeaf = virtual.Leaf
