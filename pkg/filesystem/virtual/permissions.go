package virtual

import (
	"os"
)

// Permissions of a file, stored as the lowest 12 bits of a traditional
// UNIX style mode. Unlike the owner, group and others distinction that
// this type preserves, no access checks are performed against it. The
// values are merely reported to the kernel.
type Permissions uint16

const (
	// PermissionsMask covers all of the bits that may be stored in
	// Permissions: the rwx bits for owner, group and others, plus
	// the setuid, setgid and sticky bits.
	PermissionsMask Permissions = 0o7777
)

// NewPermissionsFromMode creates a set of permissions from a
// traditional UNIX style mode. Any file type bits are discarded.
func NewPermissionsFromMode(m uint32) Permissions {
	return Permissions(m) & PermissionsMask
}

// ToMode converts a set of permissions to a traditional UNIX style
// mode.
func (p Permissions) ToMode() uint32 {
	return uint32(p & PermissionsMask)
}

// String returns the permissions in the notation used by ls(1), e.g.
// "-rw-r--r--".
func (p Permissions) String() string {
	return os.FileMode(p & 0o777).String()
}
