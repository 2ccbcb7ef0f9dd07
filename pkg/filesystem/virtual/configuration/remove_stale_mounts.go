//go:build darwin || linux
// +build darwin linux

package configuration

import (
	"golang.org/x/sys/unix"
)

// removeStaleMounts cleans up stale FUSE mounts that were left behind
// by a previous invocation of the program that ran without automatic
// unmounting. As FUSE apparently allows multiple mounts to be placed
// on top of a single inode, we must call unmount() repeatedly. Failures
// are ignored, as the mount path is typically not a mount point.
func removeStaleMounts(path string) {
	for unix.Unmount(path, 0) == nil {
	}
}
