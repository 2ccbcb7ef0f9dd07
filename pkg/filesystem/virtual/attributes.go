package virtual

import (
	"time"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
)

// AttributesMask is a bitmask of status attributes that need to be
// requested through Node.VirtualGetAttributes().
type AttributesMask uint32

const (
	// AttributesMaskBlockCount requests the number of 512 byte
	// blocks allocated to the file (st_blocks).
	AttributesMaskBlockCount AttributesMask = 1 << iota
	// AttributesMaskBlockSize requests the preferred I/O block size
	// (st_blksize).
	AttributesMaskBlockSize
	// AttributesMaskCreationTime requests the creation time
	// (st_birthtim).
	AttributesMaskCreationTime
	// AttributesMaskDeviceNumber requests the raw device number
	// (st_rdev).
	AttributesMaskDeviceNumber
	// AttributesMaskFileType requests the file type (upper 4 bits
	// of st_mode).
	AttributesMaskFileType
	// AttributesMaskFlags requests the user defined file flags
	// (st_flags).
	AttributesMaskFlags
	// AttributesMaskInodeNumber requests the inode number (st_ino).
	AttributesMaskInodeNumber
	// AttributesMaskLastAccessTime requests the last access time
	// (st_atim).
	AttributesMaskLastAccessTime
	// AttributesMaskLastDataModificationTime requests the last data
	// modification time (st_mtim).
	AttributesMaskLastDataModificationTime
	// AttributesMaskLastStatusChangeTime requests the last status
	// change time (st_ctim).
	AttributesMaskLastStatusChangeTime
	// AttributesMaskLinkCount requests the link count (st_nlink).
	AttributesMaskLinkCount
	// AttributesMaskOwnerGroupID requests the group ID of the
	// owner (st_gid).
	AttributesMaskOwnerGroupID
	// AttributesMaskOwnerUserID requests the user ID of the owner
	// (st_uid).
	AttributesMaskOwnerUserID
	// AttributesMaskPermissions requests the permissions (lowest 12
	// bits of st_mode).
	AttributesMaskPermissions
	// AttributesMaskSizeBytes requests the file size (st_size).
	AttributesMaskSizeBytes
)

// Attributes of a file, normally requested through stat() or readdir().
// A bitmask is used to track which attributes are set.
type Attributes struct {
	fieldsPresent AttributesMask

	blockCount               uint64
	blockSize                uint32
	creationTime             time.Time
	deviceNumber             uint32
	fileType                 filesystem.FileType
	flags                    uint32
	inodeNumber              uint64
	lastAccessTime           time.Time
	lastDataModificationTime time.Time
	lastStatusChangeTime     time.Time
	linkCount                uint32
	ownerGroupID             uint32
	ownerUserID              uint32
	permissions              Permissions
	sizeBytes                uint64
}

// GetFieldsPresent returns the bitmask of attributes that have been
// set.
func (a *Attributes) GetFieldsPresent() AttributesMask {
	return a.fieldsPresent
}

// GetBlockCount returns the number of 512 byte blocks allocated to
// the file (st_blocks).
func (a *Attributes) GetBlockCount() (uint64, bool) {
	return a.blockCount, a.fieldsPresent&AttributesMaskBlockCount != 0
}

// SetBlockCount sets the number of 512 byte blocks allocated to the
// file (st_blocks).
func (a *Attributes) SetBlockCount(blockCount uint64) *Attributes {
	a.blockCount = blockCount
	a.fieldsPresent |= AttributesMaskBlockCount
	return a
}

// GetBlockSize returns the preferred I/O block size (st_blksize).
func (a *Attributes) GetBlockSize() (uint32, bool) {
	return a.blockSize, a.fieldsPresent&AttributesMaskBlockSize != 0
}

// SetBlockSize sets the preferred I/O block size (st_blksize).
func (a *Attributes) SetBlockSize(blockSize uint32) *Attributes {
	a.blockSize = blockSize
	a.fieldsPresent |= AttributesMaskBlockSize
	return a
}

// GetCreationTime returns the creation time (st_birthtim).
func (a *Attributes) GetCreationTime() (time.Time, bool) {
	return a.creationTime, a.fieldsPresent&AttributesMaskCreationTime != 0
}

// SetCreationTime sets the creation time (st_birthtim).
func (a *Attributes) SetCreationTime(creationTime time.Time) *Attributes {
	a.creationTime = creationTime
	a.fieldsPresent |= AttributesMaskCreationTime
	return a
}

// GetDeviceNumber returns the raw device number (st_rdev).
func (a *Attributes) GetDeviceNumber() (uint32, bool) {
	return a.deviceNumber, a.fieldsPresent&AttributesMaskDeviceNumber != 0
}

// SetDeviceNumber sets the raw device number (st_rdev).
func (a *Attributes) SetDeviceNumber(deviceNumber uint32) *Attributes {
	a.deviceNumber = deviceNumber
	a.fieldsPresent |= AttributesMaskDeviceNumber
	return a
}

// GetFileType returns the file type (upper 4 bits of st_mode).
func (a *Attributes) GetFileType() filesystem.FileType {
	if a.fieldsPresent&AttributesMaskFileType == 0 {
		panic("The file type attribute is mandatory, meaning it should be set when requested")
	}
	return a.fileType
}

// SetFileType sets the file type (upper 4 bits of st_mode).
func (a *Attributes) SetFileType(fileType filesystem.FileType) *Attributes {
	a.fileType = fileType
	a.fieldsPresent |= AttributesMaskFileType
	return a
}

// GetFlags returns the user defined file flags (st_flags).
func (a *Attributes) GetFlags() (uint32, bool) {
	return a.flags, a.fieldsPresent&AttributesMaskFlags != 0
}

// SetFlags sets the user defined file flags (st_flags).
func (a *Attributes) SetFlags(flags uint32) *Attributes {
	a.flags = flags
	a.fieldsPresent |= AttributesMaskFlags
	return a
}

// GetInodeNumber returns the inode number (st_ino).
func (a *Attributes) GetInodeNumber() uint64 {
	if a.fieldsPresent&AttributesMaskInodeNumber == 0 {
		panic("The inode number attribute is mandatory, meaning it should be set when requested")
	}
	return a.inodeNumber
}

// SetInodeNumber sets the inode number (st_ino).
func (a *Attributes) SetInodeNumber(inodeNumber uint64) *Attributes {
	a.inodeNumber = inodeNumber
	a.fieldsPresent |= AttributesMaskInodeNumber
	return a
}

// GetLastAccessTime returns the last access time (st_atim).
func (a *Attributes) GetLastAccessTime() (time.Time, bool) {
	return a.lastAccessTime, a.fieldsPresent&AttributesMaskLastAccessTime != 0
}

// SetLastAccessTime sets the last access time (st_atim).
func (a *Attributes) SetLastAccessTime(lastAccessTime time.Time) *Attributes {
	a.lastAccessTime = lastAccessTime
	a.fieldsPresent |= AttributesMaskLastAccessTime
	return a
}

// GetLastDataModificationTime returns the last data modification time
// (st_mtim).
func (a *Attributes) GetLastDataModificationTime() (time.Time, bool) {
	return a.lastDataModificationTime, a.fieldsPresent&AttributesMaskLastDataModificationTime != 0
}

// SetLastDataModificationTime sets the last data modification time
// (st_mtim).
func (a *Attributes) SetLastDataModificationTime(lastDataModificationTime time.Time) *Attributes {
	a.lastDataModificationTime = lastDataModificationTime
	a.fieldsPresent |= AttributesMaskLastDataModificationTime
	return a
}

// GetLastStatusChangeTime returns the last status change time
// (st_ctim).
func (a *Attributes) GetLastStatusChangeTime() (time.Time, bool) {
	return a.lastStatusChangeTime, a.fieldsPresent&AttributesMaskLastStatusChangeTime != 0
}

// SetLastStatusChangeTime sets the last status change time (st_ctim).
func (a *Attributes) SetLastStatusChangeTime(lastStatusChangeTime time.Time) *Attributes {
	a.lastStatusChangeTime = lastStatusChangeTime
	a.fieldsPresent |= AttributesMaskLastStatusChangeTime
	return a
}

// GetLinkCount returns the link count (st_nlink).
func (a *Attributes) GetLinkCount() uint32 {
	if a.fieldsPresent&AttributesMaskLinkCount == 0 {
		panic("The link count attribute is mandatory, meaning it should be set when requested")
	}
	return a.linkCount
}

// SetLinkCount sets the link count (st_nlink).
func (a *Attributes) SetLinkCount(linkCount uint32) *Attributes {
	a.linkCount = linkCount
	a.fieldsPresent |= AttributesMaskLinkCount
	return a
}

// GetOwnerGroupID returns the group ID of the owner (st_gid).
func (a *Attributes) GetOwnerGroupID() (uint32, bool) {
	return a.ownerGroupID, a.fieldsPresent&AttributesMaskOwnerGroupID != 0
}

// SetOwnerGroupID sets the group ID of the owner (st_gid).
func (a *Attributes) SetOwnerGroupID(ownerGroupID uint32) *Attributes {
	a.ownerGroupID = ownerGroupID
	a.fieldsPresent |= AttributesMaskOwnerGroupID
	return a
}

// GetOwnerUserID returns the user ID of the owner (st_uid).
func (a *Attributes) GetOwnerUserID() (uint32, bool) {
	return a.ownerUserID, a.fieldsPresent&AttributesMaskOwnerUserID != 0
}

// SetOwnerUserID sets the user ID of the owner (st_uid).
func (a *Attributes) SetOwnerUserID(ownerUserID uint32) *Attributes {
	a.ownerUserID = ownerUserID
	a.fieldsPresent |= AttributesMaskOwnerUserID
	return a
}

// GetPermissions returns the mode (lowest 12 bits of st_mode).
func (a *Attributes) GetPermissions() (Permissions, bool) {
	return a.permissions, a.fieldsPresent&AttributesMaskPermissions != 0
}

// SetPermissions sets the mode (lowest 12 bits of st_mode).
func (a *Attributes) SetPermissions(permissions Permissions) *Attributes {
	a.permissions = permissions
	a.fieldsPresent |= AttributesMaskPermissions
	return a
}

// GetSizeBytes returns the file size (st_size).
func (a *Attributes) GetSizeBytes() (uint64, bool) {
	return a.sizeBytes, a.fieldsPresent&AttributesMaskSizeBytes != 0
}

// SetSizeBytes sets the file size (st_size).
func (a *Attributes) SetSizeBytes(sizeBytes uint64) *Attributes {
	a.sizeBytes = sizeBytes
	a.fieldsPresent |= AttributesMaskSizeBytes
	return a
}

// SetAllTimes sets the last access, last data modification, last
// status change and creation times to the same value. This is
// convenient for nodes whose contents never change.
func (a *Attributes) SetAllTimes(t time.Time) *Attributes {
	return a.
		SetLastAccessTime(t).
		SetLastDataModificationTime(t).
		SetLastStatusChangeTime(t).
		SetCreationTime(t)
}

// CopyFrom copies all attributes present in other into the current
// set of attributes. Attributes that are not present in other are left
// untouched.
func (a *Attributes) CopyFrom(other *Attributes) *Attributes {
	m := other.fieldsPresent
	if m&AttributesMaskBlockCount != 0 {
		a.SetBlockCount(other.blockCount)
	}
	if m&AttributesMaskBlockSize != 0 {
		a.SetBlockSize(other.blockSize)
	}
	if m&AttributesMaskCreationTime != 0 {
		a.SetCreationTime(other.creationTime)
	}
	if m&AttributesMaskDeviceNumber != 0 {
		a.SetDeviceNumber(other.deviceNumber)
	}
	if m&AttributesMaskFileType != 0 {
		a.SetFileType(other.fileType)
	}
	if m&AttributesMaskFlags != 0 {
		a.SetFlags(other.flags)
	}
	if m&AttributesMaskInodeNumber != 0 {
		a.SetInodeNumber(other.inodeNumber)
	}
	if m&AttributesMaskLastAccessTime != 0 {
		a.SetLastAccessTime(other.lastAccessTime)
	}
	if m&AttributesMaskLastDataModificationTime != 0 {
		a.SetLastDataModificationTime(other.lastDataModificationTime)
	}
	if m&AttributesMaskLastStatusChangeTime != 0 {
		a.SetLastStatusChangeTime(other.lastStatusChangeTime)
	}
	if m&AttributesMaskLinkCount != 0 {
		a.SetLinkCount(other.linkCount)
	}
	if m&AttributesMaskOwnerGroupID != 0 {
		a.SetOwnerGroupID(other.ownerGroupID)
	}
	if m&AttributesMaskOwnerUserID != 0 {
		a.SetOwnerUserID(other.ownerUserID)
	}
	if m&AttributesMaskPermissions != 0 {
		a.SetPermissions(other.permissions)
	}
	if m&AttributesMaskSizeBytes != 0 {
		a.SetSizeBytes(other.sizeBytes)
	}
	return a
}
