package virtual

import (
	"context"
	"fmt"

	"github.com/buildbarn/bb-storage/pkg/filesystem"
	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
)

// StaticDirectoryEntry is a single named child of a directory created
// through NewStaticDirectory().
type StaticDirectoryEntry struct {
	Name  path.Component
	Child DirectoryChild
}

type staticDirectory struct {
	attributes Attributes
	entries    []StaticDirectoryEntry
	indices    map[path.Component]int
}

// NewStaticDirectory creates a Directory that contains a hardcoded list
// of child files or directories. The contents of this directory are
// immutable.
//
// Unlike a regular directory, the order in which entries are provided
// is retained. This makes readdir() return entries in a predictable
// order, which means that cookies handed out to the kernel remain valid
// for the lifetime of the directory.
//
// Attributes such as the inode number, permissions, ownership and
// timestamps are taken from the provided attributes. The file type,
// size, block count and link count are derived from the directory
// contents.
func NewStaticDirectory(attributes *Attributes, entries []StaticDirectoryEntry) Directory {
	d := &staticDirectory{
		entries: append([]StaticDirectoryEntry(nil), entries...),
		indices: make(map[path.Component]int, len(entries)),
	}
	linkCount := EmptyDirectoryLinkCount
	for i, entry := range d.entries {
		if _, ok := d.indices[entry.Name]; ok {
			panic(fmt.Sprintf("Directory contains multiple entries named %#v", entry.Name.String()))
		}
		d.indices[entry.Name] = i
		if directory, _ := entry.Child.GetPair(); directory != nil {
			linkCount++
		}
	}

	d.attributes.CopyFrom(attributes)
	d.attributes.
		SetBlockCount(0).
		SetFileType(filesystem.FileTypeDirectory).
		SetLinkCount(linkCount).
		SetSizeBytes(0)
	return d
}

func (d *staticDirectory) VirtualGetAttributes(ctx context.Context, requested AttributesMask, attributes *Attributes) {
	attributes.CopyFrom(&d.attributes)
}

func (d *staticDirectory) VirtualLookup(ctx context.Context, name path.Component, requested AttributesMask, out *Attributes) (DirectoryChild, Status) {
	i, ok := d.indices[name]
	if !ok {
		return DirectoryChild{}, StatusErrNoEnt
	}
	child := d.entries[i].Child
	child.GetNode().VirtualGetAttributes(ctx, requested, out)
	return child, StatusOK
}

func (d *staticDirectory) VirtualReadDir(ctx context.Context, firstCookie uint64, requested AttributesMask, reporter DirectoryEntryReporter) Status {
	for i := firstCookie; i < uint64(len(d.entries)); i++ {
		entry := d.entries[i]
		var attributes Attributes
		entry.Child.GetNode().VirtualGetAttributes(ctx, requested, &attributes)
		if !reporter.ReportEntry(i+1, entry.Name, entry.Child, &attributes) {
			break
		}
	}
	return StatusOK
}
