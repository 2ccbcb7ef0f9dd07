// Package mock contains mocks of interfaces declared by this module and
// the modules it depends on.
package mock

//go:generate mockgen -package mock -destination aliases.go github.com/buildbarn/bb-hello-writeback/internal/mock/aliases VirtualDirectory,VirtualLeaf
//go:generate mockgen -package mock -destination clock.go github.com/buildbarn/bb-storage/pkg/clock Clock
//go:generate mockgen -package mock -destination filesystem_virtual.go github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual DirectoryEntryReporter
//go:generate mockgen -package mock -destination filesystem_writeback.go github.com/buildbarn/bb-hello-writeback/pkg/filesystem/writeback Sink
