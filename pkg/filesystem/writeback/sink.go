package writeback

// Sink is the destination of data that is written into the virtual
// file system. Writes are not reflected in the virtual file system
// itself. Instead, they are mirrored into a backing store, so that
// they can be inspected out of band.
type Sink interface {
	// Create ensures that the backing store exists and is empty.
	Create() error
	// Persist appends data to the backing store, returning the
	// number of bytes stored.
	Persist(data []byte) (int, error)
}
