package virtual

// Status response of operations applied against Node objects.
type Status int

const (
	// StatusOK indicates that the operation succeeded.
	StatusOK Status = iota
	// StatusErrIO indicates that the operation failed due to an I/O
	// error.
	StatusErrIO
	// StatusErrNoEnt indicates that the operation failed due to a
	// file not existing.
	StatusErrNoEnt
)
