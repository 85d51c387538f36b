package tsmedit

import "errors"

var (
	// ErrUnsupportedSchema means the document's detected variant does not
	// implement the requested operation (or detection returned Unknown).
	ErrUnsupportedSchema = errors.New("tsmedit: unsupported schema variant")

	// ErrRegionNotFound means no authoritative table could be located or
	// created for the operation's target.
	ErrRegionNotFound = errors.New("tsmedit: region not found")

	// ErrEntityNotFound means a rename or delete target does not occur in
	// the document.
	ErrEntityNotFound = errors.New("tsmedit: entity not found")
)
