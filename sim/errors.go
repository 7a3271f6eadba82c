package sim

import "errors"

// Failure kinds reported by the disk, the allocators and the simulator facade.
// Callers match them with errors.Is; every returned error wraps exactly one.
var (
	ErrInvalidCapacity   = errors.New("invalid capacity")
	ErrInvalidSize       = errors.New("invalid size")
	ErrInvalidName       = errors.New("invalid file name")
	ErrDuplicateName     = errors.New("duplicate file name")
	ErrNotFound          = errors.New("file not found")
	ErrInsufficientSpace = errors.New("insufficient space")
	ErrSizeMismatch      = errors.New("size mismatch")
	ErrCorruptChain      = errors.New("corrupt chain")
	ErrIndexOutOfRange   = errors.New("block index out of range")
	ErrAlreadyOccupied   = errors.New("block already occupied")
	ErrAlreadyFree       = errors.New("block already free")
	ErrUnknownStrategy   = errors.New("unknown allocation strategy")
)

// failureKinds is ordered so the first match wins; wrapped chains never carry
// more than one of these anyway.
var failureKinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidCapacity, "InvalidCapacity"},
	{ErrInvalidSize, "InvalidSize"},
	{ErrInvalidName, "InvalidName"},
	{ErrDuplicateName, "DuplicateName"},
	{ErrNotFound, "NotFound"},
	{ErrInsufficientSpace, "InsufficientSpace"},
	{ErrSizeMismatch, "SizeMismatch"},
	{ErrCorruptChain, "CorruptChain"},
	{ErrIndexOutOfRange, "IndexOutOfRange"},
	{ErrAlreadyOccupied, "AlreadyOccupied"},
	{ErrAlreadyFree, "AlreadyFree"},
	{ErrUnknownStrategy, "UnknownStrategy"},
}

// FailureKind returns the kind name of err ("InsufficientSpace", "NotFound", ...).
// Returns "" for nil and "Unknown" for errors outside the simulator's set.
func FailureKind(err error) string {
	if err == nil {
		return ""
	}
	for _, fk := range failureKinds {
		if errors.Is(err, fk.err) {
			return fk.kind
		}
	}
	return "Unknown"
}
