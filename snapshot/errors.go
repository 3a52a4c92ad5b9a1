package snapshot

import "errors"

// Sentinel errors returned (wrapped) by the snapshot codec.
var (
	// ErrInvalidCheckpoint indicates a checkpoint whose dimensions and
	// temperature slice disagree, or that is nil.
	ErrInvalidCheckpoint = errors.New("snapshot: invalid checkpoint")

	// ErrBadMagic indicates input that does not start with the "HEAT" magic.
	ErrBadMagic = errors.New("snapshot: bad magic")

	// ErrUnsupportedVersion indicates a format version this build cannot read.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrChecksum indicates a crc32 mismatch over the decoded body.
	ErrChecksum = errors.New("snapshot: checksum mismatch")

	// ErrCorrupt indicates a truncated header or an undecodable body.
	ErrCorrupt = errors.New("snapshot: corrupt data")
)
