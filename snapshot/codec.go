// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// Magic opens every encoded checkpoint.
	Magic = "HEAT"
	// Version is the format version written by Encode.
	Version uint16 = 1

	// FlagStored marks a body kept uncompressed because lz4 could not shrink it.
	FlagStored uint16 = 1 << 0

	headerSize = 16 // magic(4) version(2) flags(2) size(4) crc(4)

	// maxBody bounds the declared raw size so a corrupt header cannot
	// trigger a huge allocation.
	maxBody = 1 << 30
)

// Encode writes cp to w.
func Encode(w io.Writer, cp *Checkpoint) error {
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}
	raw, err := msgpack.Marshal(cp)
	if err != nil {
		return fmt.Errorf("Encode: msgpack: %w", err)
	}

	flags := uint16(0)
	body := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, body, nil)
	if err != nil {
		return fmt.Errorf("Encode: lz4: %w", err)
	}
	if n == 0 || n >= len(raw) {
		body, flags = raw, FlagStored
	} else {
		body = body[:n]
	}

	var hdr [headerSize]byte
	copy(hdr[:4], Magic)
	binary.LittleEndian.PutUint16(hdr[4:6], Version)
	binary.LittleEndian.PutUint16(hdr[6:8], flags)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(raw)))
	binary.LittleEndian.PutUint32(hdr[12:16], crc32.ChecksumIEEE(raw))

	if _, err = w.Write(hdr[:]); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return nil
}

// Decode reads one checkpoint from r. The whole stream is consumed.
func Decode(r io.Reader) (*Checkpoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("Decode: %d header bytes: %w", len(data), ErrCorrupt)
	}
	if string(data[:4]) != Magic {
		return nil, fmt.Errorf("Decode: %q: %w", data[:4], ErrBadMagic)
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != Version {
		return nil, fmt.Errorf("Decode: version %d: %w", v, ErrUnsupportedVersion)
	}
	flags := binary.LittleEndian.Uint16(data[6:8])
	size := binary.LittleEndian.Uint32(data[8:12])
	sum := binary.LittleEndian.Uint32(data[12:16])
	if size > maxBody {
		return nil, fmt.Errorf("Decode: body size %d: %w", size, ErrCorrupt)
	}

	body := data[headerSize:]
	raw := body
	if flags&FlagStored == 0 {
		raw = make([]byte, size)
		n, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return nil, fmt.Errorf("Decode: lz4: %v: %w", err, ErrCorrupt)
		}
		raw = raw[:n]
	}
	if uint32(len(raw)) != size {
		return nil, fmt.Errorf("Decode: body %d bytes, header says %d: %w", len(raw), size, ErrCorrupt)
	}
	if crc32.ChecksumIEEE(raw) != sum {
		return nil, fmt.Errorf("Decode: %w", ErrChecksum)
	}

	var cp Checkpoint
	if err = msgpack.Unmarshal(raw, &cp); err != nil {
		return nil, fmt.Errorf("Decode: msgpack: %v: %w", err, ErrCorrupt)
	}
	if err = cp.Validate(); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return &cp, nil
}

// Marshal returns the encoded form of cp.
func Marshal(cp *Checkpoint) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, cp); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Save writes cp to path atomically: the data goes to a temporary file in
// the same directory which is then renamed over path.
func Save(path string, cp *Checkpoint) error {
	data, err := Marshal(cp)
	if err != nil {
		return fmt.Errorf("Save(%s): %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("Save(%s): %w", path, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("Save(%s): %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("Save(%s): %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("Save(%s): %w", path, err)
	}

	return nil
}

// Load reads the checkpoint stored at path.
func Load(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}
	defer f.Close()

	cp, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}

	return cp, nil
}
