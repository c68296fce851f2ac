// Package wire frames values stored in the shared tier. A fixed magic and
// version make foreign or truncated bytes under the cache's keyspace
// detectable, so readers delete them on sight instead of feeding them to a
// codec. Local-tier values skip the envelope: they never leave the process.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const version byte = 1

var (
	ErrCorrupt = errors.New("tiercache: corrupt entry")
	magic4     = [...]byte{'T', 'C', 'H', 'E'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | vlen(u32 be) | payload(vlen)
func EncodeEntry(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// DecodeEntry returns the framed payload. The payload aliases b; callers
// must not retain it past b's lifetime.
func DecodeEntry(b []byte) ([]byte, error) {
	const hdr = 4 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return nil, ErrCorrupt
	}

	vlen := int(binary.BigEndian.Uint32(b[5:9]))
	if vlen < 0 || vlen != len(b)-hdr { // overflow-safe bound check
		return nil, ErrCorrupt
	}
	return b[hdr : hdr+vlen], nil
}
