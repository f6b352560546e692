package zipsearch

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
)

// Snapshot file layout, all fields little-endian:
//
//	offset  size  field
//	0       4     magic ("ZIPS")
//	4       2     format version
//	6       2     reserved
//	8       8     payload length
//	16      8     xxhash64 of payload
//	24      -     gob-encoded payload
const (
	snapshotMagic      uint32 = 0x5A495053
	snapshotVersion    uint16 = 1
	snapshotHeaderSize        = 24
)

// snapshotPayload is the serialized form of a catalog.
type snapshotPayload struct {
	Records []ZipcodeRecord
}

// WriteSnapshot serializes a record catalog to a versioned, checksummed
// snapshot file.
func WriteSnapshot(path string, records []ZipcodeRecord) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(snapshotPayload{Records: records}); err != nil {
		return fmt.Errorf("encoding snapshot payload: %w", err)
	}

	buf := make([]byte, snapshotHeaderSize, snapshotHeaderSize+payload.Len())
	binary.LittleEndian.PutUint32(buf[0:4], snapshotMagic)
	binary.LittleEndian.PutUint16(buf[4:6], snapshotVersion)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(payload.Len()))
	binary.LittleEndian.PutUint64(buf[16:24], xxhash.Sum64(payload.Bytes()))
	buf = append(buf, payload.Bytes()...)

	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a record catalog from a snapshot file. The file is
// memory-mapped for the duration of the decode; the returned records do
// not reference the mapping.
func LoadSnapshot(path string) ([]ZipcodeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat snapshot %s: %w", path, err)
	}
	if fi.Size() < snapshotHeaderSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTruncatedSnapshot, path, fi.Size())
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping snapshot %s: %w", path, err)
	}
	defer m.Unmap()

	return decodeSnapshot(m)
}

// ReadSnapshot reads a record catalog from an in-memory snapshot buffer.
func ReadSnapshot(r io.Reader) ([]ZipcodeRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return decodeSnapshot(data)
}

// decodeSnapshot verifies the header and checksum, then decodes the
// payload. Any structural problem is a load error.
func decodeSnapshot(data []byte) ([]ZipcodeRecord, error) {
	if len(data) < snapshotHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedSnapshot, len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != snapshotMagic {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, magic)
	}
	if version := binary.LittleEndian.Uint16(data[4:6]); version != snapshotVersion {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrInvalidVersion, version, snapshotVersion)
	}

	payloadLen := binary.LittleEndian.Uint64(data[8:16])
	if payloadLen != uint64(len(data)-snapshotHeaderSize) {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, file has %d",
			ErrTruncatedSnapshot, payloadLen, len(data)-snapshotHeaderSize)
	}
	payload := data[snapshotHeaderSize:]

	if sum := xxhash.Sum64(payload); sum != binary.LittleEndian.Uint64(data[16:24]) {
		return nil, fmt.Errorf("%w: computed 0x%016X", ErrChecksumFailed, sum)
	}

	var p snapshotPayload
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return p.Records, nil
}
