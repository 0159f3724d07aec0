// Package cdrom provides CD-ROM Mode 1 sector structures and the EDC/ECC
// encoding engine. This file contains the sector layout, MSF addressing
// and the assembly of raw (MODE1/2352) sectors.
package cdrom

import "fmt"

// Sector size constants for CD-ROM Mode 1
const (
	CD_SECTOR_SIZE   = 2352 // Full CD sector size
	CD_DATA_SIZE     = 2048 // Data portion of a Mode 1 sector
	CD_SYNC_SIZE     = 12   // Sync pattern size
	CD_HEADER_SIZE   = 4    // Header size (3 address bytes + 1 mode byte)
	CD_EDC_SIZE      = 4    // Error Detection Code size
	CD_ZERO_SIZE     = 8    // Reserved (zero filled) area size
	CD_P_PARITY_SIZE = 172  // P parity size
	CD_Q_PARITY_SIZE = 104  // Q parity size
)

// Field offsets within a raw Mode 1 sector
const (
	CD_HEADER_OFFSET   = 12
	CD_DATA_OFFSET     = 16
	CD_EDC_OFFSET      = 2064
	CD_ZERO_OFFSET     = 2068
	CD_P_PARITY_OFFSET = 2076
	CD_Q_PARITY_OFFSET = 2248
)

// CD-ROM time base: 75 frames per second, data starts after a 2 second
// (150 frame) pregap
const (
	CD_FRAMES_PER_SECOND = 75
	CD_SECONDS_PER_MIN   = 60
	CD_PREGAP_FRAMES     = 150
)

// SyncPattern is the fixed 12 byte synchronization field that opens every
// raw data sector
var SyncPattern = [CD_SYNC_SIZE]byte{
	0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00,
}

// SectorAddress represents a sector position in MSF (Minutes:Seconds:Frames)
// format. Values above 99 minutes cannot be represented in BCD; LBAs that
// large are outside the Mode 1 addressing range and are not guarded against.
type SectorAddress struct {
	Minute byte
	Second byte
	Frame  byte
}

// SectorAddressFromLBA converts a logical block address to MSF, accounting
// for the standard 150 frame pregap.
func SectorAddressFromLBA(lba uint32) SectorAddress {
	offset := lba + CD_PREGAP_FRAMES

	return SectorAddress{
		Minute: byte(offset / CD_FRAMES_PER_SECOND / CD_SECONDS_PER_MIN),
		Second: byte((offset / CD_FRAMES_PER_SECOND) % CD_SECONDS_PER_MIN),
		Frame:  byte(offset % CD_FRAMES_PER_SECOND),
	}
}

// ToBCD returns the address as the three BCD bytes stored in the sector
// header (minute, second, frame).
func (a SectorAddress) ToBCD() [3]byte {
	return [3]byte{
		toBCDByte(a.Minute),
		toBCDByte(a.Second),
		toBCDByte(a.Frame),
	}
}

func toBCDByte(value byte) byte {
	return ((value / 10) << 4) | (value % 10)
}

// Mode1Sector represents a single raw Mode 1 sector. Every field is a
// fixed-size array so the 2352 byte layout is enforced structurally.
type Mode1Sector struct {
	Sync     [CD_SYNC_SIZE]byte
	Header   [CD_HEADER_SIZE]byte // 3 BCD address bytes + mode byte
	UserData [CD_DATA_SIZE]byte
	EDC      [CD_EDC_SIZE]byte
	Zero     [CD_ZERO_SIZE]byte
	ECCP     [CD_P_PARITY_SIZE]byte
	ECCQ     [CD_Q_PARITY_SIZE]byte
}

// NewMode1Sector builds a sector for the given LBA with the user data copied
// in verbatim. EDC and parity fields start zeroed; call ComputeEDCECC to
// fill them. Fails if data is not exactly 2048 bytes.
func NewMode1Sector(lba uint32, data []byte) (*Mode1Sector, error) {
	if len(data) != CD_DATA_SIZE {
		return nil, fmt.Errorf("invalid ISO sector size: expected %d, got %d", CD_DATA_SIZE, len(data))
	}

	bcd := SectorAddressFromLBA(lba).ToBCD()

	sector := &Mode1Sector{
		Sync:   SyncPattern,
		Header: [CD_HEADER_SIZE]byte{bcd[0], bcd[1], bcd[2], 0x01}, // Mode 1
	}
	copy(sector.UserData[:], data)

	return sector, nil
}

// ComputeEDCECC calculates the EDC and the P/Q parity over the assembled
// sector and stores the results back into the sector fields. EDC must be
// computed before parity since the parity passes cover the EDC bytes.
func (s *Mode1Sector) ComputeEDCECC() {
	buffer := make([]byte, CD_SECTOR_SIZE)
	s.ToBytes(buffer)

	CalcMode1EDC(buffer)
	CalcPParity(buffer)
	CalcQParity(buffer)

	copy(s.EDC[:], buffer[CD_EDC_OFFSET:CD_ZERO_OFFSET])
	copy(s.ECCP[:], buffer[CD_P_PARITY_OFFSET:CD_Q_PARITY_OFFSET])
	copy(s.ECCQ[:], buffer[CD_Q_PARITY_OFFSET:CD_SECTOR_SIZE])
}

// ToBytes serializes the sector fields in wire order into buffer. It is a
// no-op if buffer is smaller than a full raw sector; callers must size the
// destination with CD_SECTOR_SIZE.
func (s *Mode1Sector) ToBytes(buffer []byte) {
	if len(buffer) < CD_SECTOR_SIZE {
		return
	}

	offset := 0
	offset += copy(buffer[offset:], s.Sync[:])
	offset += copy(buffer[offset:], s.Header[:])
	offset += copy(buffer[offset:], s.UserData[:])
	offset += copy(buffer[offset:], s.EDC[:])
	offset += copy(buffer[offset:], s.Zero[:])
	offset += copy(buffer[offset:], s.ECCP[:])
	copy(buffer[offset:], s.ECCQ[:])
}

// EncodeSector converts one 2048 byte ISO sector into a fully encoded
// 2352 byte raw sector. This is the pure entry point used by the batch
// converter; it has no shared state beyond the one-time lookup tables.
func EncodeSector(lba uint32, data []byte) ([]byte, error) {
	sector, err := NewMode1Sector(lba, data)
	if err != nil {
		return nil, err
	}
	sector.ComputeEDCECC()

	raw := make([]byte, CD_SECTOR_SIZE)
	sector.ToBytes(raw)

	return raw, nil
}
