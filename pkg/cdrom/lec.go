// Package cdrom provides CD-ROM Mode 1 sector structures and the EDC/ECC
// encoding engine. This file contains the error correction math, which
// follows lec.cc from cdrdao (as vendored by the EDCRE project) and is
// bit-exact with the redundancy bytes expected by CD mastering hardware.
package cdrom

import "sync"

const (
	// GF(2^8) primitive polynomial: x^8 + x^4 + x^3 + x^2 + 1
	gfPrimPoly = 0x11d

	// EDC generator polynomial:
	// (x^16 + x^15 + x^2 + 1) * (x^16 + x^2 + x + 1)
	edcPoly = 0x8001801b
)

// Lookup tables shared by all encodings. Built at most once, read-only
// afterwards.
var (
	lecTablesOnce sync.Once
	gfLog         [256]byte
	gfILog        [256]byte
	crcTable      [256]uint32
	qCoeffsTable  [43][256]uint16
)

// mirrorBits reverses the low `bits` bits of d.
func mirrorBits(d uint32, bits uint) uint32 {
	var r uint32
	for i := uint(0); i < bits; i++ {
		r <<= 1
		if d&0x1 != 0 {
			r |= 0x1
		}
		d >>= 1
	}
	return r
}

// initCRCTable fills the EDC lookup table. Byte indices are bit-reversed
// going in and results bit-reversed coming out, matching the reflected
// CRC convention used for CD-ROM sectors.
func initCRCTable() {
	for i := range crcTable {
		r := mirrorBits(uint32(i), 8) << 24

		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r <<= 1
				r ^= edcPoly
			} else {
				r <<= 1
			}
		}

		crcTable[i] = mirrorBits(r, 32)
	}
}

// initGFTables enumerates the multiplicative group of GF(2^8), filling the
// log and antilog tables. gfLog[0] and gfILog[255] stay zero and are never
// read by correct callers.
func initGFTables() {
	b := uint16(1)

	for log := 0; log < 255; log++ {
		gfLog[b] = byte(log)
		gfILog[log] = byte(b)

		b <<= 1
		if b&0x100 != 0 {
			b ^= gfPrimPoly
		}
	}
}

func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfDiv divides two field elements via the log tables. Division by zero can
// only happen through a wrong table-construction constant, never through
// sector data, so it is treated as a fatal defect.
func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("cdrom: division by zero in GF(2^8)")
	}
	if a == 0 {
		return 0
	}

	sum := int(gfLog[a]) - int(gfLog[b])
	if sum < 0 {
		sum += 255
	}

	return gfILog[sum]
}

// initQCoeffsTable derives the two generator coefficient vectors for the
// (45,43) code used by both parity passes, then precomputes the products of
// every byte value with each coefficient pair. Low byte of an entry is the
// product with vector 0, high byte with vector 1.
func initQCoeffsTable() {
	var coeffsHelp [2][45]byte
	var qCoeffs [2][45]byte

	// Build matrix H:
	// 1    1    ... 1   1
	// a^44 a^43 ... a^1 a^0
	for j := 0; j < 45; j++ {
		coeffsHelp[0][j] = 1            // e0
		coeffsHelp[1][j] = gfILog[44-j] // e1
	}

	// Resolve the equation system for parity bytes 0 and 1

	// e1' = e1 + e0
	for j := 0; j < 45; j++ {
		qCoeffs[1][j] = gfAdd(coeffsHelp[1][j], coeffsHelp[0][j])
	}

	// e1'' = e1' / (a^1 + 1)
	for j := 0; j < 45; j++ {
		qCoeffs[1][j] = gfDiv(qCoeffs[1][j], qCoeffs[1][43])
	}

	// e0' = e0 + e1 / a^1
	for j := 0; j < 45; j++ {
		qCoeffs[0][j] = gfAdd(coeffsHelp[0][j], gfDiv(coeffsHelp[1][j], gfILog[1]))
	}

	// e0'' = e0' / (1 + 1 / a^1)
	for j := 0; j < 45; j++ {
		qCoeffs[0][j] = gfDiv(qCoeffs[0][j], qCoeffs[0][44])
	}

	// Products of 0..255 with all of the Q coefficients. Columns 43 and 44
	// correspond to the check symbols themselves and are not tabulated.
	for j := 0; j < 43; j++ {
		qCoeffsTable[j][0] = 0

		for i := 1; i < 256; i++ {
			c := int(gfLog[i]) + int(gfLog[qCoeffs[0][j]])
			if c >= 255 {
				c -= 255
			}
			qCoeffsTable[j][i] = uint16(gfILog[c])

			c = int(gfLog[i]) + int(gfLog[qCoeffs[1][j]])
			if c >= 255 {
				c -= 255
			}
			qCoeffsTable[j][i] |= uint16(gfILog[c]) << 8
		}
	}
}

// ensureLECTables performs the one-time table bootstrap. The GF tables must
// be built before the coefficient table, which depends on them.
func ensureLECTables() {
	lecTablesOnce.Do(func() {
		initGFTables()
		initCRCTable()
		initQCoeffsTable()
	})
}

// CalcEDC computes the reflected CRC used as the sector error detection
// code over the given byte range.
func CalcEDC(data []byte) uint32 {
	ensureLECTables()

	var crc uint32
	for _, b := range data {
		crc = crcTable[(crc^uint32(b))&0xff] ^ (crc >> 8)
	}

	return crc
}

// CalcMode1EDC computes the EDC over sync + header + user data of a raw
// sector buffer and stores it little-endian at the EDC offset.
func CalcMode1EDC(sector []byte) {
	crc := CalcEDC(sector[0:CD_EDC_OFFSET])

	sector[CD_EDC_OFFSET] = byte(crc)
	sector[CD_EDC_OFFSET+1] = byte(crc >> 8)
	sector[CD_EDC_OFFSET+2] = byte(crc >> 16)
	sector[CD_EDC_OFFSET+3] = byte(crc >> 24)
}

// CalcPParity computes the 172 P parity bytes over the header, user data
// and EDC of a raw sector buffer. The sector bytes are treated as two
// interleaved symbol streams (even/odd positions), each accumulated
// through the coefficient table rows 19..42.
func CalcPParity(sector []byte) {
	ensureLECTables()

	for i := 0; i <= 42; i++ {
		idx := CD_HEADER_OFFSET + i*2

		var p01LSB, p01MSB uint16

		for r := 19; r < 43; r++ {
			row := &qCoeffsTable[r]

			p01LSB ^= row[sector[idx]]
			p01MSB ^= row[sector[idx+1]]

			idx += 2 * 43
		}

		// P0 (LSB)
		sector[CD_P_PARITY_OFFSET+2*43+i*2] = byte(p01LSB)
		sector[CD_P_PARITY_OFFSET+2*43+i*2+1] = byte(p01MSB)

		// P1 (MSB)
		sector[CD_P_PARITY_OFFSET+i*2] = byte(p01LSB >> 8)
		sector[CD_P_PARITY_OFFSET+i*2+1] = byte(p01MSB >> 8)
	}
}

// CalcQParity computes the 104 Q parity bytes. Q reads diagonally across
// the region covered by P, wrapping back whenever the index would cross
// into Q's own output area; the wraparound encodes the cross-interleave
// structure and must not be altered.
func CalcQParity(sector []byte) {
	ensureLECTables()

	for i := 0; i <= 25; i++ {
		idx := CD_HEADER_OFFSET + i*2*43

		var q01LSB, q01MSB uint16

		for r := 0; r < 43; r++ {
			row := &qCoeffsTable[r]

			q01LSB ^= row[sector[idx]]
			q01MSB ^= row[sector[idx+1]]

			idx += 2 * 44
			if idx >= CD_Q_PARITY_OFFSET {
				idx -= 2 * 1118
			}
		}

		// Q0 (LSB)
		sector[CD_Q_PARITY_OFFSET+2*26+i*2] = byte(q01LSB)
		sector[CD_Q_PARITY_OFFSET+2*26+i*2+1] = byte(q01MSB)

		// Q1 (MSB)
		sector[CD_Q_PARITY_OFFSET+i*2] = byte(q01LSB >> 8)
		sector[CD_Q_PARITY_OFFSET+i*2+1] = byte(q01MSB >> 8)
	}
}
