// Package nal splits and frames H.264 NAL units produced from assembled
// header tables.
package nal

import (
	"encoding/binary"
)

// Format identifies how NAL units are delimited in a byte slice.
type Format int

const (
	FormatRaw    Format = iota // Single NAL unit without framing.
	FormatAVCC                 // 4-byte big endian length prefixes.
	FormatAnnexB               // Start code prefixes.
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatAVCC:
		return "avcc"
	case FormatAnnexB:
		return "annexb"
	}
	return "unknown"
}

// MinNaluSize is the minimum size of a Network Abstraction Layer Unit (NALU).
const MinNaluSize = 4

const (
	shortStartCodeLen = 3
	longStartCodeLen  = 4
	emulationByte     = 0x03
)

func u24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// isStartCode checks if there's a NALU start code (0x000001 or 0x00000001) at the given position
// and returns the length of the start code found.
func isStartCode(b []byte, pos int) (startCodeLength int, found bool) {
	if pos+2 >= len(b) || b[pos] != 0 {
		return 0, false
	}

	val3 := u24BE(b[pos:])
	if val3 == 1 {
		return shortStartCodeLen, true
	}

	if val3 == 0 && pos+3 < len(b) && b[pos+3] == 1 {
		return longStartCodeLen, true
	}

	return 0, false
}

// parseAnnexB splits b at every start code. b must begin with one.
func parseAnnexB(b []byte) [][]byte {
	var nalus [][]byte
	pos := 0
	for pos < len(b) {
		n, found := isStartCode(b, pos)
		if !found {
			break
		}
		start := pos + n
		pos = start
		for pos < len(b) {
			if _, found = isStartCode(b, pos); found {
				break
			}
			pos++
		}
		if start != pos {
			nalus = append(nalus, b[start:pos])
		}
	}
	return nalus
}

// SplitNALUs splits a byte slice into Network Abstraction Layer Units (NALUs)
// based on different formats (Raw, AVCC, or ANNEXB) and returns the NALUs and the format type.
func SplitNALUs(b []byte) (nalus [][]byte, typ Format) {
	// If the byte slice is smaller than the minimum NALU size, consider it as a single raw NALU.
	if len(b) < MinNaluSize {
		return [][]byte{b}, FormatRaw
	}

	if _, found := isStartCode(b, 0); found {
		return parseAnnexB(b), FormatAnnexB
	}

	// Check for AVCC format.
	rest := b
	for len(rest) >= MinNaluSize {
		size := binary.BigEndian.Uint32(rest)
		if size == 0 || uint64(size) > uint64(len(rest)-MinNaluSize) {
			break
		}
		nalus = append(nalus, rest[MinNaluSize:MinNaluSize+int(size)])
		rest = rest[MinNaluSize+int(size):]
	}
	if len(rest) == 0 && len(nalus) > 0 {
		return nalus, FormatAVCC
	}

	// If none of the formats match, consider it as a single raw NALU.
	return [][]byte{b}, FormatRaw
}

// EmulationPrevention returns rbsp with an emulation prevention byte inserted
// wherever two zero bytes are followed by a byte in 0x00..0x03. rbsp is
// returned unchanged when no insertion is needed.
func EmulationPrevention(rbsp []byte) []byte {
	var out []byte
	zeros := 0
	for i, c := range rbsp {
		if zeros >= 2 && c <= emulationByte {
			if out == nil {
				out = make([]byte, i, len(rbsp)+len(rbsp)/2)
				copy(out, rbsp[:i])
			}
			out = append(out, emulationByte)
			zeros = 0
		}
		if out != nil {
			out = append(out, c)
		}
		if c == 0 {
			zeros++
		} else {
			zeros = 0
		}
	}
	if out == nil {
		return rbsp
	}
	return out
}

// RemoveEmulationPrevention undoes EmulationPrevention.
func RemoveEmulationPrevention(ebsp []byte) []byte {
	out := make([]byte, 0, len(ebsp))
	zeros := 0
	for _, c := range ebsp {
		if zeros >= 2 && c == emulationByte {
			zeros = 0
			continue
		}
		out = append(out, c)
		if c == 0 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

// AnnexB joins NAL units with 4-byte start codes.
func AnnexB(nalus ...[]byte) []byte {
	n := 0
	for _, u := range nalus {
		n += longStartCodeLen + len(u)
	}
	out := make([]byte, 0, n)
	for _, u := range nalus {
		out = append(out, 0, 0, 0, 1)
		out = append(out, u...)
	}
	return out
}

// AVCC joins NAL units with 4-byte length prefixes.
func AVCC(nalus ...[]byte) []byte {
	n := 0
	for _, u := range nalus {
		n += MinNaluSize + len(u)
	}
	out := make([]byte, 0, n)
	for _, u := range nalus {
		out = binary.BigEndian.AppendUint32(out, uint32(len(u))) //nolint:gosec
		out = append(out, u...)
	}
	return out
}
