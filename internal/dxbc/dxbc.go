package dxbc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"dxspv/internal/diag"
)

// ErrInvalid marks any structural problem in the container envelope.
// Callers that need details read the diagnostics instead of the error.
var ErrInvalid = errors.New("invalid container")

// Chunk tags we care about. Containers carry more (ISGN, STAT, RDEF);
// everything unrecognized is skipped.
const (
	tagDXBC = 0x43425844 // "DXBC"
	tagSHDR = 0x52444853 // "SHDR", shader model 4 code
	tagSHEX = 0x58454853 // "SHEX", shader model 5 code
	tagOSGN = 0x4e47534f // "OSGN", output signature
	tagOSG5 = 0x3547534f // "OSG5", output signature with streams
)

const (
	headerSize      = 4 + 16 + 4 + 4 + 4 // magic, checksum, "one", total size, chunk count
	chunkHeaderSize = 8
)

// Program is the payload extracted from one container: the raw
// instruction token words plus the output signature the code generator
// needs for stage linkage.
type Program struct {
	// Code holds the little-endian token words of the SHDR/SHEX chunk,
	// starting with the version token.
	Code []uint32

	OutputSignature Signature
}

// Extract locates the instruction payload and the output signature
// inside a container blob. Every malformation is reported through r and
// returned as ErrInvalid; no partially filled Program escapes.
func Extract(data []byte, r diag.Reporter) (*Program, error) {
	cur := cursor{data: data}

	if len(data) < headerSize {
		r.Reportf(diag.SevError, diag.ContInvalidSize,
			"container is %d bytes, smaller than the %d byte header", len(data), headerSize)
		return nil, ErrInvalid
	}

	if magic := cur.u32(); magic != tagDXBC {
		r.Reportf(diag.SevError, diag.ContInvalidMagic,
			"invalid container magic %#08x", magic)
		return nil, ErrInvalid
	}
	cur.skip(16) // checksum, not verified here
	cur.skip(4)  // always one
	totalSize := cur.u32()
	if int(totalSize) > len(data) {
		r.Reportf(diag.SevError, diag.ContInvalidSize,
			"container declares %d bytes but only %d are present", totalSize, len(data))
		return nil, ErrInvalid
	}
	chunkCount := cur.u32()

	var prog Program
	haveCode := false
	for i := uint32(0); i < chunkCount; i++ {
		if cur.remaining() < 4 {
			r.Reportf(diag.SevError, diag.ContInvalidSize,
				"chunk table truncated at entry %d of %d", i, chunkCount)
			return nil, ErrInvalid
		}
		offset := cur.u32()
		body, tag, err := chunkAt(data, offset)
		if err != nil {
			r.Reportf(diag.SevError, diag.ContInvalidChunkSize,
				"chunk %d at offset %#x: %v", i, offset, err)
			return nil, ErrInvalid
		}

		switch tag {
		case tagSHDR, tagSHEX:
			code, err := tokenWords(body)
			if err != nil {
				r.Reportf(diag.SevError, diag.ContInvalidChunkSize,
					"code chunk: %v", err)
				return nil, ErrInvalid
			}
			prog.Code = code
			haveCode = true
		case tagOSGN, tagOSG5:
			sig, err := parseSignature(body, tag == tagOSG5)
			if err != nil {
				r.Reportf(diag.SevError, diag.ContInvalidSignature,
					"output signature: %v", err)
				return nil, ErrInvalid
			}
			prog.OutputSignature = sig
		}
	}

	if !haveCode {
		r.Reportf(diag.SevError, diag.ContMissingCode,
			"container has no SHDR or SHEX chunk")
		return nil, ErrInvalid
	}
	return &prog, nil
}

// chunkAt validates one chunk header and returns its body and tag.
func chunkAt(data []byte, offset uint32) ([]byte, uint32, error) {
	off, err := safecast.Conv[int](offset)
	if err != nil || off+chunkHeaderSize > len(data) {
		return nil, 0, fmt.Errorf("chunk header out of bounds")
	}
	tag := binary.LittleEndian.Uint32(data[off:])
	size := binary.LittleEndian.Uint32(data[off+4:])
	body := data[off+chunkHeaderSize:]
	sz, err := safecast.Conv[int](size)
	if err != nil || sz > len(body) {
		return nil, 0, fmt.Errorf("chunk size %d exceeds container", size)
	}
	return body[:sz], tag, nil
}

// tokenWords reinterprets a code chunk as little-endian dwords.
func tokenWords(body []byte) ([]uint32, error) {
	if len(body)%4 != 0 {
		return nil, fmt.Errorf("length %d is not a whole number of tokens", len(body))
	}
	if len(body) < 8 {
		return nil, fmt.Errorf("too short for a version and length token")
	}
	words := make([]uint32, len(body)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(body[i*4:])
	}
	return words, nil
}

// cursor is a bounds-checked forward reader over the container bytes.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) u32() uint32 {
	if c.remaining() < 4 {
		c.pos = len(c.data)
		return 0
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v
}

func (c *cursor) skip(n int) {
	if c.remaining() < n {
		c.pos = len(c.data)
		return
	}
	c.pos += n
}
