// Package testkit builds synthetic shader containers for tests. The
// layouts here intentionally mirror the container format constants in
// internal/dxbc; keeping an independent encoder ensures the parser is
// tested against the format, not against itself.
package testkit

import "encoding/binary"

const (
	tagDXBC = 0x43425844
	tagSHEX = 0x58454853
	tagOSGN = 0x4e47534f
	tagOSG5 = 0x3547534f
)

// Chunk is one tagged container section.
type Chunk struct {
	Tag  uint32
	Body []byte
}

// CodeChunk wraps token words into a SHEX chunk.
func CodeChunk(words []uint32) Chunk {
	body := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(body[i*4:], w)
	}
	return Chunk{Tag: tagSHEX, Body: body}
}

// SignatureChunk builds an OSGN chunk with one element per semantic
// name, registers assigned in order.
func SignatureChunk(names ...string) Chunk {
	const preamble = 8
	const rowSize = 24

	stringsBase := preamble + len(names)*rowSize
	body := make([]byte, stringsBase)
	binary.LittleEndian.PutUint32(body, uint32(len(names)))
	binary.LittleEndian.PutUint32(body[4:], 8)

	for i, name := range names {
		row := body[preamble+i*rowSize:]
		binary.LittleEndian.PutUint32(row, uint32(len(body)))
		binary.LittleEndian.PutUint32(row[4:], 0)          // semantic index
		binary.LittleEndian.PutUint32(row[8:], 0)          // system value
		binary.LittleEndian.PutUint32(row[12:], 3)         // float component type
		binary.LittleEndian.PutUint32(row[16:], uint32(i)) // register
		row[20] = 0xf
		row[21] = 0xf
		body = append(body, []byte(name)...)
		body = append(body, 0)
	}
	return Chunk{Tag: tagOSGN, Body: body}
}

// StreamElement is one OSG5 signature row.
type StreamElement struct {
	Name   string
	Stream uint32
}

// StreamSignatureChunk builds an OSG5 chunk; rows carry an explicit
// stream index in front of the OSGN layout.
func StreamSignatureChunk(elems ...StreamElement) Chunk {
	const preamble = 8
	const rowSize = 28

	stringsBase := preamble + len(elems)*rowSize
	body := make([]byte, stringsBase)
	binary.LittleEndian.PutUint32(body, uint32(len(elems)))
	binary.LittleEndian.PutUint32(body[4:], 8)

	for i, e := range elems {
		row := body[preamble+i*rowSize:]
		binary.LittleEndian.PutUint32(row, e.Stream)
		binary.LittleEndian.PutUint32(row[4:], uint32(len(body)))
		binary.LittleEndian.PutUint32(row[8:], 0)          // semantic index
		binary.LittleEndian.PutUint32(row[12:], 0)         // system value
		binary.LittleEndian.PutUint32(row[16:], 3)         // float component type
		binary.LittleEndian.PutUint32(row[20:], uint32(i)) // register
		row[24] = 0xf
		row[25] = 0xf
		body = append(body, []byte(e.Name)...)
		body = append(body, 0)
	}
	return Chunk{Tag: tagOSG5, Body: body}
}

// Container assembles a DXBC envelope around the given chunks.
func Container(chunks ...Chunk) []byte {
	const headerSize = 32
	chunkTable := headerSize
	dataStart := chunkTable + 4*len(chunks)

	total := dataStart
	for _, c := range chunks {
		total += 8 + len(c.Body)
	}

	out := make([]byte, total)
	binary.LittleEndian.PutUint32(out, tagDXBC)
	// bytes 4..19: checksum, left zero
	binary.LittleEndian.PutUint32(out[20:], 1)
	binary.LittleEndian.PutUint32(out[24:], uint32(total))
	binary.LittleEndian.PutUint32(out[28:], uint32(len(chunks)))

	offset := dataStart
	for i, c := range chunks {
		binary.LittleEndian.PutUint32(out[chunkTable+4*i:], uint32(offset))
		binary.LittleEndian.PutUint32(out[offset:], c.Tag)
		binary.LittleEndian.PutUint32(out[offset+4:], uint32(len(c.Body)))
		copy(out[offset+8:], c.Body)
		offset += 8 + len(c.Body)
	}
	return out
}

// Shader is the common case: one code chunk, no signatures.
func Shader(words []uint32) []byte {
	return Container(CodeChunk(words))
}
