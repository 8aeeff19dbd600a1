package dxbc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// SignatureElement describes one row of a shader stage signature.
type SignatureElement struct {
	SemanticName  string
	SemanticIndex uint32
	// StreamIndex is the geometry shader output stream. OSGN rows do
	// not carry one, so it is always zero there; OSG5 rows do.
	StreamIndex   uint32
	SysValue      uint32
	ComponentType uint32
	Register      uint32
	Mask          uint8
	UsedMask      uint8
}

// Signature is an ordered stage signature (OSGN or OSG5 chunk).
type Signature struct {
	Elements []SignatureElement
}

// Signature rows follow an 8 byte chunk preamble. OSG5 rows prepend a
// stream dword to the 24 byte OSGN layout.
const (
	sigPreambleSize = 8
	sigElementSize  = 24
	sig5StreamSize  = 4
	sig5ElementSize = sig5StreamSize + sigElementSize
)

func parseSignature(body []byte, hasStream bool) (Signature, error) {
	if len(body) < sigPreambleSize {
		return Signature{}, fmt.Errorf("truncated preamble")
	}
	count := binary.LittleEndian.Uint32(body)
	// The second preamble dword is always 8; not validated, some
	// compilers emit garbage there.

	rowSize := sigElementSize
	if hasStream {
		rowSize = sig5ElementSize
	}
	need := sigPreambleSize + int(count)*rowSize
	if need < 0 || need > len(body) {
		return Signature{}, fmt.Errorf("%d elements do not fit in %d bytes", count, len(body))
	}

	elements := make([]SignatureElement, 0, count)
	for i := 0; i < int(count); i++ {
		row := body[sigPreambleSize+i*rowSize:]
		var stream uint32
		if hasStream {
			stream = binary.LittleEndian.Uint32(row)
			row = row[sig5StreamSize:]
		}
		nameOffset := binary.LittleEndian.Uint32(row)
		name, err := stringAt(body, nameOffset)
		if err != nil {
			return Signature{}, fmt.Errorf("element %d: %v", i, err)
		}
		elements = append(elements, SignatureElement{
			SemanticName:  name,
			SemanticIndex: binary.LittleEndian.Uint32(row[4:]),
			StreamIndex:   stream,
			SysValue:      binary.LittleEndian.Uint32(row[8:]),
			ComponentType: binary.LittleEndian.Uint32(row[12:]),
			Register:      binary.LittleEndian.Uint32(row[16:]),
			Mask:          row[20],
			UsedMask:      row[21],
		})
	}
	return Signature{Elements: elements}, nil
}

func stringAt(body []byte, offset uint32) (string, error) {
	if int64(offset) >= int64(len(body)) {
		return "", fmt.Errorf("name offset %#x out of bounds", offset)
	}
	rest := body[offset:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", fmt.Errorf("unterminated name at offset %#x", offset)
	}
	return string(rest[:end]), nil
}

// FindElement returns the element matching the given semantic name
// (case-insensitive), semantic index and stream index, or nil.
func (s *Signature) FindElement(semanticName string, semanticIndex, streamIndex uint32) *SignatureElement {
	for i := range s.Elements {
		e := &s.Elements[i]
		if strings.EqualFold(e.SemanticName, semanticName) &&
			e.SemanticIndex == semanticIndex && e.StreamIndex == streamIndex {
			return e
		}
	}
	return nil
}
