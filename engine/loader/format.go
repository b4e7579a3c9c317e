package loader

import (
	"bytes"
	"encoding/binary"

	"github.com/h2non/filetype"
)

// Format is the container format of an asset file.
type Format int

const (
	// FormatUnknown is anything the loader cannot read.
	FormatUnknown Format = iota
	// FormatGLTF is a glTF 2.0 JSON document.
	FormatGLTF
	// FormatGLB is a binary glTF container.
	FormatGLB
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatGLTF:
		return "gltf"
	case FormatGLB:
		return "glb"
	default:
		return "unknown"
	}
}

// glbType is the filetype registration for binary glTF.
var glbType = filetype.NewType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(glbType, matchGLB)
}

// matchGLB recognises the GLB header: the "glTF" magic followed by container version 2.
func matchGLB(buf []byte) bool {
	return len(buf) >= 8 &&
		binary.LittleEndian.Uint32(buf[0:4]) == gltfGLBMagic &&
		binary.LittleEndian.Uint32(buf[4:8]) == gltfGLBVersion
}

// DetectFormat identifies an asset's container from its leading bytes, independent of the
// file extension. JSON documents are recognised by their opening brace.
//
// Parameters:
//   - head: the first bytes of the file; 8 bytes are enough
//
// Returns:
//   - Format: the detected format, FormatUnknown if nothing matched
func DetectFormat(head []byte) Format {
	kind, err := filetype.Match(head)
	if err == nil && kind == glbType {
		return FormatGLB
	}
	if kind != filetype.Unknown && kind != glbType {
		return FormatUnknown
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatGLTF
	}
	return FormatUnknown
}
