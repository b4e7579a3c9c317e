package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Common errors returned by the parser
var (
	errInvalidGLTFVersion   = errors.New("invalid glTF version: must be 2.x")
	errInvalidGLBMagic      = errors.New("invalid GLB magic number")
	errInvalidGLBVersion    = errors.New("invalid GLB version: must be 2")
	errMissingJSONChunk     = errors.New("GLB file missing JSON chunk")
	errInvalidBufferURI     = errors.New("invalid buffer URI")
	errBufferSizeMismatch   = errors.New("buffer size mismatch")
	errAccessorOutOfRange   = errors.New("accessor reads past the end of its buffer")
	errUnsupportedExtension = errors.New("unsupported required extension")
)

// supportedExtensions lists the extensions an asset may require.
var supportedExtensions = []string{gltfExtensionLightsPunctual}

// gltfParserImpl is the implementation of the gltfParser interface.
type gltfParserImpl struct {
	baseDir        string
	document       *gltfDocument
	glbBinaryChunk []byte
}

// gltfParser loads a glTF/GLB container and reads typed accessor data out of its buffers.
// This is internal to the loader package.
type gltfParser interface {
	// Parse loads and parses a glTF/GLB file from the given path.
	// The container is detected from the file contents, not the extension.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - error: error if parsing fails
	Parse(path string) error

	// ParseReader parses a glTF document from a reader. Relative buffer URIs resolve
	// against the working directory.
	//
	// Parameters:
	//   - r: reader containing glTF JSON or GLB data
	//
	// Returns:
	//   - error: error if parsing fails
	ParseReader(r io.Reader) error

	// Document returns the parsed glTF document, or nil before a successful parse.
	Document() *gltfDocument

	// ReadVec3Accessor reads a VEC3 FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []mgl32.Vec3: the vec3 data
	//   - error: error if reading fails
	ReadVec3Accessor(accessorIndex int) ([]mgl32.Vec3, error)

	// ReadScalarAccessor reads a SCALAR FLOAT accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []float32: the scalar data
	//   - error: error if reading fails
	ReadScalarAccessor(accessorIndex int) ([]float32, error)

	// ReadIndicesAccessor reads an index accessor of UNSIGNED_BYTE, UNSIGNED_SHORT or UNSIGNED_INT.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - []uint32: the index data widened to uint32
	//   - error: error if reading fails
	ReadIndicesAccessor(accessorIndex int) ([]uint32, error)

	// AccessorBounds returns the declared per-component min and max of a VEC3 accessor.
	//
	// Parameters:
	//   - accessorIndex: the index of the accessor
	//
	// Returns:
	//   - mgl32.Vec3: the minimum corner
	//   - mgl32.Vec3: the maximum corner
	//   - bool: false when the accessor does not declare both
	AccessorBounds(accessorIndex int) (mgl32.Vec3, mgl32.Vec3, bool)
}

var _ gltfParser = &gltfParserImpl{}

// newGLTFParser creates a new glTF parser instance.
//
// Returns:
//   - gltfParser: a new parser instance
func newGLTFParser() gltfParser {
	return &gltfParserImpl{}
}

func (p *gltfParserImpl) Document() *gltfDocument {
	return p.document
}

func (p *gltfParserImpl) Parse(path string) error {
	p.baseDir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return p.parseBytes(data)
}

func (p *gltfParserImpl) ParseReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return p.parseBytes(data)
}

func (p *gltfParserImpl) parseBytes(data []byte) error {
	switch DetectFormat(data) {
	case FormatGLB:
		return p.parseGLB(data)
	case FormatGLTF:
		return p.decodeDocument(data)
	default:
		return ErrUnsupportedFormat
	}
}

// parseGLB splits a GLB container into its JSON and BIN chunks.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func (p *gltfParserImpl) parseGLB(data []byte) error {
	if len(data) < 12 {
		return errors.New("GLB file too small")
	}

	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to read GLB header: %w", err)
	}
	if header.Magic != gltfGLBMagic {
		return errInvalidGLBMagic
	}
	if header.Version != gltfGLBVersion {
		return errInvalidGLBVersion
	}

	var jsonData []byte
	for {
		var chunkHeader gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunkHeader); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read chunk header: %w", err)
		}
		if int64(chunkHeader.ChunkLength) > int64(r.Len()) {
			return fmt.Errorf("chunk of %d bytes overruns the file", chunkHeader.ChunkLength)
		}

		chunkData := make([]byte, chunkHeader.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return fmt.Errorf("failed to read chunk data: %w", err)
		}

		switch chunkHeader.ChunkType {
		case gltfGLBChunkJSON:
			jsonData = chunkData
		case gltfGLBChunkBIN:
			p.glbBinaryChunk = chunkData
		}
	}

	if jsonData == nil {
		return errMissingJSONChunk
	}
	return p.decodeDocument(jsonData)
}

// decodeDocument unmarshals the JSON document and loads its buffers.
func (p *gltfParserImpl) decodeDocument(jsonData []byte) error {
	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}

	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	for _, ext := range doc.ExtensionsRequired {
		if !slices.Contains(supportedExtensions, ext) {
			return fmt.Errorf("%w: %s", errUnsupportedExtension, ext)
		}
	}

	if err := p.loadBuffers(&doc); err != nil {
		return fmt.Errorf("failed to load buffers: %w", err)
	}

	p.document = &doc
	return nil
}

// loadBuffers loads all buffer data (from URIs, embedded data, or GLB binary chunk).
func (p *gltfParserImpl) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]

		if buf.URI == "" {
			if i == 0 && p.glbBinaryChunk != nil {
				buf.Data = p.glbBinaryChunk
			} else {
				return fmt.Errorf("buffer %d has no URI and no GLB binary chunk", i)
			}
		} else {
			data, err := p.loadBufferURI(buf.URI)
			if err != nil {
				return fmt.Errorf("buffer %d: %w", i, err)
			}
			buf.Data = data
		}

		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w", i, errBufferSizeMismatch)
		}
	}

	return nil
}

// loadBufferURI loads buffer data from a URI (data: URI or file path).
func (p *gltfParserImpl) loadBufferURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		return loadDataURI(uri)
	}

	data, err := os.ReadFile(filepath.Join(p.baseDir, filepath.FromSlash(uri)))
	if err != nil {
		return nil, fmt.Errorf("failed to load buffer file %q: %w", uri, err)
	}
	return data, nil
}

// loadDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func loadDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errInvalidBufferURI
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}

// --- Accessor Data Reading ---

// accessor looks up an accessor and validates its element layout.
func (p *gltfParserImpl) accessor(accessorIndex int, accessorType string) (*gltfAccessor, error) {
	if p.document == nil {
		return nil, errors.New("no document loaded")
	}
	if accessorIndex < 0 || accessorIndex >= len(p.document.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", accessorIndex)
	}
	acc := &p.document.Accessors[accessorIndex]
	if acc.Type != accessorType {
		return nil, fmt.Errorf("accessor %d is %s, want %s", accessorIndex, acc.Type, accessorType)
	}
	if acc.Sparse != nil {
		return nil, fmt.Errorf("accessor %d: sparse accessors are not supported", accessorIndex)
	}
	return acc, nil
}

// readElements de-interleaves an accessor into tightly packed elements.
// An accessor without a bufferView reads as zeros.
func (p *gltfParserImpl) readElements(acc *gltfAccessor) ([]byte, int, error) {
	elementSize := gltfComponentTypeSize(acc.ComponentType) * gltfAccessorTypeComponentCount(acc.Type)
	if elementSize == 0 {
		return nil, 0, fmt.Errorf("unsupported accessor layout %s/%d", acc.Type, acc.ComponentType)
	}

	result := make([]byte, acc.Count*elementSize)
	if acc.BufferView == nil {
		return result, elementSize, nil
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(p.document.BufferViews) {
		return nil, 0, fmt.Errorf("bufferView index %d out of range", *acc.BufferView)
	}
	bv := &p.document.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(p.document.Buffers) {
		return nil, 0, fmt.Errorf("buffer index %d out of range", bv.Buffer)
	}
	data := p.document.Buffers[bv.Buffer].Data

	stride := elementSize
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}

	start := bv.ByteOffset + acc.ByteOffset
	if acc.Count > 0 {
		end := start + (acc.Count-1)*stride + elementSize
		if start < 0 || end > len(data) || end > bv.ByteOffset+bv.ByteLength {
			return nil, 0, errAccessorOutOfRange
		}
	}

	for i := range acc.Count {
		src := start + i*stride
		copy(result[i*elementSize:(i+1)*elementSize], data[src:src+elementSize])
	}
	return result, elementSize, nil
}

// readFloats reads a FLOAT accessor as a flat component slice.
func (p *gltfParserImpl) readFloats(accessorIndex int, accessorType string) ([]float32, error) {
	acc, err := p.accessor(accessorIndex, accessorType)
	if err != nil {
		return nil, err
	}
	if acc.ComponentType != gltfComponentTypeFloat {
		return nil, fmt.Errorf("accessor %d is not FLOAT: componentType=%d", accessorIndex, acc.ComponentType)
	}

	data, _, err := p.readElements(acc)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}

	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out, nil
}

func (p *gltfParserImpl) ReadVec3Accessor(accessorIndex int) ([]mgl32.Vec3, error) {
	flat, err := p.readFloats(accessorIndex, gltfAccessorTypeVec3)
	if err != nil {
		return nil, err
	}

	result := make([]mgl32.Vec3, len(flat)/3)
	for i := range result {
		result[i] = mgl32.Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return result, nil
}

func (p *gltfParserImpl) ReadScalarAccessor(accessorIndex int) ([]float32, error) {
	return p.readFloats(accessorIndex, gltfAccessorTypeScalar)
}

func (p *gltfParserImpl) ReadIndicesAccessor(accessorIndex int) ([]uint32, error) {
	acc, err := p.accessor(accessorIndex, gltfAccessorTypeScalar)
	if err != nil {
		return nil, err
	}

	data, size, err := p.readElements(acc)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}

	result := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case gltfComponentTypeUnsignedByte:
		for i := range result {
			result[i] = uint32(data[i])
		}
	case gltfComponentTypeUnsignedShort:
		for i := range result {
			result[i] = uint32(binary.LittleEndian.Uint16(data[i*size:]))
		}
	case gltfComponentTypeUnsignedInt:
		for i := range result {
			result[i] = binary.LittleEndian.Uint32(data[i*size:])
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %d", acc.ComponentType)
	}
	return result, nil
}

func (p *gltfParserImpl) AccessorBounds(accessorIndex int) (mgl32.Vec3, mgl32.Vec3, bool) {
	if p.document == nil || accessorIndex < 0 || accessorIndex >= len(p.document.Accessors) {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	acc := &p.document.Accessors[accessorIndex]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}
	return mgl32.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]}, mgl32.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]}, true
}

// --- Helper Functions ---

// gltfComponentTypeSize returns the byte size of a component type.
func gltfComponentTypeSize(componentType int) int {
	switch componentType {
	case gltfComponentTypeByte, gltfComponentTypeUnsignedByte:
		return 1
	case gltfComponentTypeShort, gltfComponentTypeUnsignedShort:
		return 2
	case gltfComponentTypeUnsignedInt, gltfComponentTypeFloat:
		return 4
	default:
		return 0
	}
}

// gltfAccessorTypeComponentCount returns the number of components for an accessor type.
func gltfAccessorTypeComponentCount(accessorType string) int {
	switch accessorType {
	case gltfAccessorTypeScalar:
		return 1
	case gltfAccessorTypeVec2:
		return 2
	case gltfAccessorTypeVec3:
		return 3
	case gltfAccessorTypeVec4, gltfAccessorTypeMat2:
		return 4
	case gltfAccessorTypeMat3:
		return 9
	case gltfAccessorTypeMat4:
		return 16
	default:
		return 0
	}
}
