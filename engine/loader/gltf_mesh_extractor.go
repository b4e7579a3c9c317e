package loader

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/bounds"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser

	// cache holds extracted primitives per glTF mesh index so instanced meshes share geometry.
	cache map[int][]gltfExtractedPrimitive
}

// gltfExtractedPrimitive is one drawable primitive of a glTF mesh.
type gltfExtractedPrimitive struct {
	mesh  *model.Mesh
	color mgl32.Vec4
}

// gltfMeshExtractor converts glTF mesh primitives into engine meshes.
type gltfMeshExtractor interface {
	// ExtractMesh returns the drawable primitives of a mesh. Results are cached by index.
	// Point primitives are skipped.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh in the document
	//
	// Returns:
	//   - []gltfExtractedPrimitive: one entry per drawable primitive
	//   - error: error if extraction fails
	ExtractMesh(meshIndex int) ([]gltfExtractedPrimitive, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{
		parser: parser,
		cache:  make(map[int][]gltfExtractedPrimitive),
	}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]gltfExtractedPrimitive, error) {
	if cached, ok := e.cache[meshIndex]; ok {
		return cached, nil
	}

	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	gm := &doc.Meshes[meshIndex]
	var result []gltfExtractedPrimitive
	for i := range gm.Primitives {
		prim, err := e.extractPrimitive(&gm.Primitives[i], meshName(gm.Name, meshIndex, i))
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, i, err)
		}
		if prim != nil {
			result = append(result, *prim)
		}
	}

	e.cache[meshIndex] = result
	return result, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive, name string) (*gltfExtractedPrimitive, error) {
	mode := gltfPrimitiveModeTriangles
	if prim.Mode != nil {
		mode = *prim.Mode
	}
	if mode == gltfPrimitiveModePoints {
		slog.Warn("skipping point primitive", "mesh", name)
		return nil, nil
	}

	posAccessor, ok := prim.Attributes[gltfAttributePosition]
	if !ok {
		return nil, fmt.Errorf("primitive has no %s attribute", gltfAttributePosition)
	}
	positions, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
		}
	}

	mesh := &model.Mesh{Name: name, Positions: positions}
	switch mode {
	case gltfPrimitiveModeLines:
		mesh.Topology, mesh.Indices = model.TopologyLineList, indices[:len(indices)/2*2]
	case gltfPrimitiveModeLineStrip:
		mesh.Topology, mesh.Indices = model.TopologyLineList, lineStripToList(indices, false)
	case gltfPrimitiveModeLineLoop:
		mesh.Topology, mesh.Indices = model.TopologyLineList, lineStripToList(indices, true)
	case gltfPrimitiveModeTriangles:
		mesh.Topology, mesh.Indices = model.TopologyTriangleList, indices[:len(indices)/3*3]
	case gltfPrimitiveModeTriangleStrip:
		mesh.Topology, mesh.Indices = model.TopologyTriangleList, triangleStripToList(indices)
	case gltfPrimitiveModeTriangleFan:
		mesh.Topology, mesh.Indices = model.TopologyTriangleList, triangleFanToList(indices)
	default:
		return nil, fmt.Errorf("unsupported primitive mode: %d", mode)
	}

	if mesh.Topology == model.TopologyTriangleList {
		if normalAccessor, ok := prim.Attributes[gltfAttributeNormal]; ok {
			mesh.Normals, err = e.parser.ReadVec3Accessor(normalAccessor)
			if err != nil {
				return nil, fmt.Errorf("failed to read normals: %w", err)
			}
		}
		if len(mesh.Normals) != len(positions) {
			mesh.Normals = generateNormals(positions, mesh.Indices)
		}
	}

	// POSITION accessors must declare min/max; scan the vertices when an exporter skipped it.
	if lo, hi, ok := e.parser.AccessorBounds(posAccessor); ok {
		box := bounds.FromMinMax(lo, hi)
		mesh.Bounds = &box
	} else {
		mesh.ComputeBounds()
	}

	return &gltfExtractedPrimitive{
		mesh:  mesh,
		color: e.baseColor(prim.Material),
	}, nil
}

// baseColor resolves the flat color of a primitive, white without a material.
func (e *gltfMeshExtractorImpl) baseColor(materialIndex *int) mgl32.Vec4 {
	white := mgl32.Vec4{1, 1, 1, 1}
	doc := e.parser.Document()
	if materialIndex == nil || *materialIndex < 0 || *materialIndex >= len(doc.Materials) {
		return white
	}
	pbr := doc.Materials[*materialIndex].PbrMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return white
	}
	return mgl32.Vec4(*pbr.BaseColorFactor)
}

// meshName builds a readable primitive name.
func meshName(name string, meshIndex, primIndex int) string {
	if name == "" {
		name = fmt.Sprintf("mesh_%d", meshIndex)
	}
	if primIndex > 0 {
		name = fmt.Sprintf("%s_prim%d", name, primIndex)
	}
	return name
}

// lineStripToList expands a strip (or a closed loop) into independent segments.
func lineStripToList(strip []uint32, closed bool) []uint32 {
	if len(strip) < 2 {
		return nil
	}
	out := make([]uint32, 0, len(strip)*2)
	for i := 0; i+1 < len(strip); i++ {
		out = append(out, strip[i], strip[i+1])
	}
	if closed {
		out = append(out, strip[len(strip)-1], strip[0])
	}
	return out
}

// triangleStripToList expands a strip into a list, flipping every other triangle to keep winding.
func triangleStripToList(strip []uint32) []uint32 {
	if len(strip) < 3 {
		return nil
	}
	out := make([]uint32, 0, (len(strip)-2)*3)
	for i := 0; i+2 < len(strip); i++ {
		if i%2 == 0 {
			out = append(out, strip[i], strip[i+1], strip[i+2])
		} else {
			out = append(out, strip[i+1], strip[i], strip[i+2])
		}
	}
	return out
}

// triangleFanToList expands a fan around its first vertex into a list.
func triangleFanToList(fan []uint32) []uint32 {
	if len(fan) < 3 {
		return nil
	}
	out := make([]uint32, 0, (len(fan)-2)*3)
	for i := 1; i+1 < len(fan); i++ {
		out = append(out, fan[0], fan[i], fan[i+1])
	}
	return out
}

// generateNormals computes smooth vertex normals when the file omits the NORMAL attribute.
// Face normals are accumulated area-weighted onto each triangle's vertices and normalized.
// Vertices touched by no triangle get +Y.
//
// Parameters:
//   - positions: the vertex positions
//   - indices: the triangle list
//
// Returns:
//   - []mgl32.Vec3: one unit normal per position
func generateNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	accum := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0 := positions[i0]
		face := positions[i1].Sub(p0).Cross(positions[i2].Sub(p0))
		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}

	for i, n := range accum {
		if n.Len() < 1e-6 {
			accum[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		accum[i] = n.Normalize()
	}
	return accum
}
