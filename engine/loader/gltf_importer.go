package loader

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter orchestrates a full glTF/GLB import.
// It runs the parser, then flattens every scene's node tree into world-space instances and lights.
type gltfImporter interface {
	// Import loads a glTF/GLB file into an Asset.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *Asset: the imported asset
	//   - error: error if import fails
	Import(path string) (*Asset, error)

	// ImportReader loads a glTF/GLB stream into an Asset. Relative buffer URIs resolve
	// against the working directory.
	//
	// Parameters:
	//   - name: the name recorded as the asset path
	//   - r: the reader providing glTF/GLB data
	//
	// Returns:
	//   - *Asset: the imported asset
	//   - error: error if import fails
	ImportReader(name string, r io.Reader) (*Asset, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*Asset, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader) (*Asset, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return imp.importFromParser(parser, name)
}

// importFromParser builds the Asset from a parser that has already loaded a document.
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, path string) (*Asset, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	animations, err := newGLTFAnimationExtractor(parser).ExtractAllAnimations()
	if err != nil {
		return nil, fmt.Errorf("animation extraction failed: %w", err)
	}

	w := &gltfSceneWalker{
		doc:    doc,
		meshes: newGLTFMeshExtractor(parser),
		lights: newGLTFLightExtractor(parser),
	}

	asset := &Asset{
		Path:       path,
		Name:       gltfExtractSceneName(doc, path),
		Animations: animations,
		Scenes:     make([]Scene, 0, len(doc.Scenes)),
	}
	for i := range doc.Scenes {
		scene, err := w.walk(&doc.Scenes[i])
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i, err)
		}
		asset.Scenes = append(asset.Scenes, scene)
	}

	return asset, nil
}

// gltfSceneWalker flattens a scene's node hierarchy.
type gltfSceneWalker struct {
	doc    *gltfDocument
	meshes gltfMeshExtractor
	lights gltfLightExtractor
}

func (w *gltfSceneWalker) walk(gs *gltfScene) (Scene, error) {
	scene := Scene{Name: gs.Name}
	visiting := make(map[int]bool)
	for _, root := range gs.Nodes {
		if err := w.visit(root, mgl32.Ident4(), visiting, &scene); err != nil {
			return Scene{}, err
		}
	}
	return scene, nil
}

// visit appends the node's meshes and light to the scene, then descends into its children.
func (w *gltfSceneWalker) visit(nodeIndex int, parent mgl32.Mat4, visiting map[int]bool, scene *Scene) error {
	if nodeIndex < 0 || nodeIndex >= len(w.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIndex)
	}
	if visiting[nodeIndex] {
		return fmt.Errorf("node %d is its own ancestor", nodeIndex)
	}
	visiting[nodeIndex] = true
	defer delete(visiting, nodeIndex)

	node := &w.doc.Nodes[nodeIndex]
	world := parent.Mul4(gltfNodeTransform(node))

	if node.Mesh != nil {
		prims, err := w.meshes.ExtractMesh(*node.Mesh)
		if err != nil {
			return err
		}
		for _, p := range prims {
			scene.Instances = append(scene.Instances, model.NewModel(
				model.WithName(common.Coalesce(node.Name, p.mesh.Name)),
				model.WithMesh(p.mesh),
				model.WithWorld(world),
				model.WithColor(p.color),
			))
		}
	}

	if node.Extensions != nil && node.Extensions.LightsPunctual != nil {
		l, err := w.lights.ExtractLight(node.Extensions.LightsPunctual.Light, node.Name, world)
		if err != nil {
			slog.Warn("skipping light", "node", node.Name, "error", err)
		} else {
			scene.Lights = append(scene.Lights, l)
		}
	}

	for _, child := range node.Children {
		if err := w.visit(child, world, visiting, scene); err != nil {
			return err
		}
	}
	return nil
}

// --- Helper Functions ---

// gltfNodeTransform returns a node's local transform. A matrix takes precedence over TRS.
func gltfNodeTransform(node *gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}

	translation := mgl32.Vec3{}
	if node.Translation != nil {
		translation = mgl32.Vec3(*node.Translation)
	}
	rotation := mgl32.QuatIdent()
	if node.Rotation != nil {
		r := node.Rotation
		rotation = mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
	}
	scale := mgl32.Vec3{1, 1, 1}
	if node.Scale != nil {
		scale = mgl32.Vec3(*node.Scale)
	}
	return common.ComposeTRS(translation, rotation, scale)
}

// gltfExtractSceneName derives an asset name from the default scene or a path fallback.
func gltfExtractSceneName(doc *gltfDocument, fallbackPath string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}
	return common.Coalesce(fallbackPath, "unnamed_asset")
}
