package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfLightExtractor builds lights from KHR_lights_punctual definitions.
type gltfLightExtractor interface {
	// ExtractLight places light definition lightIndex at a node's world transform.
	//
	// Parameters:
	//   - lightIndex: the index into the document's light list
	//   - nodeName: the referencing node's name, used when the light is unnamed
	//   - world: the node's world transform
	//
	// Returns:
	//   - light.Light: the placed light
	//   - error: error if the index or light type is invalid
	ExtractLight(lightIndex int, nodeName string, world mgl32.Mat4) (light.Light, error)
}

// gltfLightExtractorImpl is the implementation of the gltfLightExtractor interface.
type gltfLightExtractorImpl struct {
	parser gltfParser
}

var _ gltfLightExtractor = &gltfLightExtractorImpl{}

// newGLTFLightExtractor creates a new light extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfLightExtractor: the light extractor
func newGLTFLightExtractor(parser gltfParser) gltfLightExtractor {
	return &gltfLightExtractorImpl{parser: parser}
}

func (e *gltfLightExtractorImpl) ExtractLight(lightIndex int, nodeName string, world mgl32.Mat4) (light.Light, error) {
	doc := e.parser.Document()
	if doc.Extensions == nil || doc.Extensions.LightsPunctual == nil ||
		lightIndex < 0 || lightIndex >= len(doc.Extensions.LightsPunctual.Lights) {
		return nil, fmt.Errorf("light index %d out of range", lightIndex)
	}
	def := &doc.Extensions.LightsPunctual.Lights[lightIndex]

	var lightType light.LightType
	switch def.Type {
	case gltfLightTypeDirectional:
		lightType = light.LightTypeDirectional
	case gltfLightTypePoint:
		lightType = light.LightTypePoint
	case gltfLightTypeSpot:
		lightType = light.LightTypeSpot
	default:
		return nil, fmt.Errorf("light %d: unknown type %q", lightIndex, def.Type)
	}

	name := def.Name
	if name == "" {
		name = nodeName
	}

	opts := []light.LightBuilderOption{
		light.WithName(name),
		light.WithPosition(world.Col(3).Vec3()),
		light.WithRotation(worldRotation(world)),
	}
	if def.Color != nil {
		opts = append(opts, light.WithColor(mgl32.Vec3(*def.Color)))
	}
	if def.Intensity != nil {
		opts = append(opts, light.WithIntensity(*def.Intensity))
	}
	if def.Range != nil {
		opts = append(opts, light.WithRange(*def.Range))
	}
	if lightType == light.LightTypeSpot {
		inner, outer := float32(0), math32.Pi/4
		if def.Spot != nil {
			inner = def.Spot.InnerConeAngle
			if def.Spot.OuterConeAngle != nil {
				outer = *def.Spot.OuterConeAngle
			}
		}
		opts = append(opts, light.WithSpotCone(inner, outer))
	}

	return light.NewLight(lightType, opts...), nil
}

// worldRotation extracts the rotation of a transform, discarding scale.
func worldRotation(world mgl32.Mat4) mgl32.Quat {
	x := world.Col(0).Vec3()
	y := world.Col(1).Vec3()
	z := world.Col(2).Vec3()
	if x.Len() == 0 || y.Len() == 0 || z.Len() == 0 {
		return mgl32.QuatIdent()
	}
	x, y, z = x.Normalize(), y.Normalize(), z.Normalize()
	rot := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(rot).Normalize()
}
