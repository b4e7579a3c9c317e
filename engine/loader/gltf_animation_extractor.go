package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	parser gltfParser
}

// gltfAnimationExtractor reads animation clip metadata from a parsed glTF document.
// Keyframe values are not decoded; a clip is its name, duration and channel count.
type gltfAnimationExtractor interface {
	// ExtractAnimation extracts a single animation by index.
	//
	// Parameters:
	//   - animIndex: the index of the animation in the document
	//
	// Returns:
	//   - model.AnimationClip: the clip description
	//   - error: error if a sampler's input times cannot be read
	ExtractAnimation(animIndex int) (model.AnimationClip, error)

	// ExtractAllAnimations extracts every animation in document order.
	//
	// Returns:
	//   - []model.AnimationClip: all clips
	//   - error: error if extraction fails
	ExtractAllAnimations() ([]model.AnimationClip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

// newGLTFAnimationExtractor creates a new animation extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfAnimationExtractor: the animation extractor
func newGLTFAnimationExtractor(parser gltfParser) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{parser: parser}
}

func (e *gltfAnimationExtractorImpl) ExtractAnimation(animIndex int) (model.AnimationClip, error) {
	doc := e.parser.Document()
	if animIndex < 0 || animIndex >= len(doc.Animations) {
		return model.AnimationClip{}, fmt.Errorf("animation index %d out of range", animIndex)
	}
	anim := &doc.Animations[animIndex]

	clip := model.AnimationClip{
		Name:     anim.Name,
		Channels: len(anim.Channels),
	}
	if clip.Name == "" {
		clip.Name = fmt.Sprintf("animation_%d", animIndex)
	}

	for i, sampler := range anim.Samplers {
		end, err := e.inputEnd(sampler.Input)
		if err != nil {
			return model.AnimationClip{}, fmt.Errorf("animation %q sampler %d: %w", clip.Name, i, err)
		}
		clip.Duration = max(clip.Duration, end)
	}
	return clip, nil
}

func (e *gltfAnimationExtractorImpl) ExtractAllAnimations() ([]model.AnimationClip, error) {
	doc := e.parser.Document()
	clips := make([]model.AnimationClip, 0, len(doc.Animations))
	for i := range doc.Animations {
		clip, err := e.ExtractAnimation(i)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// inputEnd returns the last keyframe time of a sampler input accessor.
// The declared max is used when present, otherwise the times are scanned.
func (e *gltfAnimationExtractorImpl) inputEnd(accessorIndex int) (float32, error) {
	doc := e.parser.Document()
	if accessorIndex >= 0 && accessorIndex < len(doc.Accessors) && len(doc.Accessors[accessorIndex].Max) > 0 {
		return doc.Accessors[accessorIndex].Max[0], nil
	}

	times, err := e.parser.ReadScalarAccessor(accessorIndex)
	if err != nil {
		return 0, err
	}
	var end float32
	for _, t := range times {
		end = max(end, t)
	}
	return end, nil
}
