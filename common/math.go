package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis unit vectors shared by the camera, gizmo, and light code.
var (
	UnitX = mgl32.Vec3{1, 0, 0}
	UnitY = mgl32.Vec3{0, 1, 0}
	UnitZ = mgl32.Vec3{0, 0, 1}
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// PerspectiveZO creates a right-handed perspective projection matrix that maps
// view-space depth into the WebGPU clip range [0, 1].
// mgl32.Perspective targets the OpenGL [-1, 1] range and cannot be used directly.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// OrthographicZO creates a right-handed orthographic projection matrix mapping
// view-space depth [-near, -far] into the WebGPU clip range [0, 1].
//
// Parameters:
//   - left, right: horizontal extents of the view volume
//   - bottom, top: vertical extents of the view volume
//   - near, far: depth extents of the view volume
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func OrthographicZO(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	var out mgl32.Mat4
	rl := right - left
	tb := top - bottom
	fn := far - near
	if rl == 0 || tb == 0 || fn == 0 {
		return mgl32.Ident4()
	}
	out[0] = 2 / rl
	out[5] = 2 / tb
	out[10] = -1 / fn
	out[12] = -(right + left) / rl
	out[13] = -(top + bottom) / tb
	out[14] = -near / fn
	out[15] = 1
	return out
}

// ComposeTRS builds a model matrix from a translation, a rotation, and a scale,
// applied in scale, rotate, translate order.
//
// Parameters:
//   - translation: world-space offset
//   - rotation: unit quaternion orientation
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the composed column-major matrix
func ComposeTRS(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(translation.X(), translation.Y(), translation.Z()).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// LookRotation returns the orientation of an object at eye looking toward target,
// using the convention that the object's forward axis is local -Z and its up is local +Y.
// If eye and target coincide, or the view direction is parallel to up, the identity is returned.
//
// Parameters:
//   - eye: the position of the viewer
//   - target: the point being looked at
//   - up: the world up reference
//
// Returns:
//   - mgl32.Quat: the look-at orientation
func LookRotation(eye, target, up mgl32.Vec3) mgl32.Quat {
	back := eye.Sub(target)
	if back.Dot(back) == 0 {
		return mgl32.QuatIdent()
	}
	back = back.Normalize()
	right := up.Cross(back)
	if right.Dot(right) < 1e-12 {
		return mgl32.QuatIdent()
	}
	right = right.Normalize()
	newUp := back.Cross(right)
	basis := mgl32.Mat4FromCols(right.Vec4(0), newUp.Vec4(0), back.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(basis).Normalize()
}
