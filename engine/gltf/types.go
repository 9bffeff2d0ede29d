package gltf

import (
	"fmt"

	"github.com/aether-engine/aether/engine/core"
)

// ComponentType is the numeric type of a single accessor component,
// identified in glTF by its GL constant.
type ComponentType uint32

const (
	ComponentTypeInt8    ComponentType = 5120
	ComponentTypeUint8   ComponentType = 5121
	ComponentTypeInt16   ComponentType = 5122
	ComponentTypeUint16  ComponentType = 5123
	ComponentTypeUint32  ComponentType = 5125
	ComponentTypeFloat32 ComponentType = 5126
)

// NewComponentType validates a raw glTF component type code. Unmapped codes
// are an expected occurrence in third-party asset files, so this returns an
// error rather than panicking.
func NewComponentType(code uint32) (ComponentType, error) {
	switch ct := ComponentType(code); ct {
	case ComponentTypeInt8, ComponentTypeUint8,
		ComponentTypeInt16, ComponentTypeUint16,
		ComponentTypeUint32, ComponentTypeFloat32:
		return ct, nil
	default:
		return 0, fmt.Errorf("gltf: invalid accessor component type %d: %w", code, core.ErrFormat)
	}
}

// Size returns the width of one component in bytes.
func (ct ComponentType) Size() int {
	switch ct {
	case ComponentTypeInt8, ComponentTypeUint8:
		return 1
	case ComponentTypeInt16, ComponentTypeUint16:
		return 2
	case ComponentTypeUint32, ComponentTypeFloat32:
		return 4
	}
	return 0
}

// ElementType is the shape of one accessor element.
type ElementType int

const (
	ElementTypeScalar ElementType = iota
	ElementTypeVec2
	ElementTypeVec3
	ElementTypeVec4
	ElementTypeMat2
	ElementTypeMat3
	ElementTypeMat4
)

// NewElementType validates a raw glTF type string.
func NewElementType(s string) (ElementType, error) {
	switch s {
	case "SCALAR":
		return ElementTypeScalar, nil
	case "VEC2":
		return ElementTypeVec2, nil
	case "VEC3":
		return ElementTypeVec3, nil
	case "VEC4":
		return ElementTypeVec4, nil
	case "MAT2":
		return ElementTypeMat2, nil
	case "MAT3":
		return ElementTypeMat3, nil
	case "MAT4":
		return ElementTypeMat4, nil
	default:
		return 0, fmt.Errorf("gltf: invalid accessor element type %q: %w", s, core.ErrFormat)
	}
}

// ComponentCount returns the number of components in one element.
func (et ElementType) ComponentCount() int {
	switch et {
	case ElementTypeScalar:
		return 1
	case ElementTypeVec2:
		return 2
	case ElementTypeVec3:
		return 3
	case ElementTypeVec4, ElementTypeMat2:
		return 4
	case ElementTypeMat3:
		return 9
	case ElementTypeMat4:
		return 16
	}
	return 0
}
