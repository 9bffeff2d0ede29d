package gltf

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/math"
	"github.com/aether-engine/aether/engine/resources"
)

// Per-vertex and per-index byte widths expected by the materializer:
// POSITION data is three float32 components, indices are uint16 on disk
// and widened to uint32 for the renderer's index buffer convention.
const (
	positionStride = 12
	indexStride    = 2
)

// ToMeshes walks every mesh primitive and materializes it into flat
// vertex/index arrays. Each primitive yields its own independent MeshData;
// multi-primitive meshes are never merged into a single draw.
func (g *Gltf) ToMeshes() ([]resources.MeshData, error) {
	var meshes []resources.MeshData
	for meshIndex, mesh := range g.Meshes {
		for primitiveIndex, primitive := range mesh.Primitives {
			data, err := g.materializePrimitive(&primitive)
			if err != nil {
				return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", meshIndex, primitiveIndex, err)
			}
			meshes = append(meshes, data)
		}
	}
	return meshes, nil
}

func (g *Gltf) materializePrimitive(primitive *MeshPrimitive) (resources.MeshData, error) {
	position, ok := primitive.Attributes["POSITION"]
	if !ok {
		return resources.MeshData{}, fmt.Errorf("primitive has no POSITION attribute: %w", core.ErrFormat)
	}

	vertexBytes, err := position.Data(g)
	if err != nil {
		return resources.MeshData{}, err
	}
	vertices, err := bytesToVertices(vertexBytes, position.index)
	if err != nil {
		return resources.MeshData{}, err
	}

	if primitive.Indices == nil {
		return resources.MeshData{}, fmt.Errorf("non-indexed primitives are not supported: %w", core.ErrUnsupported)
	}
	indexBytes, err := primitive.Indices.Data(g)
	if err != nil {
		return resources.MeshData{}, err
	}
	if ct := g.Accessors[primitive.Indices.index].ComponentType; ct != ComponentTypeUint16 {
		return resources.MeshData{}, fmt.Errorf("index accessor %d has component type %d, only 16-bit indices are supported: %w", primitive.Indices.index, ct, core.ErrUnsupported)
	}
	indices, err := bytesToIndices(indexBytes, primitive.Indices.index)
	if err != nil {
		return resources.MeshData{}, err
	}

	return resources.MeshData{Vertices: vertices, Indices: indices}, nil
}

func bytesToVertices(b []byte, accessorIndex int) ([]math.Vec3, error) {
	if len(b)%positionStride != 0 {
		return nil, fmt.Errorf("accessor %d holds %d bytes of POSITION data, not a multiple of %d: %w", accessorIndex, len(b), positionStride, core.ErrFormat)
	}
	vertices := make([]math.Vec3, len(b)/positionStride)
	for i := range vertices {
		offset := i * positionStride
		vertices[i] = math.Vec3{
			X: gomath.Float32frombits(binary.LittleEndian.Uint32(b[offset:])),
			Y: gomath.Float32frombits(binary.LittleEndian.Uint32(b[offset+4:])),
			Z: gomath.Float32frombits(binary.LittleEndian.Uint32(b[offset+8:])),
		}
	}
	return vertices, nil
}

func bytesToIndices(b []byte, accessorIndex int) ([]uint32, error) {
	if len(b)%indexStride != 0 {
		return nil, fmt.Errorf("accessor %d holds %d bytes of index data, not a multiple of %d: %w", accessorIndex, len(b), indexStride, core.ErrFormat)
	}
	indices := make([]uint32, len(b)/indexStride)
	for i := range indices {
		indices[i] = uint32(binary.LittleEndian.Uint16(b[i*indexStride:]))
	}
	return indices, nil
}
