package gltf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/math"
)

// triangleGLB builds a GLB holding a single indexed triangle: 36 bytes of
// float32 positions followed by 6 bytes of uint16 indices.
func triangleGLB() []byte {
	bin := appendFloat32(nil,
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	)
	bin = appendUint16(bin, 0, 1, 2)
	doc := `{
		"buffers": [{"byteLength": 42}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
	}`
	return buildGLB(jsonChunk(doc), binChunk(bin))
}

func TestToMeshes(t *testing.T) {
	g, err := Decode(bytes.NewReader(triangleGLB()))
	if err != nil {
		t.Fatal(err)
	}
	meshes, err := g.ToMeshes()
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 {
		t.Fatalf("want 1 mesh, have %d", len(meshes))
	}
	wantVertices := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	for i, want := range wantVertices {
		if meshes[0].Vertices[i] != want {
			t.Errorf("vertex %d: want %+v, have %+v", i, want, meshes[0].Vertices[i])
		}
	}
	wantIndices := []uint32{0, 1, 2}
	for i, want := range wantIndices {
		if meshes[0].Indices[i] != want {
			t.Errorf("index %d: want %d, have %d", i, want, meshes[0].Indices[i])
		}
	}
}

func TestToMeshesMultiPrimitive(t *testing.T) {
	// Two primitives with distinct accessors must come out as two
	// independent vertex/index pairs, never one merged pair.
	bin := appendFloat32(nil, 0, 0, 0, 1, 0, 0, 0, 1, 0)
	bin = appendUint16(bin, 0, 1, 2)
	bin = appendFloat32(bin, 5, 5, 5, 6, 5, 5, 5, 6, 5)
	bin = appendUint16(bin, 2, 1, 0)
	doc := `{
		"buffers": [{"byteLength": 84}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6},
			{"buffer": 0, "byteOffset": 42, "byteLength": 36},
			{"buffer": 0, "byteOffset": 78, "byteLength": 6}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"},
			{"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 3, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{"primitives": [
			{"attributes": {"POSITION": 0}, "indices": 1},
			{"attributes": {"POSITION": 2}, "indices": 3}
		]}]
	}`
	g, err := Decode(bytes.NewReader(buildGLB(jsonChunk(doc), binChunk(bin))))
	if err != nil {
		t.Fatal(err)
	}
	meshes, err := g.ToMeshes()
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 2 {
		t.Fatalf("want 2 independent meshes, have %d", len(meshes))
	}
	if meshes[0].Vertices[0] == meshes[1].Vertices[0] {
		t.Fatal("primitives share vertex data, want independent pairs")
	}
	if want := []uint32{2, 1, 0}; meshes[1].Indices[0] != want[0] {
		t.Fatalf("second primitive indices: want %v, have %v", want, meshes[1].Indices)
	}
}

func TestToMeshesNonIndexedRejected(t *testing.T) {
	bin := appendFloat32(nil, 0, 0, 0, 1, 0, 0, 0, 1, 0)
	doc := `{
		"buffers": [{"byteLength": 36}],
		"bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": 36}],
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}]
	}`
	g, err := Decode(bytes.NewReader(buildGLB(jsonChunk(doc), binChunk(bin))))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.ToMeshes(); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, have %v", err)
	}
}

func TestToMeshesWideIndicesRejected(t *testing.T) {
	// Four-byte indices would decode cleanly through the 2-byte chunker and
	// come out garbled, so the accessor's component type is checked instead.
	bin := appendFloat32(nil, 0, 0, 0, 1, 0, 0, 0, 1, 0)
	for _, i := range []uint32{0, 1, 2} {
		bin = binary.LittleEndian.AppendUint32(bin, i)
	}
	doc := `{
		"buffers": [{"byteLength": 48}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 12}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5125, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
	}`
	g, err := Decode(bytes.NewReader(buildGLB(jsonChunk(doc), binChunk(bin))))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.ToMeshes(); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("want ErrUnsupported, have %v", err)
	}
}

func TestToMeshesMisalignedPositionData(t *testing.T) {
	// A VEC2 float accessor is 8 bytes per element, which cannot be cut
	// into 12-byte position vertices.
	bin := appendFloat32(nil, 0, 0, 1, 1)
	bin = appendUint16(bin, 0, 1, 2)
	doc := `{
		"buffers": [{"byteLength": 22}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 16},
			{"buffer": 0, "byteOffset": 16, "byteLength": 6}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 2, "type": "VEC2"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
	}`
	g, err := Decode(bytes.NewReader(buildGLB(jsonChunk(doc), binChunk(bin))))
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.ToMeshes()
	if !errors.Is(err, core.ErrFormat) {
		t.Fatalf("want ErrFormat, have %v", err)
	}
}

func TestToMeshesMissingPosition(t *testing.T) {
	doc := `{
		"buffers": [{"byteLength": 4}],
		"meshes": [{"primitives": [{"attributes": {"NORMAL": 0}, "indices": 0}]}]
	}`
	g, err := Decode(bytes.NewReader(buildGLB(jsonChunk(doc), binChunk(make([]byte, 4)))))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.ToMeshes(); !errors.Is(err, core.ErrFormat) {
		t.Fatalf("want ErrFormat, have %v", err)
	}
}
