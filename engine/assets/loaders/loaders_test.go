package loaders

import (
	"encoding/binary"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aether-engine/aether/engine/fs"
	"github.com/aether-engine/aether/engine/math"
	"github.com/aether-engine/aether/engine/resources"
)

// writeTriangleGLB produces a binary glTF scene with a single indexed
// triangle at the given path.
func writeTriangleGLB(t *testing.T, path string) {
	t.Helper()

	bin := make([]byte, 0, 44)
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		bin = binary.LittleEndian.AppendUint32(bin, gomath.Float32bits(f))
	}
	for _, i := range []uint16{0, 1, 2} {
		bin = binary.LittleEndian.AppendUint16(bin, i)
	}

	doc := fmt.Sprintf(`{
		"buffers": [{"byteLength": %d}],
		"bufferViews": [
			{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			{"buffer": 0, "byteOffset": 36, "byteLength": 6}
		],
		"accessors": [
			{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			{"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
		],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 1}]}]
	}`, len(bin))

	jsonChunk := []byte(doc)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	for len(bin)%4 != 0 {
		bin = append(bin, 0)
	}

	glb := make([]byte, 0, 12+16+len(jsonChunk)+len(bin))
	glb = binary.LittleEndian.AppendUint32(glb, 0x46546C67)
	glb = binary.LittleEndian.AppendUint32(glb, 2)
	glb = binary.LittleEndian.AppendUint32(glb, uint32(12+16+len(jsonChunk)+len(bin)))
	glb = binary.LittleEndian.AppendUint32(glb, uint32(len(jsonChunk)))
	glb = binary.LittleEndian.AppendUint32(glb, 0x4E4F534A)
	glb = append(glb, jsonChunk...)
	glb = binary.LittleEndian.AppendUint32(glb, uint32(len(bin)))
	glb = binary.LittleEndian.AppendUint32(glb, 0x004E4942)
	glb = append(glb, bin...)

	if err := os.WriteFile(path, glb, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestMeshLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.glb")
	writeTriangleGLB(t, path)

	loader := &MeshLoader{}
	res, err := loader.Load(path, resources.ResourceTypeMesh, map[string]string{"name": "triangle"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Name != "triangle" {
		t.Errorf("name: want triangle, have %s", res.Name)
	}
	meshes := res.Data.([]resources.MeshData)
	if len(meshes) != 1 {
		t.Fatalf("want 1 mesh, have %d", len(meshes))
	}
	if len(meshes[0].Vertices) != 3 || len(meshes[0].Indices) != 3 {
		t.Fatalf("want 3 vertices and 3 indices, have %d/%d", len(meshes[0].Vertices), len(meshes[0].Indices))
	}
	if res.DataSize != 3*12+3*4 {
		t.Errorf("data size: want 48, have %d", res.DataSize)
	}
}

func TestMeshCacheLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.amesh")
	meshes := []resources.MeshData{{
		Vertices: []math.Vec3{{}, {X: 1}, {Y: 1}},
		Indices:  []uint32{0, 1, 2},
	}}
	if err := fs.SaveMeshes(path, meshes); err != nil {
		t.Fatal(err)
	}

	loader := &MeshCacheLoader{}
	res, err := loader.Load(path, resources.ResourceTypeMeshCache, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Name != "triangle" {
		t.Errorf("name: want triangle, have %s", res.Name)
	}
	loaded := res.Data.([]resources.MeshData)
	if len(loaded) != 1 || len(loaded[0].Vertices) != 3 {
		t.Fatalf("unexpected cache contents: %+v", loaded)
	}
}

func TestProjectLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.aproject")
	if _, err := fs.NewProject(path, "demo"); err != nil {
		t.Fatal(err)
	}

	loader := &ProjectLoader{}
	res, err := loader.Load(path, resources.ResourceTypeProject, nil)
	if err != nil {
		t.Fatal(err)
	}
	project := res.Data.(*fs.Project)
	if project.Name != "demo" {
		t.Errorf("project name: want demo, have %s", project.Name)
	}
	if project.World == nil {
		t.Error("project world should never be nil")
	}
}
