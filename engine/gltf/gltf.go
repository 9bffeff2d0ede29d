package gltf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/math"
)

// Cross-entity relations are stored as typed indices into the owning Gltf
// aggregate, never as pointers. The indices are taken verbatim from the
// document during resolution; bounds are checked on first access so that
// graph construction stays a single linear pass.

type AccessorRef struct{ index int }

type BufferRef struct{ index int }

type BufferViewRef struct{ index int }

type MeshRef struct{ index int }

type NodeRef struct{ index int }

// Accessor is a typed, counted view into a buffer view.
type Accessor struct {
	BufferView    BufferViewRef
	ByteOffset    int
	ComponentType ComponentType
	Normalized    bool
	Count         int
	ElementType   ElementType
}

// ByteLength is the resolved size of the accessor's data:
// component width times element component count times element count.
func (a *Accessor) ByteLength() int {
	return a.ComponentType.Size() * a.ElementType.ComponentCount() * a.Count
}

// Buffer is the single binary blob backing all accessors, sourced from
// the GLB BIN chunk.
type Buffer struct {
	Length int
	Data   []byte
}

// BufferView is a contiguous byte range within the buffer.
type BufferView struct {
	Buffer     BufferRef
	ByteOffset int
	ByteLength int
}

// MeshPrimitive is one indexed drawable surface within a mesh.
type MeshPrimitive struct {
	Attributes map[string]AccessorRef
	Indices    *AccessorRef
}

type Mesh struct {
	Primitives []MeshPrimitive
}

// Node is a scene-graph node with its local transform already resolved.
type Node struct {
	Children []NodeRef
	Matrix   math.Mat4
	Mesh     *MeshRef
}

type Scene struct {
	Nodes []NodeRef
}

// Gltf is the fully resolved aggregate built once per load. It is immutable
// after Load returns and may be shared read-only across goroutines.
type Gltf struct {
	Accessors   []Accessor
	Buffer      Buffer
	BufferViews []BufferView
	Meshes      []Mesh
	Nodes       []Node
	Scenes      []Scene
}

// Load reads and resolves a binary glTF file. A Gltf is either fully valid
// and fully resolved or the load fails entirely; there is no partial result.
func Load(path string) (*Gltf, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Decode(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("gltf: failed to load %s: %w", path, err)
	}
	core.LogDebug("gltf: loaded %s (%d meshes, %d nodes, %d scenes)", path, len(g.Meshes), len(g.Nodes), len(g.Scenes))
	return g, nil
}

// Decode parses and resolves a GLB byte stream.
func Decode(r io.Reader) (*Gltf, error) {
	chunks, err := readChunks(r)
	if err != nil {
		return nil, err
	}

	jsonChunk, ok := chunks.find(chunkTypeJSON)
	if !ok {
		return nil, fmt.Errorf("gltf: GLB file has no JSON chunk: %w", core.ErrFormat)
	}
	binChunk, ok := chunks.find(chunkTypeBIN)
	if !ok {
		return nil, fmt.Errorf("gltf: GLB file has no binary chunk: %w", core.ErrFormat)
	}

	var doc document
	if err := json.Unmarshal(jsonChunk, &doc); err != nil {
		return nil, fmt.Errorf("gltf: failed to parse JSON chunk: %v: %w", err, core.ErrFormat)
	}

	g := &Gltf{}
	if err := g.loadBuffer(&doc, binChunk); err != nil {
		return nil, err
	}
	if err := g.loadBufferViews(&doc); err != nil {
		return nil, err
	}
	if err := g.loadAccessors(&doc); err != nil {
		return nil, err
	}
	g.loadMeshes(&doc)
	g.loadNodes(&doc)
	g.loadScenes(&doc)

	return g, nil
}

// loadBuffer binds the single declared buffer to the BIN chunk payload.
// External .bin references are not implemented.
func (g *Gltf) loadBuffer(doc *document, binChunk []byte) error {
	if len(doc.Buffers) > 1 {
		return fmt.Errorf("gltf: only a single buffer sourced from the GLB binary chunk is supported, file declares %d: %w", len(doc.Buffers), core.ErrUnsupported)
	}
	length := len(binChunk)
	if len(doc.Buffers) == 1 {
		if doc.Buffers[0].URI != nil {
			return fmt.Errorf("gltf: external buffer URIs are not supported: %w", core.ErrUnsupported)
		}
		length = doc.Buffers[0].ByteLength
	}
	g.Buffer = Buffer{Length: length, Data: binChunk}
	return nil
}

func (g *Gltf) loadBufferViews(doc *document) error {
	g.BufferViews = make([]BufferView, 0, len(doc.BufferViews))
	for i, view := range doc.BufferViews {
		if view.ByteOffset < 0 || view.ByteLength < 0 {
			return fmt.Errorf("gltf: buffer view %d declares a negative byte range: %w", i, core.ErrFormat)
		}
		g.BufferViews = append(g.BufferViews, BufferView{
			Buffer:     BufferRef{view.Buffer},
			ByteOffset: view.ByteOffset,
			ByteLength: view.ByteLength,
		})
	}
	return nil
}

func (g *Gltf) loadAccessors(doc *document) error {
	g.Accessors = make([]Accessor, 0, len(doc.Accessors))
	for i, accessor := range doc.Accessors {
		if accessor.ByteOffset < 0 || accessor.Count < 0 {
			return fmt.Errorf("gltf: accessor %d declares a negative byte offset or count: %w", i, core.ErrFormat)
		}
		componentType, err := NewComponentType(accessor.ComponentType)
		if err != nil {
			return err
		}
		elementType, err := NewElementType(accessor.Type)
		if err != nil {
			return err
		}
		g.Accessors = append(g.Accessors, Accessor{
			BufferView:    BufferViewRef{accessor.BufferView},
			ByteOffset:    accessor.ByteOffset,
			ComponentType: componentType,
			Normalized:    accessor.Normalized,
			Count:         accessor.Count,
			ElementType:   elementType,
		})
	}
	return nil
}

func (g *Gltf) loadMeshes(doc *document) {
	g.Meshes = make([]Mesh, 0, len(doc.Meshes))
	for _, mesh := range doc.Meshes {
		primitives := make([]MeshPrimitive, 0, len(mesh.Primitives))
		for _, primitive := range mesh.Primitives {
			attributes := make(map[string]AccessorRef, len(primitive.Attributes))
			for name, index := range primitive.Attributes {
				attributes[name] = AccessorRef{index}
			}
			var indices *AccessorRef
			if primitive.Indices != nil {
				indices = &AccessorRef{*primitive.Indices}
			}
			primitives = append(primitives, MeshPrimitive{
				Attributes: attributes,
				Indices:    indices,
			})
		}
		g.Meshes = append(g.Meshes, Mesh{Primitives: primitives})
	}
}

func (g *Gltf) loadNodes(doc *document) {
	g.Nodes = make([]Node, 0, len(doc.Nodes))
	for _, node := range doc.Nodes {
		children := make([]NodeRef, 0, len(node.Children))
		for _, child := range node.Children {
			children = append(children, NodeRef{child})
		}
		var mesh *MeshRef
		if node.Mesh != nil {
			mesh = &MeshRef{*node.Mesh}
		}
		g.Nodes = append(g.Nodes, Node{
			Children: children,
			Matrix:   nodeMatrix(&node),
			Mesh:     mesh,
		})
	}
}

func (g *Gltf) loadScenes(doc *document) {
	g.Scenes = make([]Scene, 0, len(doc.Scenes))
	for _, scene := range doc.Scenes {
		nodes := make([]NodeRef, 0, len(scene.Nodes))
		for _, node := range scene.Nodes {
			nodes = append(nodes, NodeRef{node})
		}
		g.Scenes = append(g.Scenes, Scene{Nodes: nodes})
	}
}

// nodeMatrix resolves a node's local transform. An explicit column-major
// matrix wins outright; otherwise the transform is composed from whichever
// TRS components are present, applied scale first, then rotation, then
// translation.
func nodeMatrix(node *docNode) math.Mat4 {
	if node.Matrix != nil {
		return math.NewMat4FromArray(*node.Matrix)
	}

	matrix := math.NewMat4Identity()
	if node.Scale != nil {
		s := node.Scale
		matrix = matrix.Mul(math.NewMat4Scale(math.Vec3{X: s[0], Y: s[1], Z: s[2]}))
	}
	if node.Rotation != nil {
		r := node.Rotation
		matrix = matrix.Mul(math.Quaternion{X: r[0], Y: r[1], Z: r[2], W: r[3]}.ToMat4())
	}
	if node.Translation != nil {
		t := node.Translation
		matrix = matrix.Mul(math.NewMat4Translation(math.Vec3{X: t[0], Y: t[1], Z: t[2]}))
	}
	return matrix
}

// Get dereferences the mesh index against its owning aggregate.
func (r MeshRef) Get(g *Gltf) (*Mesh, error) {
	if r.index < 0 || r.index >= len(g.Meshes) {
		return nil, fmt.Errorf("gltf: mesh index %d out of range (have %d meshes): %w", r.index, len(g.Meshes), core.ErrOutOfBounds)
	}
	return &g.Meshes[r.index], nil
}

// Get dereferences the node index against its owning aggregate.
func (r NodeRef) Get(g *Gltf) (*Node, error) {
	if r.index < 0 || r.index >= len(g.Nodes) {
		return nil, fmt.Errorf("gltf: node index %d out of range (have %d nodes): %w", r.index, len(g.Nodes), core.ErrOutOfBounds)
	}
	return &g.Nodes[r.index], nil
}

// Data slices the exact byte range the accessor describes out of the
// single owned buffer. This is the first point at which an invalid
// reference produced during resolution can surface, and it does so as an
// error, never a panic. The returned slice aliases the buffer and must be
// treated as read-only.
func (r AccessorRef) Data(g *Gltf) ([]byte, error) {
	if r.index < 0 || r.index >= len(g.Accessors) {
		return nil, fmt.Errorf("gltf: accessor index %d out of range (have %d accessors): %w", r.index, len(g.Accessors), core.ErrOutOfBounds)
	}
	accessor := &g.Accessors[r.index]

	viewIndex := accessor.BufferView.index
	if viewIndex < 0 || viewIndex >= len(g.BufferViews) {
		return nil, fmt.Errorf("gltf: buffer view index %d out of range (have %d buffer views): %w", viewIndex, len(g.BufferViews), core.ErrOutOfBounds)
	}
	view := &g.BufferViews[viewIndex]

	offset := accessor.ByteOffset + view.ByteOffset
	length := accessor.ByteLength()
	if offset < 0 || length < 0 || offset+length > len(g.Buffer.Data) {
		return nil, fmt.Errorf("gltf: accessor %d spans [%d, %d) but the buffer holds %d bytes: %w", r.index, offset, offset+length, len(g.Buffer.Data), core.ErrOutOfBounds)
	}
	return g.Buffer.Data[offset : offset+length], nil
}
