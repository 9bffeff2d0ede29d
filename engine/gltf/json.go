package gltf

// Declarative document mirroring the glTF 2.0 JSON schema subset this
// loader understands. Cross-entity references stay raw array indices here;
// resolution happens in a later pass. Unknown fields are ignored, absent
// arrays stay empty.

type document struct {
	Accessors   []docAccessor   `json:"accessors"`
	Buffers     []docBuffer     `json:"buffers"`
	BufferViews []docBufferView `json:"bufferViews"`
	Meshes      []docMesh       `json:"meshes"`
	Nodes       []docNode       `json:"nodes"`
	Scenes      []docScene      `json:"scenes"`
}

type docAccessor struct {
	BufferView    int    `json:"bufferView"`
	ByteOffset    int    `json:"byteOffset"`
	ComponentType uint32 `json:"componentType"`
	Normalized    bool   `json:"normalized"`
	Count         int    `json:"count"`
	Type          string `json:"type"`
}

type docBuffer struct {
	ByteLength int     `json:"byteLength"`
	URI        *string `json:"uri"`
}

type docBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

type docPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices"`
}

type docMesh struct {
	Primitives []docPrimitive `json:"primitives"`
}

type docNode struct {
	Children    []int         `json:"children"`
	Matrix      *[16]float32  `json:"matrix"`
	Translation *[3]float32   `json:"translation"`
	Rotation    *[4]float32   `json:"rotation"`
	Scale       *[3]float32   `json:"scale"`
	Mesh        *int          `json:"mesh"`
}

type docScene struct {
	Nodes []int `json:"nodes"`
}
