package renderer

import (
	"fmt"
	"sync"

	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/resources"
)

// Geometry is the renderer-side handle for uploaded mesh data.
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The geometry name, usually the source asset name. */
	Name string
	/** @brief The number of vertices uploaded. */
	VertexCount uint32
	/** @brief The number of indices uploaded. */
	IndexCount uint32
}

// Backend is the boundary between the asset pipeline and the rendering
// subsystem. The pipeline hands materialized geometry over by value; the
// backend owns the GPU-resident copy from then on.
type Backend interface {
	Initialize(appName string) error
	Shutdown() error
	CreateGeometry(name string, data *resources.MeshData) (*Geometry, error)
	DestroyGeometry(geometry *Geometry) error
}

// HeadlessBackend accepts geometry uploads without a GPU behind them.
// It backs the asset inspector and the tests.
type HeadlessBackend struct {
	mutex      sync.Mutex
	geometries map[uint32]*Geometry
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{
		geometries: make(map[uint32]*Geometry),
	}
}

func (hb *HeadlessBackend) Initialize(appName string) error {
	core.LogInfo("renderer: headless backend initialized for %s", appName)
	return nil
}

func (hb *HeadlessBackend) Shutdown() error {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	for _, geometry := range hb.geometries {
		core.IdentifierReleaseID(geometry.ID)
	}
	hb.geometries = make(map[uint32]*Geometry)
	return nil
}

func (hb *HeadlessBackend) CreateGeometry(name string, data *resources.MeshData) (*Geometry, error) {
	if len(data.Vertices) == 0 {
		return nil, fmt.Errorf("renderer: geometry %s has no vertices", name)
	}

	geometry := &Geometry{
		ID:          core.IdentifierAcquireNewID(name),
		Name:        name,
		VertexCount: uint32(len(data.Vertices)),
		IndexCount:  uint32(len(data.Indices)),
	}

	hb.mutex.Lock()
	hb.geometries[geometry.ID] = geometry
	hb.mutex.Unlock()

	core.LogDebug("renderer: uploaded geometry %s (%d vertices, %d indices)", name, geometry.VertexCount, geometry.IndexCount)
	return geometry, nil
}

func (hb *HeadlessBackend) DestroyGeometry(geometry *Geometry) error {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	if _, exists := hb.geometries[geometry.ID]; !exists {
		return fmt.Errorf("renderer: geometry %d was never uploaded: %w", geometry.ID, core.ErrUnknown)
	}
	delete(hb.geometries, geometry.ID)
	return core.IdentifierReleaseID(geometry.ID)
}

// GeometryCount reports how many geometries are currently resident.
func (hb *HeadlessBackend) GeometryCount() int {
	hb.mutex.Lock()
	defer hb.mutex.Unlock()
	return len(hb.geometries)
}
