package resources

import "github.com/aether-engine/aether/engine/math"

type ResourceType int

/** @brief Marks a file the asset manager has no loader for. */
const ResourceTypeNone ResourceType = -1

/** @brief Pre-defined resource types. */
const (
	/** @brief Text resource type. */
	ResourceTypeText ResourceType = iota
	/** @brief Binary resource type. */
	ResourceTypeBinary
	/** @brief Mesh resource type (a glTF binary scene). */
	ResourceTypeMesh
	/** @brief Mesh cache resource type (.amesh, pre-materialized geometry). */
	ResourceTypeMeshCache
	/** @brief Project resource type (.aproject scene description). */
	ResourceTypeProject
	/** @brief Custom resource type. Used by loaders outside the core engine. */
	ResourceTypeCustom
)

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The identifier of the loader which handles this resource. */
	LoaderID uint32
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief Flat geometry for a single drawable primitive, ready for upload
 * to the renderer backend. One MeshData is produced per glTF primitive;
 * multi-primitive meshes yield one MeshData each, never a merged one.
 */
type MeshData struct {
	/** @brief The vertex positions, one Vec3 per vertex. */
	Vertices []math.Vec3
	/** @brief The vertex indices, widened to 32 bits. */
	Indices []uint32
}
