package loaders

import (
	"github.com/aether-engine/aether/engine/gltf"
	"github.com/aether-engine/aether/engine/resources"
)

// MeshLoader loads glTF binary scenes and materializes every mesh
// primitive into flat geometry. The resource data is a []resources.MeshData.
type MeshLoader struct{}

func (ml *MeshLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	g, err := gltf.Load(path)
	if err != nil {
		return nil, err
	}
	meshes, err := g.ToMeshes()
	if err != nil {
		return nil, err
	}

	var size uint64
	for _, mesh := range meshes {
		size += uint64(len(mesh.Vertices))*12 + uint64(len(mesh.Indices))*4
	}

	return &resources.Resource{
		Name:     resourceName(path, params),
		FullPath: path,
		DataSize: size,
		Data:     meshes,
	}, nil
}

func (ml *MeshLoader) Unload(*resources.Resource) error {
	return nil
}
