package loaders

import (
	"path/filepath"
	"strings"

	"github.com/aether-engine/aether/engine/fs"
	"github.com/aether-engine/aether/engine/resources"
)

// MeshCacheLoader loads pre-materialized geometry from .amesh cache files,
// skipping the glTF pipeline entirely.
type MeshCacheLoader struct{}

func (mcl *MeshCacheLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	meshes, err := fs.LoadMeshes(path)
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

func (mcl *MeshCacheLoader) Unload(*resources.Resource) error {
	return nil
}

// resourceName prefers an explicit "name" param and falls back to the file
// name without its extension.
func resourceName(path string, params interface{}) string {
	if p, ok := params.(map[string]string); ok {
		if name, ok := p["name"]; ok {
			return name
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
