package loaders

import (
	"github.com/aether-engine/aether/engine/fs"
	"github.com/aether-engine/aether/engine/resources"
)

// ProjectLoader loads .aproject scene descriptions. The resource data is
// a *fs.Project.
type ProjectLoader struct{}

func (pl *ProjectLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	project, err := fs.LoadProject(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     project.Name,
		FullPath: path,
		Data:     project,
	}, nil
}

func (pl *ProjectLoader) Unload(*resources.Resource) error {
	return nil
}
