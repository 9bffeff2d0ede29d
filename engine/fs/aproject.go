package fs

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/scene"
)

// Project is the persistent description of an editing session: a name and
// the scene-graph world, stored as a TOML .aproject file.
type Project struct {
	Name  string       `toml:"name"`
	World *scene.World `toml:"world"`
}

// NewProject creates an empty project and immediately persists it.
func NewProject(path, name string) (*Project, error) {
	project := &Project{
		Name:  name,
		World: scene.NewWorld(),
	}
	if err := project.Save(path); err != nil {
		return nil, err
	}
	return project, nil
}

// LoadProject reads an .aproject file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	project := &Project{}
	if err := toml.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("fs: failed to parse project file %s: %v: %w", path, err, core.ErrFormat)
	}
	if project.World == nil {
		project.World = scene.NewWorld()
	}
	core.LogDebug("fs: loaded project %q (%d entities)", project.Name, len(project.World.Entities))
	return project, nil
}

// Save persists the project to the given path.
func (p *Project) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("fs: failed to serialize project %q: %v", p.Name, err)
	}
	return os.WriteFile(path, data, 0o644)
}
