/*
Aether asset inspector. Loads a project and its glTF binary scenes through
the asset pipeline, uploads the materialized geometry to a headless renderer
backend and refreshes the .amesh caches.
*/
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aether-engine/aether/engine/assets"
	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/fs"
	"github.com/aether-engine/aether/engine/renderer"
	"github.com/aether-engine/aether/engine/resources"
	"github.com/aether-engine/aether/engine/scene"
)

func main() {
	manager, err := assets.NewAssetManager()
	if err != nil {
		core.LogFatal("failed to create asset manager: %v", err)
	}
	defer manager.Shutdown()

	if err := manager.Initialize("assets"); err != nil {
		core.LogFatal("failed to initialize asset manager: %v", err)
	}

	backend := renderer.NewHeadlessBackend()
	if err := backend.Initialize("Aether Inspector"); err != nil {
		core.LogFatal("failed to initialize renderer backend: %v", err)
	}
	defer backend.Shutdown()

	project := openProject(manager)

	names, err := meshNames()
	if err != nil {
		core.LogFatal("failed to list mesh assets: %v", err)
	}
	if len(os.Args) > 1 {
		names = os.Args[1:]
	}

	for _, name := range names {
		inspect(manager, backend, project, name)
	}

	if err := project.Save(filepath.Join("assets", project.Name+".aproject")); err != nil {
		core.LogError("failed to save project: %v", err)
	}
	core.LogInfo("inspected %d assets, %d geometries resident", len(names), backend.GeometryCount())
}

// openProject loads the first project file under assets/, creating a fresh
// one when none exists yet.
func openProject(manager *assets.AssetManager) *fs.Project {
	matches, _ := filepath.Glob("assets/*.aproject")
	if len(matches) == 0 {
		project, err := fs.NewProject(filepath.Join("assets", "untitled.aproject"), "untitled")
		if err != nil {
			core.LogFatal("failed to create project: %v", err)
		}
		return project
	}

	name := strings.TrimSuffix(filepath.Base(matches[0]), ".aproject")
	res, err := manager.LoadAsset(name, resources.ResourceTypeProject, nil)
	if err != nil {
		core.LogFatal("failed to load project %s: %v", name, err)
	}
	return res.Data.(*fs.Project)
}

func meshNames() ([]string, error) {
	matches, err := filepath.Glob("assets/meshes/*.glb")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(match), ".glb"))
	}
	return names, nil
}

// inspect runs one asset through the whole pipeline: load, materialize,
// upload, cache, and register in the project world.
func inspect(manager *assets.AssetManager, backend renderer.Backend, project *fs.Project, name string) {
	clock := core.NewClock()
	clock.Start()

	res, err := manager.LoadAsset(name, resources.ResourceTypeMesh, map[string]string{"name": name})
	if err != nil {
		core.LogError("failed to load %s: %v", name, err)
		return
	}
	meshes := res.Data.([]resources.MeshData)

	clock.Update()
	core.LogInfo("loaded %s: %d primitives, %d bytes in %.2fms", name, len(meshes), res.DataSize, clock.Elapsed()/1e6)

	for i := range meshes {
		if _, err := backend.CreateGeometry(res.Name, &meshes[i]); err != nil {
			core.LogError("failed to upload geometry for %s: %v", name, err)
		}
	}

	cachePath := filepath.Join("assets", "cache", name+".amesh")
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err == nil {
		if err := fs.SaveMeshes(cachePath, meshes); err != nil {
			core.LogError("failed to refresh mesh cache for %s: %v", name, err)
		}
	}

	registerInWorld(project.World, name)
}

// registerInWorld makes sure the project world has an entity referencing
// the asset, so a freshly created project picks up everything on disk.
func registerInWorld(world *scene.World, name string) {
	for i := range world.Entities {
		if mesh, ok := world.Entities[i].MeshName(); ok && mesh == name {
			return
		}
	}
	id := world.NewEntity(nil)
	world.Execute(id, func(e *scene.Entity) {
		e.AddComponent(scene.Component{Mesh: &name})
	})
}
