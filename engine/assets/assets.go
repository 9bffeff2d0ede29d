package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aether-engine/aether/engine/assets/loaders"
	"github.com/aether-engine/aether/engine/containers"
	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/resources"
)

// How many modified-asset paths are remembered between reload sweeps.
const reloadQueueSize = 64

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

type AssetManager struct {
	assets    map[string]AssetInfo
	loaders   map[resources.ResourceType]Loader
	loaderIDs map[resources.ResourceType]uint32
	reloads   *containers.RingQueue

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan fsnotify.Event
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:    make(map[string]AssetInfo),
		loaders:   make(map[resources.ResourceType]Loader),
		loaderIDs: make(map[resources.ResourceType]uint32),
		reloads:   containers.NewRingQueue(reloadQueueSize),
		fsnotify:  fsWatch,
		events:    make(chan fsnotify.Event),
		errors:    make(chan error),
		done:      make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	go am.start()

	if err := am.addRecursive(assetsDir); err != nil {
		return err
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeMesh, &loaders.MeshLoader{})
	am.registerLoader(resources.ResourceTypeMeshCache, &loaders.MeshCacheLoader{})
	am.registerLoader(resources.ResourceTypeProject, &loaders.ProjectLoader{})

	return nil
}

// Add starts watching the named file or directory (non-recursively).
func (am *AssetManager) add(name string) error {
	if am.isClosed {
		return errors.New("fsnotify instance already closed")
	}
	return am.fsnotify.Add(name)
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("fsnotify instance already closed")
	}
	if err := am.watchRecursive(name, false); err != nil {
		return err
	}
	return nil
}

// Remove stops watching the the named file or directory (non-recursively).
func (am *AssetManager) remove(name string) error {
	return am.fsnotify.Remove(name)
}

// RemoveRecursive stops watching the named directory and all sub-directories.
func (am *AssetManager) removeRecursive(name string) error {
	if err := am.watchRecursive(name, true); err != nil {
		return err
	}
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
	am.loaderIDs[assetType] = core.IdentifierAcquireNewID(loader)
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(filename string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	var path string
	switch resourceType {
	case resources.ResourceTypeMesh:
		path = fmt.Sprintf("assets/meshes/%s.glb", filename)
	case resources.ResourceTypeMeshCache:
		path = fmt.Sprintf("assets/cache/%s.amesh", filename)
	case resources.ResourceTypeProject:
		path = fmt.Sprintf("assets/%s.aproject", filename)
	default:
		err := fmt.Errorf("unknown resource type")
		return nil, err
	}

	am.mutex.RLock()
	asset, exists := am.assets[path]
	am.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s", path)
	}
	// Load or reload asset from disk if necessary
	asset.LastLoaded = time.Now()
	am.mutex.Lock()
	am.assets[path] = asset // Update the loaded time
	am.mutex.Unlock()

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %d", asset.Type)
	}

	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, err
	}
	res.LoaderID = am.loaderIDs[asset.Type]
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *resources.Resource) error {
	for assetType, id := range am.loaderIDs {
		if id == asset.LoaderID {
			return am.loaders[assetType].Unload(asset)
		}
	}
	return nil
}

// Events exposes the raw watcher events, e.g. for editor-side hot reload.
func (am *AssetManager) Events() <-chan fsnotify.Event {
	return am.events
}

// Errors exposes watcher errors to subscribers.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Shutdown stops the watcher goroutine and closes the event channels.
func (am *AssetManager) Shutdown() {
	if am.isClosed {
		return
	}
	am.isClosed = true
	close(am.done)
}

func (am *AssetManager) start() {
	for {
		select {

		case e := <-am.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
				am.queueReload(e.Name)
			}
			// Can't stat a deleted directory, so just pretend that it's always a directory and
			// try to remove from the watch list... we really have no clue if it's a directory or not...
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}
			// Forward to any subscriber without ever stalling the watcher.
			select {
			case am.events <- e:
			default:
			}

		case e := <-am.fsnotify.Errors:
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	wd = wd + "/" // add trailing slash
	err = filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				if err = am.fsnotify.Remove(walkPath); err != nil {
					return err
				}
			} else {
				if err = am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
		} else {
			p := strings.TrimPrefix(walkPath, wd)
			am.handleFileEvent(p)
		}
		return nil
	})
	return err
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return
	}
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

// queueReload remembers a modified asset for the next reload sweep,
// discarding the oldest entry when the queue is full.
func (am *AssetManager) queueReload(path string) {
	if determineAssetType(path) == resources.ResourceTypeNone {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if am.reloads.IsFull() {
		am.reloads.Dequeue()
	}
	am.reloads.Enqueue(path)
}

// NextReload pops the next modified asset path, if any.
func (am *AssetManager) NextReload() (string, bool) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	value, err := am.reloads.Dequeue()
	if err != nil {
		return "", false
	}
	return value.(string), true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) resources.ResourceType {
	switch filepath.Ext(path) {
	case ".glb":
		return resources.ResourceTypeMesh
	case ".amesh":
		return resources.ResourceTypeMeshCache
	case ".aproject":
		return resources.ResourceTypeProject
	default:
		return resources.ResourceTypeNone
	}
}
