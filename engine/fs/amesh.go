package fs

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"github.com/aether-engine/aether/engine/core"
	"github.com/aether-engine/aether/engine/math"
	"github.com/aether-engine/aether/engine/resources"
)

// The .amesh format caches meshes already materialized from a source asset
// so that startup can skip the whole glTF pipeline. A small uncompressed
// header identifies the file; the geometry payload is lz4-compressed, each
// count prefix followed by its raw little-endian data.
const (
	ameshMagic   uint32 = 0x48534D41 // "AMSH"
	ameshVersion uint32 = 1
)

type ameshHeader struct {
	Magic   uint32
	Version uint32
}

// SaveMeshes writes the materialized meshes to an .amesh cache file.
func SaveMeshes(path string, meshes []resources.MeshData) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, ameshHeader{Magic: ameshMagic, Version: ameshVersion}); err != nil {
		return err
	}

	zw := lz4.NewWriter(w)
	if err := writeMeshes(zw, meshes); err != nil {
		return fmt.Errorf("fs: failed to write mesh cache %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return w.Flush()
}

// LoadMeshes reads the meshes cached in an .amesh file.
func LoadMeshes(path string) ([]resources.MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var header ameshHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("fs: %s is not an .amesh file: %w", path, core.ErrFormat)
	}
	if header.Magic != ameshMagic {
		return nil, fmt.Errorf("fs: %s has magic 0x%08X, not an .amesh file: %w", path, header.Magic, core.ErrFormat)
	}
	if header.Version != ameshVersion {
		return nil, fmt.Errorf("fs: mesh cache version %d is not supported: %w", header.Version, core.ErrUnsupported)
	}

	meshes, err := readMeshes(lz4.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("fs: failed to read mesh cache %s: %v: %w", path, err, core.ErrFormat)
	}
	return meshes, nil
}

func writeMeshes(w io.Writer, meshes []resources.MeshData) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(meshes))); err != nil {
		return err
	}
	for _, mesh := range meshes {
		counts := [2]uint32{uint32(len(mesh.Vertices)), uint32(len(mesh.Indices))}
		if err := binary.Write(w, binary.LittleEndian, counts); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, mesh.Vertices); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, mesh.Indices); err != nil {
			return err
		}
	}
	return nil
}

func readMeshes(r io.Reader) ([]resources.MeshData, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	meshes := make([]resources.MeshData, 0, count)
	for i := uint32(0); i < count; i++ {
		var counts [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
			return nil, err
		}
		mesh := resources.MeshData{
			Vertices: make([]math.Vec3, counts[0]),
			Indices:  make([]uint32, counts[1]),
		}
		if err := binary.Read(r, binary.LittleEndian, mesh.Vertices); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, mesh.Indices); err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}
