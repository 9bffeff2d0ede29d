package gltf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/aether-engine/aether/engine/core"
)

// GLB container constants, little-endian on the wire.
const (
	glbMagic   uint32 = 0x46546C67
	glbVersion uint32 = 2

	chunkTypeJSON uint32 = 0x4E4F534A
	chunkTypeBIN  uint32 = 0x004E4942
)

// glbHeader is the fixed 12-byte envelope header.
type glbHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// glbChunkHeader prefixes every chunk payload.
type glbChunkHeader struct {
	Length    uint32
	ChunkType uint32
}

type glbChunk struct {
	chunkType uint32
	data      []byte
}

type glbChunks []glbChunk

func (c glbChunks) find(chunkType uint32) ([]byte, bool) {
	for _, chunk := range c {
		if chunk.chunkType == chunkType {
			return chunk.data, true
		}
	}
	return nil, false
}

// readChunks decodes the GLB envelope into its chunks. The declared total
// length is informational and not validated against the actual stream.
func readChunks(r io.Reader) (glbChunks, error) {
	var header glbHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("gltf: failed to read GLB header: %w", core.ErrFormat)
	}
	if header.Magic != glbMagic {
		return nil, fmt.Errorf("gltf: magic number 0x%08X is incorrect, file is likely not a GLB file: %w", header.Magic, core.ErrFormat)
	}
	if header.Version != glbVersion {
		return nil, fmt.Errorf("gltf: only glTF version 2 is supported, file declares version %d: %w", header.Version, core.ErrFormat)
	}

	var chunks glbChunks
	for {
		var chunk glbChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("gltf: failed to read GLB chunk header: %w", core.ErrFormat)
		}
		switch chunk.ChunkType {
		case chunkTypeJSON, chunkTypeBIN:
		default:
			return nil, fmt.Errorf("gltf: 0x%08X is not a valid GLB chunk type: %w", chunk.ChunkType, core.ErrFormat)
		}
		data := make([]byte, chunk.Length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("gltf: GLB chunk payload truncated: %w", core.ErrFormat)
		}
		chunks = append(chunks, glbChunk{chunkType: chunk.ChunkType, data: data})
	}

	return chunks, nil
}
