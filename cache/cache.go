package cache

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/lambdaminer/board"
	"github.com/domino14/lambdaminer/config"
)

// The cache holds objects that are expensive to build and shared between
// solvers, mainly parsed maps. A batch that names the same map file twice, or
// two files with identical contents, parses it once.

type cache struct {
	sync.Mutex
	objects map[string]any
}

type loadFunc func(cfg *config.Config, key string) (any, error)

// GlobalObjectCache is the process-wide object cache.
var GlobalObjectCache *cache

func (c *cache) load(cfg *config.Config, key string, loadFunc loadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(cfg, key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	if err := c.load(cfg, key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key], nil
}

func CreateGlobalObjectCache() {
	GlobalObjectCache = &cache{objects: make(map[string]any)}
}

func Load(cfg *config.Config, key string, loadFunc loadFunc) (any, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache()
	}
	return GlobalObjectCache.get(cfg, key, loadFunc)
}

// MapKey is the cache key for a map with the given contents.
func MapKey(data []byte) string {
	return fmt.Sprintf("map:%016x", xxhash.Sum64(data))
}

// LoadMapBytes parses a map, reusing an earlier parse of identical contents.
// Boards are immutable so the returned pointer may be shared freely.
func LoadMapBytes(cfg *config.Config, data []byte) (*board.Board, error) {
	obj, err := Load(cfg, MapKey(data), func(_ *config.Config, _ string) (any, error) {
		return board.Parse(bytes.NewReader(data))
	})
	if err != nil {
		return nil, err
	}
	return obj.(*board.Board), nil
}

// LoadMap reads and parses the map file at path.
func LoadMap(cfg *config.Config, path string) (*board.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := LoadMapBytes(cfg, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
