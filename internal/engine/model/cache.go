package model

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/texture"
)

// textureCache deduplicates texture uploads by path. Failed loads are cached
// as handle 0 so every mesh referencing them gets the same answer.
type textureCache struct {
	mu    sync.Mutex
	dev   gpu.Device
	flipV bool
	ids   map[string]uint32
	order []string
}

func newTextureCache(dev gpu.Device, flipV bool) *textureCache {
	return &textureCache{dev: dev, flipV: flipV, ids: make(map[string]uint32)}
}

// get returns the handle for key, decoding and uploading on first use.
// Only unsupported pixel formats are reported as errors.
func (c *textureCache) get(key string, decode func() (*texture.Image, error)) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.ids[key]; ok {
		return id, nil
	}

	id, err := c.load(key, decode)
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	c.order = append(c.order, key)
	return id, nil
}

func (c *textureCache) load(key string, decode func() (*texture.Image, error)) (uint32, error) {
	img, err := decode()
	if err != nil {
		if errors.Is(err, texture.ErrUnsupportedFormat) {
			return 0, err
		}
		log().Warn("texture unavailable", zap.String("path", key), zap.Error(err))
		return 0, nil
	}
	if c.flipV {
		img.FlipVertical()
	}
	id, err := c.dev.CreateTexture(img)
	if err != nil {
		return 0, err
	}
	log().Debug("texture uploaded", zap.String("path", key),
		zap.Int("width", img.Width), zap.Int("height", img.Height), zap.Int("channels", img.Channels))
	return id, nil
}

// len returns the number of cached paths, including failed ones.
func (c *textureCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

// release deletes every uploaded texture.
func (c *textureCache) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.order {
		if id := c.ids[key]; id != 0 {
			c.dev.DeleteTexture(id)
		}
	}
	c.ids = make(map[string]uint32)
	c.order = nil
}
