package board

import (
	"context"
	"strconv"

	"github.com/corentings/chess/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"annochess/internal/stats"
)

// Cache keeps encoded PNGs of recently drawn positions, keyed by FEN.
type Cache struct {
	renderer *Renderer
	images   *lru.Cache[string, []byte]
	stats    stats.Collector
}

// NewCache wraps r with an LRU cache holding up to capacity images.
func NewCache(r *Renderer, capacity int, c stats.Collector) (*Cache, error) {
	if capacity <= 0 {
		capacity = 256
	}
	images, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{renderer: r, images: images, stats: stats.OrNoop(c)}, nil
}

// PNG returns the image for the position fen, drawing b on a miss.
func (c *Cache) PNG(ctx context.Context, fen string, b *chess.Board) ([]byte, error) {
	key := fen + "|" + strconv.Itoa(c.renderer.SquareSize)
	if img, ok := c.images.Get(key); ok {
		c.stats.IncCounter(stats.MetricBoardCacheHits, 1)
		return img, nil
	}
	c.stats.IncCounter(stats.MetricBoardCacheMisses, 1)
	img, err := c.renderer.RenderPNG(ctx, b)
	if err != nil {
		return nil, err
	}
	c.images.Add(key, img)
	return img, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	return c.images.Len()
}
