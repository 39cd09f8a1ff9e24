package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phiberoptik112/digital-ant-farm/camera"
	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

// gradientTexSize is the square size of one cached gradient texture.
// Textures scale at draw time, so this bounds quality, not radius.
const gradientTexSize = 64

// Bucket widths for the cache key. Deposits within the same bucket
// share a texture, which keeps the variant count far below the cap.
const (
	strengthStep = 10.0
	radiusStep   = 8.0
)

// kindColors maps deposit kinds to their display tint.
var kindColors = [pheromone.KindCount]rl.Color{
	{R: 80, G: 200, B: 120, A: 255}, // food trail
	{R: 100, G: 150, B: 230, A: 255}, // home trail
	{R: 225, G: 75, B: 60, A: 255},  // danger
}

// gradientKey identifies one pre-rendered gradient variant.
type gradientKey struct {
	kind        pheromone.Kind
	strength    uint8 // strength / strengthStep
	radius      uint8 // radius / radiusStep
	qualityHalf uint8 // quality in half steps
}

// DepositRenderer draws deposits as soft gradient circles. Variants
// are pre-rendered into a texture cache with FIFO eviction, since a
// busy field repeats the same few strength/quality combinations
// thousands of times per frame.
type DepositRenderer struct {
	cache   map[gradientKey]rl.RenderTexture2D
	order   []gradientKey // insertion order, oldest first
	maxSize int
	rings   int

	hits, misses uint64
}

// NewDepositRenderer creates the renderer with cache limits from config.
func NewDepositRenderer() *DepositRenderer {
	rcfg := &config.Cfg().Render
	maxSize := rcfg.DepositCacheSize
	if maxSize < 1 {
		maxSize = 1
	}
	rings := rcfg.GradientRings
	if rings < 1 {
		rings = 1
	}
	return &DepositRenderer{
		cache:   make(map[gradientKey]rl.RenderTexture2D, maxSize),
		maxSize: maxSize,
		rings:   rings,
	}
}

// Draw renders all visible deposits through the camera.
func (r *DepositRenderer) Draw(deposits []pheromone.Deposit, cam *camera.Camera) {
	zoom := cam.Zoom
	for i := range deposits {
		d := &deposits[i]
		if !cam.IsVisible(d.X, d.Y, d.Radius) {
			continue
		}

		tex := r.gradient(keyFor(d))
		sx, sy := cam.WorldToScreen(d.X, d.Y)
		size := d.Radius * 2 * zoom

		src := rl.Rectangle{Width: gradientTexSize, Height: -gradientTexSize}
		dst := rl.Rectangle{X: sx - size/2, Y: sy - size/2, Width: size, Height: size}
		rl.DrawTexturePro(tex.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	}
}

// keyFor buckets a deposit's visual parameters.
func keyFor(d *pheromone.Deposit) gradientKey {
	q := d.Quality * 2
	if q > 8 {
		q = 8
	}
	return gradientKey{
		kind:        d.Kind,
		strength:    uint8(d.Strength / strengthStep),
		radius:      uint8(d.Radius / radiusStep),
		qualityHalf: uint8(q),
	}
}

// gradient returns the cached texture for a key, rendering it on miss.
func (r *DepositRenderer) gradient(key gradientKey) rl.RenderTexture2D {
	if tex, ok := r.cache[key]; ok {
		r.hits++
		return tex
	}
	r.misses++

	if len(r.order) >= r.maxSize {
		oldest := r.order[0]
		r.order = r.order[1:]
		rl.UnloadRenderTexture(r.cache[oldest])
		delete(r.cache, oldest)
	}

	tex := r.render(key)
	r.cache[key] = tex
	r.order = append(r.order, key)
	return tex
}

// render pre-draws one gradient variant: stacked rings of equal alpha
// approximate the linear falloff, brightest where they all overlap.
func (r *DepositRenderer) render(key gradientKey) rl.RenderTexture2D {
	tex := rl.LoadRenderTexture(gradientTexSize, gradientTexSize)

	color := kindColors[int(key.kind)%pheromone.KindCount]
	color.A = ringAlpha(key, r.rings)

	rl.BeginTextureMode(tex)
	rl.ClearBackground(rl.Blank)
	center := rl.Vector2{X: gradientTexSize / 2, Y: gradientTexSize / 2}
	for ring := r.rings; ring >= 1; ring-- {
		radius := float32(gradientTexSize) / 2 * float32(ring) / float32(r.rings)
		rl.DrawCircleV(center, radius, color)
	}
	rl.EndTextureMode()

	return tex
}

// ringAlpha spreads the bucket's total alpha across the rings so the
// stacked center reaches strength x quality brightness.
func ringAlpha(key gradientKey, rings int) uint8 {
	ref := float32(key.kind.Defaults().Strength)
	if ref <= 0 {
		ref = 1
	}
	strength := (float32(key.strength) + 0.5) * strengthStep
	s := strength / ref
	if s > 1 {
		s = 1
	}

	quality := float32(key.qualityHalf) / 2
	qf := 0.6 + 0.2*quality
	if qf > 1.2 {
		qf = 1.2
	}

	total := s * qf * 170
	if total > 255 {
		total = 255
	}
	a := total / float32(rings)
	if a < 1 {
		a = 1
	}
	return uint8(a)
}

// CacheStats returns gradient cache hit and miss counts.
func (r *DepositRenderer) CacheStats() (hits, misses uint64) {
	return r.hits, r.misses
}

// HitRate returns the fraction of lookups served from the cache.
func (r *DepositRenderer) HitRate() float64 {
	total := r.hits + r.misses
	if total == 0 {
		return 0
	}
	return float64(r.hits) / float64(total)
}

// Unload frees all cached textures.
func (r *DepositRenderer) Unload() {
	for _, tex := range r.cache {
		rl.UnloadRenderTexture(tex)
	}
	r.cache = make(map[gradientKey]rl.RenderTexture2D)
	r.order = nil
}
