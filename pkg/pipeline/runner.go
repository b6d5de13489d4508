package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapescatter/pkg/cache"
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/observability"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
	"github.com/matzehuels/shapescatter/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the form and the server all use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete draw → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Seed, opts.Count, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	result = &Result{
		Seed:      opts.Seed,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats:     Stats{Bytes: make(map[string]int, len(opts.Formats))},
	}

	hash := opts.RequestHash()
	missing := r.lookup(ctx, hash, opts, result)
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		result.Stats.Figures = opts.Count
		r.Logger.Info("served from cache", "seed", opts.Seed, "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Draw
	drawStart := time.Now()
	rec, placements, err := r.Draw(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Recording = rec
	result.Placements = placements
	result.Stats.Figures = len(placements)
	result.Stats.Commands = len(rec.Commands)
	result.Stats.DrawTime = time.Since(drawStart)

	r.Logger.Info("drew scene",
		"seed", opts.Seed,
		"figures", len(placements),
		"commands", len(rec.Commands),
		"duration", result.Stats.DrawTime)

	// Stage 2: Encode
	encodeStart := time.Now()
	for _, format := range missing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := Encode(rec, format, opts)
		if err != nil {
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
			}
			return nil, err
		}
		result.Artifacts[format] = data
		result.Stats.Bytes[format] = len(data)

		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
		r.Logger.Debug("encoded artifact", "format", format, "bytes", len(data))
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// lookup fills result with cached artifacts and returns the formats that
// still need encoding.
func (r *Runner) lookup(ctx context.Context, hash string, opts Options, result *Result) []string {
	if opts.Refresh {
		return opts.Formats
	}
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			missing = append(missing, format)
			continue
		}
		observability.Cache().OnCacheHit(ctx, format)
		result.Artifacts[format] = data
		result.Stats.Bytes[format] = len(data)
		result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
	}
	return missing
}

// Draw renders the scene described by opts into a recording. Extra
// observers receive every placement. Callers that need to know the seed of
// a zero-seed run should call opts.ValidateAndSetDefaults first.
func (r *Runner) Draw(ctx context.Context, opts Options, observers ...scene.Observer) (*draw.Recorder, []scene.Placement, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Render()
	placements := make([]scene.Placement, 0, opts.Count)
	renderOpts := []scene.Option{
		scene.WithObserver(func(_ int, p scene.Placement) {
			placements = append(placements, p)
			hooks.OnFigure(ctx, p.Kind.String(), p.Size)
		}),
	}
	for _, obs := range observers {
		renderOpts = append(renderOpts, scene.WithObserver(obs))
	}

	rec := draw.NewRecorder()
	if err := scene.Render(rec, opts.Surface(), opts.Request(), scene.NewRand(opts.Seed), renderOpts...); err != nil {
		return nil, nil, err
	}
	return rec, placements, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
