// Package warmup exercises sorters and normalizers before a server starts
// taking traffic.
package warmup

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// Config defines how hard the warmup runs.
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Number of terms in each sample list
	SampleSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		SampleSize:  100,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles warmup of registered components.
type Manager struct {
	logger      ports.Logger
	sorters     []ports.Sorter
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager.
func NewManager(logger ports.Logger, config Config) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterSorter adds a sorter to be warmed up.
func (wm *Manager) RegisterSorter(s ports.Sorter) {
	wm.sorters = append(wm.sorters, s)
}

// RegisterNormalizer adds a normalizer to be warmed up.
func (wm *Manager) RegisterNormalizer(n ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, n)
}

// WarmUp runs every registered component until the iterations are done or
// ctx (bounded by Duration) expires. It returns the number of completed
// iterations across all routines.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting warmup",
		"components", len(wm.sorters)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := SampleTerms(wm.config.SampleSize)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			done := 0
			for j := 0; j < wm.config.Iterations; j++ {
				if ctx.Err() != nil {
					break
				}
				normalized := make([]string, len(sample))
				for k, term := range sample {
					normalized[k] = term
					for _, n := range wm.normalizers {
						normalized[k] = n.Normalize(normalized[k])
					}
				}
				for _, s := range wm.sorters {
					_ = s.Sort(normalized)
				}
				done++
			}

			mu.Lock()
			total += done
			mu.Unlock()
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Warmup completed",
		"duration", time.Since(startTime),
		"iterations", total,
	)
	return total
}

var sampleWords = []string{
	"quick", "Brown", "fox", "jumps", "over", "the", "lazy", "dog",
	"key", "phrase", "extraction", "Sorting", "terms", "analysis",
}

// SampleTerms returns n deterministic terms in a scrambled order.
func SampleTerms(n int) []string {
	terms := make([]string, n)
	for i := range terms {
		word := sampleWords[(i*7)%len(sampleWords)]
		terms[i] = word + " " + strconv.Itoa((i*31)%97)
	}
	return terms
}
