package scrubber

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"radmem/internal/redundancy"
)

// DefaultInterval is the sweep period used when the configured interval is
// not positive.
const DefaultInterval = 1 * time.Second

// Config holds scrubber settings.
type Config struct {
	// Interval is the sleep between sweeps. The sleep is cancellable, so
	// Stop returns within one interval plus any in-flight callback.
	Interval time.Duration `koanf:"interval"`
}

// Handle identifies a registration. Handles are never reused within a
// Scrubber's lifetime.
type Handle uint64

// RepairFunc repairs every redundant element found in the given byte
// range and reports whether any discrepancy was corrected. The region is
// the same slice passed at registration; the callback borrows it for the
// duration of the call.
type RepairFunc func(region []byte) bool

type region struct {
	handle Handle
	data   []byte
	size   int
	repair RepairFunc
}

// Scrubber owns a registry of memory regions and at most one background
// sweep goroutine. The zero value is not usable; construct with New.
//
// State machine: Idle --Start--> Running --Stop--> Idle. Start while
// running and Stop while idle are safe no-ops, and registrations are valid
// in either state.
type Scrubber struct {
	interval time.Duration
	logger   *zap.Logger
	metrics  *metrics

	mu      sync.Mutex
	regions []region
	nextID  Handle
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an idle scrubber. A nil logger disables logging; a nil
// registerer disables instrumentation. A non-positive interval falls back
// to DefaultInterval.
func New(cfg Config, logger *zap.Logger, reg prometheus.Registerer) *Scrubber {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scrubber{
		interval: cfg.Interval,
		logger:   logger,
		metrics:  newMetrics(reg),
	}
}

// Register adds a memory region with its repair callback and returns an
// opaque handle. The registry stores the (region, callback) pair
// type-erased; it does not interpret the bytes itself.
func (s *Scrubber) Register(data []byte, repair RepairFunc) Handle {
	return s.register(data, len(data), repair)
}

// RegisterCell registers a redundant container by wrapping its Repair
// method in a type-erased callback. size is the container's in-memory
// footprint in bytes, used only for accounting; pass memview.SizeOf for
// the concrete container type.
func (s *Scrubber) RegisterCell(cell redundancy.Repairer, size int) Handle {
	return s.register(nil, size, func([]byte) bool {
		return cell.Repair()
	})
}

func (s *Scrubber) register(data []byte, size int, repair RepairFunc) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.nextID
	s.nextID++
	s.regions = append(s.regions, region{handle: h, data: data, size: size, repair: repair})
	s.metrics.setRegions(len(s.regions))
	s.logger.Debug("region registered",
		zap.Uint64("handle", uint64(h)),
		zap.Int("size_bytes", size),
	)
	return h
}

// Unregister removes a registration. It returns false when the handle is
// unknown, including on double unregistration.
func (s *Scrubber) Unregister(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.regions {
		if s.regions[i].handle == h {
			s.regions = append(s.regions[:i], s.regions[i+1:]...)
			s.metrics.setRegions(len(s.regions))
			s.logger.Debug("region unregistered", zap.Uint64("handle", uint64(h)))
			return true
		}
	}
	return false
}

// Len returns the number of registered regions.
func (s *Scrubber) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regions)
}

// Start spawns the background sweep goroutine. Calling Start while already
// running is a no-op.
func (s *Scrubber) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.running = true

	go func() {
		defer close(done)
		s.loop(ctx)
	}()

	s.logger.Info("scrubber started", zap.Duration("interval", s.interval))
}

// Stop cancels the sweep loop and joins the goroutine before returning;
// no detached goroutine survives a Stop call. An in-flight repair callback
// is allowed to finish. Calling Stop while idle is a no-op. Stop joins the
// run it observed under the lock, so a Start that races with the tail of a
// Stop spawns a fresh run rather than one the Stop waits on.
func (s *Scrubber) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.running = false
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Info("scrubber stopped")
}

// Running reports whether the sweep goroutine is active.
func (s *Scrubber) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// ScrubOnce performs a single sweep synchronously on the caller's
// goroutine. It is valid in either state and does not perturb the
// background schedule.
func (s *Scrubber) ScrubOnce() {
	s.sweep()
}

func (s *Scrubber) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep snapshots the registration table under the lock, then invokes
// every callback outside it.
func (s *Scrubber) sweep() {
	s.mu.Lock()
	snapshot := make([]region, len(s.regions))
	copy(snapshot, s.regions)
	s.mu.Unlock()

	start := time.Now()
	repaired := 0
	for _, rg := range snapshot {
		if rg.repair(rg.data) {
			repaired++
		}
	}

	s.metrics.observeSweep(len(snapshot), repaired)
	s.logger.Debug("sweep complete",
		zap.Int("regions", len(snapshot)),
		zap.Int("repaired", repaired),
		zap.Duration("elapsed", time.Since(start)),
	)
}
