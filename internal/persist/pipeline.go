// Package persist keeps durable storage eventually consistent with the
// in-memory board.
package persist

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/model"
	"taskboard/internal/storage"
)

// Status is the save indicator surfaced to the UI.
type Status string

const (
	StatusSaved  Status = "saved"
	StatusSaving Status = "saving"
	StatusError  Status = "error"
)

const (
	// DefaultDebounce is the quiet period after the last mutation before
	// a save is dispatched.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultSaveTimeout bounds a single walk of the backend chain.
	DefaultSaveTimeout = 10 * time.Second
)

// Pipeline debounces saves of the latest board state across an ordered
// fallback chain of backends. Mutations never block on persistence; a
// failed chain surfaces as StatusError until a later save succeeds.
type Pipeline struct {
	chain       []storage.Backend
	debounce    time.Duration
	saveTimeout time.Duration
	clock       Clock
	logger      *log.Logger

	mu         sync.Mutex
	pending    Timer
	pendingSeq uint64
	generation uint64
	latest     model.Board
	status     Status
	wg         sync.WaitGroup
	closed     bool
}

func New(chain []storage.Backend, debounce time.Duration, clock Clock, logger *log.Logger) *Pipeline {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if clock == nil {
		clock = RealClock()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Pipeline{
		chain:       chain,
		debounce:    debounce,
		saveTimeout: DefaultSaveTimeout,
		clock:       clock,
		logger:      logger,
		status:      StatusSaved,
	}
}

// Load walks the chain and returns the first document any backend holds.
// Not-found and transport errors both fall through; if the chain is
// exhausted a default board is synthesized. Load never fails.
func (p *Pipeline) Load(ctx context.Context) model.Board {
	for _, backend := range p.chain {
		board, err := backend.Load(ctx)
		switch {
		case err == nil:
			if coerced := board.Normalize(); coerced > 0 {
				p.logger.WithFields(log.Fields{
					"backend": backend.Name(),
					"tasks":   coerced,
				}).Warn("coerced invalid task fields on load")
			}
			if err := board.CheckIntegrity(); err != nil {
				p.logger.WithField("backend", backend.Name()).
					WithError(err).Warn("loaded board failed integrity check, trying next backend")
				continue
			}
			p.logger.WithField("backend", backend.Name()).Info("board loaded")
			return *board
		case errors.Is(err, storage.ErrNotFound):
			continue
		default:
			p.logger.WithField("backend", backend.Name()).
				WithError(err).Warn("board load failed, trying next backend")
		}
	}
	p.logger.Info("no stored board found, synthesizing default")
	return model.DefaultBoard(p.clock.Now())
}

// Schedule registers the latest board state and (re)starts the debounce
// timer. The pending-save token is replaced, not rescheduled: the previous
// timer is stopped and a new one armed, so N mutations inside the quiet
// period collapse into one save of the Nth state.
func (p *Pipeline) Schedule(board model.Board) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.latest = board.Clone()
	if p.pending != nil && p.pending.Stop() {
		p.wg.Done()
	}
	// Each armed timer holds a WaitGroup token, released either here when
	// the timer is stopped before firing, or by fire after the save runs.
	// Close can then wait out a timer that fired but has not started yet.
	p.wg.Add(1)
	p.pendingSeq++
	seq := p.pendingSeq
	p.pending = p.clock.AfterFunc(p.debounce, func() { p.fire(seq) })
}

// Status returns the current save status.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Close stops the debounce timer and, if a save was pending, flushes it
// synchronously before returning.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	flush := false
	var snapshot model.Board
	var gen uint64
	if p.pending != nil {
		if p.pending.Stop() {
			flush = true
			snapshot = p.latest
			p.generation++
			gen = p.generation
			p.status = StatusSaving
		}
		p.pending = nil
	}
	p.mu.Unlock()

	if flush {
		p.save(snapshot, gen)
		p.wg.Done()
	}
	// If Stop reported false the timer already fired; its token is still
	// held, so Wait blocks until that save finishes instead of losing it.
	p.wg.Wait()
}

// fire runs on the timer goroutine when the quiet period elapses. It runs
// even after Close has begun: the armed timer's save must not be dropped,
// and Close waits for it through the timer's WaitGroup token.
func (p *Pipeline) fire(seq uint64) {
	p.mu.Lock()
	if seq == p.pendingSeq {
		p.pending = nil
	}
	snapshot := p.latest
	p.generation++
	gen := p.generation
	p.status = StatusSaving
	p.mu.Unlock()

	defer p.wg.Done()
	p.save(snapshot, gen)
}

// save walks the chain in order; the first backend that acknowledges the
// write wins. Exhaustion surfaces StatusError, which sticks until a later
// save succeeds.
func (p *Pipeline) save(board model.Board, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), p.saveTimeout)
	defer cancel()

	result := StatusError
	for _, backend := range p.chain {
		if err := backend.Save(ctx, &board); err != nil {
			p.logger.WithField("backend", backend.Name()).
				WithError(err).Warn("board save failed, trying next backend")
			continue
		}
		result = StatusSaved
		break
	}
	if result == StatusError {
		p.logger.Error("board save failed on every backend")
	}

	p.mu.Lock()
	// A slow save may finish after a later one was dispatched; only the
	// newest dispatched save decides the reported status.
	if gen == p.generation {
		p.status = result
	}
	p.mu.Unlock()
}
