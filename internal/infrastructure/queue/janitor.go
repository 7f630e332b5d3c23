package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/spandanmajumder/portfolio/internal/core/ports"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
	removeTimeout  = 30 * time.Second
)

// Janitor removes orphaned uploads in the background. Names are sharded by
// hash so repeated requests for one file are handled by one worker in order.
type Janitor struct {
	workers []chan string
	wg      sync.WaitGroup
	store   ports.FileStore
	log     zerolog.Logger
}

// NewJanitor creates a Janitor with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewJanitor(numWorkers int, store ports.FileStore, log zerolog.Logger) *Janitor {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	j := &Janitor{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range j.workers {
		j.workers[i] = make(chan string, channelBuffer)
	}
	return j
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after finishing whatever is already queued.
func (j *Janitor) Start(ctx context.Context) {
	for i, ch := range j.workers {
		j.wg.Add(1)
		go func() {
			defer j.wg.Done()
			j.runWorker(ctx, i, ch)
		}()
	}
}

// Wait blocks until every worker has stopped.
func (j *Janitor) Wait() { j.wg.Wait() }

// Enqueue schedules name for removal. It never blocks: false means the
// worker's buffer is full and the caller should remove the file itself.
func (j *Janitor) Enqueue(name string) bool {
	select {
	case j.workers[j.shardIndex(name)] <- name:
		return true
	default:
		return false
	}
}

// shardIndex maps a stored name deterministically to a worker index.
func (j *Janitor) shardIndex(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % uint32(len(j.workers)))
}

func (j *Janitor) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			j.drain(id, ch)
			return
		case name := <-ch:
			j.remove(context.WithoutCancel(ctx), id, name)
		}
	}
}

func (j *Janitor) drain(id int, ch <-chan string) {
	for {
		select {
		case name := <-ch:
			j.remove(context.Background(), id, name)
		default:
			return
		}
	}
}

func (j *Janitor) remove(ctx context.Context, id int, name string) {
	ctx, cancel := context.WithTimeout(ctx, removeTimeout)
	defer cancel()
	if err := j.store.Remove(ctx, name); err != nil {
		j.log.Error().Err(err).
			Str("name", name).
			Int("worker_id", id).
			Msg("orphaned upload removal failed")
		return
	}
	j.log.Debug().Str("name", name).Int("worker_id", id).Msg("orphaned upload removed")
}
