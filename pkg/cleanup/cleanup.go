package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dealer-backend/pkg/storage"
)

// Janitor removes stored images after their vehicle record is deleted. It is
// strictly best-effort: enqueueing never blocks the caller and a failed
// removal is logged, never propagated.
type Janitor struct {
	store    storage.ObjectStore
	log      *zap.Logger
	timeout  time.Duration
	queue    chan string
	stopChan chan struct{}
	done     chan struct{}
}

func NewJanitor(store storage.ObjectStore, log *zap.Logger) *Janitor {
	return &Janitor{
		store:    store,
		log:      log,
		timeout:  30 * time.Second,
		queue:    make(chan string, 256),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins draining the removal queue.
func (j *Janitor) Start() {
	go j.run()
}

// Stop drains whatever is already queued, then returns.
func (j *Janitor) Stop() {
	close(j.stopChan)
	<-j.done
}

// Enqueue schedules image URLs for removal. URLs are dropped when the queue
// is full; losing an orphaned object is acceptable, blocking a delete is not.
func (j *Janitor) Enqueue(imageURLs []string) {
	for _, u := range imageURLs {
		if u == "" {
			continue
		}
		select {
		case j.queue <- u:
		default:
			j.log.Warn("image cleanup queue full, dropping object", zap.String("url", u))
		}
	}
}

func (j *Janitor) run() {
	defer close(j.done)
	for {
		select {
		case u := <-j.queue:
			j.remove(u)
		case <-j.stopChan:
			// Drain what is already queued before shutting down.
			for {
				select {
				case u := <-j.queue:
					j.remove(u)
				default:
					return
				}
			}
		}
	}
}

func (j *Janitor) remove(publicURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.store.Remove(ctx, publicURL); err != nil {
		j.log.Warn("image cleanup failed", zap.String("url", publicURL), zap.Error(err))
		return
	}
	j.log.Debug("removed orphaned image", zap.String("url", publicURL))
}
