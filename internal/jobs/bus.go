package jobs

import "sync"

const subscriberBuffer = 32

// bus fans Job snapshots out to per-session subscribers. Slow subscribers
// lose their oldest pending snapshot rather than blocking workers.
type bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Job
}

func newBus() *bus {
	return &bus{subs: make(map[string]map[int]chan Job)}
}

// subscribe registers a channel for sessionID. A non-nil initial snapshot is
// queued before any published one.
func (b *bus) subscribe(sessionID string, initial *Job) (<-chan Job, func()) {
	ch := make(chan Job, subscriberBuffer)
	if initial != nil {
		ch <- *initial
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[int]chan Job)
	}
	b.subs[sessionID][id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if group, ok := b.subs[sessionID]; ok {
				if _, ok := group[id]; ok {
					delete(group, id)
					close(ch)
				}
				if len(group) == 0 {
					delete(b.subs, sessionID)
				}
			}
		})
	}
	return ch, cancel
}

func (b *bus) publish(job Job) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[job.SessionID] {
		select {
		case ch <- job:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- job:
		default:
		}
	}
}

