// Package scheduler fires countdown deadline alarms on a channel so the UI
// can re-sync a timer after the process was suspended or throttled.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrMissingID          = errors.New("scheduler: alarm id is required")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// Alarm is a one-shot deadline for a named countdown. Generation is the
// timer generation the alarm was armed for; consumers drop alarms whose
// generation no longer matches.
type Alarm struct {
	ID         string
	Generation uint64
	TriggerAt  time.Time
}

type queueItem struct {
	alarm Alarm
	index int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].alarm.TriggerAt.Before(pq[j].alarm.TriggerAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// Engine keeps at most one pending alarm per ID. Delivery never blocks:
// alarms that find the channel full are counted in Dropped.
type Engine struct {
	mu      sync.Mutex
	queue   priorityQueue
	byID    map[string]*queueItem
	out     chan Alarm
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	now     func() time.Time
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(priorityQueue, 0),
		byID:   make(map[string]*queueItem),
		out:    make(chan Alarm, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		now:    time.Now,
	}
}

func (e *Engine) C() <-chan Alarm {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule arms an alarm, replacing any pending alarm with the same ID.
func (e *Engine) Schedule(a Alarm) error {
	if a.ID == "" {
		return ErrMissingID
	}
	if a.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	if existing, ok := e.byID[a.ID]; ok {
		existing.alarm = a
		heap.Fix(&e.queue, existing.index)
	} else {
		item := &queueItem{alarm: a}
		heap.Push(&e.queue, item)
		e.byID[a.ID] = item
	}
	e.signalWakeup()
	return nil
}

// Cancel disarms the pending alarm for id. It reports whether one existed.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.byID, id)
	e.signalWakeup()
	return true
}

// Pending returns the armed alarm for id, if any.
func (e *Engine) Pending(id string) (Alarm, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byID[id]
	if !ok {
		return Alarm{}, false
	}
	return item.alarm, true
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.TriggerAt.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, a := range e.popDue(e.now()) {
				select {
				case e.out <- a:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Alarm, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Alarm{}, false
	}
	return e.queue[0].alarm, true
}

func (e *Engine) popDue(now time.Time) []Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Alarm, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alarm
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(*queueItem)
		delete(e.byID, item.alarm.ID)
		out = append(out, item.alarm)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
