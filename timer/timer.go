// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Task is one scheduled callback. A positive Interval reschedules the
// task after each run.
type Task struct {
	ID       int64
	RunAt    time.Time
	Interval time.Duration
	Callback func()
	index    int
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].RunAt.Before(q[j].RunAt)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*Task)
	task.index = n
	*q = append(*q, task)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Scheduler runs callbacks off a single heap-ordered queue. It backs
// the periodic jobs of this server (metrics sampling, feed pings).
type Scheduler struct {
	queue    taskQueue
	mutex    sync.Mutex
	nextID   int64
	trigger  chan *Task
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler() *Scheduler {
	s := &Scheduler{
		queue:   make(taskQueue, 0),
		trigger: make(chan *Task, 1000),
		nextID:  1,
		done:    make(chan struct{}),
	}
	heap.Init(&s.queue)
	go s.process()
	return s
}

// Schedule registers a callback after delay, repeating every interval
// if interval is positive. Returns the task id for Cancel.
func (s *Scheduler) Schedule(delay, interval time.Duration, callback func()) int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	task := &Task{
		ID:       s.nextID,
		RunAt:    time.Now().Add(delay),
		Interval: interval,
		Callback: callback,
	}
	s.nextID++

	heap.Push(&s.queue, task)
	return task.ID
}

// Cancel removes a pending task. A task already triggered still runs.
func (s *Scheduler) Cancel(taskID int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, task := range s.queue {
		if task.ID == taskID {
			heap.Remove(&s.queue, i)
			break
		}
	}
}

// Stop shuts the scheduler down. Pending tasks never fire afterwards.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *Scheduler) process() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return

		case <-ticker.C:
			s.mutex.Lock()
			now := time.Now()

			for s.queue.Len() > 0 {
				task := s.queue[0]
				if task.RunAt.After(now) {
					break
				}

				heap.Pop(&s.queue)
				s.trigger <- task

				if task.Interval > 0 {
					task.RunAt = now.Add(task.Interval)
					heap.Push(&s.queue, task)
				}
			}
			s.mutex.Unlock()

		case task := <-s.trigger:
			go task.Callback()
		}
	}
}
