package gridsearch

import "container/heap"

// Entry is one frontier record. Seq is the insertion order and breaks ties
// between equal keys so identical inputs always expand identically.
type Entry struct {
	Key  float64
	Cell *Cell
	Seq  uint64
}

// FrontierQueue orders discovered-but-not-finalized cells.
type FrontierQueue interface {
	Push(entry Entry)
	PopNext() (Entry, bool)
	IsEmpty() bool
	Len() int
}

// NewFrontier returns the ordering structure the algorithm expands from.
func NewFrontier(algorithm Algorithm) FrontierQueue {
	switch algorithm {
	case DFS:
		return &Stack{}
	case Dijkstra, AStar:
		queue := make(PriorityQueue, 0)
		return &queue
	default:
		return &Queue{}
	}
}

// Queue is a FIFO frontier (BFS).
type Queue struct {
	entries []Entry
	head    int
}

func (q *Queue) Push(entry Entry) { q.entries = append(q.entries, entry) }
func (q *Queue) Len() int         { return len(q.entries) - q.head }
func (q *Queue) IsEmpty() bool    { return q.Len() == 0 }

func (q *Queue) PopNext() (Entry, bool) {
	if q.IsEmpty() {
		return Entry{}, false
	}
	entry := q.entries[q.head]
	q.entries[q.head] = Entry{}
	q.head++
	// compact once the consumed prefix dominates
	if q.head > 32 && q.head*2 > len(q.entries) {
		q.entries = append(q.entries[:0], q.entries[q.head:]...)
		q.head = 0
	}
	return entry, true
}

// Stack is a LIFO frontier (DFS).
type Stack struct {
	entries []Entry
}

func (s *Stack) Push(entry Entry) { s.entries = append(s.entries, entry) }
func (s *Stack) Len() int         { return len(s.entries) }
func (s *Stack) IsEmpty() bool    { return len(s.entries) == 0 }

func (s *Stack) PopNext() (Entry, bool) {
	n := len(s.entries)
	if n == 0 {
		return Entry{}, false
	}
	entry := s.entries[n-1]
	s.entries[n-1] = Entry{}
	s.entries = s.entries[:n-1]
	return entry, true
}

// PriorityQueue is a min-heap by Key, then Seq (Dijkstra, A*).
// Push and PopNext are the FrontierQueue API; the lower-case methods below
// satisfy container/heap.
type PriorityQueue []*Entry

func (queue PriorityQueue) Len() int { return len(queue) }
func (queue PriorityQueue) Less(i, j int) bool {
	if queue[i].Key != queue[j].Key {
		return queue[i].Key < queue[j].Key
	}
	return queue[i].Seq < queue[j].Seq
}
func (queue PriorityQueue) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *PriorityQueue) IsEmpty() bool { return queue.Len() == 0 }

func (queue *PriorityQueue) Push(entry Entry) {
	heap.Push((*entryHeap)(queue), &entry)
}

func (queue *PriorityQueue) PopNext() (Entry, bool) {
	if queue.Len() == 0 {
		return Entry{}, false
	}
	return *heap.Pop((*entryHeap)(queue)).(*Entry), true
}

// entryHeap exposes the any-typed Push/Pop that container/heap needs without
// clashing with the FrontierQueue methods.
type entryHeap PriorityQueue

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return PriorityQueue(h).Less(i, j) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
