package join

import (
	"container/heap"

	"hermes"
)

//scheduler owns the min heap of live sources that drives group formation.
//The heap holds at most one entry per non exhausted source, ordered by
//(key ascending, id ascending), the id is a pure tie break so that group
//member order is deterministic.
type scheduler struct {
	h sourceHeap
}

func newScheduler(cmp hermes.Comparator, kids []hermes.Source) *scheduler {
	s := &scheduler{h: sourceHeap{cmp: cmp}}
	for _, kid := range kids {
		if kid.HasNext() {
			s.h.srcs = append(s.h.srcs, kid)
		}
	}
	heap.Init(&s.h)
	return s
}

//push re queues src iff it still has data.
func (s *scheduler) push(src hermes.Source) {
	if src.HasNext() {
		heap.Push(&s.h, src)
	}
}

func (s *scheduler) empty() bool {
	return s.h.Len() == 0
}

//nextGroup pops the minimal key source, fixes its key as the group's
//reference key, then keeps popping while the head compares equal. The
//returned members are out of the heap, the policy decides their fate and
//re queues survivors. ok is false once no live source remains.
func (s *scheduler) nextGroup() (group []hermes.Source, key hermes.Key, ok bool) {
	if s.empty() {
		return nil, nil, false
	}
	first := heap.Pop(&s.h).(hermes.Source)
	key = first.Key()
	group = append(group, first)
	for !s.empty() && s.h.cmp.Compare(s.h.srcs[0].Key(), key) == 0 {
		group = append(group, heap.Pop(&s.h).(hermes.Source))
	}
	return group, key, true
}

type sourceHeap struct {
	cmp  hermes.Comparator
	srcs []hermes.Source
}

func (h *sourceHeap) Len() int { return len(h.srcs) }

func (h *sourceHeap) Less(i, j int) bool {
	if c := h.cmp.Compare(h.srcs[i].Key(), h.srcs[j].Key()); c != 0 {
		return c < 0
	}
	return h.srcs[i].ID() < h.srcs[j].ID()
}

func (h *sourceHeap) Swap(i, j int) {
	h.srcs[i], h.srcs[j] = h.srcs[j], h.srcs[i]
}

func (h *sourceHeap) Push(x interface{}) {
	h.srcs = append(h.srcs, x.(hermes.Source))
}

func (h *sourceHeap) Pop() interface{} {
	last := len(h.srcs) - 1
	src := h.srcs[last]
	h.srcs[last] = nil
	h.srcs = h.srcs[:last]
	return src
}
