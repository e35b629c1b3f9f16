// Copyright ©2024 The sublinear-time-solver Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package push implements the forward-push and backward-push local
// propagation algorithms used by the sublinear functional-query path.
// Both operate on the implicit weighted residual graph of a matrix: node
// u has an edge to v with weight -M_uv/M_uu for every off-diagonal
// nonzero M_uv.
package push

import "container/heap"

// activeQueue is an indexed max-heap keyed by residual magnitude,
// supporting O(log n) push, pop-max, and decrease/increase-key so the
// push loop always expands the node with the largest outstanding
// residual next, the same decrease-key idiom used by a Dijkstra
// shortest-path queue.
type activeQueue struct {
	items []queueItem
	index []int // node id -> position in items, or -1 if absent
}

type queueItem struct {
	node     int
	priority float64
}

func newActiveQueue(n int) *activeQueue {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = -1
	}
	return &activeQueue{index: idx}
}

func (q *activeQueue) Len() int { return len(q.items) }

func (q *activeQueue) Less(i, j int) bool { return q.items[i].priority > q.items[j].priority }

func (q *activeQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.index[q.items[i].node] = i
	q.index[q.items[j].node] = j
}

func (q *activeQueue) Push(x any) {
	it := x.(queueItem)
	q.index[it.node] = len(q.items)
	q.items = append(q.items, it)
}

func (q *activeQueue) Pop() any {
	old := q.items
	n := len(old)
	it := old[n-1]
	q.items = old[:n-1]
	q.index[it.node] = -1
	return it
}

// contains reports whether node is currently queued.
func (q *activeQueue) contains(node int) bool { return q.index[node] >= 0 }

// upsert inserts node at priority, or updates its priority (re-heapifying)
// if it is already present.
func (q *activeQueue) upsert(node int, priority float64) {
	if i := q.index[node]; i >= 0 {
		q.items[i].priority = priority
		heap.Fix(q, i)
		return
	}
	heap.Push(q, queueItem{node: node, priority: priority})
}

// popMax removes and returns the node with the largest priority.
func (q *activeQueue) popMax() (node int, priority float64) {
	it := heap.Pop(q).(queueItem)
	return it.node, it.priority
}

func (q *activeQueue) empty() bool { return len(q.items) == 0 }
