package srarq

import "github.com/google/btree"

type eventKind int

const (
	eventMessageReady eventKind = iota
	eventPacketArrival
	eventTimerInterrupt
)

func (k eventKind) String() string {
	switch k {
	case eventMessageReady:
		return "messageReady"
	case eventPacketArrival:
		return "packetArrival"
	case eventTimerInterrupt:
		return "timerInterrupt"
	}
	return "unknown"
}

// event is one pending occurrence on the simulated timeline. Ties on
// time break on insertion order, keeping dispatch deterministic for a
// fixed seed.
type event struct {
	time   float64
	order  uint64
	kind   eventKind
	entity EntityID
	packet Packet
}

func (e *event) Less(than btree.Item) bool {
	other := than.(*event)
	if e.time != other.time {
		return e.time < other.time
	}
	return e.order < other.order
}

// eventQueue orders pending events by simulated time.
type eventQueue struct {
	tree      *btree.BTree
	nextOrder uint64
}

func newEventQueue() *eventQueue {
	return &eventQueue{tree: btree.New(2)}
}

func (q *eventQueue) push(e *event) {
	e.order = q.nextOrder
	q.nextOrder++
	q.tree.ReplaceOrInsert(e)
}

func (q *eventQueue) pop() (*event, bool) {
	item := q.tree.DeleteMin()
	if item == nil {
		return nil, false
	}
	return item.(*event), true
}

func (q *eventQueue) findTimer(entity EntityID) *event {
	var found *event
	q.tree.Ascend(func(item btree.Item) bool {
		e := item.(*event)
		if e.kind == eventTimerInterrupt && e.entity == entity {
			found = e
			return false
		}
		return true
	})
	return found
}

// removeTimer cancels the pending timer interrupt of an entity and
// reports whether one existed. At most one can be pending.
func (q *eventQueue) removeTimer(entity EntityID) bool {
	found := q.findTimer(entity)
	if found == nil {
		return false
	}
	q.tree.Delete(found)
	return true
}

func (q *eventQueue) hasTimer(entity EntityID) bool {
	return q.findTimer(entity) != nil
}

func (q *eventQueue) len() int {
	return q.tree.Len()
}
