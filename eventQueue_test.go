package srarq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueueOrdersByTime(t *testing.T) {
	q := newEventQueue()
	q.push(&event{time: 5, kind: eventPacketArrival, entity: EntityB})
	q.push(&event{time: 1, kind: eventMessageReady, entity: EntityA})
	q.push(&event{time: 3, kind: eventTimerInterrupt, entity: EntityA})

	times := make([]float64, 0, 3)
	for {
		e, ok := q.pop()
		if !ok {
			break
		}
		times = append(times, e.time)
	}
	assert.Equal(t, []float64{1, 3, 5}, times)
}

func TestEventQueueBreaksTiesByInsertionOrder(t *testing.T) {
	q := newEventQueue()
	q.push(&event{time: 2, kind: eventPacketArrival, entity: EntityA})
	q.push(&event{time: 2, kind: eventPacketArrival, entity: EntityB})

	first, _ := q.pop()
	second, _ := q.pop()
	assert.Equal(t, EntityA, first.entity)
	assert.Equal(t, EntityB, second.entity)
}

func TestEventQueueTimerRemoval(t *testing.T) {
	q := newEventQueue()
	q.push(&event{time: 4, kind: eventTimerInterrupt, entity: EntityA})
	q.push(&event{time: 2, kind: eventPacketArrival, entity: EntityA})

	assert.True(t, q.hasTimer(EntityA))
	assert.False(t, q.hasTimer(EntityB))

	assert.True(t, q.removeTimer(EntityA))
	assert.False(t, q.hasTimer(EntityA))
	assert.Equal(t, 1, q.len())

	assert.False(t, q.removeTimer(EntityA))
}
