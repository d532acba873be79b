package srarq

// EntityID names one of the two protocol entities.
type EntityID int

const (
	// EntityA is the sending side.
	EntityA EntityID = iota
	// EntityB is the receiving side.
	EntityB
)

func (id EntityID) String() string {
	switch id {
	case EntityA:
		return "A"
	case EntityB:
		return "B"
	}
	return "?"
}

// Message is one application data unit, exactly one payload block.
type Message struct {
	Data [payloadSize]byte
}

// MessageFromBytes copies data into a message, truncating or zero
// padding to the payload size.
func MessageFromBytes(data []byte) Message {
	var message Message
	copy(message.Data[:], data)
	return message
}

// Channel carries packets between the entities. Transmission is best
// effort: packets may be dropped, corrupted or delayed, but relative
// order among delivered packets is preserved.
type Channel interface {
	Transmit(from EntityID, p Packet)
}

// Timer is the single-shot retransmission timer of an entity. Starting
// a timer that is already running is a caller error surfaced by the
// harness.
type Timer interface {
	StartTimer(e EntityID, increment float64)
	StopTimer(e EntityID)
}

// Application consumes payloads delivered in order by the receiver.
type Application interface {
	DeliverToApplication(e EntityID, payload []byte)
}

// seqInRange reports whether seq lies within the window of count
// sequence numbers starting at base, accounting for wraparound of the
// sequence space.
func seqInRange(base, count, seq int32) bool {
	if count == 0 {
		return false
	}
	last := (base + count - 1) % sequenceSpaceSize
	if base <= last {
		return seq >= base && seq <= last
	}
	return seq >= base || seq <= last
}
