package srarq

type receiverSlot struct {
	packet   Packet
	received bool
}

// Receiver is the receiving entity. It buffers out-of-order arrivals,
// delivers contiguous runs to the application and acknowledges every
// uncorrupted arrival. The protocol instance is simplex, so the
// receiver never originates data of its own.
type Receiver struct {
	id      EntityID
	channel Channel
	app     Application

	// one slot per sequence-space value, reused across laps; received
	// marks a buffered, not yet delivered packet of the current lap
	slots      [sequenceSpaceSize]receiverSlot
	windowBase int32

	// delivered flags, per sequence number, the lap that was already
	// handed to the application. A flag is released when its sequence
	// number re-enters the window on the far side and may carry new
	// data again.
	delivered [sequenceSpaceSize]bool

	// ackToggle numbers outgoing acknowledgements from a 1-bit space of
	// their own; the reverse path never carries data packets.
	ackToggle int32

	stats ReceiverStats
}

// NewReceiver returns an initialized receiver bound to its channel and
// application sink.
func NewReceiver(id EntityID, channel Channel, app Application) *Receiver {
	r := &Receiver{id: id, channel: channel, app: app}
	r.Init()
	return r
}

// Init resets the receive window. The ack toggle starts at 1 so the
// first acknowledgement differs from the no-ack initial condition.
func (r *Receiver) Init() {
	r.windowBase = 0
	r.ackToggle = 1
	r.slots = [sequenceSpaceSize]receiverSlot{}
	r.delivered = [sequenceSpaceSize]bool{}
	r.stats = ReceiverStats{}
}

// InputPacket handles a data packet arrival. Corrupted packets are
// dropped without acknowledgement, forcing the sender onto its timeout
// path. Everything else is acknowledged, including duplicates from
// below the window whose earlier acknowledgement may have been lost.
func (r *Receiver) InputPacket(p Packet) {
	if isCorrupted(p) {
		return
	}
	seq := p.SequenceNumber()
	if seq < 0 || seq >= sequenceSpaceSize {
		// a corrupted value can slip past the additive checksum
		return
	}
	r.stats.PacketsReceived++

	if seqInRange(r.windowBase, windowSize, seq) {
		slot := &r.slots[seq]
		if !slot.received && !r.delivered[seq] {
			slot.packet = p
			slot.received = true
			if seq == r.windowBase {
				r.deliverContiguous()
			}
		}
	}
	r.sendAck(seq)
}

// deliverContiguous hands the packet at the window base to the
// application, then every buffered packet directly following it, until
// the next gap.
func (r *Receiver) deliverContiguous() {
	for {
		slot := &r.slots[r.windowBase]
		if !slot.received {
			return
		}
		r.app.DeliverToApplication(r.id, slot.packet.Payload())
		r.stats.MessagesDelivered++
		r.delivered[r.windowBase] = true
		slot.received = false
		r.windowBase = (r.windowBase + 1) % sequenceSpaceSize
		// the sequence number entering the window on the far side
		// starts a fresh lap
		r.delivered[(r.windowBase+windowSize-1)%sequenceSpaceSize] = false
	}
}

func (r *Receiver) sendAck(acknowledgedSequenceNumber int32) {
	ack := newAckPacket(r.ackToggle, acknowledgedSequenceNumber)
	r.ackToggle = (r.ackToggle + 1) % 2
	r.stats.AcksSent++
	r.channel.Transmit(r.id, ack)
}

// OutputMessage is a stub; data flows only towards the receiver.
func (r *Receiver) OutputMessage(Message) bool {
	return false
}

// TimerInterrupt is a stub; the receiver keeps no retransmission timer.
func (r *Receiver) TimerInterrupt() {}

// Stats returns a snapshot of the receiver counters.
func (r *Receiver) Stats() ReceiverStats {
	return r.stats
}
