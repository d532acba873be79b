package srarq

// senderSlot holds the window state of one sequence number. There is
// one slot per value of the sequence space, so two in-window sequence
// numbers can never collide; slots are reused across laps of the
// space, and the inWindow flag marks whether the buffered packet
// belongs to the current lap rather than being leftover from an
// earlier one.
type senderSlot struct {
	packet   Packet
	acked    bool
	inWindow bool
}

// Sender is the transmitting entity. It owns the send window, assigns
// sequence numbers and drives the single retransmission timer, which
// always tracks the oldest sequence number still waiting for an
// acknowledgement.
type Sender struct {
	id      EntityID
	channel Channel
	timer   Timer

	slots       [sequenceSpaceSize]senderSlot
	windowBase  int32
	windowCount int32
	nextSeqNum  int32

	oldestUnacked    int32
	hasOldestUnacked bool

	stats SenderStats
}

// NewSender returns an initialized sender bound to its channel and
// timer. The returned entity holds all of its state itself, so
// multiple instances can run independently.
func NewSender(id EntityID, channel Channel, timer Timer) *Sender {
	s := &Sender{id: id, channel: channel, timer: timer}
	s.Init()
	return s
}

// Init resets the window to its initial state. It runs before any other
// operation and may be called again to reuse the entity.
func (s *Sender) Init() {
	s.nextSeqNum = 0
	s.windowBase = 0
	s.windowCount = 0
	s.hasOldestUnacked = false
	s.slots = [sequenceSpaceSize]senderSlot{}
	s.stats = SenderStats{}
}

// OutputMessage accepts one application message for transmission and
// reports whether it was taken. With a full window the message is
// discarded and the WindowFull counter incremented; there is no queue
// beyond the window, avoiding overflow is the caller's responsibility.
func (s *Sender) OutputMessage(message Message) bool {
	if s.windowCount == windowSize {
		s.stats.WindowFull++
		return false
	}

	p := newDataPacket(s.nextSeqNum, message.Data[:])
	slot := &s.slots[s.nextSeqNum]
	slot.packet = p
	slot.acked = false
	slot.inWindow = true
	s.windowCount++

	s.stats.PacketsSent++
	s.channel.Transmit(s.id, p)

	if !s.hasOldestUnacked {
		s.oldestUnacked = s.nextSeqNum
		s.hasOldestUnacked = true
		s.timer.StartTimer(s.id, retransmissionTimeout)
	}

	s.nextSeqNum = (s.nextSeqNum + 1) % sequenceSpaceSize
	return true
}

// InputPacket processes an acknowledgement from the channel. Corrupted
// acknowledgements are dropped, recovery is left to the retransmission
// timeout. Acknowledgements outside the window or for an already acked
// sequence number are duplicates and cause no state change.
func (s *Sender) InputPacket(p Packet) {
	if isCorrupted(p) {
		return
	}
	s.stats.AcksReceived++

	acked := p.AcknowledgementNumber()
	if acked < 0 || acked >= sequenceSpaceSize {
		// a corrupted value can slip past the additive checksum
		return
	}
	if !seqInRange(s.windowBase, s.windowCount, acked) {
		return
	}
	slot := &s.slots[acked]
	if !slot.inWindow || slot.acked {
		return
	}

	slot.acked = true
	s.stats.NewAcks++

	if s.hasOldestUnacked && s.oldestUnacked == acked {
		s.timer.StopTimer(s.id)
		s.retimeOldestUnacked()
	}
	s.slideWindow()
}

// TimerInterrupt retransmits the packet the timer was tracking. Only
// the single oldest unacknowledged packet is resent; newer outstanding
// packets keep waiting for their own acknowledgements. If the tracked
// packet was acknowledged between expiry and dispatch, the timer moves
// on to the next unacknowledged one instead.
func (s *Sender) TimerInterrupt() {
	if !s.hasOldestUnacked {
		return
	}
	slot := &s.slots[s.oldestUnacked]
	if slot.inWindow && !slot.acked {
		s.stats.PacketsResent++
		s.channel.Transmit(s.id, slot.packet)
		s.timer.StartTimer(s.id, retransmissionTimeout)
		return
	}
	s.retimeOldestUnacked()
}

// retimeOldestUnacked rescans the window for the earliest slot still
// waiting for an acknowledgement and restarts the timer for it. The
// timer must not be running when this is called.
func (s *Sender) retimeOldestUnacked() {
	s.hasOldestUnacked = false
	for i := int32(0); i < s.windowCount; i++ {
		seq := (s.windowBase + i) % sequenceSpaceSize
		slot := &s.slots[seq]
		if slot.inWindow && !slot.acked {
			s.oldestUnacked = seq
			s.hasOldestUnacked = true
			s.timer.StartTimer(s.id, retransmissionTimeout)
			return
		}
	}
}

// slideWindow advances the base over every leading acknowledged slot,
// releasing the slots for reuse. Selectively acked packets further in
// keep their slots until the base catches up.
func (s *Sender) slideWindow() {
	for s.windowCount > 0 {
		slot := &s.slots[s.windowBase]
		if !slot.inWindow || !slot.acked {
			return
		}
		slot.inWindow = false
		slot.acked = false
		s.windowBase = (s.windowBase + 1) % sequenceSpaceSize
		s.windowCount--
	}
}

// Stats returns a snapshot of the sender counters.
func (s *Sender) Stats() SenderStats {
	return s.stats
}
