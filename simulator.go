package srarq

import (
	"log"
	"math/rand"
)

// Simulator drives both entities through a discrete-event timeline,
// standing in for the lossy channel, the per-entity timers and the
// application of the surrounding system. Events are dispatched one at
// a time and every handler runs to completion, so the entities need no
// locking and never observe each other's state.
type Simulator struct {
	config Config
	rng    *rand.Rand
	queue  *eventQueue
	trace  *traceRecorder

	sender   *Sender
	receiver *Receiver

	now         float64
	lastArrival [2]float64

	generated   int
	lost        int
	corrupted   int
	timerFaults int

	delivered [][]byte
}

// NewSimulator builds a simulator and its two entities from a
// configuration. Close releases the trace recorder if one was opened.
func NewSimulator(config Config) (*Simulator, error) {
	sim := &Simulator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		queue:  newEventQueue(),
	}
	if config.TraceDatabase != "" {
		trace, err := newTraceRecorder(config.TraceDatabase)
		if err != nil {
			return nil, err
		}
		sim.trace = trace
	}
	sim.sender = NewSender(EntityA, sim, sim)
	sim.receiver = NewReceiver(EntityB, sim, sim)
	return sim, nil
}

// Transmit puts a packet on the simulated channel towards the opposite
// entity. The packet may be lost or corrupted; surviving packets arrive
// after a randomized delay that never reorders them relative to earlier
// traffic to the same destination.
func (sim *Simulator) Transmit(from EntityID, p Packet) {
	dest := EntityB
	if from == EntityB {
		dest = EntityA
	}

	if sim.rng.Float64() < sim.config.LossProbability {
		sim.lost++
		sim.logf("channel: packet %d from %v lost", p.SequenceNumber(), from)
		return
	}

	// the channel carries its own copy so later corruption never
	// touches the sender's buffered original
	p = p.clone()
	if sim.rng.Float64() < sim.config.CorruptProbability {
		sim.corruptPacket(p)
		sim.corrupted++
		sim.logf("channel: packet from %v corrupted in transit", from)
	}

	// one-way delay stays below half the retransmission timeout, so a
	// clean channel never triggers a spurious timeout
	arrival := sim.now + 1 + 4*sim.rng.Float64()
	if arrival <= sim.lastArrival[dest] {
		arrival = sim.lastArrival[dest] + 0.001
	}
	sim.lastArrival[dest] = arrival
	sim.queue.push(&event{time: arrival, kind: eventPacketArrival, entity: dest, packet: p})
}

// corruptPacket damages the cloned packet in place without touching its
// checksum, mostly in the payload, sometimes in a header field.
func (sim *Simulator) corruptPacket(p Packet) {
	x := sim.rng.Float64()
	switch {
	case x < 0.75:
		p.buffer[payloadPosition.start] = 'Z'
	case x < 0.875:
		putInt32(p.buffer, sequenceNumberPosition, 999999)
	default:
		putInt32(p.buffer, acknowledgementPosition, 999999)
	}
}

// StartTimer schedules a single timer interrupt for the entity. A start
// while the entity's timer is already pending is a protocol bug; it is
// counted and ignored.
func (sim *Simulator) StartTimer(e EntityID, increment float64) {
	if sim.queue.hasTimer(e) {
		sim.timerFaults++
		log.Printf("warning: entity %v started a timer that is already running", e)
		return
	}
	sim.queue.push(&event{time: sim.now + increment, kind: eventTimerInterrupt, entity: e})
}

// StopTimer cancels the entity's pending timer interrupt. Stopping a
// timer that is not running is counted as a fault as well.
func (sim *Simulator) StopTimer(e EntityID) {
	if !sim.queue.removeTimer(e) {
		sim.timerFaults++
		log.Printf("warning: entity %v stopped a timer that is not running", e)
	}
}

// DeliverToApplication records a payload handed up by an entity.
func (sim *Simulator) DeliverToApplication(e EntityID, payload []byte) {
	data := make([]byte, len(payload))
	copy(data, payload)
	sim.delivered = append(sim.delivered, data)
	sim.logf("%v: delivered %q to application", e, data)
}

// Run dispatches events until the timeline is exhausted: all configured
// messages generated and every outstanding packet either acknowledged
// or abandoned by the caller's window discipline.
func (sim *Simulator) Run() (RunStats, error) {
	sim.scheduleNextMessage()

	// a run that cannot quiesce, e.g. with extreme loss, is cut off
	// rather than looping forever
	limit := sim.config.MessageCount*1000 + 1000
	dispatched := 0

	for {
		e, ok := sim.queue.pop()
		if !ok {
			break
		}
		sim.now = e.time

		if sim.trace != nil {
			if err := sim.trace.record(sim.now, e); err != nil {
				return sim.Stats(), err
			}
		}

		switch e.kind {
		case eventMessageReady:
			sim.generated++
			message := sim.nextMessage()
			sim.logf("A: message %q ready", message.Data[:])
			if !sim.sender.OutputMessage(message) {
				sim.logf("A: window full, message dropped")
			}
			sim.scheduleNextMessage()
		case eventPacketArrival:
			if e.entity == EntityA {
				sim.sender.InputPacket(e.packet)
			} else {
				sim.receiver.InputPacket(e.packet)
			}
		case eventTimerInterrupt:
			if e.entity == EntityA {
				sim.sender.TimerInterrupt()
			} else {
				sim.receiver.TimerInterrupt()
			}
		}

		dispatched++
		if dispatched >= limit {
			log.Printf("warning: event limit reached after %d events, stopping", dispatched)
			break
		}
	}
	return sim.Stats(), nil
}

// scheduleNextMessage queues the next application message arrival at a
// randomized interval, until the configured count is reached.
func (sim *Simulator) scheduleNextMessage() {
	if sim.generated >= sim.config.MessageCount {
		return
	}
	gap := sim.rng.Float64() * 2 * sim.config.MeanMessageInterval
	sim.queue.push(&event{time: sim.now + gap, kind: eventMessageReady, entity: EntityA})
}

// nextMessage fills a payload with a letter cycling through the
// alphabet, so delivery order is visible in traces and tests.
func (sim *Simulator) nextMessage() Message {
	fill := byte('a' + (sim.generated-1)%26)
	var message Message
	for i := range message.Data {
		message.Data[i] = fill
	}
	return message
}

// DeliveredPayloads returns the payloads handed to the application, in
// delivery order.
func (sim *Simulator) DeliveredPayloads() [][]byte {
	return sim.delivered
}

// Stats returns the counters accumulated so far.
func (sim *Simulator) Stats() RunStats {
	return RunStats{
		MessagesGenerated: sim.generated,
		PacketsLost:       sim.lost,
		PacketsCorrupted:  sim.corrupted,
		TimerFaults:       sim.timerFaults,
		FinalTime:         sim.now,
		Sender:            sim.sender.Stats(),
		Receiver:          sim.receiver.Stats(),
	}
}

// Close releases the trace recorder, if any.
func (sim *Simulator) Close() error {
	if sim.trace == nil {
		return nil
	}
	return sim.trace.Close()
}

func (sim *Simulator) logf(format string, args ...interface{}) {
	if !sim.config.Verbose {
		return
	}
	log.Printf("%10.3f "+format, append([]interface{}{sim.now}, args...)...)
}
