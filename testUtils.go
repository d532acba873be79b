package srarq

import (
	"github.com/stretchr/testify/suite"
)

type srTestSuite struct {
	suite.Suite
}

// harnessRecorder implements the channel, timer and application
// interfaces and records every call for inspection by the tests.
type harnessRecorder struct {
	transmitted  []Packet
	delivered    [][]byte
	timerRunning map[EntityID]bool
	timerStarts  int
	timerStops   int
}

func newHarnessRecorder() *harnessRecorder {
	return &harnessRecorder{timerRunning: make(map[EntityID]bool)}
}

func (h *harnessRecorder) Transmit(from EntityID, p Packet) {
	h.transmitted = append(h.transmitted, p)
}

func (h *harnessRecorder) StartTimer(e EntityID, increment float64) {
	h.timerRunning[e] = true
	h.timerStarts++
}

func (h *harnessRecorder) StopTimer(e EntityID) {
	h.timerRunning[e] = false
	h.timerStops++
}

func (h *harnessRecorder) DeliverToApplication(e EntityID, payload []byte) {
	data := make([]byte, len(payload))
	copy(data, payload)
	h.delivered = append(h.delivered, data)
}

func (h *harnessRecorder) transmittedSequenceNumbers() []int32 {
	numbers := make([]int32, len(h.transmitted))
	for i, p := range h.transmitted {
		numbers[i] = p.SequenceNumber()
	}
	return numbers
}

func (h *harnessRecorder) lastTransmitted() Packet {
	return h.transmitted[len(h.transmitted)-1]
}

func repeatByte(fill byte) Message {
	var message Message
	for i := range message.Data {
		message.Data[i] = fill
	}
	return message
}

// flipPayloadByte returns a copy with one payload byte changed and the
// original checksum kept, i.e. a packet corrupted in transit.
func flipPayloadByte(p Packet) Packet {
	corrupted := p.clone()
	corrupted.buffer[payloadPosition.start]++
	return corrupted
}
