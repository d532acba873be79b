package srarq

const (
	// windowSize is the maximum number of packets either entity keeps
	// outstanding at once. sequenceSpaceSize must be at least
	// windowSize+1 so a retransmission of an already delivered packet
	// cannot be mistaken for a new one.
	windowSize        = 6
	sequenceSpaceSize = 7

	payloadSize  = 20
	headerLength = 12
	packetLength = headerLength + payloadSize

	// retransmissionTimeout is the round-trip interval, in simulated
	// time units, after which the oldest unacknowledged packet is
	// resent.
	retransmissionTimeout = 16.0
)

// ackUnused fills the acknowledgement field of data packets on the wire.
const ackUnused int32 = -1

// ackFiller pads the payload of acknowledgement packets, which carry no
// data of their own.
const ackFiller byte = '0'

type position struct {
	start int
	end   int
}

var sequenceNumberPosition = position{0, 4}
var acknowledgementPosition = position{4, 8}
var checksumPosition = position{8, 12}
var payloadPosition = position{12, packetLength}
