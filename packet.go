package srarq

import "encoding/binary"

// Packet is the wire unit shared by data and acknowledgement traffic.
// The buffer holds the complete big-endian encoding; accessors decode
// fields in place. A packet is immutable once constructed and the
// checksum is always written last.
type Packet struct {
	buffer []byte
}

func (p Packet) SequenceNumber() int32 {
	return int32At(p.buffer, sequenceNumberPosition)
}

func (p Packet) AcknowledgementNumber() int32 {
	return int32At(p.buffer, acknowledgementPosition)
}

func (p Packet) Checksum() int32 {
	return int32At(p.buffer, checksumPosition)
}

// Payload returns the fixed-size data block. The slice aliases the
// packet buffer and must not be modified by the caller.
func (p Packet) Payload() []byte {
	return p.buffer[payloadPosition.start:payloadPosition.end]
}

// IsAck reports whether the packet carries an acknowledgement number.
func (p Packet) IsAck() bool {
	return p.AcknowledgementNumber() != ackUnused
}

func (p Packet) clone() Packet {
	buffer := make([]byte, len(p.buffer))
	copy(buffer, p.buffer)
	return Packet{buffer: buffer}
}

// computeChecksum sums the sequence number, the acknowledgement number
// and the payload bytes. The sum is additive only, so compensating byte
// changes can cancel out undetected.
func computeChecksum(p Packet) int32 {
	sum := p.SequenceNumber() + p.AcknowledgementNumber()
	for _, b := range p.Payload() {
		sum += int32(b)
	}
	return sum
}

func isCorrupted(p Packet) bool {
	return p.Checksum() != computeChecksum(p)
}

func newDataPacket(sequenceNumber int32, payload []byte) Packet {
	buffer := make([]byte, packetLength)
	putInt32(buffer, sequenceNumberPosition, sequenceNumber)
	putInt32(buffer, acknowledgementPosition, ackUnused)
	copy(buffer[payloadPosition.start:payloadPosition.end], payload)
	p := Packet{buffer: buffer}
	putInt32(buffer, checksumPosition, computeChecksum(p))
	return p
}

func newAckPacket(toggle int32, acknowledgedSequenceNumber int32) Packet {
	buffer := make([]byte, packetLength)
	putInt32(buffer, sequenceNumberPosition, toggle)
	putInt32(buffer, acknowledgementPosition, acknowledgedSequenceNumber)
	for i := payloadPosition.start; i < payloadPosition.end; i++ {
		buffer[i] = ackFiller
	}
	p := Packet{buffer: buffer}
	putInt32(buffer, checksumPosition, computeChecksum(p))
	return p
}

func putInt32(buffer []byte, pos position, value int32) {
	binary.BigEndian.PutUint32(buffer[pos.start:pos.end], uint32(value))
}

func int32At(buffer []byte, pos position) int32 {
	return int32(binary.BigEndian.Uint32(buffer[pos.start:pos.end]))
}
