package srarq

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SenderTestSuite struct {
	srTestSuite
	harness *harnessRecorder
	sender  *Sender
}

func (suite *SenderTestSuite) SetupTest() {
	suite.harness = newHarnessRecorder()
	suite.sender = NewSender(EntityA, suite.harness, suite.harness)
}

func (suite *SenderTestSuite) sendMessages(n int) {
	for i := 0; i < n; i++ {
		suite.True(suite.sender.OutputMessage(repeatByte(byte('a' + i))))
	}
}

func (suite *SenderTestSuite) ack(seq int32) {
	suite.sender.InputPacket(newAckPacket(0, seq))
}

func (suite *SenderTestSuite) TestFillWindowAndDrainInOrder() {
	suite.sendMessages(6)

	suite.Equal([]int32{0, 1, 2, 3, 4, 5}, suite.harness.transmittedSequenceNumbers())
	suite.Equal(1, suite.harness.timerStarts)
	suite.Equal(int32(6), suite.sender.windowCount)

	for seq := int32(0); seq < 6; seq++ {
		suite.ack(seq)
	}

	suite.Equal(int32(6), suite.sender.windowBase)
	suite.Equal(int32(0), suite.sender.windowCount)
	suite.False(suite.sender.hasOldestUnacked)
	suite.False(suite.harness.timerRunning[EntityA])
	suite.Equal(6, suite.sender.stats.NewAcks)
}

func (suite *SenderTestSuite) TestWindowFullRejectsSeventhMessage() {
	suite.sendMessages(6)

	suite.False(suite.sender.OutputMessage(repeatByte('g')))
	suite.Equal(1, suite.sender.stats.WindowFull)
	suite.Len(suite.harness.transmitted, 6)
	suite.Equal(int32(6), suite.sender.windowCount)
}

func (suite *SenderTestSuite) TestTimeoutRetransmitsOnlyOldestUnacked() {
	suite.sendMessages(5)

	suite.sender.TimerInterrupt()

	suite.Len(suite.harness.transmitted, 6)
	suite.Equal(int32(0), suite.harness.lastTransmitted().SequenceNumber())
	suite.Equal(1, suite.sender.stats.PacketsResent)
	suite.True(suite.harness.timerRunning[EntityA])
}

func (suite *SenderTestSuite) TestCorruptedAckIgnored() {
	suite.sendMessages(2)

	suite.sender.InputPacket(flipPayloadByte(newAckPacket(0, 0)))

	suite.Equal(0, suite.sender.stats.AcksReceived)
	suite.Equal(int32(2), suite.sender.windowCount)
	suite.Equal(int32(0), suite.sender.windowBase)
}

func (suite *SenderTestSuite) TestOutOfWindowAckIgnored() {
	suite.sendMessages(3)

	suite.ack(5)

	suite.Equal(1, suite.sender.stats.AcksReceived)
	suite.Equal(0, suite.sender.stats.NewAcks)
	suite.Equal(int32(3), suite.sender.windowCount)
}

func (suite *SenderTestSuite) TestDuplicateAckReplayIsIdempotent() {
	suite.sendMessages(3)
	ack := newAckPacket(0, 1)

	suite.sender.InputPacket(ack)
	countAfterFirst := suite.sender.windowCount
	baseAfterFirst := suite.sender.windowBase
	newAcksAfterFirst := suite.sender.stats.NewAcks

	suite.sender.InputPacket(ack)

	suite.Equal(countAfterFirst, suite.sender.windowCount)
	suite.Equal(baseAfterFirst, suite.sender.windowBase)
	suite.Equal(newAcksAfterFirst, suite.sender.stats.NewAcks)
	suite.Equal(2, suite.sender.stats.AcksReceived)
}

func (suite *SenderTestSuite) TestSelectiveAcksSlideOnceBaseCatchesUp() {
	suite.sendMessages(4)

	suite.ack(2)
	suite.ack(1)
	suite.Equal(int32(0), suite.sender.windowBase)
	suite.Equal(int32(4), suite.sender.windowCount)

	suite.ack(0)

	suite.Equal(int32(3), suite.sender.windowBase)
	suite.Equal(int32(1), suite.sender.windowCount)
	suite.True(suite.sender.hasOldestUnacked)
	suite.Equal(int32(3), suite.sender.oldestUnacked)
}

func (suite *SenderTestSuite) TestTimerRetargetsAfterBaseAcked() {
	suite.sendMessages(3)

	suite.ack(0)

	suite.Equal(1, suite.harness.timerStops)
	suite.Equal(2, suite.harness.timerStarts)
	suite.True(suite.harness.timerRunning[EntityA])
	suite.Equal(int32(1), suite.sender.oldestUnacked)
}

func (suite *SenderTestSuite) TestTimerInterruptAfterAckRaceMovesOn() {
	suite.sendMessages(2)
	suite.ack(1)

	// expiry raced an ack for the tracked sequence number
	suite.sender.oldestUnacked = 1
	suite.sender.TimerInterrupt()

	suite.Equal(0, suite.sender.stats.PacketsResent)
	suite.True(suite.sender.hasOldestUnacked)
	suite.Equal(int32(0), suite.sender.oldestUnacked)
	suite.True(suite.harness.timerRunning[EntityA])
}

func (suite *SenderTestSuite) TestSequenceNumbersWrapAroundSpace() {
	for i := 0; i < 10; i++ {
		suite.True(suite.sender.OutputMessage(repeatByte(byte('a' + i))))
		suite.ack(int32(i % sequenceSpaceSize))
	}

	expected := []int32{0, 1, 2, 3, 4, 5, 6, 0, 1, 2}
	suite.Equal(expected, suite.harness.transmittedSequenceNumbers())
	suite.Equal(int32(0), suite.sender.windowCount)
}

func (suite *SenderTestSuite) TestWindowCountStaysBounded() {
	for i := 0; i < 20; i++ {
		suite.sender.OutputMessage(repeatByte('x'))
		suite.True(suite.sender.windowCount >= 0 && suite.sender.windowCount <= windowSize)
	}
	suite.Equal(int32(windowSize), suite.sender.windowCount)
	suite.Equal(20-windowSize, suite.sender.stats.WindowFull)
}

func (suite *SenderTestSuite) TestInitResetsState() {
	suite.sendMessages(4)
	suite.ack(0)

	suite.sender.Init()

	suite.Equal(int32(0), suite.sender.nextSeqNum)
	suite.Equal(int32(0), suite.sender.windowCount)
	suite.False(suite.sender.hasOldestUnacked)
	suite.Equal(SenderStats{}, suite.sender.stats)
}

func TestSenderTestSuite(t *testing.T) {
	suite.Run(t, new(SenderTestSuite))
}
