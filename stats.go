package srarq

// SenderStats counts the sender-side protocol events of a run.
type SenderStats struct {
	PacketsSent   int
	PacketsResent int
	AcksReceived  int
	NewAcks       int
	WindowFull    int
}

// ReceiverStats counts the receiver-side protocol events of a run.
type ReceiverStats struct {
	PacketsReceived   int
	MessagesDelivered int
	AcksSent          int
}

// RunStats aggregates the counters of one simulation run.
type RunStats struct {
	MessagesGenerated int
	PacketsLost       int
	PacketsCorrupted  int
	TimerFaults       int
	FinalTime         float64
	Sender            SenderStats
	Receiver          ReceiverStats
}
