package main

import (
	"flag"
	"fmt"
	"log"

	srarq "github.com/arqnet/srarq-go"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	messages := flag.Int("messages", 0, "number of messages to simulate (overrides config)")
	loss := flag.Float64("loss", -1, "packet loss probability (overrides config)")
	corrupt := flag.Float64("corrupt", -1, "packet corruption probability (overrides config)")
	seed := flag.Int64("seed", 0, "random seed (overrides config)")
	verbose := flag.Bool("v", false, "log every simulation event")
	flag.Parse()

	config := srarq.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = srarq.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *messages > 0 {
		config.MessageCount = *messages
	}
	if *loss >= 0 {
		config.LossProbability = *loss
	}
	if *corrupt >= 0 {
		config.CorruptProbability = *corrupt
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if *verbose {
		config.Verbose = true
	}

	sim, err := srarq.NewSimulator(config)
	if err != nil {
		log.Fatal(err)
	}
	defer sim.Close()

	stats, err := sim.Run()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("simulation finished at t=%.3f\n", stats.FinalTime)
	fmt.Printf("  messages generated:  %d\n", stats.MessagesGenerated)
	fmt.Printf("  packets lost:        %d\n", stats.PacketsLost)
	fmt.Printf("  packets corrupted:   %d\n", stats.PacketsCorrupted)
	fmt.Printf("  sender sent:         %d (+%d retransmissions)\n", stats.Sender.PacketsSent, stats.Sender.PacketsResent)
	fmt.Printf("  sender window full:  %d\n", stats.Sender.WindowFull)
	fmt.Printf("  acks received:       %d (%d new)\n", stats.Sender.AcksReceived, stats.Sender.NewAcks)
	fmt.Printf("  receiver got:        %d packets, sent %d acks\n", stats.Receiver.PacketsReceived, stats.Receiver.AcksSent)
	fmt.Printf("  delivered:           %d messages\n", stats.Receiver.MessagesDelivered)
	if stats.TimerFaults > 0 {
		fmt.Printf("  timer faults:        %d\n", stats.TimerFaults)
	}
}
