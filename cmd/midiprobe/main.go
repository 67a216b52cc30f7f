package main

import (
	"fmt"
	"os"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "listen":
		listen()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI probe")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list    - List all MIDI input ports")
	fmt.Println("  listen  - Print note-on messages from every input")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- midi.GetInPorts()
	}()

	select {
	case ins := <-ch:
		for i, p := range ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI subsystem is hung.")
	}
}

func listen() {
	ins := midi.GetInPorts()
	if len(ins) == 0 {
		fmt.Println("No MIDI inputs")
		return
	}

	for _, in := range ins {
		port := in.String()
		stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
			var channel, note, velocity uint8
			if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
				fmt.Printf("[%s] ch%d note %d vel %d\n", port, channel, note, velocity)
			}
		})
		if err != nil {
			fmt.Printf("open %s: %v\n", port, err)
			continue
		}
		defer stop()
		fmt.Printf("listening on %s\n", port)
	}

	fmt.Println("Ctrl+C to exit.")
	select {}
}
