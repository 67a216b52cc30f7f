package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"soundpad/board"
	"soundpad/config"
	"soundpad/debug"
	"soundpad/midi"
	"soundpad/playback"
	"soundpad/storage"
	"soundpad/theme"
	"soundpad/tui"
)

func main() {
	if os.Getenv("SOUNDPAD_DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Load theme
	palette := theme.DefaultPalette()
	if cfg.UI.Palette != "" {
		if p, err := theme.LoadGPL(cfg.UI.Palette); err == nil {
			palette = p
		} else {
			debug.Log("main", "palette %s: %v", cfg.UI.Palette, err)
		}
	}
	th := theme.New(palette)

	padColors := th.PadColors(board.PadsPerPanel)
	colors := make([][3]uint8, len(padColors))
	for i, c := range padColors {
		colors[i] = c
	}
	b := board.New(colors)

	// Open the clip database
	dataDir, err := cfg.DataDirPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "data dir: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open clip database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	debug.Log("main", "clip database at %s", store.Path())

	// Audio engine
	engine, err := playback.NewBeepEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init: %v\n", err)
		os.Exit(1)
	}

	registry := playback.NewRegistry(engine)
	coord := playback.NewCoordinator(b, registry, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go coord.Run(ctx)

	if err := coord.LoadPersisted(); err != nil {
		fmt.Fprintf(os.Stderr, "restore pads: %v\n", err)
	}

	// MIDI trigger devices (hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg)
	go deviceMgr.Run(ctx)

	m := tui.NewModel(coord, deviceMgr, th, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
