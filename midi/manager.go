package midi

import (
	"context"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"soundpad/config"
)

// DeviceEvent is emitted when trigger devices connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller *TriggerController
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of configured MIDI trigger
// devices. Only ports with a matching autoConnect entry in the config are
// opened.
type DeviceManager struct {
	cfg         *config.Config
	controllers map[string]*TriggerController
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewDeviceManager creates a new device manager
func NewDeviceManager(cfg *config.Config) *DeviceManager {
	return &DeviceManager{
		cfg:         cfg,
		controllers: make(map[string]*TriggerController),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected trigger devices
func (dm *DeviceManager) Controllers() map[string]*TriggerController {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]*TriggerController, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		// MIDI subsystem is hung - skip this scan
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		id := inPort.String()
		tcfg := dm.cfg.FindTrigger(id)
		if tcfg == nil || !tcfg.AutoConnect {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()

		if !exists {
			tc, err := NewTriggerController(id, inPorts[i], uint8(tcfg.BaseNote))
			if err != nil {
				continue
			}

			dm.mu.Lock()
			dm.controllers[id] = tc
			dm.mu.Unlock()

			dm.events <- DeviceEvent{
				Type:       DeviceConnected,
				Controller: tc,
				ID:         id,
			}
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		tc := dm.controllers[id]
		tc.Close()
		delete(dm.controllers, id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, tc := range dm.controllers {
		tc.Close()
	}
	dm.controllers = make(map[string]*TriggerController)
}
