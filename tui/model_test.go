package tui

import (
	"strings"
	"testing"
	"time"

	"soundpad/board"
	"soundpad/config"
	"soundpad/playback"
	"soundpad/theme"
)

func TestMimeForPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"kick.mp3", "audio/mpeg"},
		{"/some/dir/Loop.WAV", "audio/wav"},
		{"voice.MP3", "audio/mpeg"},
		{"clip.ogg", ""},
		{"noext", ""},
	}
	for _, tc := range cases {
		if got := mimeForPath(tc.path); got != tc.want {
			t.Errorf("mimeForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestFmtDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{61 * time.Second, "1:01"},
		{10 * time.Minute, "10:00"},
		{-time.Second, "0:00"},
	}
	for _, tc := range cases {
		if got := fmtDuration(tc.d); got != tc.want {
			t.Errorf("fmtDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestCursorNavigationStaysOnGrid(t *testing.T) {
	m := Model{panel: 1}

	// left edge
	next, _ := m.updateKeys("h")
	if next.(Model).cursor != 0 {
		t.Error("h at left edge moved the cursor")
	}

	// walk to the right edge of the first row
	m.cursor = 2
	next, _ = m.updateKeys("l")
	if next.(Model).cursor != 2 {
		t.Error("l at right edge moved the cursor")
	}

	// down from the last row
	m.cursor = 13
	next, _ = m.updateKeys("j")
	if next.(Model).cursor != 13 {
		t.Error("j at bottom edge moved the cursor")
	}

	m.cursor = 4
	next, _ = m.updateKeys("j")
	if next.(Model).cursor != 7 {
		t.Errorf("j moved to %d, want 7", next.(Model).cursor)
	}
	next, _ = Model{panel: 1, cursor: 7}.updateKeys("k")
	if next.(Model).cursor != 4 {
		t.Errorf("k moved to %d, want 4", next.(Model).cursor)
	}
}

func TestPanelSwitching(t *testing.T) {
	m := Model{panel: 1}

	next, _ := m.updateKeys("tab")
	if next.(Model).panel != 2 {
		t.Error("tab did not switch to panel 2")
	}
	next, _ = next.(Model).updateKeys("tab")
	if next.(Model).panel != 1 {
		t.Error("tab did not switch back to panel 1")
	}

	next, _ = m.updateKeys("2")
	if next.(Model).panel != 2 {
		t.Error("2 did not select panel 2")
	}
}

func TestCursorPad(t *testing.T) {
	m := Model{panel: 2, cursor: 3}
	if got := m.cursorPad(); got != 18 {
		t.Errorf("cursorPad = %d, want 18", got)
	}
}

func TestNewModelRestoresLastPanel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UI.LastPanel = 2
	m := NewModel(nil, nil, theme.New(theme.DefaultPalette()), cfg)
	if m.panel != 2 {
		t.Errorf("panel = %d, want 2", m.panel)
	}

	cfg.UI.LastPanel = 9 // out of range falls back to panel 1
	m = NewModel(nil, nil, theme.New(theme.DefaultPalette()), cfg)
	if m.panel != 1 {
		t.Errorf("panel = %d, want 1", m.panel)
	}
}

func TestQuitPersistsLastPanel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	m := Model{panel: 2, Cfg: cfg}

	_, cmd := m.updateKeys("q")
	if cmd == nil {
		t.Fatal("q did not quit")
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.UI.LastPanel != 2 {
		t.Errorf("persisted panel = %d, want 2", loaded.UI.LastPanel)
	}
}

func TestViewShowsKeyHelpAndProgress(t *testing.T) {
	coord := playback.NewCoordinator(board.New(nil), playback.NewRegistry(nil), nil)
	m := NewModel(coord, nil, theme.New(theme.DefaultPalette()), nil)

	out := m.View()
	if !strings.Contains(out, "play / pause") || !strings.Contains(out, "play all") {
		t.Error("view is missing the key help")
	}

	bar := m.renderProgress(5*time.Second, 10*time.Second)
	if bar == "" {
		t.Fatal("no progress bar for a clip with known duration")
	}
	if m.renderProgress(0, 0) != "" {
		t.Error("progress bar rendered without a duration")
	}
}

func TestInputModeEditing(t *testing.T) {
	m := Model{panel: 1, inputMode: true}

	m = m.updateInput("a")
	m = m.updateInput("b")
	m = m.updateInput("backspace")
	if m.inputBuffer != "a" {
		t.Errorf("buffer = %q, want %q", m.inputBuffer, "a")
	}

	m = m.updateInput("esc")
	if m.inputMode || m.inputBuffer != "" {
		t.Error("esc did not cancel input mode")
	}
}
