package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"soundpad/board"
	"soundpad/config"
	"soundpad/debug"
	"soundpad/midi"
	"soundpad/playback"
	"soundpad/theme"
	"soundpad/widgets"
)

const (
	gridCols  = 3
	cellWidth = 24
)

var keyHelp = []widgets.KeySection{
	{Title: "pads", Keys: []widgets.KeyBinding{
		{Key: "h j k l", Desc: "move cursor"},
		{Key: "space", Desc: "play / pause"},
		{Key: "o", Desc: "load a file"},
		{Key: "d", Desc: "clear pad"},
	}},
	{Title: "player", Keys: []widgets.KeyBinding{
		{Key: "a", Desc: "play all"},
		{Key: "n / b", Desc: "next / previous"},
		{Key: "< / >", Desc: "seek 5s"},
		{Key: "x", Desc: "close player"},
		{Key: "tab 1 2", Desc: "switch panel"},
		{Key: "q", Desc: "quit"},
	}},
}

type Model struct {
	Coord     *playback.Coordinator
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme
	Cfg       *config.Config

	panel    int // focused panel, 1 or 2
	cursor   int // pad slot within the panel, 0..14
	quitting bool

	inputMode   bool // typing a file path for the cursor pad
	inputBuffer string
	status      string

	controller *midi.TriggerController // current trigger device (may be nil)
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

type TickMsg time.Time

func NewModel(coord *playback.Coordinator, deviceMgr *midi.DeviceManager, th *theme.Theme, cfg *config.Config) Model {
	panel := 1
	if cfg != nil && cfg.UI.LastPanel >= 1 && cfg.UI.LastPanel <= board.NumPanels {
		panel = cfg.UI.LastPanel
	}
	return Model{
		Coord:     coord,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Cfg:       cfg,
		panel:     panel,
	}
}

func ListenForUpdates(coord *playback.Coordinator) tea.Cmd {
	return func() tea.Msg {
		<-coord.UpdateCh
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event := <-deviceMgr.Events()
		return DeviceEventMsg(event)
	}
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Coord),
		ListenForDevices(m.DeviceMgr),
		tick(),
	)
}

// cursorPad is the board pad id under the cursor
func (m Model) cursorPad() int {
	return (m.panel-1)*board.PadsPerPanel + m.cursor
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.updateInput(msg.String()), nil
		}
		return m.updateKeys(msg.String())

	case UpdateMsg:
		return m, ListenForUpdates(m.Coord)

	case TickMsg:
		return m, tick()

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.controller = event.Controller
			m.status = "MIDI connected: " + event.ID

			// Pad presses act like taps on the grid
			coord := m.Coord
			go func() {
				for trig := range event.Controller.Triggers() {
					coord.PlayPauseToggle(trig.Pad)
				}
			}()
		} else if event.Type == midi.DeviceDisconnected {
			if m.controller != nil && m.controller.ID() == event.ID {
				m.controller = nil
			}
			m.status = "MIDI disconnected: " + event.ID
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func (m Model) updateKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		if m.Cfg != nil {
			m.Cfg.UI.LastPanel = m.panel
			if err := m.Cfg.Save(); err != nil {
				debug.Log("tui", "save config: %v", err)
			}
		}
		return m, tea.Quit

	case "tab":
		m.panel = 3 - m.panel
	case "1":
		m.panel = 1
	case "2":
		m.panel = 2

	case "h", "left":
		if m.cursor%gridCols > 0 {
			m.cursor--
		}
	case "l", "right":
		if m.cursor%gridCols < gridCols-1 && m.cursor+1 < board.PadsPerPanel {
			m.cursor++
		}
	case "k", "up":
		if m.cursor >= gridCols {
			m.cursor -= gridCols
		}
	case "j", "down":
		if m.cursor+gridCols < board.PadsPerPanel {
			m.cursor += gridCols
		}

	case " ", "enter":
		m.Coord.PlayPauseToggle(m.cursorPad())
	case "a":
		m.Coord.TogglePlayAll(m.panel)
	case "n":
		m.Coord.PlayAllNext(m.panel)
	case "b":
		m.Coord.PlayAllPrev(m.panel)
	case "x":
		m.Coord.ClosePlayer(m.panel)
	case ">", ".":
		m.seekBy(5 * time.Second)
	case "<", ",":
		m.seekBy(-5 * time.Second)

	case "d":
		pad := m.cursorPad()
		if err := m.Coord.DeletePad(pad); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("cleared pad %d", pad)
		}

	case "o":
		m.inputMode = true
		m.inputBuffer = ""
		m.status = ""
	}

	return m, nil
}

func (m Model) updateInput(key string) Model {
	switch key {
	case "enter":
		m.loadFile(strings.TrimSpace(m.inputBuffer))
		m.inputMode = false
		m.inputBuffer = ""
	case "esc":
		m.inputMode = false
		m.inputBuffer = ""
	case "backspace":
		if len(m.inputBuffer) > 0 {
			m.inputBuffer = m.inputBuffer[:len(m.inputBuffer)-1]
		}
	default:
		// Only accept printable characters
		if len(key) == 1 && key[0] >= 32 && key[0] < 127 {
			m.inputBuffer += key
		}
	}
	return m
}

// loadFile reads an audio file and binds it to the cursor pad
func (m *Model) loadFile(path string) {
	if path == "" {
		return
	}

	mime := mimeForPath(path)
	if mime == "" {
		m.status = "unsupported file type (want .mp3 or .wav)"
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.status = "read failed: " + err.Error()
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m.Coord.LoadClip(m.cursorPad(), board.Clip{Name: name, MIME: mime, Data: data})
	m.status = fmt.Sprintf("loaded %q onto pad %d", name, m.cursorPad())
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return board.MIMEMpeg
	case ".wav":
		return board.MIMEWav
	}
	return ""
}

func (m *Model) seekBy(delta time.Duration) {
	st := m.Coord.PanelStatus(m.panel)
	if st.ActivePad < 0 {
		return
	}
	pos := st.Position + delta
	if pos < 0 {
		pos = 0
	}
	if st.Duration > 0 && pos > st.Duration {
		pos = st.Duration
	}
	m.Coord.Seek(m.panel, pos)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	midiStatus := ""
	if m.controller != nil {
		midiStatus = "  midi:on"
	}
	header := headerStyle.Render(fmt.Sprintf("soundpad  panel %d/%d%s", m.panel, board.NumPanels, midiStatus))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(m.renderGrid())
	out.WriteString("\n\n")
	out.WriteString(m.renderPlayer())
	out.WriteString("\n\n")

	if m.inputMode {
		promptStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
		out.WriteString(promptStyle.Render(fmt.Sprintf("load file for pad %d: %s_", m.cursorPad(), m.inputBuffer)))
		out.WriteString("\n")
		out.WriteString(dimStyle.Render("[enter] load  [esc] cancel"))
		return out.String()
	}

	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(keyHelp)))

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(warnStyle.Render(m.status))
	}

	return out.String()
}

func (m Model) renderGrid() string {
	views := m.Coord.PanelView(m.panel)
	cells := make([]widgets.PadCell, len(views))
	for i, v := range views {
		sym := m.Theme.Symbols.PadEmpty
		label := "---"
		switch {
		case v.Active && v.Playing:
			sym = m.Theme.Symbols.PadPlaying
		case v.Active:
			sym = m.Theme.Symbols.PadPaused
		case v.Bound:
			sym = m.Theme.Symbols.PadLoaded
		}
		if v.Bound {
			label = v.Name
		}
		cells[i] = widgets.PadCell{
			Symbol:   string(sym),
			Label:    label,
			Color:    v.Color,
			Selected: i == m.cursor,
		}
	}
	return widgets.RenderPadGrid(cells, gridCols, cellWidth)
}

func (m Model) renderPlayer() string {
	st := m.Coord.PanelStatus(m.panel)

	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())

	if st.ActivePad < 0 {
		line := "no pad active"
		if st.PlayAll {
			line += fmt.Sprintf("  [play all %d/%d]", st.PlayAllIndex+1, st.QueueLen)
		}
		return dimStyle.Render(line)
	}

	state := "paused"
	if st.Playing {
		state = "playing"
	}
	line := fmt.Sprintf("%s %s  %s / %s  (%s)",
		string(m.Theme.Symbols.PadPlaying),
		widgets.TruncateLabel(st.PadName, 20),
		fmtDuration(st.Position),
		fmtDuration(st.Duration),
		state,
	)
	if st.PlayAll {
		line += fmt.Sprintf("  [play all %d/%d]", st.PlayAllIndex+1, st.QueueLen)
	}
	if bar := m.renderProgress(st.Position, st.Duration); bar != "" {
		return activeStyle.Render(line) + "\n" + bar
	}
	return activeStyle.Render(line)
}

const progressCells = 24

// renderProgress draws the transport bar; the filled part takes its color
// from the palette position matching the playback fraction.
func (m Model) renderProgress(pos, dur time.Duration) string {
	if dur <= 0 {
		return ""
	}
	frac := float64(pos) / float64(dur)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * progressCells)
	fill := lipgloss.NewStyle().Foreground(m.Theme.Color(frac))
	rest := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	return fill.Render(strings.Repeat("━", filled)) + rest.Render(strings.Repeat("╌", progressCells-filled))
}

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
