package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xiubox/asset-manager/cache"
	"github.com/xiubox/asset-manager/loader"
	"github.com/xiubox/asset-manager/manifest"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	readyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// assetRow is a point-in-time view of one cache entry for display.
type assetRow struct {
	key   string
	path  string
	state cache.State
	ready bool
	size  int
	err   error
}

type preloadModel struct {
	err          error
	manifestPath string
	rootDir      string
	archivePath  string

	cache  *cache.Cache[string, loader.Handle]
	closer io.Closer

	rows      []assetRow
	selected  int
	filter    textinput.Model
	filtering bool
	spin      spinner.Model
}

type loadedMsg struct {
	err    error
	cache  *cache.Cache[string, loader.Handle]
	closer io.Closer
}

type tickMsg time.Time

func newPreloadModel(manifestPath, rootDir, archivePath string) *preloadModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "filter"
	fi.Width = 30

	return &preloadModel{
		manifestPath: manifestPath,
		rootDir:      rootDir,
		archivePath:  archivePath,
		filter:       fi,
		spin:         sp,
	}
}

func (m *preloadModel) Init() tea.Cmd {
	return tea.Batch(m.load, m.spin.Tick, tick())
}

// load reads the manifest and registers every entry, off the UI goroutine.
func (m *preloadModel) load() tea.Msg {
	regs, err := manifest.Load(m.manifestPath, manifest.StringKey)
	if err != nil {
		return loadedMsg{err: err}
	}
	ld, closer, err := newLoader(m.rootDir, m.archivePath)
	if err != nil {
		return loadedMsg{err: err}
	}
	c := cache.New[string](ld)
	c.Apply(regs)
	return loadedMsg{cache: c, closer: closer}
}

// tick drives the row refresh while loads complete in the background.
func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *preloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "ctrl+c":
				return m.quit()
			case "enter":
				m.filtering = false
				m.filter.Blur()
				m.clampSelected()
				return m, nil
			case "esc":
				m.filtering = false
				m.filter.SetValue("")
				m.filter.Blur()
				m.clampSelected()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.clampSelected()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visibleRows())-1 {
				m.selected++
			}

		case "enter":
			if m.cache == nil {
				return m, nil
			}
			rows := m.visibleRows()
			if m.selected < len(rows) {
				m.cache.Resolve(rows[m.selected].key)
				m.refresh()
			}

		case "a":
			if m.cache == nil {
				return m, nil
			}
			keys := make([]string, len(m.rows))
			for i, r := range m.rows {
				keys[i] = r.key
			}
			m.cache.ResolveMany(keys)
			m.refresh()

		case "/":
			m.filtering = true
			m.filter.Focus()
			return m, textinput.Blink
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cache = msg.cache
		m.closer = msg.closer
		m.refresh()

	case tickMsg:
		if m.cache != nil {
			m.refresh()
			m.clampSelected()
		}
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *preloadModel) quit() (tea.Model, tea.Cmd) {
	if m.closer != nil {
		m.closer.Close()
	}
	return m, tea.Quit
}

// refresh walks the cache under its read lock, then fetches handles
// afterwards. Get takes the write lock, so it must never run inside Each.
func (m *preloadModel) refresh() {
	var rows []assetRow
	m.cache.Each(func(key string, state cache.State, path string) bool {
		rows = append(rows, assetRow{key: key, path: path, state: state})
		return true
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	for i := range rows {
		if rows[i].state != cache.StateResolved {
			continue
		}
		h, ok := m.cache.Get(rows[i].key)
		if !ok {
			continue
		}
		rows[i].ready = h.Ready()
		if rows[i].ready {
			data, err := h.Bytes()
			rows[i].size = len(data)
			rows[i].err = err
		}
	}
	m.rows = rows
}

func (m *preloadModel) visibleRows() []assetRow {
	q := strings.TrimSpace(m.filter.Value())
	if q == "" {
		return m.rows
	}
	var out []assetRow
	for _, r := range m.rows {
		if strings.Contains(r.key, q) || strings.Contains(r.path, q) {
			out = append(out, r)
		}
	}
	return out
}

func (m *preloadModel) clampSelected() {
	if n := len(m.visibleRows()); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *preloadModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.cache == nil {
		return m.spin.View() + " Reading manifest..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Asset Preloader"))
	b.WriteString(" ")
	b.WriteString(m.manifestPath)
	b.WriteString("\n\n")

	rows := m.visibleRows()
	if len(rows) == 0 {
		b.WriteString(helpStyle.Render("no matching assets"))
		b.WriteString("\n")
	}
	for i, r := range rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
			b.WriteString(selectedStyle.Render(cursor + r.key))
		} else {
			b.WriteString(cursor + keyStyle.Render(r.key))
		}
		b.WriteString("  " + pathStyle.Render(r.path) + "  " + m.statusView(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.summary()))
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • enter load • a load all • / filter • q quit"))

	return b.String()
}

func (m *preloadModel) statusView(r assetRow) string {
	switch {
	case r.state == cache.StatePending:
		return helpStyle.Render("lazy")
	case !r.ready:
		return m.spin.View() + " loading"
	case r.err != nil:
		return errorStyle.Render("✗ " + r.err.Error())
	default:
		return readyStyle.Render(fmt.Sprintf("✓ %d B", r.size))
	}
}

func (m *preloadModel) summary() string {
	var pending, loading, ready, failed int
	for _, r := range m.rows {
		switch {
		case r.state == cache.StatePending:
			pending++
		case !r.ready:
			loading++
		case r.err != nil:
			failed++
		default:
			ready++
		}
	}
	return fmt.Sprintf("%d lazy • %d loading • %d ready • %d failed", pending, loading, ready, failed)
}

func runInteractive(manifestPath, rootDir, archivePath string) error {
	p := tea.NewProgram(newPreloadModel(manifestPath, rootDir, archivePath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}
