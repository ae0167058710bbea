package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

var (
	watchDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	watchErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Messages
// =============================================================================

// meshStartedMsg is sent when a re-mesh begins.
type meshStartedMsg struct{}

// meshFinishedMsg carries the outcome of a re-mesh.
type meshFinishedMsg struct {
	res     *pipeline.Result
	paths   []string
	err     error
	elapsed time.Duration
}

// watchErrMsg reports that the file watcher stopped or never started.
type watchErrMsg struct{ err error }

// =============================================================================
// watchModel - Live status for the watch command
// =============================================================================

type watchStatus int

const (
	watchWaiting watchStatus = iota
	watchRunning
	watchDone
	watchFailed
)

// watchModel is the bubbletea model behind "watch --tui".
type watchModel struct {
	path    string
	rerun   chan<- struct{}
	status  watchStatus
	runs    int
	last    meshFinishedMsg
	summary meshSummary

	// watchErr is set once the watcher has failed; re-meshing with r still
	// works.
	watchErr error
}

func newWatchModel(path string, rerun chan<- struct{}) watchModel {
	return watchModel{path: path, rerun: rerun}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			// A pending request already covers this one.
			select {
			case m.rerun <- struct{}{}:
			default:
			}
		}
	case watchErrMsg:
		m.watchErr = msg.err
	case meshStartedMsg:
		m.status = watchRunning
	case meshFinishedMsg:
		m.runs++
		m.last = msg
		if msg.err != nil {
			m.status = watchFailed
			break
		}
		m.status = watchDone
		m.summary = summarize(msg.res.Graph)
		m.summary.Source = filepath.Base(m.path)
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	if m.watchErr != nil {
		b.WriteString(StyleTitle.Render("Not watching " + m.path))
		b.WriteString("\n")
		b.WriteString(watchErrorStyle.Render(iconError + " " + m.watchErr.Error()))
	} else {
		b.WriteString(StyleTitle.Render("Watching " + m.path))
	}
	b.WriteString("\n")
	b.WriteString(watchDimStyle.Render("r re-mesh  q quit"))
	b.WriteString("\n\n")

	switch m.status {
	case watchWaiting:
		b.WriteString(watchDimStyle.Render("waiting for first mesh…"))
	case watchRunning:
		b.WriteString(StyleHighlight.Render("meshing…"))
	case watchFailed:
		b.WriteString(watchErrorStyle.Render(iconError + " " + m.last.err.Error()))
	case watchDone:
		state := iconFresh
		if m.last.res.CacheInfo.MeshHit {
			state = iconCached
		}
		b.WriteString(StyleSuccess.Render(iconSuccess))
		b.WriteString(fmt.Sprintf(" run %d · %s · %s\n", m.runs, m.last.elapsed.Round(time.Millisecond), state))
		b.WriteString(renderSummary(m.summary))
		for _, p := range m.last.paths {
			b.WriteString("\n  " + watchDimStyle.Render(iconArrow) + " " + StyleValue.Render(p))
		}
	}
	b.WriteString("\n")
	return b.String()
}
