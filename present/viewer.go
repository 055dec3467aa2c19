package present

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewerKeys struct {
	Next key.Binding
	Prev key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k viewerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Quit}
}

func (k viewerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultViewerKeys = viewerKeys{
	Next: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next")),
	Prev: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev")),
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Viewer is a bubbletea model that pages through frames.
type Viewer struct {
	frames []Frame
	index  int
	width  int
	height int
	body   viewport.Model
	help   help.Model
	keys   viewerKeys
}

// NewViewer returns a viewer positioned on the first frame.
func NewViewer(frames []Frame) Viewer {
	v := Viewer{
		frames: frames,
		body:   viewport.New(80, 20),
		help:   help.New(),
		keys:   defaultViewerKeys,
	}
	v.syncBody()
	return v
}

// Index returns the position of the frame on screen.
func (v Viewer) Index() int {
	return v.index
}

func (v *Viewer) syncBody() {
	if len(v.frames) == 0 {
		v.body.SetContent(dimStyle.Render("nothing to show"))
		return
	}
	v.body.SetContent(v.frames[v.index].Body)
	v.body.GotoTop()
}

func (v Viewer) Init() tea.Cmd {
	return nil
}

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = msg.Width
		// title, blank line, help and the frame border
		v.body.Width = max(msg.Width-4, 10)
		v.body.Height = max(msg.Height-6, 3)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Next):
			if v.index < len(v.frames)-1 {
				v.index++
				v.syncBody()
			}
			return v, nil
		case key.Matches(msg, v.keys.Prev):
			if v.index > 0 {
				v.index--
				v.syncBody()
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.body, cmd = v.body.Update(msg)
	return v, cmd
}

func (v Viewer) View() string {
	title := "qlab"
	if len(v.frames) > 0 {
		title = fmt.Sprintf("%s  %s", v.frames[v.index].Title,
			dimStyle.Render(fmt.Sprintf("(%d/%d)", v.index+1, len(v.frames))))
	}
	content := titleStyle.Render(title) + "\n\n" + v.body.View()
	box := frameStyle
	if v.width > 0 {
		box = box.Width(v.width - 2)
	}
	return lipgloss.JoinVertical(lipgloss.Left, box.Render(content), v.help.View(v.keys))
}

// RunViewer shows the frames full screen until the user quits.
func RunViewer(frames []Frame) error {
	_, err := tea.NewProgram(NewViewer(frames), tea.WithAltScreen()).Run()
	return err
}
