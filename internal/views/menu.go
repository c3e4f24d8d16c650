package views

import (
	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/ui"
)

// MainMenu is the root view. Back on it empties the stack and ends the run.
type MainMenu struct {
	host   Host
	player PlayerOptions
}

var _ core.View = (*MainMenu)(nil)

func NewMainMenu(host Host, player PlayerOptions) *MainMenu {
	return &MainMenu{host: host, player: player}
}

func (m *MainMenu) UsesImmediateModeUI() bool { return true }
func (m *MainMenu) EnterForeground()          { m.host.Log().Debug("Main menu") }
func (m *MainMenu) LeaveForeground()          {}
func (m *MainMenu) Destroy()                  {}
func (m *MainMenu) BackPressed()              { m.host.Pop() }
func (m *MainMenu) RawDraw()                  {}

func (m *MainMenu) Draw() {
	c := m.host.UI()
	centerNext(c, 0.3)
	c.Begin("Main menu", ui.WindowNoTitleBar)
	c.PushFont(ui.FontH1)
	c.Text("Remote Display")
	c.PopFont()
	c.TextDisabled("Nothing connected")
	c.Separator()
	if c.Button("Connect (stub)") {
		m.host.Push(NewPlayer(m.host, m.player))
	}
	if c.Button("Settings") {
		m.host.Push(NewSettings(m.host))
	}
	if c.Button("Quit") {
		m.host.RequestExit()
	}
	c.End()
}

// centerNext centers the next window in the display and makes it at least
// frac of the display width.
func centerNext(c *ui.Context, frac float32) {
	d := c.IO.DisplaySize
	c.SetNextWindowPos(ui.Vec2{X: d.X / 2, Y: d.Y / 2}, ui.Vec2{X: 0.5, Y: 0.5}, true)
	c.SetNextWindowMinWidth(d.X * frac)
}
