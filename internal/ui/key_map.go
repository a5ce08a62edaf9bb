package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	home     key.Binding
	search   key.Binding
	library  key.Binding
	best     key.Binding
	about    key.Binding
	mode     key.Binding
	more     key.Binding
	open     key.Binding
	nextYear key.Binding
	prevYear key.Binding
	nextInit key.Binding
	prevInit key.Binding
	scrollUp key.Binding
	scrollDn key.Binding
	reload   key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		home:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		search:   key.NewBinding(key.WithKeys("2", "/"), key.WithHelp("/", "search")),
		library:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "library")),
		best:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "best")),
		about:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "about")),
		mode:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "search mode")),
		more:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open cover")),
		nextYear: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "older year")),
		prevYear: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "newer year")),
		nextInit: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next letter")),
		prevInit: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous letter")),
		scrollUp: key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "scroll up")),
		scrollDn: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "scroll down")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.home, k.search, k.library, k.best, k.about},
		{k.more, k.open, k.mode, k.reload},
		{k.prevYear, k.nextYear, k.prevInit, k.nextInit},
		{k.scrollUp, k.scrollDn, k.help, k.quit},
	}
}
