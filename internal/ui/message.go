package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/pseudology/internal/navigation"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgArchiveLoaded MsgKind = iota
	MsgImageOpened
)

// archiveLoad is the payload of [MsgArchiveLoaded].
type archiveLoad struct {
	archive *navigation.Archive
	failed  []string
}

// archiveLoadedMsg is the constructor for [MsgArchiveLoaded]
func archiveLoadedMsg(a *navigation.Archive, failed []string) Msg {
	return Msg{kind: MsgArchiveLoaded, data: archiveLoad{archive: a, failed: failed}}
}

// imageOpen is the payload of [MsgImageOpened].
type imageOpen struct {
	url string
	err error
}

// imageOpenedMsg is the constructor for [MsgImageOpened]
func imageOpenedMsg(url string, err error) Msg {
	return Msg{kind: MsgImageOpened, data: imageOpen{url: url, err: err}}
}
