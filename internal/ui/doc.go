// Package ui implements an interactive terminal browser for the review archive using bubbletea's Elm architecture.
//
// The TUI renders the views of a [navigation.Session]:
//   - Home: the newest reviews followed by shuffled pick-ups
//   - Search: live search with a cycling mode (all, artist, title)
//   - Library: the artist index; enter expands an artist
//   - Best: annual rankings, one year at a time
//   - About: the site and profile text
//   - Detail: one review with its related reviews beneath
//
// The [Model] implements bubbletea's Init/Update/View pattern. Every state change goes through a
// session command; the returned effect tells the model whether to scroll the detail view to the top
// or restore a list cursor. Long lists reveal their next page when the cursor reaches the last row.
//
// The archive loads asynchronously through [services.Load]; a spinner is shown until [MsgArchiveLoaded].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
