// Package navigation implements the browsing state machine and the session that owns the archive.
//
// [State] is a value: [State.Apply] takes a [Command] and returns the next State plus an [Effect]
// for the presentation layer (scroll to top, restore a saved offset). The receiver is never
// modified, so a State can be kept as a snapshot for tests or undo.
//
// Views: [Home], [Search], [Library], [About], [Best] and [Detail]. Selecting a review pushes the
// current view and selection onto a history stack; [GoBack] pops it; top-level navigation clears
// it. Searching switches to [Search] without pushing, so Back never returns from a search.
//
// Each view has a [Slot] holding its [Pager] (incremental disclosure, 6 items at a time) and the
// scroll offset saved when the user last left it by selecting a review.
//
// [Session] pairs a State with an immutable [Archive] snapshot and exposes each view's derived data.
package navigation
