package navigation

import (
	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
)

// Command is a state transition. The set is closed: only this package implements it.
type Command interface {
	apply(s State) (State, Effect)
}

// EffectKind tells the presentation layer what to do with its scroll position.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectScrollTop
	EffectRestoreScroll
)

// Effect accompanies a transition.
type Effect struct {
	Kind   EffectKind
	Offset int
}

var (
	noEffect  = Effect{Kind: EffectNone}
	scrollTop = Effect{Kind: EffectScrollTop}
)

func restore(offset int) Effect {
	return Effect{Kind: EffectRestoreScroll, Offset: offset}
}

// SelectRecord drills into a review. ScrollOffset is the current view's position, saved when the
// view tracks scroll.
type SelectRecord struct {
	Review       models.Review
	ScrollOffset int
}

// GoBack returns from [Detail] to the previous snapshot.
type GoBack struct{}

// NavigateTopLevel switches to a primary section, discarding history.
type NavigateTopLevel struct {
	View View
}

// SetSearch updates the query; a non-empty query shows [Search].
type SetSearch struct {
	Query string
	Mode  archive.Mode
}

// ToggleArtistGroup expands an artist in the library, or collapses it when already expanded.
type ToggleArtistGroup struct {
	Name string
}

// RevealMore discloses the next page of a view's list.
type RevealMore struct {
	View View
}

// SelectRankYear chooses the ranking edition shown by [Best].
type SelectRankYear struct {
	Year string
}
