package navigation

import (
	"slices"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
)

// Snapshot is one history entry.
type Snapshot struct {
	View     View
	Selected *models.Review
}

// Slot is the transient state a view keeps between visits.
type Slot struct {
	Pager        Pager
	ScrollOffset int
}

// State is the navigation state of one browsing session.
type State struct {
	view     View
	selected *models.Review
	history  []Snapshot
	slots    [viewCount]Slot

	expandedArtist string
	query          string
	mode           archive.Mode
	rankYear       string
}

// NewState returns the state of a fresh session: [Home], no history, first pages revealed.
func NewState() State {
	s := State{view: Home, mode: archive.ModeAll}
	for i := range s.slots {
		s.slots[i] = Slot{Pager: NewPager()}
	}
	return s
}

// Apply returns the state after cmd and the effect the presentation layer should perform.
func (s State) Apply(cmd Command) (State, Effect) {
	if cmd == nil {
		return s, noEffect
	}
	return cmd.apply(s)
}

func (s State) View() View               { return s.view }
func (s State) Selected() *models.Review { return s.selected }
func (s State) HistoryDepth() int        { return len(s.history) }
func (s State) Slot(v View) Slot         { return s.slotOf(v) }
func (s State) ExpandedArtist() string   { return s.expandedArtist }
func (s State) Query() string            { return s.query }
func (s State) Mode() archive.Mode       { return s.mode }
func (s State) RankYear() string         { return s.rankYear }
func (s State) History() []Snapshot      { return slices.Clone(s.history) }
func (s State) CanGoBack() bool          { return s.view == Detail }

func (s State) slotOf(v View) Slot {
	if v < 0 || v >= viewCount {
		return Slot{Pager: NewPager()}
	}
	return s.slots[v]
}

// enter returns the effect of arriving at v: detail starts at the top, list views replay their offset.
func (s State) enter(v View) Effect {
	if v.TracksScroll() {
		return restore(s.slots[v].ScrollOffset)
	}
	return scrollTop
}

func (c SelectRecord) apply(s State) (State, Effect) {
	if s.view.TracksScroll() {
		s.slots[s.view].ScrollOffset = c.ScrollOffset
	}

	s.history = append(slices.Clone(s.history), Snapshot{View: s.view, Selected: s.selected})

	r := c.Review
	s.view = Detail
	s.selected = &r
	s.slots[Detail].Pager = NewPager()
	return s, scrollTop
}

func (GoBack) apply(s State) (State, Effect) {
	if s.view != Detail {
		return s, noEffect
	}

	if len(s.history) == 0 {
		s.view = Home
		s.selected = nil
		return s, s.enter(Home)
	}

	last := s.history[len(s.history)-1]
	s.history = slices.Clone(s.history[:len(s.history)-1])
	s.view = last.View
	s.selected = last.Selected
	if last.View == Detail {
		s.slots[Detail].Pager = NewPager()
	}
	return s, s.enter(last.View)
}

func (c NavigateTopLevel) apply(s State) (State, Effect) {
	if !c.View.IsTopLevel() {
		return s, noEffect
	}

	s.history = nil
	s.selected = nil
	s.view = c.View
	return s, s.enter(c.View)
}

func (c SetSearch) apply(s State) (State, Effect) {
	s.query = c.Query
	if c.Mode != "" {
		s.mode = c.Mode
	}
	if c.Query == "" {
		return s, noEffect
	}

	// Not pushed: Back cannot return from a search.
	if s.view == Search {
		return s, noEffect
	}
	s.view = Search
	s.selected = nil
	return s, s.enter(Search)
}

func (c ToggleArtistGroup) apply(s State) (State, Effect) {
	if s.expandedArtist == c.Name {
		s.expandedArtist = ""
	} else {
		s.expandedArtist = c.Name
	}
	return s, noEffect
}

func (c RevealMore) apply(s State) (State, Effect) {
	if c.View < 0 || c.View >= viewCount {
		return s, noEffect
	}
	s.slots[c.View].Pager = s.slots[c.View].Pager.More()
	return s, noEffect
}

func (c SelectRankYear) apply(s State) (State, Effect) {
	s.rankYear = c.Year
	return s, noEffect
}
