package navigation

import (
	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
)

// RecentCount is the number of newest reviews on the home view.
const RecentCount = 6

// Archive is an immutable snapshot of the loaded data plus the projections that only depend on it.
type Archive struct {
	reviews  []models.Review
	ranks    []models.RankEntry
	about    models.About
	seed     uint64
	sections []archive.Section
	pickups  []models.Review
	years    []string
}

// NewArchive builds a snapshot. reviews must already be in collection order (see [models.NewCollection]).
func NewArchive(reviews []models.Review, ranks []models.RankEntry, about models.About, seed uint64) *Archive {
	reviews = append([]models.Review{}, reviews...)
	ranks = append([]models.RankEntry{}, ranks...)

	return &Archive{
		reviews:  reviews,
		ranks:    ranks,
		about:    about,
		seed:     seed,
		sections: archive.Group(reviews),
		pickups:  archive.Pickups(reviews, RecentCount, seed),
		years:    archive.Years(ranks),
	}
}

// EmptyArchive is the snapshot shown while data is loading.
func EmptyArchive() *Archive {
	return NewArchive(nil, nil, models.About{}, 0)
}

func (a *Archive) Reviews() []models.Review    { return a.reviews }
func (a *Archive) Ranks() []models.RankEntry   { return a.ranks }
func (a *Archive) About() models.About         { return a.about }
func (a *Archive) Seed() uint64                { return a.seed }
func (a *Archive) Sections() []archive.Section { return a.sections }
func (a *Archive) Years() []string             { return a.years }
func (a *Archive) Len() int                    { return len(a.reviews) }
func (a *Archive) Recent() []models.Review     { return archive.Recent(a.reviews, RecentCount) }
func (a *Archive) Pickups() []models.Review    { return a.pickups }
func (a *Archive) Related(r models.Review) []models.Review {
	return archive.Related(r, a.reviews)
}

// Review looks a review up by id.
func (a *Archive) Review(id int) (models.Review, bool) {
	return archive.FindByID(a.reviews, id)
}

// Search runs a query over the snapshot.
func (a *Archive) Search(query string, mode archive.Mode) []models.Review {
	return archive.Search(a.reviews, query, mode)
}

// Ranking matches year's list, or the most recent year when year is empty.
func (a *Archive) Ranking(year string) archive.Ranking {
	if year == "" && len(a.years) > 0 {
		year = a.years[0]
	}
	return archive.Match(a.ranks, a.reviews, year)
}

// Session owns the current [State] and [Archive] of one browsing session.
//
// Session is not safe for concurrent use; it is driven from a single event loop.
type Session struct {
	id      string
	archive *Archive
	state   State
}

// NewSession starts a session over a (possibly empty) archive.
func NewSession(id string, a *Archive) *Session {
	if a == nil {
		a = EmptyArchive()
	}
	return &Session{id: id, archive: a, state: NewState()}
}

func (s *Session) ID() string          { return s.id }
func (s *Session) Archive() *Archive   { return s.archive }
func (s *Session) State() State        { return s.state }
func (s *Session) About() models.About { return s.archive.About() }
func (s *Session) Years() []string     { return s.archive.Years() }

// Load replaces the archive wholesale. Navigation state is kept.
func (s *Session) Load(a *Archive) {
	if a == nil {
		a = EmptyArchive()
	}
	s.archive = a
}

// Dispatch applies cmd to the session state.
func (s *Session) Dispatch(cmd Command) Effect {
	next, effect := s.state.Apply(cmd)
	s.state = next
	return effect
}

func (s *Session) SelectRecord(r models.Review, scrollOffset int) Effect {
	return s.Dispatch(SelectRecord{Review: r, ScrollOffset: scrollOffset})
}

func (s *Session) GoBack() Effect { return s.Dispatch(GoBack{}) }

func (s *Session) NavigateTopLevel(v View) Effect {
	return s.Dispatch(NavigateTopLevel{View: v})
}

func (s *Session) SetSearch(query string, mode archive.Mode) Effect {
	return s.Dispatch(SetSearch{Query: query, Mode: mode})
}

func (s *Session) ToggleArtistGroup(name string) Effect {
	return s.Dispatch(ToggleArtistGroup{Name: name})
}

func (s *Session) RevealMore(v View) Effect { return s.Dispatch(RevealMore{View: v}) }

func (s *Session) SelectRankYear(year string) Effect {
	return s.Dispatch(SelectRankYear{Year: year})
}

// Recent is the home view's newest reviews.
func (s *Session) Recent() []models.Review { return s.archive.Recent() }

// Pickups is the revealed part of the home view's shuffled archive list.
func (s *Session) Pickups() []models.Review {
	return Window(s.state.Slot(Home).Pager, s.archive.Pickups())
}

// HasMorePickups reports whether [Session.RevealMore] on [Home] would show more.
func (s *Session) HasMorePickups() bool {
	return s.state.Slot(Home).Pager.HasMore(len(s.archive.Pickups()))
}

// Sections is the library index.
func (s *Session) Sections() []archive.Section { return s.archive.Sections() }

// SearchResults runs the current query.
func (s *Session) SearchResults() []models.Review {
	return s.archive.Search(s.state.Query(), s.state.Mode())
}

// RankYear is the selected ranking year, defaulting to the most recent.
func (s *Session) RankYear() string {
	if y := s.state.RankYear(); y != "" {
		return y
	}
	if years := s.archive.Years(); len(years) > 0 {
		return years[0]
	}
	return ""
}

// Ranking is the selected year's matched list and overview.
func (s *Session) Ranking() archive.Ranking {
	return s.archive.Ranking(s.RankYear())
}

// allRelated is every review related to the current selection.
func (s *Session) allRelated() []models.Review {
	selected := s.state.Selected()
	if selected == nil {
		return []models.Review{}
	}
	return s.archive.Related(*selected)
}

// Related is the revealed part of the selection's related reviews.
func (s *Session) Related() []models.Review {
	return Window(s.state.Slot(Detail).Pager, s.allRelated())
}

// HasMoreRelated reports whether [Session.RevealMore] on [Detail] would show more.
func (s *Session) HasMoreRelated() bool {
	return s.state.Slot(Detail).Pager.HasMore(len(s.allRelated()))
}
