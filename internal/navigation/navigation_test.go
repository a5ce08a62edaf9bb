package navigation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/pseudology/internal/archive"
	"github.com/desertthunder/pseudology/internal/models"
	"github.com/desertthunder/pseudology/internal/shared"
)

func makeReviews(n int) []models.Review {
	reviews := make([]models.Review, n)
	for i := range reviews {
		reviews[i] = models.Review{
			ID:     i + 1,
			Artist: fmt.Sprintf("ARTIST %d", i%2),
			Title:  fmt.Sprintf("Title %02d", i+1),
			Body:   "body",
		}
	}
	return reviews
}

func TestPager(t *testing.T) {
	t.Run("Starts At Page Size", func(t *testing.T) {
		if got := NewPager().Revealed; got != 6 {
			t.Errorf("expected 6, got %d", got)
		}
	})

	t.Run("More Advances By Page Size", func(t *testing.T) {
		if got := NewPager().More().Revealed; got != 12 {
			t.Errorf("expected 12, got %d", got)
		}
	})

	t.Run("Clamped To List Length", func(t *testing.T) {
		p := NewPager().More().More()
		if p.Visible(10) != 10 {
			t.Errorf("expected 10 visible, got %d", p.Visible(10))
		}
		if p.HasMore(10) {
			t.Error("expected no more items")
		}
		p = p.More()
		if p.Visible(10) != 10 || p.HasMore(10) {
			t.Error("expected further reveals to be no-ops in effect")
		}
	})

	t.Run("Window", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5, 6, 7, 8}
		if got := Window(NewPager(), items); len(got) != 6 {
			t.Errorf("expected 6 items, got %d", len(got))
		}
		if got := Window(NewPager(), items[:2]); len(got) != 2 {
			t.Errorf("expected 2 items, got %d", len(got))
		}
		if !NewPager().HasMore(len(items)) {
			t.Error("expected more items")
		}
	})
}

func TestParseView(t *testing.T) {
	for _, v := range []View{Home, Search, Library, About, Best, Detail} {
		got, err := ParseView(v.String())
		if err != nil || got != v {
			t.Errorf("ParseView(%q) = %v, %v", v.String(), got, err)
		}
	}

	if _, err := ParseView("settings"); !errors.Is(err, shared.ErrInvalidView) {
		t.Errorf("expected ErrInvalidView, got %v", err)
	}
}

func TestState(t *testing.T) {
	reviews := makeReviews(4)
	a, b := reviews[0], reviews[1]

	t.Run("Initial", func(t *testing.T) {
		s := NewState()
		if s.View() != Home || s.Selected() != nil || s.HistoryDepth() != 0 {
			t.Errorf("unexpected initial state: %v %v %d", s.View(), s.Selected(), s.HistoryDepth())
		}
	})

	t.Run("Nested Drill Down And Back", func(t *testing.T) {
		s := NewState()
		s, effect := s.Apply(SelectRecord{Review: a})
		if s.View() != Detail || s.Selected().ID != a.ID {
			t.Fatalf("expected detail(A), got %v", s.View())
		}
		if effect.Kind != EffectScrollTop {
			t.Errorf("expected scroll-top effect, got %v", effect.Kind)
		}

		s, _ = s.Apply(SelectRecord{Review: b})
		if s.Selected().ID != b.ID || s.HistoryDepth() != 2 {
			t.Fatalf("expected detail(B) with depth 2, got %d", s.HistoryDepth())
		}

		s, _ = s.Apply(GoBack{})
		if s.View() != Detail || s.Selected() == nil || s.Selected().ID != a.ID {
			t.Fatalf("expected detail(A) after back")
		}

		s, _ = s.Apply(GoBack{})
		if s.View() != Home || s.Selected() != nil {
			t.Fatalf("expected home after second back, got %v", s.View())
		}
	})

	t.Run("Back With Empty History Goes Home", func(t *testing.T) {
		s := NewState()
		s, _ = s.Apply(SelectRecord{Review: a})
		s, _ = s.Apply(NavigateTopLevel{View: Library})
		s, _ = s.Apply(SelectRecord{Review: b})
		s, _ = s.Apply(GoBack{})
		if s.View() != Library {
			t.Fatalf("expected library, got %v", s.View())
		}

		underflow := NewState()
		underflow.view = Detail
		underflow.selected = &a
		underflow, _ = underflow.Apply(GoBack{})
		if underflow.View() != Home || underflow.Selected() != nil {
			t.Errorf("expected fail-safe to home, got %v", underflow.View())
		}
	})

	t.Run("Back Outside Detail Is No-op", func(t *testing.T) {
		s, _ := NewState().Apply(NavigateTopLevel{View: About})
		next, effect := s.Apply(GoBack{})
		if next.View() != About || effect.Kind != EffectNone {
			t.Errorf("expected no-op, got %v %v", next.View(), effect.Kind)
		}
	})

	t.Run("Top Level Clears History", func(t *testing.T) {
		s := NewState()
		s, _ = s.Apply(SelectRecord{Review: a})
		s, _ = s.Apply(SelectRecord{Review: b})
		s, _ = s.Apply(NavigateTopLevel{View: Library})
		if s.HistoryDepth() != 0 || s.Selected() != nil || s.View() != Library {
			t.Fatalf("expected reset to library, got depth %d", s.HistoryDepth())
		}

		s, _ = s.Apply(SelectRecord{Review: a})
		s, _ = s.Apply(GoBack{})
		if s.View() != Library {
			t.Errorf("expected back to reach only library, got %v", s.View())
		}
	})

	t.Run("Top Level Rejects Detail", func(t *testing.T) {
		s := NewState()
		next, _ := s.Apply(NavigateTopLevel{View: Detail})
		if next.View() != Home {
			t.Errorf("expected detail target to be ignored, got %v", next.View())
		}
	})

	t.Run("Search Is Not Pushed", func(t *testing.T) {
		s := NewState()
		s, _ = s.Apply(SelectRecord{Review: a})
		depth := s.HistoryDepth()

		s, _ = s.Apply(SetSearch{Query: "artist", Mode: archive.ModeArtist})
		if s.View() != Search || s.Selected() != nil {
			t.Fatalf("expected search view with no selection, got %v", s.View())
		}
		if s.HistoryDepth() != depth {
			t.Errorf("expected history untouched, got %d want %d", s.HistoryDepth(), depth)
		}
		if s.Mode() != archive.ModeArtist || s.Query() != "artist" {
			t.Errorf("expected query and mode stored, got %q %q", s.Query(), s.Mode())
		}

		next, _ := s.Apply(GoBack{})
		if next.View() != Search {
			t.Errorf("expected back to be unavailable from search, got %v", next.View())
		}
	})

	t.Run("Empty Search Keeps View", func(t *testing.T) {
		s, _ := NewState().Apply(NavigateTopLevel{View: Library})
		s, _ = s.Apply(SetSearch{Query: ""})
		if s.View() != Library {
			t.Errorf("expected library, got %v", s.View())
		}
		if s.Mode() != archive.ModeAll {
			t.Errorf("expected mode to stay all, got %q", s.Mode())
		}
	})

	t.Run("Scroll Offset Saved On Select And Restored", func(t *testing.T) {
		s, _ := NewState().Apply(NavigateTopLevel{View: Library})
		s, _ = s.Apply(SelectRecord{Review: a, ScrollOffset: 42})
		if s.Slot(Library).ScrollOffset != 42 {
			t.Fatalf("expected saved offset 42, got %d", s.Slot(Library).ScrollOffset)
		}

		s, effect := s.Apply(GoBack{})
		if effect.Kind != EffectRestoreScroll || effect.Offset != 42 {
			t.Errorf("expected restore to 42, got %+v", effect)
		}

		s, _ = s.Apply(NavigateTopLevel{View: Home})
		_, effect = s.Apply(NavigateTopLevel{View: Library})
		if effect.Offset != 42 {
			t.Errorf("expected library offset replayed on re-entry, got %+v", effect)
		}
	})

	t.Run("Scroll Not Saved From Detail Or About", func(t *testing.T) {
		s := NewState()
		s, _ = s.Apply(SelectRecord{Review: a})
		s, _ = s.Apply(SelectRecord{Review: b, ScrollOffset: 99})
		if s.Slot(Detail).ScrollOffset != 0 {
			t.Errorf("expected detail not to track scroll, got %d", s.Slot(Detail).ScrollOffset)
		}
	})

	t.Run("Reveal More Per View", func(t *testing.T) {
		s := NewState()
		s, _ = s.Apply(RevealMore{View: Home})
		if s.Slot(Home).Pager.Revealed != 12 {
			t.Errorf("expected 12, got %d", s.Slot(Home).Pager.Revealed)
		}
		if s.Slot(Detail).Pager.Revealed != 6 {
			t.Errorf("expected detail pager untouched, got %d", s.Slot(Detail).Pager.Revealed)
		}

		s, _ = s.Apply(SelectRecord{Review: a})
		s, _ = s.Apply(GoBack{})
		if s.Slot(Home).Pager.Revealed != 12 {
			t.Errorf("expected home pager preserved across detail, got %d", s.Slot(Home).Pager.Revealed)
		}
	})

	t.Run("Detail Pager Resets Per Selection", func(t *testing.T) {
		s, _ := NewState().Apply(SelectRecord{Review: a})
		s, _ = s.Apply(RevealMore{View: Detail})
		s, _ = s.Apply(SelectRecord{Review: b})
		if s.Slot(Detail).Pager.Revealed != 6 {
			t.Errorf("expected detail pager reset, got %d", s.Slot(Detail).Pager.Revealed)
		}
	})

	t.Run("Toggle Artist Group", func(t *testing.T) {
		s, _ := NewState().Apply(ToggleArtistGroup{Name: "BLUR"})
		if s.ExpandedArtist() != "BLUR" {
			t.Fatalf("expected BLUR expanded, got %q", s.ExpandedArtist())
		}
		s, _ = s.Apply(ToggleArtistGroup{Name: "SLINT"})
		if s.ExpandedArtist() != "SLINT" {
			t.Fatalf("expected SLINT expanded, got %q", s.ExpandedArtist())
		}
		s, _ = s.Apply(ToggleArtistGroup{Name: "SLINT"})
		if s.ExpandedArtist() != "" {
			t.Errorf("expected collapse, got %q", s.ExpandedArtist())
		}
	})

	t.Run("Apply Does Not Mutate Receiver", func(t *testing.T) {
		s, _ := NewState().Apply(SelectRecord{Review: a})
		before := s.HistoryDepth()
		_, _ = s.Apply(SelectRecord{Review: b})
		_, _ = s.Apply(RevealMore{View: Home})
		if s.HistoryDepth() != before || s.Selected().ID != a.ID || s.Slot(Home).Pager.Revealed != 6 {
			t.Error("expected receiver state to be unchanged")
		}

		popped, _ := s.Apply(GoBack{})
		_, _ = popped.Apply(SelectRecord{Review: b})
		if s.HistoryDepth() != before {
			t.Error("expected history of earlier state to survive later pushes")
		}
	})

	t.Run("Nil Command", func(t *testing.T) {
		s := NewState()
		next, effect := s.Apply(nil)
		if next.View() != s.View() || effect.Kind != EffectNone {
			t.Error("expected nil command to be a no-op")
		}
	})
}

func TestSession(t *testing.T) {
	reviews := makeReviews(20)
	ranks := []models.RankEntry{
		{Year: "2022", Rank: 1, Artist: "artist 0", Title: "Title 01"},
		{Year: "2023", Rank: 0, Comment: "overview"},
		{Year: "2023", Rank: 1, Artist: "missing", Title: "Missing"},
	}
	about := models.About{SiteDescription: "site", ProfileDescription: "profile"}
	archv := NewArchive(reviews, ranks, about, 1)

	t.Run("Empty Before Load", func(t *testing.T) {
		s := NewSession("id", nil)
		if len(s.Recent()) != 0 || len(s.Pickups()) != 0 || len(s.Sections()) != 0 {
			t.Error("expected empty projections before load")
		}
		if s.Ranking().Year != "" || len(s.Ranking().Items) != 0 {
			t.Error("expected empty ranking before load")
		}
		if len(s.Related()) != 0 {
			t.Error("expected no related reviews without a selection")
		}
	})

	t.Run("Home Projections", func(t *testing.T) {
		s := NewSession("id", archv)
		recent := s.Recent()
		if len(recent) != 6 || recent[0].ID != 1 {
			t.Fatalf("expected first 6 reviews, got %d", len(recent))
		}
		if len(s.Pickups()) != 6 || !s.HasMorePickups() {
			t.Fatalf("expected 6 of 14 pickups, got %d", len(s.Pickups()))
		}
		s.RevealMore(Home)
		if len(s.Pickups()) != 12 {
			t.Errorf("expected 12 pickups, got %d", len(s.Pickups()))
		}
		s.RevealMore(Home)
		if len(s.Pickups()) != 14 || s.HasMorePickups() {
			t.Errorf("expected all 14 pickups revealed, got %d", len(s.Pickups()))
		}
	})

	t.Run("Pickups Seeded", func(t *testing.T) {
		a1 := NewArchive(reviews, nil, about, 99).Pickups()
		a2 := NewArchive(reviews, nil, about, 99).Pickups()
		for i := range a1 {
			if a1[i].ID != a2[i].ID {
				t.Fatal("expected identical pickups for identical seeds")
			}
		}
	})

	t.Run("Related Paged", func(t *testing.T) {
		s := NewSession("id", archv)
		s.SelectRecord(reviews[0], 0)
		if len(s.Related()) != 6 || !s.HasMoreRelated() {
			t.Fatalf("expected 6 related with more, got %d", len(s.Related()))
		}
		s.RevealMore(Detail)
		if s.HasMoreRelated() {
			t.Errorf("expected all related reviews revealed, got %d", len(s.Related()))
		}
		for _, r := range s.Related() {
			if r.ID == reviews[0].ID {
				t.Error("focal review in its own related list")
			}
		}
	})

	t.Run("Search", func(t *testing.T) {
		s := NewSession("id", archv)
		s.SetSearch("title 1", archive.ModeTitle)
		if s.State().View() != Search {
			t.Fatalf("expected search view")
		}
		if got := len(s.SearchResults()); got != 10 {
			t.Errorf("expected 10 results for 'title 1', got %d", got)
		}
	})

	t.Run("Ranking Defaults To Latest Year", func(t *testing.T) {
		s := NewSession("id", archv)
		if s.RankYear() != "2023" {
			t.Fatalf("expected 2023, got %s", s.RankYear())
		}
		ranking := s.Ranking()
		if ranking.Overview != "overview" || len(ranking.Items) != 1 || !ranking.Items[0].IsFallback {
			t.Errorf("unexpected 2023 ranking %+v", ranking)
		}

		s.SelectRankYear("2022")
		ranking = s.Ranking()
		if len(ranking.Items) != 1 || ranking.Items[0].IsFallback || ranking.Items[0].Review.ID != 1 {
			t.Errorf("expected 2022 rank 1 bound to review 1, got %+v", ranking.Items)
		}
	})

	t.Run("Load Replaces Archive", func(t *testing.T) {
		s := NewSession("id", nil)
		s.NavigateTopLevel(Library)
		s.Load(archv)
		if s.State().View() != Library {
			t.Error("expected navigation state kept across load")
		}
		if s.Archive().Len() != 20 || s.About().SiteDescription != "site" {
			t.Error("expected loaded archive")
		}
	})
}
