package navigation

import (
	"fmt"
	"strings"

	"github.com/desertthunder/pseudology/internal/shared"
)

// View identifies one presentation of the archive.
type View int

const (
	Home View = iota
	Search
	Library
	About
	Best
	Detail

	viewCount
)

var viewNames = [viewCount]string{"home", "search", "library", "about", "best", "detail"}

// TopLevel lists the views reachable from the persistent navigation, in menu order.
var TopLevel = []View{Home, Search, Library, Best, About}

func (v View) String() string {
	if v < 0 || v >= viewCount {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView converts a view name into a [View].
func ParseView(name string) (View, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range viewNames {
		if n == name {
			return View(i), nil
		}
	}
	return Home, fmt.Errorf("%w: %q", shared.ErrInvalidView, name)
}

// IsTopLevel reports whether v can be the target of top-level navigation.
func (v View) IsTopLevel() bool {
	return v >= Home && v < Detail
}

// TracksScroll reports whether v saves its scroll offset when a review is selected from it.
func (v View) TracksScroll() bool {
	switch v {
	case Home, Search, Library, Best:
		return true
	default:
		return false
	}
}
