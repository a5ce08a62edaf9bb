package navigation

// PageSize is the number of items each reveal discloses.
const PageSize = 6

// Pager is the revealed-count cursor of a long list.
//
// Revealed may run past the list length; [Pager.Visible] clamps it.
type Pager struct {
	Revealed int `json:"revealed"`
}

// NewPager returns a pager showing the first page.
func NewPager() Pager {
	return Pager{Revealed: PageSize}
}

// More returns the pager advanced by one page.
func (p Pager) More() Pager {
	return Pager{Revealed: p.Revealed + PageSize}
}

// Visible is the number of items shown out of total.
func (p Pager) Visible(total int) int {
	if p.Revealed < 0 {
		return 0
	}
	return min(p.Revealed, total)
}

// HasMore reports whether items remain to be revealed.
func (p Pager) HasMore(total int) bool {
	return p.Revealed < total
}

// Window returns the revealed prefix of items.
func Window[T any](p Pager, items []T) []T {
	return items[:p.Visible(len(items))]
}
