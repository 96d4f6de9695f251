package levels

// DefaultPageSize is the number of selector entries shown per page.
const DefaultPageSize = 6

// Pager splits levels into fixed-size pages and tracks the selection.
type Pager struct {
	pages  [][]Level
	page   int
	cursor int
}

// NewPager pages levels into pages of size entries. Non-positive sizes use
// DefaultPageSize. There is always at least one (possibly empty) page.
func NewPager(levels []Level, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}

	var pages [][]Level
	for start := 0; start < len(levels); start += size {
		end := start + size
		if end > len(levels) {
			end = len(levels)
		}
		pages = append(pages, levels[start:end])
	}
	if len(pages) == 0 {
		pages = [][]Level{nil}
	}

	return &Pager{pages: pages}
}

// Move shifts the selection by delta (-1 up, +1 down). Moving past the first
// or last entry of a page flips to the neighbouring page; at the ends of the
// list the selection stays put.
func (p *Pager) Move(delta int) {
	if p.Len() == 0 {
		return
	}

	to := p.cursor + delta
	switch {
	case to < 0:
		if p.page > 0 {
			p.page--
			to = len(p.pages[p.page]) - 1
		} else {
			to = 0
		}
	case to >= len(p.pages[p.page]):
		if p.page < len(p.pages)-1 {
			p.page++
			to = 0
		} else {
			to = len(p.pages[p.page]) - 1
		}
	}

	p.cursor = to
}

// Selected returns the selected level, or false if there are no levels.
func (p *Pager) Selected() (Level, bool) {
	entries := p.pages[p.page]
	if p.cursor < 0 || p.cursor >= len(entries) {
		return Level{}, false
	}
	return entries[p.cursor], true
}

// SelectID moves the selection to the level with the given ID.
func (p *Pager) SelectID(id string) bool {
	for pi, page := range p.pages {
		for ci, lvl := range page {
			if lvl.ID == id {
				p.page, p.cursor = pi, ci
				return true
			}
		}
	}
	return false
}

// Page returns the entries of the current page.
func (p *Pager) Page() []Level {
	return p.pages[p.page]
}

// PageIndex returns the current page number, starting at 0.
func (p *Pager) PageIndex() int {
	return p.page
}

// PageCount returns the number of pages.
func (p *Pager) PageCount() int {
	return len(p.pages)
}

// Cursor returns the selected index within the current page.
func (p *Pager) Cursor() int {
	return p.cursor
}

// Len returns the total number of levels.
func (p *Pager) Len() int {
	n := 0
	for _, page := range p.pages {
		n += len(page)
	}
	return n
}
