package listview

// Action is a typed state transition.
type Action interface {
	isAction()
}

type (
	// SetFacet sets one facet; Value "" unsets it. Bool facets take "true"/"false".
	SetFacet struct {
		Facet Facet
		Value string
	}

	SetQuery struct {
		Query string
	}

	ClearFilters struct{}

	SetPage struct {
		Index int
	}

	SetPageSize struct {
		Size int
	}

	SetSort struct {
		Sort Sort
	}

	SetSelection struct {
		Keys []string
	}

	ToggleRow struct {
		Key string
	}

	SelectAll struct {
		Keys []string
	}

	ClearSelection struct{}

	ToggleColumn struct {
		Key string
	}

	LoadStarted struct{}

	Loaded struct {
		Generation int
		Total      int
	}

	LoadFailed struct {
		Generation int
	}

	CreateNew struct{}
)

func (SetFacet) isAction()       {}
func (SetQuery) isAction()       {}
func (ClearFilters) isAction()   {}
func (SetPage) isAction()        {}
func (SetPageSize) isAction()    {}
func (SetSort) isAction()        {}
func (SetSelection) isAction()   {}
func (ToggleRow) isAction()      {}
func (SelectAll) isAction()      {}
func (ClearSelection) isAction() {}
func (ToggleColumn) isAction()   {}
func (LoadStarted) isAction()    {}
func (Loaded) isAction()         {}
func (LoadFailed) isAction()     {}
func (CreateNew) isAction()      {}

// Event is something the owner of the dataset has to react to.
type Event interface {
	isEvent()
}

type (
	PaginationChanged struct {
		Pagination Pagination
	}

	GlobalFilterChanged struct {
		Query string
	}

	FacetChanged struct {
		Facet Facet
		Value string
	}

	SortChanged struct {
		Sort Sort
	}

	CreateRequested struct{}
)

func (PaginationChanged) isEvent()   {}
func (GlobalFilterChanged) isEvent() {}
func (FacetChanged) isEvent()        {}
func (SortChanged) isEvent()         {}
func (CreateRequested) isEvent()     {}

// NeedsFetch reports whether any event changes what the current page holds.
func NeedsFetch(events []Event) bool {
	for _, e := range events {
		switch e.(type) {
		case PaginationChanged, GlobalFilterChanged, FacetChanged, SortChanged:
			return true
		}
	}
	return false
}

// Reduce applies an action and returns the next state plus the events it raised.
// The input state is not modified.
func Reduce(s State, a Action) (State, []Event) {
	s.Selection = copySet(s.Selection)
	s.Hidden = copySet(s.Hidden)

	switch a := a.(type) {
	case SetFacet:
		if s.Filter.Value(a.Facet) == a.Value {
			return s, nil
		}
		s.Filter = s.Filter.with(a.Facet, a.Value)
		events := []Event{FacetChanged{Facet: a.Facet, Value: s.Filter.Value(a.Facet)}}
		return s.firstPage(events)

	case SetQuery:
		if s.Filter.Query == a.Query {
			return s, nil
		}
		s.Filter.Query = a.Query
		return s.firstPage([]Event{GlobalFilterChanged{Query: a.Query}})

	case ClearFilters:
		s.Filter = Filter{}
		events := make([]Event, 0, len(AllFacets)+2)
		for _, facet := range AllFacets {
			events = append(events, FacetChanged{Facet: facet})
		}
		events = append(events, GlobalFilterChanged{})
		return s.firstPage(events)

	case SetPage:
		if s.Loading {
			return s, nil
		}
		idx := clamp(a.Index, 0, s.PageCount()-1)
		if idx == s.PageIndex {
			return s, nil
		}
		s.PageIndex = idx
		s.Selection = map[string]bool{}
		return s, []Event{PaginationChanged{Pagination: s.Pagination}}

	case SetPageSize:
		if s.Loading || a.Size <= 0 || a.Size == s.PageSize {
			return s, nil
		}
		s.PageSize = a.Size
		s.PageIndex = 0
		s.Selection = map[string]bool{}
		return s, []Event{PaginationChanged{Pagination: s.Pagination}}

	case SetSort:
		if a.Sort == s.Sort {
			return s, nil
		}
		s.Sort = a.Sort
		return s.firstPage([]Event{SortChanged{Sort: a.Sort}})

	case SetSelection:
		s.Selection = map[string]bool{}
		for _, k := range a.Keys {
			s.Selection[k] = true
		}
		return s, nil

	case ToggleRow:
		if s.Selection[a.Key] {
			delete(s.Selection, a.Key)
		} else {
			s.Selection[a.Key] = true
		}
		return s, nil

	case SelectAll:
		for _, k := range a.Keys {
			s.Selection[k] = true
		}
		return s, nil

	case ClearSelection:
		s.Selection = map[string]bool{}
		return s, nil

	case ToggleColumn:
		if s.Hidden[a.Key] {
			delete(s.Hidden, a.Key)
		} else {
			s.Hidden[a.Key] = true
		}
		return s, nil

	case LoadStarted:
		s.Loading = true
		s.Generation++
		return s, nil

	case Loaded:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Loading = false
		s.Total = a.Total
		s.Selection = map[string]bool{}
		// rows deleted from the last page can leave us past the end
		if last := s.PageCount() - 1; s.PageIndex > last {
			s.PageIndex = last
			return s, []Event{PaginationChanged{Pagination: s.Pagination}}
		}
		return s, nil

	case LoadFailed:
		if a.Generation != s.Generation {
			return s, nil
		}
		s.Loading = false
		return s, nil

	case CreateNew:
		return s, []Event{CreateRequested{}}
	}

	return s, nil
}

// resets to the first page after a filter or sort change
func (s State) firstPage(events []Event) (State, []Event) {
	s.Selection = map[string]bool{}
	if s.PageIndex != 0 {
		s.PageIndex = 0
		events = append(events, PaginationChanged{Pagination: s.Pagination})
	}
	return s, events
}

func copySet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
