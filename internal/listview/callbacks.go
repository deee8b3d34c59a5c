package listview

// Callbacks lets a parent react to list events without inspecting them.
// Nil handlers are skipped.
type Callbacks struct {
	OnPaginationChange   func(Pagination)
	OnGlobalFilterChange func(query string)
	OnCategoryFilter     func(id *string)
	OnTagFilter          func(id *string)
	OnPublishedFilter    func(v *bool)
	OnFeaturedFilter     func(v *bool)
	OnSortChange         func(Sort)
	OnCreateNew          func()
}

// Emit delivers events in order.
func (c Callbacks) Emit(events []Event) {
	for _, e := range events {
		switch e := e.(type) {
		case PaginationChanged:
			if c.OnPaginationChange != nil {
				c.OnPaginationChange(e.Pagination)
			}
		case GlobalFilterChanged:
			if c.OnGlobalFilterChange != nil {
				c.OnGlobalFilterChange(e.Query)
			}
		case FacetChanged:
			c.emitFacet(e)
		case SortChanged:
			if c.OnSortChange != nil {
				c.OnSortChange(e.Sort)
			}
		case CreateRequested:
			if c.OnCreateNew != nil {
				c.OnCreateNew()
			}
		}
	}
}

func (c Callbacks) emitFacet(e FacetChanged) {
	switch e.Facet {
	case FacetCategory:
		if c.OnCategoryFilter != nil {
			c.OnCategoryFilter(strPtr(e.Value))
		}
	case FacetTag:
		if c.OnTagFilter != nil {
			c.OnTagFilter(strPtr(e.Value))
		}
	case FacetPublished:
		if c.OnPublishedFilter != nil {
			c.OnPublishedFilter(boolPtr(e.Value))
		}
	case FacetFeatured:
		if c.OnFeaturedFilter != nil {
			c.OnFeaturedFilter(boolPtr(e.Value))
		}
	}
}
