package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavedRoundTrip(t *testing.T) {
	s := New(10, Sort{Field: "createdAt", Desc: true})
	s, _ = Reduce(s, SetFacet{Facet: FacetCategory, Value: "design"})
	s, _ = Reduce(s, SetFacet{Facet: FacetPublished, Value: "false"})
	s, _ = Reduce(s, SetQuery{Query: "launch"})
	s, _ = Reduce(s, SetSort{Sort: Sort{Field: "title"}})

	saved := s.Saved()
	assert.Equal(t, "title", saved.Sort)

	other := New(10, Sort{Field: "createdAt", Desc: true})
	other, _ = Reduce(other, SetFacet{Facet: FacetTag, Value: "go"})
	other, _ = Reduce(other, SetPage{Index: 0})

	var fetch bool
	for _, a := range ApplySaved(saved) {
		var events []Event
		other, events = Reduce(other, a)
		fetch = fetch || NeedsFetch(events)
	}

	assert.True(t, fetch)
	assert.Equal(t, s.Filter, other.Filter)
	assert.Equal(t, s.Sort, other.Sort)
	assert.Equal(t, 0, other.PageIndex)
}

func TestApplySavedWithoutSortClearsSort(t *testing.T) {
	saved := New(10, Sort{}).Saved()
	assert.Equal(t, "", saved.Sort)

	s := New(10, Sort{Field: "createdAt", Desc: true})
	for _, a := range ApplySaved(saved) {
		s, _ = Reduce(s, a)
	}
	assert.Equal(t, Sort{}, s.Sort)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, Sort{Field: "order", Desc: true}, ParseSort("-order"))
	assert.Equal(t, Sort{Field: "name"}, ParseSort(" name "))
	assert.Equal(t, Sort{}, ParseSort(""))
}
