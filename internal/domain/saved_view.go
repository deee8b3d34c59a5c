package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SavedViewFilter is a stored list filter. Nil fields mean no constraint.
type SavedViewFilter struct {
	Category  *string `json:"category,omitempty"`
	Tag       *string `json:"tag,omitempty"`
	Published *bool   `json:"published,omitempty"`
	Featured  *bool   `json:"featured,omitempty"`
	Query     string  `json:"query,omitempty"`
	Sort      string  `json:"sort,omitempty"`
}

// SavedView is a named filter preset for one resource.
type SavedView struct {
	ID        int64           `db:"id" json:"id"`
	Resource  string          `db:"resource" json:"resource"`
	Name      string          `db:"name" json:"name"`
	Filter    SavedViewFilter `db:"-" json:"filter"`
	HotKey    *int            `db:"hot_key" json:"hot_key,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

func NewSavedView(resource, name string) *SavedView {
	now := time.Now()
	return &SavedView{
		Resource:  resource,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (v *SavedView) Validate() error {
	if strings.TrimSpace(v.Resource) == "" {
		return errors.New("resource cannot be empty")
	}
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("view name cannot be empty")
	}
	if len(v.Name) > 100 {
		return errors.New("view name cannot exceed 100 characters")
	}
	if v.HotKey != nil && (*v.HotKey < 1 || *v.HotKey > 9) {
		return errors.New("hot key must be between 1 and 9")
	}
	return nil
}

func (v *SavedView) Summary() string {
	f := v.Filter
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Query))
	}
	if f.Category != nil {
		parts = append(parts, "category="+*f.Category)
	}
	if f.Tag != nil {
		parts = append(parts, "tag="+*f.Tag)
	}
	if f.Published != nil {
		parts = append(parts, "published="+FormatBool(*f.Published))
	}
	if f.Featured != nil {
		parts = append(parts, "featured="+FormatBool(*f.Featured))
	}
	if f.Sort != "" {
		parts = append(parts, "sort="+f.Sort)
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, ", ")
}
