package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SearchHistory is a committed search query remembered per resource.
type SearchHistory struct {
	ID          int64     `db:"id" json:"id"`
	Resource    string    `db:"resource" json:"resource"`
	QueryText   string    `db:"query_text" json:"query_text"`
	UseCount    int       `db:"use_count" json:"use_count"`
	ResultCount int       `db:"result_count" json:"result_count"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func NewSearchHistory(resource, queryText string) *SearchHistory {
	now := time.Now()
	return &SearchHistory{
		Resource:  resource,
		QueryText: queryText,
		UseCount:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *SearchHistory) Validate() error {
	if strings.TrimSpace(s.Resource) == "" {
		return errors.New("resource cannot be empty")
	}
	if strings.TrimSpace(s.QueryText) == "" {
		return errors.New("query text cannot be empty")
	}
	if len(s.QueryText) > 200 {
		return errors.New("query text cannot exceed 200 characters")
	}
	return nil
}

func (s *SearchHistory) GetRelativeTime() string {
	return RelativeTime(time.Since(s.UpdatedAt))
}

func (s *SearchHistory) GetDisplayText() string {
	text := s.QueryText
	if s.UseCount > 1 {
		text = fmt.Sprintf("%s ×%d", text, s.UseCount)
	}
	return fmt.Sprintf("%s (%s)", text, s.GetRelativeTime())
}

func RelativeTime(d time.Duration) string {
	minutes := int(d.Minutes())
	hours := int(d.Hours())
	days := hours / 24

	switch {
	case d < time.Minute:
		return "just now"
	case minutes == 1:
		return "1 minute ago"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "yesterday"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		if months := days / 30; months > 1 {
			return fmt.Sprintf("%d months ago", months)
		}
		return "1 month ago"
	default:
		if years := days / 365; years > 1 {
			return fmt.Sprintf("%d years ago", years)
		}
		return "1 year ago"
	}
}
