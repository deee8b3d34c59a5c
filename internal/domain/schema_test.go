package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "title", Label: "Title", Kind: KindText, Required: true, MaxLen: 20},
		{Name: "email", Label: "Email", Kind: KindEmail},
		{Name: "website", Label: "Website", Kind: KindURL},
		{Name: "featured", Label: "Featured", Kind: KindBool},
		{Name: "rating", Label: "Rating", Kind: KindInt, Min: 1, Max: 5},
		{Name: "status", Label: "Status", Kind: KindEnum, Options: []string{"new", "read"}},
		{Name: "tags", Label: "Tags", Kind: KindList},
		{Name: "icon", Label: "Icon", Kind: KindIcon},
	}}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]string
		wantField string
		wantMsg   string
	}{
		{
			name:   "valid minimal",
			values: map[string]string{"title": "Hello"},
		},
		{
			name:      "missing required",
			values:    map[string]string{"title": "   "},
			wantField: "title",
			wantMsg:   "Title is required",
		},
		{
			name:      "too long",
			values:    map[string]string{"title": strings.Repeat("a", 21)},
			wantField: "title",
			wantMsg:   "Title cannot exceed 20 characters",
		},
		{
			name:      "bad email",
			values:    map[string]string{"title": "x", "email": "Bob <bob@example.com>"},
			wantField: "email",
			wantMsg:   "Email must be a valid email address",
		},
		{
			name:      "bad url",
			values:    map[string]string{"title": "x", "website": "ftp://example.com"},
			wantField: "website",
			wantMsg:   "Website must be a valid http(s) URL",
		},
		{
			name:      "bad bool",
			values:    map[string]string{"title": "x", "featured": "maybe"},
			wantField: "featured",
			wantMsg:   "Featured must be yes or no",
		},
		{
			name:      "int out of range",
			values:    map[string]string{"title": "x", "rating": "9"},
			wantField: "rating",
			wantMsg:   "Rating must be between 1 and 5",
		},
		{
			name:      "not an int",
			values:    map[string]string{"title": "x", "rating": "four"},
			wantField: "rating",
			wantMsg:   "Rating must be a whole number",
		},
		{
			name:      "enum miss",
			values:    map[string]string{"title": "x", "status": "spam"},
			wantField: "status",
			wantMsg:   "Status must be one of: new, read",
		},
		{
			name:      "unknown icon",
			values:    map[string]string{"title": "x", "icon": "rocketship"},
			wantField: "icon",
			wantMsg:   "Icon is not a supported icon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := testSchema().Validate(tt.values)
			if tt.wantField == "" {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Equal(t, tt.wantMsg, errs[tt.wantField])
		})
	}
}

func TestSchemaPayloadOmitsEmptyOptionals(t *testing.T) {
	payload, err := testSchema().Payload(map[string]string{
		"title":    " Hello ",
		"email":    "",
		"featured": "yes",
		"rating":   "4",
		"tags":     "go, , cms ",
		"icon":     "GitHub",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello", payload["title"])
	assert.Equal(t, true, payload["featured"])
	assert.Equal(t, 4, payload["rating"])
	assert.Equal(t, []string{"go", "cms"}, payload["tags"])
	assert.Equal(t, "github", payload["icon"])
	_, hasEmail := payload["email"]
	assert.False(t, hasEmail, "empty optional must be absent, not an empty string")
	_, hasWebsite := payload["website"]
	assert.False(t, hasWebsite)
}

func TestSchemaPayloadValidationError(t *testing.T) {
	_, err := testSchema().Payload(map[string]string{})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Title is required", verr.Fields["title"])
}

func TestSchemaPatchPayload(t *testing.T) {
	original := map[string]string{"title": "Hello", "email": "a@b.co", "featured": "true", "tags": "go,cms"}
	values := map[string]string{"title": "Hello", "email": "", "featured": "yes", "tags": "go, cms, tui"}

	payload, err := testSchema().PatchPayload(original, values)
	require.NoError(t, err)

	assert.Len(t, payload, 2)
	assert.Contains(t, payload, "email")
	assert.Nil(t, payload["email"], "cleared field is sent as null")
	assert.Equal(t, []string{"go", "cms", "tui"}, payload["tags"])
}

func TestFieldChoices(t *testing.T) {
	f := Field{Name: "status", Kind: KindEnum, Options: []string{"a", "b"}}
	assert.Equal(t, []string{"", "a", "b"}, f.Choices())

	f.Required = true
	assert.Equal(t, []string{"a", "b"}, f.Choices())

	assert.Equal(t, []string{"", "yes", "no"}, Field{Kind: KindBool}.Choices())
	assert.Nil(t, Field{Kind: KindText}.Choices())
}

func TestFieldErrorsError(t *testing.T) {
	fe := FieldErrors{"title": "Title is required", "email": "bad"}
	assert.Equal(t, "email: bad; title: Title is required", fe.Error())
}

func TestSchemaValuesOf(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "title", Kind: KindText},
		{Name: "published", Kind: KindBool},
		{Name: "tags", Kind: KindList},
		{Name: "order", Kind: KindInt},
		{Name: "excerpt", Kind: KindText},
	}}

	values, err := s.ValuesOf(Post{Title: "Hi", Published: true, Tags: []string{"go", "cms"}})
	require.NoError(t, err)

	assert.Equal(t, "Hi", values["title"])
	assert.Equal(t, "yes", values["published"])
	assert.Equal(t, "go, cms", values["tags"])
	assert.Equal(t, "", values["order"])
	assert.Equal(t, "", values["excerpt"])
	assert.Nil(t, s.Validate(values))
}
