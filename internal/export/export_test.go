package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-admin/internal/domain"
	"site-admin/internal/listview"
)

func TestCSVRoundTrip(t *testing.T) {
	in := Table{
		Headers: []string{"Title", "Excerpt", "Tags"},
		Rows: [][]string{
			{"Plain", "nothing special", "go"},
			{`Say "hi"`, "comma, inside", "a;b"},
			{"Multi\nline", "", "  padded  "},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))

	assert.Contains(t, buf.String(), "\r\n")
	assert.Contains(t, buf.String(), `"Say ""hi"""`)
	assert.Contains(t, buf.String(), `"comma, inside"`)

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, in.Headers, out.Headers)
	assert.Equal(t, in.Rows, out.Rows)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "posts-2025-03-09.csv", Filename("posts", FormatCSV, now))
	assert.Equal(t, "faqs-2025-03-09.md", Filename("faqs", FormatMarkdown, now))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("MD")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestFromColumns(t *testing.T) {
	cols := []listview.Column[domain.Tag]{
		{Key: "name", Title: "Name", Cell: func(t domain.Tag) string { return t.Name }},
		{Key: "slug", Title: "Slug", Cell: func(t domain.Tag) string { return t.Slug }},
	}
	table := FromColumns("tags", cols, []domain.Tag{{Name: "Go", Slug: "go"}})

	assert.Equal(t, []string{"Name", "Slug"}, table.Headers)
	assert.Equal(t, [][]string{{"Go", "go"}}, table.Rows)
}

func TestWriteMarkdownEscapes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMarkdown(&buf, Table{Resource: "faqs", Headers: []string{"Q", "A"}, Rows: [][]string{{"a|b", "line1\nline2"}}})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "# faqs (1)")
	assert.Contains(t, buf.String(), `| a\|b | line1<br>line2 |`)
}

func TestJSONDocumentRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tags := []domain.Tag{{ID: "t1", Name: "Go", Slug: "go"}}
	require.NoError(t, WriteJSON(&buf, "tags", tags, time.Now()))

	doc, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, "tags", doc.Resource)
	assert.Equal(t, 1, doc.Count)
	require.Len(t, doc.Records, 1)

	bare, err := ReadJSON(strings.NewReader(`[{"name":"Go"},{"name":"Rust"}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, bare.Count)
}

type fakeCreator struct {
	seen []map[string]string
	fail map[string]bool
}

func (f *fakeCreator) Create(_ context.Context, _ string, values map[string]string) (domain.Entity, error) {
	f.seen = append(f.seen, values)
	if f.fail[values["name"]] {
		return nil, errors.New("rejected")
	}
	return domain.Tag{ID: "id-" + values["name"], Name: values["name"]}, nil
}

var tagSchema = domain.Schema{Fields: []domain.Field{
	{Name: "name", Label: "Name", Kind: domain.KindText, Required: true},
	{Name: "slug", Label: "Slug", Kind: domain.KindText},
}}

func TestImportCSVSkipsFailures(t *testing.T) {
	creator := &fakeCreator{fail: map[string]bool{"Bad": true}}
	imp := NewImporter(creator, ErrorStrategySkip)

	csvDoc := "Name,Slug,Ignored\r\nGo,go,x\r\nBad,bad,y\r\nRust,rust,z\r\n"
	res, err := imp.Import(context.Background(), strings.NewReader(csvDoc), FormatCSV, "tags", tagSchema)
	require.NoError(t, err)

	assert.Equal(t, []string{"id-Go", "id-Rust"}, res.Created)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 2, res.Failed[0].Row)
	assert.Equal(t, map[string]string{"name": "Go", "slug": "go"}, creator.seen[0])
}

func TestImportStopsOnFirstFailure(t *testing.T) {
	creator := &fakeCreator{fail: map[string]bool{"Bad": true}}
	imp := NewImporter(creator, "")

	res, err := imp.Import(context.Background(), strings.NewReader(`[{"name":"Bad"},{"name":"Go"}]`), FormatJSON, "tags", tagSchema)

	var rowErr RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 1, rowErr.Row)
	assert.Empty(t, res.Created)
	assert.Len(t, creator.seen, 1)
}

func TestImportRejectsWrongResource(t *testing.T) {
	imp := NewImporter(&fakeCreator{}, ErrorStrategySkip)
	_, err := imp.Import(context.Background(), strings.NewReader(`{"resource":"posts","records":[]}`), FormatJSON, "tags", tagSchema)
	assert.Error(t, err)
}
