package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"site-admin/internal/api"
	"site-admin/internal/catalog"
	"site-admin/internal/domain"
	"site-admin/internal/fuzzy"
	"site-admin/internal/listview"
	"site-admin/internal/query"
	"site-admin/internal/service"
)

// resolveEntity finds a record by full id, by an id prefix as printed in
// tables, or by its exact label or slug.
func resolveEntity(ctx context.Context, svc *service.Service, r *catalog.Resource, ref string) (domain.Entity, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%s id cannot be empty", strings.ToLower(r.Singular))
	}

	e, err := svc.Get(ctx, r, ref)
	if err == nil {
		return e, nil
	}
	if !api.IsNotFound(err) {
		return nil, err
	}

	rows, err := svc.Collect(ctx, r, listview.Query{Sort: r.DefaultSort})
	if err != nil {
		return nil, err
	}

	var matches []domain.Entity
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		label := r.Label(row)
		labels = append(labels, label)
		if strings.HasPrefix(row.Key(), ref) || strings.EqualFold(label, ref) || slugOf(r, row) == ref {
			matches = append(matches, row)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		if s := fuzzy.Suggest(ref, labels, 1); len(s) > 0 {
			return nil, fmt.Errorf("%s '%s' not found, did you mean '%s'?", strings.ToLower(r.Singular), ref, s[0].Text)
		}
		return nil, fmt.Errorf("%s '%s' not found", strings.ToLower(r.Singular), ref)
	default:
		return nil, fmt.Errorf("'%s' matches %d %s, use a longer id", ref, len(matches), strings.ToLower(r.Plural))
	}
}

func slugOf(r *catalog.Resource, e domain.Entity) string {
	if _, ok := r.Schema.Field("slug"); !ok {
		return ""
	}
	values, err := r.Values(e)
	if err != nil {
		return ""
	}
	return values["slug"]
}

// resolveRequest moves facet tokens out of the search text and turns
// category and tag references into the ids the API filters by. Flags
// win over tokens.
func resolveRequest(ctx context.Context, svc *service.Service, r *catalog.Resource, req listRequest) (listRequest, error) {
	if req.search != "" {
		parsed, err := query.Parse(req.search)
		if err != nil {
			return req, err
		}
		req.search = parsed.Text
		for _, f := range []struct {
			facet listview.Facet
			dst   *string
		}{
			{listview.FacetCategory, &req.category},
			{listview.FacetTag, &req.tag},
			{listview.FacetPublished, &req.published},
			{listview.FacetFeatured, &req.featured},
		} {
			if v, ok := parsed.Value(f.facet); ok && *f.dst == "" {
				*f.dst = v
			}
		}
	}

	refs := []struct {
		facet  listview.Facet
		target *catalog.Resource
		dst    *string
	}{
		{listview.FacetCategory, catalog.Categories, &req.category},
		{listview.FacetTag, catalog.Tags, &req.tag},
	}
	for _, ref := range refs {
		if *ref.dst == "" || !r.HasFacet(ref.facet) {
			continue
		}
		e, err := resolveEntity(ctx, svc, ref.target, *ref.dst)
		if err != nil {
			return req, err
		}
		*ref.dst = e.Key()
	}
	return req, nil
}

// parseAssignments turns repeated key=value flags into form values. Keys must
// be schema fields.
func parseAssignments(schema domain.Schema, pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment '%s', expected field=value", pair)
		}
		if _, known := schema.Field(k); !known {
			return nil, fmt.Errorf("unknown field '%s' (fields: %s)", k, strings.Join(fieldNames(schema), ", "))
		}
		values[k] = v
	}
	return values, nil
}

func fieldNames(schema domain.Schema) []string {
	names := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		names[i] = f.Name
	}
	return names
}

func promptForInput(reader *bufio.Reader, out io.Writer, prompt string, defaultVal string) (string, error) {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}

	input = strings.TrimSpace(input)
	if input == "" && defaultVal != "" {
		return defaultVal, nil
	}

	return input, nil
}

func promptForConfirmation(reader *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N): ", prompt)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
