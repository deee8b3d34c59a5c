package export

import (
	"fmt"
	"io"
	"strings"
)

func WriteMarkdown(w io.Writer, t Table) error {
	if t.Resource != "" {
		if _, err := fmt.Fprintf(w, "# %s (%d)\n\n", t.Resource, len(t.Rows)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, markdownRow(t.Headers)); err != nil {
		return err
	}

	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintln(w, markdownRow(sep)); err != nil {
		return err
	}

	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, markdownRow(row)); err != nil {
			return err
		}
	}
	return nil
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func markdownRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = markdownEscaper.Replace(c)
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}
