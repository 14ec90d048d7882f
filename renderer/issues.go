package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cabinz/easy-split/ingest"
	md "github.com/nao1215/markdown"
)

// Issues renders a validation result as markdown. Errors come first,
// warnings after, each as one bullet.
func Issues(r *ingest.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if !r.HasErrors() && !r.HasWarnings() {
		doc.PlainText("✓ Data validation passed. No issues found.")
		return doc.String()
	}

	doc.PlainText("Validation Errors Found:")
	items := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, issue := range r.Issues() {
		items = append(items, strings.TrimSpace(issue.String()))
	}
	doc.BulletList(items...)
	doc.LF()
	doc.PlainText(fmt.Sprintf("Found %d error(s) and %d warning(s).", len(r.Errors), len(r.Warnings)))
	if r.HasErrors() {
		doc.LF()
		doc.PlainText("Please fix errors before processing.")
	}
	return doc.String()
}
