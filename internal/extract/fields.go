package extract

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// Field returns the value of a named field from the document, checking
// page form fields first and falling back to entities. Names are matched
// after normalization, so "Business Name:" matches "business_name".
func Field(doc *documentaipb.Document, name string) string {
	if doc == nil {
		return ""
	}
	want := normalizeFieldName(name)
	if want == "" {
		return ""
	}

	for _, page := range doc.GetPages() {
		for _, ff := range page.GetFormFields() {
			if normalizeFieldName(layoutText(doc, ff.GetFieldName())) != want {
				continue
			}
			if v := strings.TrimSpace(layoutText(doc, ff.GetFieldValue())); v != "" {
				return v
			}
		}
	}

	for _, ent := range doc.GetEntities() {
		if normalizeFieldName(ent.GetType()) != want {
			continue
		}
		if v := strings.TrimSpace(ent.GetMentionText()); v != "" {
			return v
		}
		if v := strings.TrimSpace(anchorText(doc, ent.GetTextAnchor())); v != "" {
			return v
		}
	}
	return ""
}

// firstField returns the first non-empty value among the candidate names.
func firstField(doc *documentaipb.Document, names ...string) string {
	for _, name := range names {
		if v := Field(doc, name); v != "" {
			return v
		}
	}
	return ""
}

// anchorText resolves a text anchor: inline content when present, else
// the anchored segments of the document text.
func anchorText(doc *documentaipb.Document, anchor *documentaipb.Document_TextAnchor) string {
	if anchor == nil {
		return ""
	}
	if anchor.GetContent() != "" {
		return anchor.GetContent()
	}

	text := doc.GetText()
	var parts []string
	for _, seg := range anchor.GetTextSegments() {
		start := int(seg.GetStartIndex())
		end := int(seg.GetEndIndex())
		if start < 0 || end > len(text) || start >= end {
			continue
		}
		parts = append(parts, text[start:end])
	}
	return strings.Join(parts, " ")
}

func layoutText(doc *documentaipb.Document, layout *documentaipb.Document_Page_Layout) string {
	if layout == nil {
		return ""
	}
	return anchorText(doc, layout.GetTextAnchor())
}

// normalizeFieldName maps display names like "Business Name:" onto the
// snake_case keys the projections look up.
func normalizeFieldName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSpace(s)
	return strings.Join(strings.Fields(s), "_")
}
