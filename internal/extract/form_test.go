package extract

import (
	"testing"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

func formField(name, value string) *documentaipb.Document_Page_FormField {
	return &documentaipb.Document_Page_FormField{
		FieldName:  &documentaipb.Document_Page_Layout{TextAnchor: &documentaipb.Document_TextAnchor{Content: name}},
		FieldValue: &documentaipb.Document_Page_Layout{TextAnchor: &documentaipb.Document_TextAnchor{Content: value}},
	}
}

func docWithFormFields(fields ...*documentaipb.Document_Page_FormField) *documentaipb.Document {
	return &documentaipb.Document{
		Pages: []*documentaipb.Document_Page{{FormFields: fields}},
	}
}

func TestFieldMatchesNormalizedNames(t *testing.T) {
	doc := docWithFormFields(formField("Business Name:", "Acme LLC"))

	if got := Field(doc, "business_name"); got != "Acme LLC" {
		t.Fatalf("expected Acme LLC, got %q", got)
	}
	if got := Field(doc, "owner_name"); got != "" {
		t.Fatalf("expected empty for missing field, got %q", got)
	}
}

func TestFieldFallsBackToEntities(t *testing.T) {
	doc := &documentaipb.Document{
		Entities: []*documentaipb.Document_Entity{{
			Type:        "routing_number",
			MentionText: "021000021",
		}},
	}

	if got := Field(doc, "routing_number"); got != "021000021" {
		t.Fatalf("expected routing number, got %q", got)
	}
}

func TestAnchorTextFromSegments(t *testing.T) {
	doc := &documentaipb.Document{Text: "hello world"}
	anchor := &documentaipb.Document_TextAnchor{
		TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
			{StartIndex: 0, EndIndex: 5},
			{StartIndex: 6, EndIndex: 11},
		},
	}

	if got := anchorText(doc, anchor); got != "hello world" {
		t.Fatalf("expected joined segments, got %q", got)
	}

	// Out-of-range segments are skipped rather than panicking.
	anchor.TextSegments = append(anchor.TextSegments, &documentaipb.Document_TextAnchor_TextSegment{StartIndex: 5, EndIndex: 500})
	if got := anchorText(doc, anchor); got != "hello world" {
		t.Fatalf("expected bad segment skipped, got %q", got)
	}
}

func TestFormDataFallbackNames(t *testing.T) {
	doc := docWithFormFields(
		formField("Company Name", "Acme LLC"),
		formField("Tax ID", "12-3456789"),
		formField("Entity Type", "LLC"),
	)

	out := FormDataFrom(doc)
	if out.BusinessName != "Acme LLC" {
		t.Fatalf("expected company_name fallback, got %q", out.BusinessName)
	}
	if out.EIN != "12-3456789" {
		t.Fatalf("expected tax_id fallback, got %q", out.EIN)
	}
	if out.BusinessType != "LLC" {
		t.Fatalf("expected entity_type fallback, got %q", out.BusinessType)
	}
}

func TestTimeInBusinessFromStartDate(t *testing.T) {
	start := time.Now().AddDate(-2, 0, 0).Format("2006-01-02")
	doc := docWithFormFields(formField("Start Date", start))

	out := FormDataFrom(doc)
	if out.TimeInBusinessMonths == nil {
		t.Fatalf("expected time_in_business_months to be derived")
	}
	if months := *out.TimeInBusinessMonths; months < 22 || months > 25 {
		t.Fatalf("expected roughly 24 months, got %d", months)
	}
}

func TestTimeInBusinessFromText(t *testing.T) {
	doc := docWithFormFields(formField("Time in Business", "2 years"))

	out := FormDataFrom(doc)
	if out.TimeInBusinessMonths == nil || *out.TimeInBusinessMonths != 24 {
		t.Fatalf("expected 24 months, got %v", out.TimeInBusinessMonths)
	}

	doc = docWithFormFields(formField("Time in Business", "18 months"))
	out = FormDataFrom(doc)
	if out.TimeInBusinessMonths == nil || *out.TimeInBusinessMonths != 18 {
		t.Fatalf("expected 18 months, got %v", out.TimeInBusinessMonths)
	}
}

func TestTimeInBusinessMissing(t *testing.T) {
	out := FormDataFrom(docWithFormFields(formField("Business Name", "Acme")))
	if out.TimeInBusinessMonths != nil {
		t.Fatalf("expected nil months, got %v", *out.TimeInBusinessMonths)
	}
}
