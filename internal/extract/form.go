package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// FormData is the projection returned for a processed application form.
type FormData struct {
	BusinessName         string `json:"business_name"`
	DBA                  string `json:"dba"`
	EIN                  string `json:"ein"`
	OwnerName            string `json:"owner_name"`
	OwnerSSN             string `json:"owner_ssn"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Industry             string `json:"industry"`
	NAICSCode            string `json:"naics_code"`
	TimeInBusinessMonths *int   `json:"time_in_business_months"`
	StartDate            string `json:"start_date"`
	RequestedAmount      string `json:"requested_amount"`
	BusinessType         string `json:"business_type"`
}

var startDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"02-01-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var numberRe = regexp.MustCompile(`\d+\.?\d*`)

// FormDataFrom projects a parsed document into the form field set.
func FormDataFrom(doc *documentaipb.Document) FormData {
	out := FormData{
		BusinessName:    firstField(doc, "business_name", "company_name"),
		DBA:             firstField(doc, "dba", "doing_business_as"),
		EIN:             firstField(doc, "ein", "tax_id"),
		OwnerName:       firstField(doc, "owner_name", "owner"),
		OwnerSSN:        firstField(doc, "owner_ssn", "ssn"),
		Address:         firstField(doc, "address", "business_address"),
		Phone:           firstField(doc, "phone", "phone_number"),
		Email:           firstField(doc, "email", "email_address"),
		Industry:        firstField(doc, "industry", "business_type"),
		NAICSCode:       firstField(doc, "naics_code", "naics"),
		StartDate:       firstField(doc, "start_date", "business_start_date"),
		RequestedAmount: firstField(doc, "requested_amount", "funding_amount"),
		BusinessType:    firstField(doc, "business_type", "entity_type"),
	}

	if months, ok := monthsSinceStart(out.StartDate); ok {
		out.TimeInBusinessMonths = &months
	}
	if out.TimeInBusinessMonths == nil {
		tib := firstField(doc, "time_in_business", "time_in_business_months", "tib")
		if months, ok := monthsFromText(tib); ok {
			out.TimeInBusinessMonths = &months
		}
	}

	return out
}

func monthsSinceStart(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	for _, layout := range startDateLayouts {
		start, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		days := time.Since(start).Hours() / 24
		months := int(days / 30.44)
		if months < 0 {
			return 0, false
		}
		return months, true
	}
	return 0, false
}

func monthsFromText(raw string) (int, bool) {
	match := numberRe.FindString(raw)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(strings.ToLower(raw), "year") {
		val *= 12
	}
	return int(val), true
}
