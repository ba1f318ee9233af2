package extract

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

func tableCell(text string) *documentaipb.Document_Page_Table_TableCell {
	return &documentaipb.Document_Page_Table_TableCell{
		Layout: &documentaipb.Document_Page_Layout{
			TextAnchor: &documentaipb.Document_TextAnchor{Content: text},
		},
	}
}

func tableRow(cells ...string) *documentaipb.Document_Page_Table_TableRow {
	row := &documentaipb.Document_Page_Table_TableRow{}
	for _, c := range cells {
		row.Cells = append(row.Cells, tableCell(c))
	}
	return row
}

func docWithTable(header []string, body ...[]string) *documentaipb.Document {
	table := &documentaipb.Document_Page_Table{
		HeaderRows: []*documentaipb.Document_Page_Table_TableRow{tableRow(header...)},
	}
	for _, row := range body {
		table.BodyRows = append(table.BodyRows, tableRow(row...))
	}
	return &documentaipb.Document{
		Pages: []*documentaipb.Document_Page{{
			Tables: []*documentaipb.Document_Page_Table{table},
		}},
	}
}

func TestBankStatementFromTable(t *testing.T) {
	doc := docWithTable(
		[]string{"Date", "Description", "Amount"},
		[]string{"01/05", "PAYROLL DEPOSIT", "$1,250.00"},
		[]string{"01/07", "CARD PURCHASE", "-42.17"},
		[]string{"", "Subtotal", "not a number"},
	)

	out := BankStatementFrom(doc)
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(out.Transactions))
	}

	first := out.Transactions[0]
	if first.Amount != 1250 || first.Type != "CREDIT" || first.Description != "PAYROLL DEPOSIT" {
		t.Fatalf("unexpected first transaction: %+v", first)
	}
	second := out.Transactions[1]
	if second.Amount != 42.17 || second.Type != "DEBIT" {
		t.Fatalf("unexpected second transaction: %+v", second)
	}

	if out.DailyBalances == nil {
		t.Fatalf("daily_balances should never be nil")
	}
}

func TestBankStatementTypeColumn(t *testing.T) {
	doc := docWithTable(
		[]string{"Date", "Description", "Amount", "Type"},
		[]string{"01/05", "VENDOR PAYMENT", "500.00", "Debit"},
		[]string{"01/06", "WIRE IN", "900.00", "Credit"},
	)

	out := BankStatementFrom(doc)
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(out.Transactions))
	}
	if out.Transactions[0].Type != "DEBIT" {
		t.Fatalf("expected DEBIT from type column, got %q", out.Transactions[0].Type)
	}
	if out.Transactions[1].Type != "CREDIT" {
		t.Fatalf("expected CREDIT from type column, got %q", out.Transactions[1].Type)
	}
}

func TestBankStatementSectionFromHeader(t *testing.T) {
	doc := docWithTable(
		[]string{"Deposits and Additions", "Date", "Amount"},
		[]string{"", "01/05", "100.00"},
	)

	out := BankStatementFrom(doc)
	if len(out.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(out.Transactions))
	}
	if out.Transactions[0].Section != "DEPOSITS_AND_ADDITIONS" {
		t.Fatalf("unexpected section %q", out.Transactions[0].Section)
	}
}

func TestInferTableSection(t *testing.T) {
	cases := []struct {
		header []string
		want   string
	}{
		{[]string{"electronic withdrawals", "date"}, "ELECTRONIC_WITHDRAWALS"},
		{[]string{"checks paid"}, "CHECKS_PAID"},
		{[]string{"atm withdrawals & debits"}, "ATM_DEBIT_WITHDRAWALS"},
		{[]string{"service fees"}, "FEES"},
		{[]string{"date", "description", "amount"}, ""},
	}
	for _, tc := range cases {
		if got := inferTableSection(tc.header); got != tc.want {
			t.Fatalf("header %v: expected %q, got %q", tc.header, tc.want, got)
		}
	}
}

func TestDailyBalancesFromEntities(t *testing.T) {
	doc := &documentaipb.Document{
		Entities: []*documentaipb.Document_Entity{{
			Type:        "daily_balance",
			MentionText: "end of day",
			Properties: []*documentaipb.Document_Entity{
				{Type: "date", MentionText: "01/05"},
				{Type: "balance", MentionText: "$3,210.55"},
			},
		}},
	}

	out := BankStatementFrom(doc)
	if len(out.DailyBalances) != 1 {
		t.Fatalf("expected 1 balance, got %d", len(out.DailyBalances))
	}
	b := out.DailyBalances[0]
	if b.Date != "01/05" || b.Balance != 3210.55 {
		t.Fatalf("unexpected balance entry: %+v", b)
	}
}

func TestDailyBalancesFromTableFallback(t *testing.T) {
	doc := docWithTable(
		[]string{"Date", "Ending Balance"},
		[]string{"01/05", "1,000.00"},
		[]string{"01/06", "950.25"},
	)

	out := dailyBalances(doc)
	if len(out) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(out))
	}
	if out[1].Date != "01/06" || out[1].Balance != 950.25 {
		t.Fatalf("unexpected balance entry: %+v", out[1])
	}
}

func TestBankStatementSummaryFields(t *testing.T) {
	doc := docWithFormFields(
		formField("Account Number", "000123456789"),
		formField("Beginning Balance", "$5,000.00"),
		formField("Ending Balance", "$4,200.00"),
	)

	out := BankStatementFrom(doc)
	if out.AccountNumber != "000123456789" {
		t.Fatalf("unexpected account number %q", out.AccountNumber)
	}
	if out.OpeningBalance != "$5,000.00" {
		t.Fatalf("expected beginning_balance fallback, got %q", out.OpeningBalance)
	}
	if out.ClosingBalance != "$4,200.00" {
		t.Fatalf("unexpected closing balance %q", out.ClosingBalance)
	}
}

func TestTransactionsFromText(t *testing.T) {
	text := "CHECKING SUMMARY\n" +
		"01/05 PAYROLL DEPOSIT ACME LLC $1,250.00\n" +
		"01/07 CARD PURCHASE COFFEE 4.50\n" +
		"01/09 WIRE OUT VENDOR 2,000.00\n" +
		"Page 1 of 3\n"

	doc := &documentaipb.Document{Text: text}
	out := BankStatementFrom(doc)

	// The 4.50 line falls below the plausibility floor and is skipped.
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d: %+v", len(out.Transactions), out.Transactions)
	}
	if out.Transactions[0].Amount != 1250 || out.Transactions[0].Type != "CREDIT" {
		t.Fatalf("unexpected first transaction: %+v", out.Transactions[0])
	}
	if out.Transactions[1].Amount != 2000 || out.Transactions[1].Type != "DEBIT" {
		t.Fatalf("unexpected second transaction: %+v", out.Transactions[1])
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.56", 1234.56, true},
		{"-42.17", -42.17, true},
		{" $ 100 ", 100, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseMoney(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseMoney(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
