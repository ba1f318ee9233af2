package extract

import (
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// Transaction is one statement line item.
type Transaction struct {
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type,omitempty"`
	Section     string  `json:"section,omitempty"`
}

// DailyBalance is an end-of-day balance entry.
type DailyBalance struct {
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
	Balance     float64 `json:"balance"`
}

// BankStatement is the projection returned for a processed bank statement.
type BankStatement struct {
	AccountNumber        string         `json:"account_number"`
	RoutingNumber        string         `json:"routing_number"`
	BankName             string         `json:"bank_name"`
	StatementPeriodStart string         `json:"statement_period_start"`
	StatementPeriodEnd   string         `json:"statement_period_end"`
	OpeningBalance       string         `json:"opening_balance"`
	ClosingBalance       string         `json:"closing_balance"`
	Transactions         []Transaction  `json:"transactions"`
	DailyBalances        []DailyBalance `json:"daily_balances"`
}

// BankStatementFrom projects a parsed document into the statement shape.
// Transactions prefer table rows; if no table yielded any, the raw text
// is scanned line by line as a fallback.
func BankStatementFrom(doc *documentaipb.Document) BankStatement {
	transactions := transactionsFromTables(doc)
	if len(transactions) == 0 && doc.GetText() != "" {
		transactions = transactionsFromText(doc.GetText())
	}

	return BankStatement{
		AccountNumber: Field(doc, "account_number"),
		RoutingNumber: Field(doc, "routing_number"),
		BankName:      Field(doc, "bank_name"),
		StatementPeriodStart: firstField(doc,
			"statement_start_date", "statement_period_start", "period_start"),
		StatementPeriodEnd: firstField(doc,
			"statement_end_date", "statement_period_end", "period_end"),
		OpeningBalance: firstField(doc,
			"starting_balance", "opening_balance", "beginning_balance"),
		ClosingBalance: firstField(doc, "ending_balance", "closing_balance"),
		Transactions:   transactions,
		DailyBalances:  dailyBalances(doc),
	}
}

// Statement section labels inferred from table headers.
const (
	sectionDeposits    = "DEPOSITS_AND_ADDITIONS"
	sectionElectronic  = "ELECTRONIC_WITHDRAWALS"
	sectionChecks      = "CHECKS_PAID"
	sectionATMDebit    = "ATM_DEBIT_WITHDRAWALS"
	sectionFees        = "FEES"
	sectionWithdrawals = "WITHDRAWALS"
)

func transactionsFromTables(doc *documentaipb.Document) []Transaction {
	transactions := make([]Transaction, 0)
	if doc == nil {
		return transactions
	}

	for _, page := range doc.GetPages() {
		for _, table := range page.GetTables() {
			var header []string
			for _, row := range table.GetHeaderRows() {
				for _, cell := range row.GetCells() {
					header = append(header, strings.ToLower(layoutText(doc, cell.GetLayout())))
				}
			}

			section := inferTableSection(header)
			dateCol, descCol, amountCol, typeCol := classifyColumns(header)

			for _, row := range table.GetBodyRows() {
				cells := make([]string, 0, len(row.GetCells()))
				for _, cell := range row.GetCells() {
					cells = append(cells, strings.TrimSpace(layoutText(doc, cell.GetLayout())))
				}

				tx, ok := rowTransaction(cells, section, dateCol, descCol, amountCol, typeCol)
				if ok {
					transactions = append(transactions, tx)
				}
			}
		}
	}
	return transactions
}

func classifyColumns(header []string) (dateCol, descCol, amountCol, typeCol int) {
	dateCol, descCol, amountCol, typeCol = -1, -1, -1, -1
	for i, h := range header {
		switch {
		case containsAny(h, "date"):
			dateCol = i
		case containsAny(h, "description", "memo", "details"):
			descCol = i
		case containsAny(h, "amount", "debit", "credit", "withdrawal", "deposit"):
			amountCol = i
		case containsAny(h, "type"):
			typeCol = i
		}
	}
	return dateCol, descCol, amountCol, typeCol
}

func rowTransaction(cells []string, section string, dateCol, descCol, amountCol, typeCol int) (Transaction, bool) {
	var tx Transaction
	if dateCol >= 0 && dateCol < len(cells) {
		tx.Date = cells[dateCol]
	}
	if descCol >= 0 && descCol < len(cells) {
		tx.Description = cells[descCol]
	}
	if amountCol < 0 || amountCol >= len(cells) {
		return Transaction{}, false
	}

	amount, ok := parseMoney(cells[amountCol])
	if !ok {
		return Transaction{}, false
	}
	tx.Amount = math.Abs(amount)

	if typeCol >= 0 && typeCol < len(cells) {
		typed := strings.ToLower(cells[typeCol])
		if strings.Contains(typed, "credit") || strings.Contains(typed, "deposit") {
			tx.Type = "CREDIT"
		} else {
			tx.Type = "DEBIT"
		}
	} else if amount >= 0 {
		tx.Type = "CREDIT"
	} else {
		tx.Type = "DEBIT"
	}

	tx.Section = section
	if tx.Section == "" {
		if amount >= 0 {
			tx.Section = sectionDeposits
		} else {
			tx.Section = sectionWithdrawals
		}
	}
	return tx, true
}

func inferTableSection(header []string) string {
	h := strings.Join(header, " ")
	switch {
	case strings.Contains(h, "deposit") && strings.Contains(h, "addition"):
		return sectionDeposits
	case strings.Contains(h, "electronic") && strings.Contains(h, "withdrawal"):
		return sectionElectronic
	case strings.Contains(h, "checks paid") || strings.Contains(h, "check paid"):
		return sectionChecks
	case (strings.Contains(h, "atm") || strings.Contains(h, "debit card")) && strings.Contains(h, "withdrawal"):
		return sectionATMDebit
	case strings.Contains(h, "fee"):
		return sectionFees
	}
	return ""
}

func dailyBalances(doc *documentaipb.Document) []DailyBalance {
	balances := make([]DailyBalance, 0)
	if doc == nil {
		return balances
	}

	for _, ent := range doc.GetEntities() {
		entType := strings.ToLower(ent.GetType())
		if !strings.Contains(entType, "balance") && !strings.Contains(entType, "daily") {
			continue
		}

		entry := DailyBalance{Description: ent.GetMentionText()}
		found := false
		for _, prop := range ent.GetProperties() {
			propType := strings.ToLower(prop.GetType())
			value := prop.GetMentionText()
			switch {
			case strings.Contains(propType, "date"):
				entry.Date = value
			case strings.Contains(propType, "balance") || strings.Contains(propType, "amount"):
				if amount, ok := parseMoney(value); ok {
					entry.Balance = amount
					found = true
				}
			}
		}
		if found {
			balances = append(balances, entry)
		}
	}

	if len(balances) > 0 {
		return balances
	}
	return balancesFromTables(doc)
}

func balancesFromTables(doc *documentaipb.Document) []DailyBalance {
	balances := make([]DailyBalance, 0)
	for _, page := range doc.GetPages() {
		for _, table := range page.GetTables() {
			var header strings.Builder
			for _, row := range table.GetHeaderRows() {
				for _, cell := range row.GetCells() {
					header.WriteString(strings.ToLower(layoutText(doc, cell.GetLayout())))
					header.WriteString(" ")
				}
			}
			h := header.String()
			if !strings.Contains(h, "balance") && !strings.Contains(h, "ending") {
				continue
			}

			for _, row := range table.GetBodyRows() {
				cells := make([]string, 0, len(row.GetCells()))
				for _, cell := range row.GetCells() {
					cells = append(cells, strings.TrimSpace(layoutText(doc, cell.GetLayout())))
				}
				if len(cells) < 2 {
					continue
				}
				if amount, ok := parseMoney(cells[1]); ok {
					balances = append(balances, DailyBalance{Date: cells[0], Balance: amount})
				}
			}
		}
	}
	return balances
}

func parseMoney(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "$ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
