package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line-oriented fallback for statements where the processor found no
// transaction tables.

var (
	txDateRe   = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?`)
	txAmountRe = regexp.MustCompile(`\$?(-?[\d,]+\.?\d*)`)
)

var txDateLayouts = []string{
	"01/02/2006",
	"01-02-2006",
	"01/02/06",
	"01/02",
}

const (
	txMinAmount = 10
	txMaxAmount = 10_000_000
)

func transactionsFromText(text string) []Transaction {
	transactions := make([]Transaction, 0)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}

		dateLoc := txDateRe.FindStringIndex(line)
		if dateLoc == nil {
			continue
		}

		amountStr, amount, ok := largestAmount(line)
		if !ok {
			continue
		}

		desc := ""
		if idx := strings.LastIndex(line, amountStr); idx > dateLoc[1] {
			desc = strings.TrimSpace(line[dateLoc[1]:idx])
		}
		if len(desc) > 200 {
			desc = desc[:200]
		}

		txType := "DEBIT"
		lowered := strings.ToLower(desc)
		if strings.Contains(lowered, "deposit") || strings.Contains(lowered, "credit") {
			txType = "CREDIT"
		}

		date, ok := parseTxDate(line[dateLoc[0]:dateLoc[1]])
		if !ok {
			continue
		}

		transactions = append(transactions, Transaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Type:        txType,
		})
	}
	return transactions
}

// largestAmount picks the plausible dollar amount with the largest
// magnitude on the line.
func largestAmount(line string) (string, float64, bool) {
	var bestStr string
	var best float64
	found := false

	for _, match := range txAmountRe.FindAllStringSubmatch(line, -1) {
		raw := match[1]
		val, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			continue
		}
		abs := math.Abs(val)
		if abs < txMinAmount || abs > txMaxAmount {
			continue
		}
		if !found || abs > math.Abs(best) {
			bestStr, best, found = raw, val, true
		}
	}
	return bestStr, math.Abs(best), found
}

func parseTxDate(raw string) (string, bool) {
	for _, layout := range txDateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") && !strings.Contains(layout, "06") {
			parsed = parsed.AddDate(time.Now().Year(), 0, 0)
		}
		return parsed.Format("2006-01-02"), true
	}
	return "", false
}
