// Large Ledger File Generator
//
// This tool generates a large ledger file for performance testing and profiling.
// It creates realistic transactions with the various amount layouts to stress-test
// the parser and ledger.
//
// Usage:
//
//	go run main.go > large.ledger
//	go run main.go 20000000 > large.ledger  # Specify target size in bytes
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	expenses = []string{
		"Expenses:Food:Groceries",
		"Expenses:Food:Restaurant",
		"Expenses:Housing:Rent",
		"Expenses:Housing:Utilities",
		"Expenses:Transport:Gas",
		"Expenses:Transport:Transit",
		"Expenses:Shopping:Clothing",
		"Expenses:Shopping:Electronics",
		"Expenses:Entertainment:Movies",
		"Expenses:Healthcare:Dental",
		"Expenses:Taxes:Federal",
	}

	funding = []string{
		"Assets:Bank:Checking",
		"Assets:Cash",
		"Liabilities:CreditCard:Visa",
		"Liabilities:CreditCard:Amex",
	}

	payees = []string{
		"Whole Foods", "Safeway", "Trader Joe's", "Costco",
		"Shell Gas", "Chevron", "BART", "Uber",
		"Landlord", "PG&E", "Comcast", "AT&T",
		"Amazon", "Target", "Best Buy", "Apple Store",
		"Netflix", "Spotify", "AMC Theaters",
		"Café Zürich", "ラーメン屋",
	}

	comments = []string{
		"; monthly budget review",
		"# reimbursable",
		"% imported from bank statement",
		"* needs receipt",
	}

	symbols = []string{"$", "€", "£"}
	stocks  = []string{"AAPL", "MSFT", "GOOGL", "VTI", `"Vanguard Total World"`}
)

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}

	w := bufio.NewWriter(os.Stdout)
	defer func() { _ = w.Flush() }()

	writeHeader(w)

	currentDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	bytesWritten := 0
	transactionCount := 0

	for bytesWritten < targetSize {
		var output string

		// Mix different layouts of transactions
		switch rand.Intn(10) {
		case 0, 1, 2: // 30% - Simple transaction with an inferred amount
			output = generateSimpleTransaction(currentDate)
		case 3, 4: // 20% - Both amounts written out
			output = generateExplicitTransaction(currentDate)
		case 5, 6: // 20% - Split across several expenses
			output = generateSplitTransaction(currentDate)
		case 7: // 10% - Stock purchase, a conversion between commodities
			output = generateInvestmentTransaction(currentDate)
		case 8: // 10% - Postfix amounts
			output = generatePostfixTransaction(currentDate)
		case 9: // 10% - Comment lines between transactions and postings
			output = generateCommentedTransaction(currentDate)
		}

		_, _ = w.WriteString(output)
		bytesWritten += len(output)
		transactionCount++

		// Advance date by 0-2 days
		currentDate = currentDate.AddDate(0, 0, rand.Intn(3))
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d bytes with %d transactions\n", bytesWritten, transactionCount)
}

func writeHeader(w *bufio.Writer) {
	_, _ = fmt.Fprintln(w, "; Large Ledger File for Performance Testing")
	_, _ = fmt.Fprintln(w, "; Generated:", time.Now().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintln(w)
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}

func generateSimpleTransaction(date time.Time) string {
	return fmt.Sprintf("%s %s\n    %s    %s%s\n    %s\n\n",
		date.Format("2006-01-02"), pick(payees),
		pick(expenses), pick(symbols), randAmount(10, 500),
		pick(funding))
}

func generateExplicitTransaction(date time.Time) string {
	symbol := pick(symbols)
	amount := randAmount(10, 500)

	return fmt.Sprintf("%s %s\n    %s    %s%s\n    %s    %s%s\n\n",
		date.Format("2006-01-02"), pick(payees),
		pick(expenses), symbol, amount,
		pick(funding), symbol, amount.Neg())
}

func generateSplitTransaction(date time.Time) string {
	symbol := pick(symbols)

	output := fmt.Sprintf("%s %s\n", date.Format("2006-01-02"), pick(payees))
	total := decimal.Zero
	for i := rand.Intn(3) + 2; i > 0; i-- {
		amount := randAmount(5, 200)
		total = total.Add(amount)
		output += fmt.Sprintf("    %s    %s %s\n", pick(expenses), symbol, amount)
	}
	output += fmt.Sprintf("    %s    %s%s\n\n", pick(funding), symbol, total.Neg().StringFixed(2))

	return output
}

func generateInvestmentTransaction(date time.Time) string {
	stock := pick(stocks)
	shares := rand.Intn(50) + 1
	price := randAmount(50, 500)
	total := price.Mul(decimal.NewFromInt(int64(shares)))

	return fmt.Sprintf("%s Buy %d shares\n    Assets:Brokerage:Stocks    %d %s\n    Assets:Brokerage:Cash    $-%s\n\n",
		date.Format("2006-01-02"), shares, shares, stock, total.StringFixed(2))
}

func generatePostfixTransaction(date time.Time) string {
	amount := randAmount(1, 100)

	return fmt.Sprintf("%s %s\n    %s    %s EUR\n    %s    %sEUR\n\n",
		date.Format("2006-01-02"), pick(payees),
		pick(expenses), amount,
		pick(funding), amount.Neg())
}

func generateCommentedTransaction(date time.Time) string {
	return fmt.Sprintf("%s\n%s %s\n    %s    %s%s\n    %s\n    %s\n\n",
		pick(comments), date.Format("2006-01-02"), pick(payees),
		pick(expenses), pick(symbols), randAmount(10, 500),
		pick(comments),
		pick(funding))
}

// randAmount returns a random amount between min and max with two decimals.
func randAmount(min, max float64) decimal.Decimal {
	amount := min + rand.Float64()*(max-min)
	return decimal.NewFromFloat(amount).Round(2)
}
