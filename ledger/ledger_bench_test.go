package ledger_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
	"github.com/robinvdvleuten/money/parser"
)

func benchmarkJournal(transactions int) string {
	var sb strings.Builder
	for i := 0; i < transactions; i++ {
		fmt.Fprintf(&sb, "2012-%02d-%02d Payee %d\n", i%12+1, i%28+1, i)
		fmt.Fprintf(&sb, "    Expenses:Food:%d    $%d.25\n", i%10, i%100)
		sb.WriteString("    Assets:Cash\n\n")
	}
	return sb.String()
}

func BenchmarkProcess(b *testing.B) {
	source := benchmarkJournal(1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		tree, err := parser.ParseString(context.Background(), source)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()

		if err := ledger.New().Process(context.Background(), tree); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBalancePostings(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		postings := []*ast.Posting{
			ast.NewPosting("Expenses:Food", ast.WithAmount(20, "$")),
			ast.NewPosting("Expenses:Drinks", ast.WithAmount(4.5, "$")),
			ast.NewPosting("Assets:Cash"),
		}
		if err := ledger.BalancePostings(postings, ledger.Strict); err != nil {
			b.Fatal(err)
		}
	}
}
