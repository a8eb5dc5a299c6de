package parser

import (
	"bytes"
	"context"
	"fmt"
	"testing"
)

func benchmarkDocument(transactions int) []byte {
	var buf bytes.Buffer
	for i := range transactions {
		fmt.Fprintf(&buf, "2012-%02d-%02d Payee %d\n", i%12+1, i%28+1, i%50)
		fmt.Fprintf(&buf, "    Expenses:Food:Restaurant    $%d.%02d\n", i%100, i%100)
		if i%3 == 0 {
			buf.WriteString("    ; split with friends\n")
		}
		buf.WriteString("    Assets:Cash\n\n")
	}
	return buf.Bytes()
}

func BenchmarkParseBytes(b *testing.B) {
	data := benchmarkDocument(10_000)
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseBytes(context.Background(), data)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseBytesSequential(b *testing.B) {
	data := benchmarkDocument(10_000)
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseBytes(context.Background(), data, WithConcurrency(1))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseTransaction(b *testing.B) {
	data := []byte("2012-03-10 KFC\n    Expenses:Food                $20.00\n    Assets:Cash\n")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ParseTransaction(data)
		if err != nil {
			b.Fatal(err)
		}
	}
}
