package parser

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
)

// config holds the settings shared by every rule of a parse.
type config struct {
	filename    string
	dateLayout  string
	policy      ledger.Policy
	concurrency int
}

// Option configures a parse.
type Option func(*config)

// WithFilename sets the filename reported in error positions.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// WithDateLayout sets the time.Parse layout transaction dates are written in.
// The default is ast.DefaultDateLayout (year-month-day). Parsing fails when
// the layout does not pass ValidateDateLayout.
func WithDateLayout(layout string) Option {
	return func(c *config) {
		if layout != "" {
			c.dateLayout = layout
		}
	}
}

// WithBalancePolicy selects how postings lists that cannot be balanced are
// treated. The default is ledger.Strict.
func WithBalancePolicy(policy ledger.Policy) Option {
	return func(c *config) {
		c.policy = policy
	}
}

// WithConcurrency limits how many blocks of a document are parsed at once.
// Values below one mean GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// ValidateDateLayout checks that layout can describe the date of a header
// line. The date is the first token of the line, so the layout must not
// contain whitespace.
func ValidateDateLayout(layout string) error {
	if strings.ContainsAny(layout, " \t") {
		return fmt.Errorf("date layout %q must not contain whitespace", layout)
	}
	return nil
}

func newConfig(opts ...Option) config {
	c := config{
		dateLayout: ast.DefaultDateLayout,
		policy:     ledger.Strict,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.concurrency < 1 {
		c.concurrency = runtime.GOMAXPROCS(0)
	}
	return c
}
