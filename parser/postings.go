package parser

import (
	"github.com/robinvdvleuten/money/ast"
	"github.com/robinvdvleuten/money/ledger"
)

// minPostings is the smallest number of postings a transaction can balance with.
const minPostings = 2

// parsePostings parses the lines of a postings list. Comment lines may be
// interleaved with the postings; they are collected separately.
//
//	postings := item (linebreak item)*
//	item     := comment | posting
//
// The list must hold at least two postings and is balanced by the configured
// policy, which fills in a single missing amount.
func (p *Parser) parsePostings() ([]*ast.Posting, error) {
	postings := make([]*ast.Posting, 0, minPostings)

	if err := p.parsePostingsItem(&postings); err != nil {
		return nil, err
	}
	for {
		m := p.mark()
		if err := p.lineBreak(); err != nil {
			break
		}
		itemStart := p.pos
		if err := p.parsePostingsItem(&postings); err != nil {
			// A line that fails right at its start is not an item at all;
			// only a failure inside the line explains where the list stopped.
			if pe, ok := err.(*ParseError); ok && pe.Pos.Offset > itemStart {
				p.note(err)
			}
			p.reset(m)
			break
		}
	}

	if len(postings) < minPostings {
		return nil, p.errorf(StructuralMismatch, "line break followed by a posting")
	}

	if err := ledger.BalancePostings(postings, p.policy); err != nil {
		return nil, &ParseError{
			Pos:        postings[0].Pos,
			Kind:       IncompletePostingsList,
			Underlying: err,
			committed:  true,
		}
	}

	return postings, nil
}

func (p *Parser) parsePostingsItem(postings *[]*ast.Posting) error {
	comment, commentErr := p.parseComment()
	if commentErr == nil {
		p.comments = append(p.comments, comment)
		return nil
	}

	posting, err := p.parsePosting()
	if err != nil {
		return furthestError(err, commentErr)
	}
	*postings = append(*postings, posting)
	return nil
}
