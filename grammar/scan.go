package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"sync"

	"github.com/npillmayer/gorgo/lr/scanner"
)

// Token values for operator categories, for clients driving a
// table-based parser over pre-split token lists. Values above the
// scanner's reserved range.
const (
	AssignOp  int = 10
	BoolOp    int = 11
	BitOp     int = 12
	CompareOp int = 13
	ShiftOp   int = 14
	AddOp     int = 15
	MulOp     int = 16
	NegateOp  int = 17
	AccessOp  int = 18
	KeywordTk int = 1000
)

// tokenIds maps operator and keyword lexemes to their token values; set in
// initTokens().
var tokenIds map[string]int

var initOnce sync.Once

func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["COMMENT"] = scanner.Comment
		tokenIds["IDENT"] = scanner.Ident
		tokenIds["NUMBER"] = scanner.Float
		tokenIds["STRING"] = scanner.String
		for sym := range binaryPrecedence {
			tokenIds[sym] = categoryFor(sym)
		}
		for sym := range unaryOperators {
			if _, ok := tokenIds[sym]; !ok {
				tokenIds[sym] = NegateOp
			}
		}
		for i, slot := range keywordSlots {
			tokenIds[placeholderFor(slot).Text] = KeywordTk + i
		}
		for _, lit := range []string{"(", ")", "[", "]", "{", "}", ",", ":", ";"} {
			tokenIds[lit] = int(lit[0])
		}
	})
}

func categoryFor(sym string) int {
	prec, _ := Precedence(sym, false)
	switch prec {
	case 0:
		return AssignOp
	case 1, 2:
		return BoolOp
	case 3, 4, 5:
		return BitOp
	case 6, 7:
		return CompareOp
	case 8:
		return ShiftOp
	case 9:
		return AddOp
	case 10:
		return MulOp
	case 12:
		return AccessOp
	}
	return NegateOp
}

// TokenValue returns the token value for a lexeme, falling back to the
// identifier category.
func TokenValue(lexeme string) int {
	initTokens()
	if id, ok := tokenIds[lexeme]; ok {
		return id
	}
	return scanner.Ident
}

// listScanner adapts a token list to the scanner interface of the parser
// tools, so table-driven parsers can run off a pre-split line. It never
// signals fatal errors; unclassifiable tokens surface as identifiers.
type listScanner struct {
	list       *TokenList
	pos        int
	errHandler func(error)
}

// NewScanner wraps an already split token list.
func NewScanner(tl *TokenList) *listScanner {
	initTokens()
	return &listScanner{list: tl}
}

// NextToken returns the next token's value, the token itself and its rune
// extent in the original line. A zero token value signals end of input.
func (s *listScanner) NextToken(expected []int) (tokval int, token interface{}, start, length uint64) {
	if s.pos >= s.list.Len() {
		return 0, nil, uint64(s.pos), 0
	}
	tok := s.list.At(s.pos)
	s.pos++
	start = uint64(tok.Start)
	length = uint64(tok.End - tok.Start)
	token = tok
	switch tok.Kind {
	case Ident:
		tokval = scanner.Ident
		if id, ok := tokenIds[tok.Text]; ok {
			tokval = id
		}
	case IntLit, FloatLit:
		tokval = scanner.Float
	case StringLit, CharLit:
		tokval = scanner.String
	case Placeholder:
		tokval = scanner.Ident
		if id, ok := tokenIds[tok.Text]; ok {
			tokval = id
		}
	default:
		if id, ok := tokenIds[tok.Text]; ok {
			tokval = id
		} else {
			tokval = scanner.Ident
			if s.errHandler != nil {
				s.errHandler(syntaxError("unclassified symbol", tok))
			}
		}
	}
	return
}

// SetErrorHandler installs a handler for token classification problems.
func (s *listScanner) SetErrorHandler(h func(error)) {
	s.errHandler = h
}
