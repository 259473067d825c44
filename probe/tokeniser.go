// This file is part of hwperiph.
//
// hwperiph is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hwperiph is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hwperiph.  If not, see <https://www.gnu.org/licenses/>.

package probe

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Tokens is a tokenised line of a probe script.
type Tokens struct {
	input  string
	tokens []string
	curr   int
}

func (tk *Tokens) String() string {
	return tk.input
}

// Reset the tokens so that the next call to Get() returns the first token.
func (tk *Tokens) Reset() {
	tk.curr = 0
}

// IsEnd returns true if there are no more tokens.
func (tk Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Remaining returns the number of tokens not yet consumed.
func (tk Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// Remainder returns the unconsumed tokens joined by a single space.
func (tk Tokens) Remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}

// Get the next token.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Unget the most recent token.
func (tk *Tokens) Unget() {
	if tk.curr > 0 {
		tk.curr--
	}
}

// Peek at the next token without consuming it.
func (tk Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// TokeniseInput divides a line into tokens. Quoted strings are kept as a
// single token, including the quotes.
func TokeniseInput(input string) *Tokens {
	tk := new(Tokens)

	// remove leading/trailing space
	input = strings.TrimSpace(input)

	tk.tokens = tokeniseInput(input)
	tk.input = input

	// normalise hex notation
	for i := range tk.tokens {
		if tk.tokens[i][0] == '$' {
			tk.tokens[i] = fmt.Sprintf("0x%s", tk.tokens[i][1:])
		}
	}

	return tk
}

func tokeniseInput(input string) []string {
	var toks []string

	for len(input) > 0 {
		input = strings.TrimLeftFunc(input, unicode.IsSpace)
		if len(input) == 0 {
			break // for loop
		}

		if input[0] == '"' {
			if q, err := strconv.QuotedPrefix(input); err == nil {
				toks = append(toks, q)
				input = input[len(q):]
				continue // for loop
			}
		}

		n := strings.IndexFunc(input, unicode.IsSpace)
		if n == -1 {
			n = len(input)
		}
		toks = append(toks, input[:n])
		input = input[n:]
	}

	return toks
}
