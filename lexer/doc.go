// Copyright 2017 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

/*
Package lexer implements translation phase 3 of a C front end: it turns
the logical character stream produced by package reader (which already
applied phases 1 and 2 - line-ending canonicalization and
backslash-newline splicing) into a stream of tokens.

Unlike a hand-rolled state-function DFA, token formation here is driven
by a single dispatch switch keyed on the first character of a token,
with nested lookahead (Try/Test against the reader) for the maximal-munch
operators and digraphs. This mirrors the structure of the C lexer this
package was ported from more closely than a generic state-machine
library would, since C's token grammar is shallow enough that a dispatch
table plus a handful of helper scans (numbers, identifiers, character
and string literals) covers it without needing a reusable DFA engine.

Scan produces one raw token per call, including whitespace-run and
comment tokens, which is what a byte-faithful reconstruction of the
input needs. Next wraps Scan, collapsing those trivia tokens into the
LeadingSpace count and BeginningLine flag of the following substantive
token, which is what everything downstream of this package - a
preprocessor or parser - actually wants to consume.

As in the implementation this package is modeled on, the lexer keeps a
single mutable scratch token that every scan step writes into; only a
deep copy of that scratch token, taken when a token is finalized, is
ever handed to the caller.
*/
package lexer
