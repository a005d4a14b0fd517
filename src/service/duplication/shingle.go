// Package duplication finds duplicated token runs across function units
// using shingled token hashing.
package duplication

import (
	"github.com/cespare/xxhash/v2"

	"codesage/src/model"
	"codesage/src/service/syntax"
)

// Stream is one unit's token stream plus its shingle hashes. Streams are
// built per file in parallel and resolved against each other afterwards.
type Stream struct {
	Unit   *model.FunctionUnit
	Tokens []syntax.Token
	Hashes []uint64
}

// NewStream shingles a unit's tokens. Units shorter than the window carry
// no hashes and can never anchor a match.
func NewStream(unit *model.FunctionUnit, tokens []syntax.Token, window int) *Stream {
	return &Stream{Unit: unit, Tokens: tokens, Hashes: Shingle(tokens, window)}
}

// Shingle hashes every window-length run of tokens. Token texts are fed
// through a single digest with a zero separator so "ab","c" and "a","bc"
// hash apart.
func Shingle(tokens []syntax.Token, window int) []uint64 {
	if window <= 0 || len(tokens) < window {
		return nil
	}

	hashes := make([]uint64, 0, len(tokens)-window+1)
	var d xxhash.Digest
	for start := 0; start+window <= len(tokens); start++ {
		d.Reset()
		for i := start; i < start+window; i++ {
			_, _ = d.WriteString(tokens[i].Text)
			_, _ = d.Write([]byte{0})
		}
		hashes = append(hashes, d.Sum64())
	}
	return hashes
}
