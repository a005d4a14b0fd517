package duplication

import (
	"sort"

	"codesage/src/model"
)

// Detector resolves shingle collisions into extended duplicate spans.
// Resolve runs single-threaded: a fixed iteration order keeps the output
// deterministic.
type Detector struct {
	window    int
	minTokens int
}

// NewDetector creates a detector. minTokens floors reported match lengths;
// zero falls back to the shingle window.
func NewDetector(window, minTokens int) *Detector {
	if minTokens <= 0 {
		minTokens = window
	}
	return &Detector{window: window, minTokens: minTokens}
}

// location addresses one shingle: stream index and token offset
type location struct {
	si  int
	off int
}

// pairKey identifies one alignment of two streams. delta is the offset
// difference, constant while a match extends, so one covered-interval set
// per key suffices to skip shingles inside an already-extended match.
type pairKey struct {
	siA, siB int
	delta    int
}

// rawMatch is one extended run, as half-open token intervals on both sides
type rawMatch struct {
	siA, offA, endA int
	siB, offB, endB int
}

// Resolve pairs every shingle with earlier occurrences of the same hash and
// greedily extends each pair in both directions. Callers pass streams in a
// deterministic order; matches come back sorted by position.
func (d *Detector) Resolve(streams []*Stream) []model.DuplicationMatch {
	index := make(map[uint64][]location)
	covered := make(map[pairKey][][2]int)
	var raw []rawMatch

	for si, s := range streams {
		for off, h := range s.Hashes {
			for _, earlier := range index[h] {
				if m, ok := d.extend(streams, earlier, location{si, off}, covered); ok {
					raw = append(raw, m)
				}
			}
			index[h] = append(index[h], location{si, off})
		}
	}

	return d.finish(streams, raw)
}

// extend grows one collision into its maximal run of equal tokens. Returns
// false when the pair falls inside an already-covered interval, overlaps
// itself within one stream, or ends up shorter than the minimum.
func (d *Detector) extend(streams []*Stream, a, b location, covered map[pairKey][][2]int) (rawMatch, bool) {
	key := pairKey{siA: a.si, siB: b.si, delta: b.off - a.off}
	for _, iv := range covered[key] {
		if a.off >= iv[0] && a.off < iv[1] {
			return rawMatch{}, false
		}
	}

	tokA, tokB := streams[a.si].Tokens, streams[b.si].Tokens
	offA, offB := a.off, b.off
	length := d.window

	for offA > 0 && offB > 0 && tokA[offA-1].Text == tokB[offB-1].Text {
		offA--
		offB--
		length++
	}
	for offA+length < len(tokA) && offB+length < len(tokB) &&
		tokA[offA+length].Text == tokB[offB+length].Text {
		length++
	}

	// a stream repeating itself must not match across the repeat boundary
	if a.si == b.si && length > key.delta {
		length = key.delta
	}

	covered[key] = append(covered[key], [2]int{offA, offA + length})
	if length < d.minTokens {
		return rawMatch{}, false
	}
	return rawMatch{
		siA: a.si, offA: offA, endA: offA + length,
		siB: b.si, offB: offB, endB: offB + length,
	}, true
}

// finish merges overlapping and adjacent runs between the same unit pair
// and maps the survivors back to source spans. Periodic streams produce
// shifted alignments of the same region; those all land in one merged match.
func (d *Detector) finish(streams []*Stream, raw []rawMatch) []model.DuplicationMatch {
	sort.Slice(raw, func(i, j int) bool {
		a, b := raw[i], raw[j]
		if a.siA != b.siA {
			return a.siA < b.siA
		}
		if a.siB != b.siB {
			return a.siB < b.siB
		}
		if a.offA != b.offA {
			return a.offA < b.offA
		}
		return a.offB < b.offB
	})

	merged := raw[:0]
	for _, m := range raw {
		if n := len(merged); n > 0 {
			prev := &merged[n-1]
			if prev.siA == m.siA && prev.siB == m.siB &&
				m.offA <= prev.endA && m.offB <= prev.endB && m.endB >= prev.offB {
				if m.endA > prev.endA {
					prev.endA = m.endA
				}
				if m.offB < prev.offB {
					prev.offB = m.offB
				}
				if m.endB > prev.endB {
					prev.endB = m.endB
				}
				continue
			}
		}
		merged = append(merged, m)
	}

	out := make([]model.DuplicationMatch, 0, len(merged))
	for _, m := range merged {
		sa, sb := streams[m.siA], streams[m.siB]
		matched := m.endA - m.offA
		out = append(out, model.DuplicationMatch{
			PathA:      sa.Unit.Path,
			SpanA:      tokenSpan(sa, m.offA, m.endA-m.offA),
			PathB:      sb.Unit.Path,
			SpanB:      tokenSpan(sb, m.offB, m.endB-m.offB),
			Tokens:     matched,
			Similarity: similarity(matched, len(sa.Tokens), len(sb.Tokens)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PathA != b.PathA {
			return a.PathA < b.PathA
		}
		if a.SpanA.StartByte != b.SpanA.StartByte {
			return a.SpanA.StartByte < b.SpanA.StartByte
		}
		if a.PathB != b.PathB {
			return a.PathB < b.PathB
		}
		return a.SpanB.StartByte < b.SpanB.StartByte
	})
	return out
}

func tokenSpan(s *Stream, off, length int) model.Span {
	first, last := s.Tokens[off], s.Tokens[off+length-1]
	return model.Span{
		StartByte: first.StartByte,
		EndByte:   last.EndByte,
		StartLine: first.Line,
		EndLine:   last.Line,
	}
}

// similarity is the matched run over the mean stream length, capped at 1
func similarity(matched, lenA, lenB int) float64 {
	mean := float64(lenA+lenB) / 2
	if mean == 0 {
		return 0
	}
	s := float64(matched) / mean
	if s > 1 {
		return 1
	}
	return s
}
