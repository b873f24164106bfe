package filter

import (
	"math/bits"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Window hashes are polynomials in hashBase evaluated mod the Mersenne prime 2^61-1.
// A power of two modulus is not used: Thue-Morse strings collide under it for any base.
const (
	hashModulus uint64 = 1<<61 - 1
	hashBase    uint64 = 0x0b7e151628aed2a6
)

var asciiValues = func() [utf8.RuneSelf]uint64 {
	var table [utf8.RuneSelf]uint64
	for r := range table {
		table[r] = xxhash.Sum64([]byte{byte(r)}) % hashModulus
	}
	return table
}()

// runeValue spreads a rune over [0, hashModulus) so that similar runes hash far apart.
func runeValue(r rune) uint64 {
	if r >= 0 && r < utf8.RuneSelf {
		return asciiValues[r]
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return xxhash.Sum64(buf[:n]) % hashModulus
}

func mulMod(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	// a*b = hi*2^64 + lo and 2^61 = 1 (mod hashModulus)
	r := (hi<<3 | lo>>61) + lo&hashModulus
	for r >= hashModulus {
		r -= hashModulus
	}
	return r
}

func addMod(a, b uint64) uint64 {
	r := a + b
	if r >= hashModulus {
		r -= hashModulus
	}
	return r
}

func subMod(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return a + hashModulus - b
}

// rollingHashes returns the hash of every window of the given size over values.
func rollingHashes(values []uint64, window int) []uint64 {
	if window <= 0 || len(values) < window {
		return nil
	}

	power := uint64(1)
	for i := 1; i < window; i++ {
		power = mulMod(power, hashBase)
	}

	var h uint64
	for _, v := range values[:window] {
		h = addMod(mulMod(h, hashBase), v)
	}

	hashes := make([]uint64, 0, len(values)-window+1)
	hashes = append(hashes, h)
	for i := window; i < len(values); i++ {
		h = subMod(h, mulMod(values[i-window], power))
		h = addMod(mulMod(h, hashBase), values[i])
		hashes = append(hashes, h)
	}
	return hashes
}

// runeText is a string split into rune byte offsets and rune hash values.
// offsets has one extra entry holding len(text).
type runeText struct {
	text    string
	offsets []int
	values  []uint64
}

func splitRunes(text string) runeText {
	r := runeText{
		text:    text,
		offsets: make([]int, 0, len(text)+1),
		values:  make([]uint64, 0, len(text)),
	}
	for offset, c := range text {
		r.offsets = append(r.offsets, offset)
		r.values = append(r.values, runeValue(c))
	}
	r.offsets = append(r.offsets, len(text))
	return r
}

// window returns the text of the length runes starting at rune pos
func (r runeText) window(pos, length int) string {
	return r.text[r.offsets[pos]:r.offsets[pos+length]]
}

// span is a half-open range of rune positions
type span struct {
	start int
	end   int
}

// document keeps a string together with the hashes of all its rune windows
type document struct {
	text     string
	window   int
	offsets  []int
	hashes   []uint64
	distinct map[uint64]struct{}
}

func indexDocument(text string, window int) *document {
	r := splitRunes(text)
	d := &document{
		text:    text,
		window:  window,
		offsets: r.offsets,
		hashes:  rollingHashes(r.values, window),
	}
	d.distinct = make(map[uint64]struct{}, len(d.hashes))
	for _, h := range d.hashes {
		d.distinct[h] = struct{}{}
	}
	return d
}

func (d *document) runeCount() int {
	return len(d.offsets) - 1
}

// reducible reports whether the document is long enough to lose text.
// A document exactly one window long still takes part in sharing.
func (d *document) reducible() bool {
	return d.window < d.runeCount()
}

// matchingSpans merges the positions of matching windows into removal spans.
// Overlapping and touching spans are joined.
func (d *document) matchingSpans(match func(uint64) bool) []span {
	var spans []span
	for pos, h := range d.hashes {
		if !match(h) {
			continue
		}
		end := pos + d.window
		if n := len(spans); n > 0 && pos <= spans[n-1].end {
			if end > spans[n-1].end {
				spans[n-1].end = end
			}
			continue
		}
		spans = append(spans, span{start: pos, end: end})
	}
	return spans
}

// without returns the text with the runes inside spans dropped.
func (d *document) without(spans []span) string {
	if len(spans) == 0 {
		return d.text
	}

	var sb strings.Builder
	sb.Grow(len(d.text))
	prev := 0
	for _, s := range spans {
		sb.WriteString(d.text[d.offsets[prev]:d.offsets[s.start]])
		prev = s.end
	}
	sb.WriteString(d.text[d.offsets[prev]:])
	return sb.String()
}

// removeWhere drops every run of matching windows when the document is reducible.
func (d *document) removeWhere(set map[uint64]struct{}) string {
	if !d.reducible() || len(set) == 0 {
		return d.text
	}
	return d.without(d.matchingSpans(func(h uint64) bool {
		_, ok := set[h]
		return ok
	}))
}
