package analysis

import (
	"sort"

	"github.com/SeamusWaldron/cubetwist"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N        int      `json:"n"`
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
	tokens   []uint16
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint16
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   131,
		n:      n,
		window: make([]uint16, 0, n),
	}
	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll adds a token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint16) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}

	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint16 {
	return append([]uint16(nil), rh.window...)
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// tokenizer maps distinct moves to small integers.
type tokenizer struct {
	ids   map[string]uint16
	names []string
}

func (t *tokenizer) token(m cubetwist.Move) uint16 {
	name := m.String()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := uint16(len(t.names))
	t.ids[name] = id
	t.names = append(t.names, name)
	return id
}

// MineNGrams finds the top-K most frequent n-grams for each n in
// [minN, maxN] across the given move sequences. Sequences are mined
// separately so no n-gram spans two games. Only n-grams seen at least
// twice are reported.
func MineNGrams(sequences [][]cubetwist.Move, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}
	tk := &tokenizer{ids: make(map[string]uint16)}

	tokens := make([][]uint16, len(sequences))
	for i, seq := range sequences {
		tokens[i] = make([]uint16, len(seq))
		for j, m := range seq {
			tokens[i][j] = tk.token(m)
		}
	}

	for n := max(minN, 1); n <= maxN; n++ {
		if ngrams := mineN(tokens, tk, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}
	return report
}

func mineN(sequences [][]uint16, tk *tokenizer, n, topK int) []NGram {
	// Buckets hold every distinct window with a given hash.
	counts := make(map[uint64][]*NGram)

	for _, seq := range sequences {
		rh := NewRollingHash(n)
		for _, tok := range seq {
			rh.Roll(tok)
			if !rh.Ready() {
				continue
			}
			window := rh.Window()
			bucket := counts[rh.Hash()]
			found := false
			for _, ng := range bucket {
				if tokensEqual(ng.tokens, window) {
					ng.Count++
					found = true
					break
				}
			}
			if !found {
				counts[rh.Hash()] = append(bucket, &NGram{N: n, Count: 1, tokens: window})
			}
		}
	}

	var entries []*NGram
	for _, bucket := range counts {
		for _, ng := range bucket {
			if ng.Count >= 2 {
				entries = append(entries, ng)
			}
		}
	}

	for _, ng := range entries {
		ng.Sequence = make([]string, len(ng.tokens))
		for i, tok := range ng.tokens {
			ng.Sequence[i] = tk.names[tok]
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return lessSequence(entries[i].Sequence, entries[j].Sequence)
	})

	if len(entries) > topK {
		entries = entries[:topK]
	}

	result := make([]NGram, len(entries))
	for i, ng := range entries {
		result[i] = *ng
	}
	return result
}

func tokensEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lessSequence(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
