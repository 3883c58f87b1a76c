package corpus

import "math"

// Model holds per-term inverse document frequencies fitted on a TF
// corpus: idf(t) = log2(N / df(t)), document frequencies taken from
// the corpus itself.
type Model struct {
	idf map[int]float64
}

// Fit computes the model from a TF corpus.
func Fit(tf [][]Entry) *Model {
	df := make(map[int]int)
	for _, bag := range tf {
		for _, e := range bag {
			if e.Weight != 0 {
				df[e.ID]++
			}
		}
	}
	n := float64(len(tf))
	idf := make(map[int]float64, len(df))
	for id, f := range df {
		idf[id] = math.Log2(n / float64(f))
	}
	return &Model{idf: idf}
}

// Transform reweights one TF bag: count times idf, zero-weight terms
// dropped (a term present in every document carries no signal), the
// rest L2-normalized. Term order is preserved.
func (m *Model) Transform(bag []Entry) []Entry {
	var out []Entry
	var norm float64
	for _, e := range bag {
		w := e.Weight * m.idf[e.ID]
		if w == 0 {
			continue
		}
		out = append(out, Entry{ID: e.ID, Weight: w})
		norm += w * w
	}
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i := range out {
		out[i].Weight /= norm
	}
	return out
}

// TransformAll applies Transform to every bag, keeping document order.
func (m *Model) TransformAll(tf [][]Entry) [][]Entry {
	out := make([][]Entry, len(tf))
	for i, bag := range tf {
		out[i] = m.Transform(bag)
	}
	return out
}
