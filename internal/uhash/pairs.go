package uhash

// PairIter enumerates the l-th (firstUComp, secondUComp) pair over
// {0..n-1}^2 ∩ {i1<i2} in lex order: (0,1), (0,2), ..., (0,n-1),
// (1,2), (1,3), ..., (n-2,n-1). This is the classic E2LSH advancing-
// pair rule for combining independent u-tuples into L g-functions.
type PairIter struct {
	n      int
	first  int
	second int
}

// NewPairIter creates an iterator over pairs drawn from n independent
// tuples.
func NewPairIter(n int) *PairIter {
	return &PairIter{n: n, first: 0, second: 1}
}

// Pair returns the l-th pair (0-based) by advancing a fresh iterator
// l times.
func Pair(n, l int) (i1, i2 int) {
	it := NewPairIter(n)
	for i := 0; i < l; i++ {
		it.advance()
	}
	return it.first, it.second
}

// Next returns the current pair and advances the iterator. ok is
// false once every pair has been produced.
func (it *PairIter) Next() (i1, i2 int, ok bool) {
	if it.first >= it.n-1 {
		return 0, 0, false
	}
	i1, i2 = it.first, it.second
	it.advance()
	return i1, i2, true
}

func (it *PairIter) advance() {
	it.second++
	if it.second >= it.n {
		it.first++
		it.second = it.first + 1
	}
}
