// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package esp

// SLP is a straight-line program grammar.
//
// Rules[i][0] and Rules[i][1] are the left and right symbols of the
// nonterminal 256+i. Root is the symbol that derives the whole text.
// An empty SLP derives the empty string and has neither rules nor a root.
type SLP struct {
	Rules [][2]uint64
	Root  uint64
	Empty bool
}

// MaxSymbol reports the largest symbol id defined by s.
func (s *SLP) MaxSymbol() uint64 {
	return uint64(len(s.Rules)) + numTerminals - 1
}

// Rule returns the rule defining the nonterminal sym.
func (s *SLP) Rule(sym uint64) [2]uint64 {
	return s.Rules[sym-numTerminals]
}

func (s *SLP) valid(sym uint64) bool {
	return sym <= s.MaxSymbol()
}

// lengths computes the expanded length of every nonterminal.
// It reports ErrInvalid for undefined symbols and cyclic rules.
func (s *SLP) lengths() ([]uint64, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	n := len(s.Rules)
	lens := make([]uint64, n)
	state := make([]uint8, n)
	symLen := func(sym uint64) uint64 {
		if sym < numTerminals {
			return 1
		}
		return lens[sym-numTerminals]
	}

	var stack []int
	for i := range s.Rules {
		if state[i] == done {
			continue
		}
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			r := stack[len(stack)-1]
			if state[r] == unvisited {
				state[r] = visiting
				for _, sym := range s.Rules[r] {
					if !s.valid(sym) {
						return nil, ErrInvalid
					}
					if sym < numTerminals {
						continue
					}
					switch state[sym-numTerminals] {
					case unvisited:
						stack = append(stack, int(sym-numTerminals))
					case visiting:
						return nil, ErrInvalid // Cycle
					}
				}
				continue
			}
			stack = stack[:len(stack)-1]
			if state[r] == visiting {
				l, r2 := symLen(s.Rules[r][0]), symLen(s.Rules[r][1])
				if l+r2 < l {
					return nil, ErrInvalid
				}
				lens[r] = l + r2
				state[r] = done
			}
		}
	}
	return lens, nil
}

// ExpandedLen reports the length of the text derived by s.
func (s *SLP) ExpandedLen() (uint64, error) {
	if s.Empty {
		return 0, nil
	}
	if !s.valid(s.Root) {
		return 0, ErrInvalid
	}
	if s.Root < numTerminals {
		return 1, nil
	}
	lens, err := s.lengths()
	if err != nil {
		return 0, err
	}
	return lens[s.Root-numTerminals], nil
}

// Expand derives the text of s.
func (s *SLP) Expand() ([]byte, error) {
	n, err := s.ExpandedLen()
	if err != nil {
		return nil, err
	}
	if n > maxExpand {
		return nil, ErrInvalid
	}
	if s.Empty {
		return []byte{}, nil
	}
	out := make([]byte, 0, n)
	stack := []uint64{s.Root}
	for len(stack) > 0 {
		sym := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if sym < numTerminals {
			out = append(out, byte(sym))
			continue
		}
		r := s.Rule(sym)
		stack = append(stack, r[1], r[0])
	}
	return out, nil
}

// maxExpand limits the size of a derived text.
const maxExpand = 1 << 32
