// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package textds manages the suffix array based index structures of a text.
//
// A TextDS owns a read-only view of a text terminated by a 0 byte and builds
// the suffix array (SA), inverse suffix array (ISA), longest common prefix
// array (LCP), Phi array (PHI) and permuted LCP array (PLCP) on demand.
// Structures that depend on each other are built in dependency order.
package textds

import (
	"github.com/tdcgo/textcomp/internal"
	"github.com/tdcgo/textcomp/internal/sais"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "textds: " + string(e) }

var ErrNoSentinel error = Error("text is not terminated by a 0 byte")

// Flags select a set of index structures.
type Flags uint

const (
	SA Flags = 1 << iota
	ISA
	LCP
	PHI
	PLCP
)

// Options configures how each structure is built.
// A nil field selects the default builder.
type Options struct {
	SA   func(text []byte) []int
	Phi  func(sa []int) []int
	PLCP func(text []byte, phi []int) []int
	LCP  func(plcp, sa []int) []int
	ISA  func(sa []int) []int
}

// TextDS holds the text and the index structures built so far.
type TextDS struct {
	text  []byte
	opts  Options
	flags Flags

	sa, isa, lcp, phi, plcp []int
}

// New returns a TextDS for text and builds the structures selected by flags.
// The text must end with a 0 byte and must not be modified afterwards.
func New(text []byte, flags Flags, opts *Options) (*TextDS, error) {
	if len(text) == 0 || text[len(text)-1] != 0 {
		return nil, ErrNoSentinel
	}
	ds := &TextDS{text: text}
	if opts != nil {
		ds.opts = *opts
	}
	if ds.opts.SA == nil {
		ds.opts.SA = BuildSA
	}
	if ds.opts.Phi == nil {
		ds.opts.Phi = PhiFromSA
	}
	if ds.opts.PLCP == nil {
		ds.opts.PLCP = PLCPFromPhi
	}
	if ds.opts.LCP == nil {
		ds.opts.LCP = LCPFromPLCP
	}
	if ds.opts.ISA == nil {
		ds.opts.ISA = ISAFromSA
	}
	ds.Require(flags)
	return ds, nil
}

// Text returns the indexed text, including its sentinel.
func (ds *TextDS) Text() []byte { return ds.text }

// Len reports the length of the text, including its sentinel.
func (ds *TextDS) Len() int { return len(ds.text) }

// Flags reports which structures are currently held.
func (ds *TextDS) Flags() Flags { return ds.flags }

// Require builds the structures selected by flags together with any
// structures they depend on. Every other structure is released.
func (ds *TextDS) Require(flags Flags) {
	ds.flags = flags
	if flags&SA != 0 {
		ds.RequireSA()
	}
	if flags&PHI != 0 {
		ds.RequirePhi()
	}
	if flags&PLCP != 0 {
		ds.RequirePLCP()
	}
	if flags&LCP != 0 {
		ds.RequireLCP()
	}
	if flags&ISA != 0 {
		ds.RequireISA()
	}

	if ds.flags&SA == 0 {
		ds.ReleaseSA()
	}
	if ds.flags&PHI == 0 {
		ds.ReleasePhi()
	}
	if ds.flags&PLCP == 0 {
		ds.ReleasePLCP()
	}
	if ds.flags&LCP == 0 {
		ds.ReleaseLCP()
	}
	if ds.flags&ISA == 0 {
		ds.ReleaseISA()
	}
}

func (ds *TextDS) RequireSA() []int {
	ds.flags |= SA
	if ds.sa == nil {
		ds.sa = ds.opts.SA(ds.text)
	}
	return ds.sa
}

func (ds *TextDS) RequirePhi() []int {
	ds.flags |= PHI
	if ds.phi == nil {
		ds.phi = ds.opts.Phi(ds.RequireSA())
	}
	return ds.phi
}

func (ds *TextDS) RequirePLCP() []int {
	ds.flags |= PLCP
	if ds.plcp == nil {
		ds.plcp = ds.opts.PLCP(ds.text, ds.RequirePhi())
	}
	return ds.plcp
}

func (ds *TextDS) RequireLCP() []int {
	ds.flags |= LCP
	if ds.lcp == nil {
		ds.lcp = ds.opts.LCP(ds.RequirePLCP(), ds.RequireSA())
	}
	return ds.lcp
}

func (ds *TextDS) RequireISA() []int {
	ds.flags |= ISA
	if ds.isa == nil {
		ds.isa = ds.opts.ISA(ds.RequireSA())
	}
	return ds.isa
}

// ReleaseSA drops the suffix array from ds and returns it to the caller.
// It returns nil if the suffix array was never built.
func (ds *TextDS) ReleaseSA() []int {
	ds.flags &^= SA
	sa := ds.sa
	ds.sa = nil
	return sa
}

func (ds *TextDS) ReleasePhi() []int {
	ds.flags &^= PHI
	phi := ds.phi
	ds.phi = nil
	return phi
}

func (ds *TextDS) ReleasePLCP() []int {
	ds.flags &^= PLCP
	plcp := ds.plcp
	ds.plcp = nil
	return plcp
}

func (ds *TextDS) ReleaseLCP() []int {
	ds.flags &^= LCP
	lcp := ds.lcp
	ds.lcp = nil
	return lcp
}

func (ds *TextDS) ReleaseISA() []int {
	ds.flags &^= ISA
	isa := ds.isa
	ds.isa = nil
	return isa
}

// BuildSA computes the suffix array of text with SA-IS.
func BuildSA(text []byte) []int {
	sa := make([]int, len(text))
	sais.ComputeSA(text, sa)
	return sa
}

// PhiFromSA computes Phi[SA[i]] = SA[i-1], wrapping around at i = 0.
func PhiFromSA(sa []int) []int {
	phi := make([]int, len(sa))
	for i := 1; i < len(sa); i++ {
		phi[sa[i]] = sa[i-1]
	}
	if len(sa) > 0 {
		phi[sa[0]] = sa[len(sa)-1]
	}
	return phi
}

// PLCPFromPhi computes the LCP values in text order using the method of
// Kärkkäinen, Manzini and Puglisi. The suffix that consists of the sentinel
// alone is always the smallest and is assigned 0.
func PLCPFromPhi(text []byte, phi []int) []int {
	n := len(text)
	plcp := make([]int, n)
	var l int
	for i := 0; i < n-1; i++ {
		j := phi[i]
		for i+l < n && j+l < n && text[i+l] == text[j+l] {
			l++
		}
		plcp[i] = l
		if l > 0 {
			l--
		}
	}
	return plcp
}

// LCPFromPLCP computes LCP[i] = PLCP[SA[i]].
func LCPFromPLCP(plcp, sa []int) []int {
	lcp := make([]int, len(sa))
	for i, s := range sa {
		lcp[i] = plcp[s]
	}
	if internal.Debug && len(lcp) > 0 && lcp[0] != 0 {
		panic("textds: first LCP entry must be zero")
	}
	return lcp
}

// ISAFromSA computes the inverse permutation of sa.
func ISAFromSA(sa []int) []int {
	isa := make([]int, len(sa))
	for i, s := range sa {
		isa[s] = i
	}
	return isa
}
