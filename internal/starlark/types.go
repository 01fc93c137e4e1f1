// Package starlark runs user-supplied Starlark word filters.
//
// A filter script defines a global function accept(word) returning a bool.
// The script sees the active structure as the "structure" global and a few
// helpers (see Predeclared). Words for which accept returns False are
// discarded by the caller.
package starlark

import (
	"github.com/leapstack-labs/incantata/pkg/core"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// SegmentInfo is the script view of one segment.
type SegmentInfo struct {
	Len      int
	Dict     []string
	Continue float64
}

// StructureInfo is the script view of a structure.
// Exposed as the "structure" global in filter scripts.
type StructureInfo struct {
	Onset        SegmentInfo
	Nucleus      SegmentInfo
	Coda         SegmentInfo
	MinLen       int
	SuggestedLen int
}

// StructureInfoFrom copies the fields of s that scripts may read.
func StructureInfoFrom(s *core.Structure) *StructureInfo {
	if s == nil {
		return nil
	}
	seg := func(g core.Segment) SegmentInfo {
		return SegmentInfo{Len: g.Len, Dict: append([]string(nil), g.Dict...), Continue: g.Probability()}
	}
	return &StructureInfo{
		Onset:        seg(s.Onset),
		Nucleus:      seg(s.Nucleus),
		Coda:         seg(s.Coda),
		MinLen:       s.MinLen,
		SuggestedLen: s.SuggestedLen,
	}
}

// ToStarlark converts SegmentInfo to a Starlark struct value.
func (g SegmentInfo) ToStarlark() starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("segment"), starlark.StringDict{
		"len":          starlark.MakeInt(g.Len),
		"dict":         stringList(g.Dict),
		"continuation": starlark.Float(g.Continue),
	})
}

// ToStarlark converts StructureInfo to a Starlark struct value.
func (s *StructureInfo) ToStarlark() starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("structure"), starlark.StringDict{
		"onset":         s.Onset.ToStarlark(),
		"nucleus":       s.Nucleus.ToStarlark(),
		"coda":          s.Coda.ToStarlark(),
		"min_len":       starlark.MakeInt(s.MinLen),
		"suggested_len": starlark.MakeInt(s.SuggestedLen),
	})
}

func stringList(entries []string) *starlark.List {
	list := make([]starlark.Value, len(entries))
	for i, e := range entries {
		list[i] = starlark.String(e)
	}
	return starlark.NewList(list)
}
