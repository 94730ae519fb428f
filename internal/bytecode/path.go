package bytecode

import "strings"

// FunctionPath and StringTablePath are colon-separated paths into a
// module tree (`a::b::c`), grounded on
// original_source/src/program/mod.rs's `FunctionPath`/`StringTablePath`.
type FunctionPath struct {
	Segments []string
}

type StringTablePath struct {
	Segments []string
}

// ParseFunctionPath splits a "a::b::c" string on "::". An empty input
// yields a single empty segment, matching the original's reduction for
// an unqualified name.
func ParseFunctionPath(s string) FunctionPath {
	if s == "" {
		return FunctionPath{Segments: []string{""}}
	}
	return FunctionPath{Segments: strings.Split(s, "::")}
}

func ParseStringTablePath(s string) StringTablePath {
	if s == "" {
		return StringTablePath{Segments: []string{""}}
	}
	return StringTablePath{Segments: strings.Split(s, "::")}
}

func (p FunctionPath) String() string { return strings.Join(p.Segments, "::") }

func (p StringTablePath) String() string { return strings.Join(p.Segments, "::") }

// Name is the final segment — the function/string name within its
// resolved sub-module.
func (p FunctionPath) Name() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// ModulePath is every segment but the last — the sub-module chain to
// walk before looking up Name().
func (p FunctionPath) ModulePath() []string {
	if len(p.Segments) <= 1 {
		return nil
	}
	return p.Segments[:len(p.Segments)-1]
}

func (p StringTablePath) Name() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

func (p StringTablePath) ModulePath() []string {
	if len(p.Segments) <= 1 {
		return nil
	}
	return p.Segments[:len(p.Segments)-1]
}
