// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package schema

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the value kind a parameter accepts.
type Kind int

const (
	KindInvalid Kind = iota
	KindDouble
	KindInt32
	KindUInt32
	KindInt64
	KindBool
	KindString
	KindTag
	KindVDouble
	KindVInt32
	KindVString
	KindVTag
)

var kindNames = map[Kind]string{
	KindDouble:  "double",
	KindInt32:   "int32",
	KindUInt32:  "uint32",
	KindInt64:   "int64",
	KindBool:    "bool",
	KindString:  "string",
	KindTag:     "tag",
	KindVDouble: "vdouble",
	KindVInt32:  "vint32",
	KindVString: "vstring",
	KindVTag:    "vtag",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// ParseKind looks up a kind by its keyword.
func ParseKind(keyword string) (Kind, bool) {
	k, ok := kindsByName[keyword]
	return k, ok
}

// KindKeywords returns every valid kind keyword, sorted.
func KindKeywords() []string {
	names := make([]string, 0, len(kindsByName))
	for name := range kindsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns the keyword of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsList reports whether the kind holds an ordered list of values.
func (k Kind) IsList() bool {
	switch k {
	case KindVDouble, KindVInt32, KindVString, KindVTag:
		return true
	}
	return false
}

// Elem returns the element kind of a list kind, or the kind itself.
func (k Kind) Elem() Kind {
	switch k {
	case KindVDouble:
		return KindDouble
	case KindVInt32:
		return KindInt32
	case KindVString:
		return KindString
	case KindVTag:
		return KindTag
	}
	return k
}

// CtyType returns the cty type values of this kind are normalised to.
func (k Kind) CtyType() cty.Type {
	if k.IsList() {
		return cty.List(k.Elem().CtyType())
	}
	switch k {
	case KindDouble, KindInt32, KindUInt32, KindInt64:
		return cty.Number
	case KindBool:
		return cty.Bool
	case KindString, KindTag:
		return cty.String
	}
	return cty.NilType
}
