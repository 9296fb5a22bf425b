// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package schema

import (
	"fmt"
	"math"
	"math/big"

	"github.com/specialistvlad/psetgo/internal/inputtag"
	"github.com/zclconf/go-cty/cty"
)

// Conform checks that val is acceptable for kind and returns it normalised:
// whole numbers for integral kinds, canonical tag strings, and cty lists for
// list kinds.
func Conform(kind Kind, val cty.Value) (cty.Value, error) {
	if val.IsNull() {
		return cty.NilVal, fmt.Errorf("expected %s, got null", kind)
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("expected %s, got a value that is not known at load time", kind)
	}

	if !kind.IsList() {
		return conformScalar(kind, val)
	}

	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return cty.NilVal, fmt.Errorf("expected %s (a list of %s), got %s", kind, kind.Elem(), ty.FriendlyName())
	}

	elemKind := kind.Elem()
	elems := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		cv, err := conformScalar(elemKind, ev)
		if err != nil {
			return cty.NilVal, fmt.Errorf("element %d: %w", len(elems), err)
		}
		elems = append(elems, cv)
	}

	if len(elems) == 0 {
		return cty.ListValEmpty(elemKind.CtyType()), nil
	}
	return cty.ListVal(elems), nil
}

func conformScalar(kind Kind, val cty.Value) (cty.Value, error) {
	if val.IsNull() {
		return cty.NilVal, fmt.Errorf("expected %s, got null", kind)
	}

	want := kind.CtyType()
	if !val.Type().Equals(want) {
		return cty.NilVal, fmt.Errorf("expected %s, got %s", kind, val.Type().FriendlyName())
	}

	switch kind {
	case KindInt32:
		return conformInt(kind, val, math.MinInt32, math.MaxInt32)
	case KindUInt32:
		return conformInt(kind, val, 0, math.MaxUint32)
	case KindInt64:
		return conformInt(kind, val, math.MinInt64, math.MaxInt64)
	case KindTag:
		tag, err := inputtag.Parse(val.AsString())
		if err != nil {
			return cty.NilVal, err
		}
		return cty.StringVal(tag.String()), nil
	}

	return val, nil
}

func conformInt(kind Kind, val cty.Value, lo, hi int64) (cty.Value, error) {
	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return cty.NilVal, fmt.Errorf("expected %s, got fractional number %s", kind, bf.Text('g', -1))
	}
	i, acc := bf.Int64()
	if acc != big.Exact || i < lo || i > hi {
		return cty.NilVal, fmt.Errorf("value %s is out of range for %s", bf.Text('g', -1), kind)
	}
	return cty.NumberIntVal(i), nil
}
