package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"
)

// CtyComparer lets cmp.Diff compare cty values structurally.
var CtyComparer = cmp.Comparer(func(a, b cty.Value) bool {
	return a.RawEquals(b)
})
