package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func planID(t *testing.T, rendered string) string {
	t.Helper()
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(rendered), &p))
	require.NotEmpty(t, p.ID)
	return p.ID
}
