// internal/inputtag/parser_test.go
package inputtag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		raw         string
		expectErr   bool
		expectedTag Tag
	}{
		{
			name:        "label only",
			raw:         "hltPixelVertices",
			expectedTag: Tag{Label: "hltPixelVertices"},
		},
		{
			name:        "label and instance",
			raw:         "hltEgammaGsfTrackVars:Deta",
			expectedTag: Tag{Label: "hltEgammaGsfTrackVars", Instance: "Deta"},
		},
		{
			name:        "full triple",
			raw:         "TriggerResults::HLT",
			expectedTag: Tag{Label: "TriggerResults", Process: "HLT"},
		},
		{
			name:        "reserved process name",
			raw:         "rawDataCollector::@skipCurrentProcess",
			expectedTag: Tag{Label: "rawDataCollector", Process: "@skipCurrentProcess"},
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - blank string",
			raw:       "   ",
			expectErr: true,
		},
		{
			name:      "error - empty label",
			raw:       ":instance",
			expectErr: true,
		},
		{
			name:      "error - too many parts",
			raw:       "a:b:c:d",
			expectErr: true,
		},
		{
			name:      "error - invalid character",
			raw:       "hlt-jets",
			expectErr: true,
		},
		{
			name:      "error - bare reserved marker",
			raw:       "@",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tag, err := Parse(tc.raw)

			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expectedTag.Equal(tag), "parsed %+v, want %+v", tag, tc.expectedTag)
		})
	}
}
