package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStamp_FormatsUTCAtSecondResolution(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2025, 7, 14, 15, 4, 5, 987654321, loc)

	got := Stamp(in)
	assert.Equal(t, "2025-07-14 12:04:05", got)
}

func TestParseStamp_RoundTrip(t *testing.T) {
	in := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	parsed, err := ParseStamp(Stamp(in))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(in))
}

func TestParseStamp_Invalid(t *testing.T) {
	_, err := ParseStamp("2025/01/02")
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"string form", `"1s"`, time.Second, false},
		{"nanoseconds", `1500000000`, 1500 * time.Millisecond, false},
		{"bad string", `"xx"`, 0, true},
		{"bad type", `true`, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Duration)
		})
	}
}
