package aggregator

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`123`, "123"},
		{`"abc-1"`, "abc-1"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(tt.in), &id), tt.in)
		assert.Equal(t, tt.want, id, tt.in)
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2024-01-05", "2024-01-05 13:45:00.000", "2024-01-05T23:10:00Z"} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), d.Time, in)
	}

	_, err := ParseDate("05.01.2024")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(NewDate(2024, 2, 29))
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(out))
}
