package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrops(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"100", 100, false},
		{" 42 ", 42, false},
		{"0", 0, false},
		{"100000000000000000", MaxDrops, false},
		{"100000000000000001", 0, true},
		{"-1", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDrops(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseXRP(t *testing.T) {
	got, err := ParseXRP("1.5")
	require.NoError(t, err)
	assert.Equal(t, int64(1_500_000), got)

	got, err = ParseXRP("0.000001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	_, err = ParseXRP("0.0000001")
	assert.Error(t, err)
	_, err = ParseXRP("-1")
	assert.Error(t, err)
	_, err = ParseXRP("100000000001")
	assert.Error(t, err)
}

func TestFormatDrops(t *testing.T) {
	assert.Equal(t, "1.5", FormatDrops(1_500_000))
	assert.Equal(t, "1", FormatDrops(1_000_000))
	assert.Equal(t, "0.000001", FormatDrops(1))
	assert.Equal(t, "0", FormatDrops(0))
	assert.Equal(t, "2 XRP", FormatDropsWithUnit(2_000_000))
}
