package models

import (
	"encoding/json"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillisUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Millis
		wantErr bool
	}{
		{"number", `1635769200000`, 1635769200000, false},
		{"string", `"1635769200000"`, 1635769200000, false},
		{"fractional", `1635769200000.7`, 1635769200000, false},
		{"null", `null`, 0, false},
		{"garbage", `"soon"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Millis
			err := json.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestSightingListDecode(t *testing.T) {
	body := `{"data":[{"id":"a1","plateNumber":"B1000XYZ","region":"Jakarta","timestamp":"1635769200000"},
		{"id":"a2","plateNumber":"B1001XYZ","region":"Bandung","timestamp":1635855600000}]}`

	var list SightingList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "B1000XYZ", list.Data[0].PlateNumber)
	assert.Equal(t, Millis(1635855600000), list.Data[1].Timestamp)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-03-15")
	require.True(t, ok)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 15}, d)

	for _, bad := range []string{"", "2024-13-01", "15/03/2024", "yesterday", "2024-02-30"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestFilterSpecBounds(t *testing.T) {
	var f FilterSpec
	assert.True(t, f.IsEmpty())
	assert.False(t, f.HasStart())
	assert.Equal(t, "", FormatDate(f.EndDate))

	f.EndDate = civil.Date{Year: 2024, Month: 1, Day: 2}
	assert.True(t, f.HasEnd())
	assert.False(t, f.IsEmpty())
	assert.Equal(t, "2024-01-02", FormatDate(f.EndDate))
}

func TestPageControlActionable(t *testing.T) {
	assert.True(t, NumberControl(3, 3).Current)
	assert.True(t, NumberControl(3, 3).Actionable())
	assert.False(t, PageControl{Kind: ControlEllipsis, Label: LabelEllipsis}.Actionable())
}
