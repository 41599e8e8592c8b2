package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBirthSubjectClock(t *testing.T) {
	tests := []struct {
		birthTime  string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{"08:30", 8, 30, false},
		{"0:0", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"-1:30", 0, 0, true},
		{"noon", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.birthTime, func(t *testing.T) {
			hour, minute, err := BirthSubject{BirthTime: tt.birthTime}.Clock()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestPlanetPoints(t *testing.T) {
	chart := &CanonicalBirthData{Sun: Point{Name: "Sun"}}

	points := chart.PlanetPoints()
	require.Len(t, points, 10)
	assert.Equal(t, "sun", points[0].Key)
	assert.Equal(t, "pluto", points[9].Key)

	chart.Chiron = &Point{Name: "Chiron"}
	points = chart.PlanetPoints()
	require.Len(t, points, 11)
	assert.Equal(t, "chiron", points[10].Key)
}
