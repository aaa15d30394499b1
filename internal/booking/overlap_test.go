package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := reservation(1, datetime(2024, 1, 1, 19, 0), 60)

	tests := []struct {
		name  string
		other func() bool
		want  bool
	}{
		{"touching after", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 1, 20, 0), 60)) }, false},
		{"touching before", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 1, 18, 0), 60)) }, false},
		{"half hour shift", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 1, 19, 30), 60)) }, true},
		{"contained", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 1, 19, 15), 15)) }, true},
		{"containing", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 1, 18, 0), 180)) }, true},
		{"same interval", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 1, 19, 0), 60)) }, true},
		{"other court", func() bool { return Overlaps(base, reservation(2, datetime(2024, 1, 1, 19, 0), 60)) }, false},
		{"unscoped probe", func() bool { return Overlaps(base, reservation(0, datetime(2024, 1, 1, 19, 30), 30)) }, true},
		{"other day", func() bool { return Overlaps(base, reservation(1, datetime(2024, 1, 2, 19, 0), 60)) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.other())
		})
	}
}

func TestOverlaps_Symmetric(t *testing.T) {
	a := reservation(3, datetime(2024, 3, 5, 10, 0), 90)
	b := reservation(3, datetime(2024, 3, 5, 11, 0), 60)

	assert.True(t, Overlaps(a, b))
	assert.True(t, Overlaps(b, a))
	assert.False(t, Overlaps(a, nil))
}

func TestOverlaps_DifferentCourtsNeverOverlap(t *testing.T) {
	for court := int64(2); court < 6; court++ {
		a := reservation(1, datetime(2024, 1, 1, 8, 0), 900)
		b := reservation(court, datetime(2024, 1, 1, 8, 0), 900)
		assert.False(t, Overlaps(a, b))
	}
}
