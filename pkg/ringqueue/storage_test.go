package ringqueue

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ringqueue/errors"
)

func TestRelocate(t *testing.T) {
	tests := []struct {
		name        string
		src         []int
		front, back int
		keep        int
		newCapacity int
		want        []int
		wantBack    int
	}{
		{
			name: "linear run",
			src:  []int{0, 1, 2, 3, 0}, front: 1, back: 4,
			keep: 3, newCapacity: 6,
			want: []int{1, 2, 3, 0, 0, 0}, wantBack: 3,
		},
		{
			name: "wrapped run copies two segments",
			src:  []int{4, 5, 0, 1, 2, 3}, front: 2, back: 2,
			keep: 6, newCapacity: 12,
			want: []int{0, 1, 2, 3, 4, 5, 0, 0, 0, 0, 0, 0}, wantBack: 6,
		},
		{
			name: "wrapped run with gap",
			src:  []int{3, 0, 0, 1, 2}, front: 3, back: 1,
			keep: 3, newCapacity: 4,
			want: []int{1, 2, 3, 0}, wantBack: 3,
		},
		{
			name: "shrink inside tail segment",
			src:  []int{4, 5, 0, 1, 2, 3}, front: 2, back: 2,
			keep: 2, newCapacity: 2,
			want: []int{0, 1}, wantBack: 0,
		},
		{
			name: "shrink across the wrap",
			src:  []int{4, 5, 0, 1, 2, 3}, front: 2, back: 2,
			keep: 5, newCapacity: 5,
			want: []int{0, 1, 2, 3, 4}, wantBack: 0,
		},
		{
			name: "shrink linear run",
			src:  []int{1, 2, 3, 4}, front: 0, back: 0,
			keep: 2, newCapacity: 3,
			want: []int{1, 2, 0}, wantBack: 2,
		},
		{
			name: "empty",
			src:  []int{0, 0, 0}, front: 2, back: 2,
			keep: 0, newCapacity: 1,
			want: []int{0}, wantBack: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]int, tt.newCapacity)
			front, back := relocate(dst, tt.src, tt.front, tt.back, tt.keep)

			assert.Equal(t, 0, front)
			assert.Equal(t, tt.wantBack, back)
			assert.Equal(t, tt.want, dst)
		})
	}
}

func TestRelocate_ZeroCapacityDestination(t *testing.T) {
	front, back := relocate([]int{}, nil, 0, 0, 0)
	assert.Equal(t, 0, front)
	assert.Equal(t, 0, back)
}

func TestNextCapacity(t *testing.T) {
	tests := []struct {
		name    string
		current int
		factor  float64
		limit   int
		want    int
		wantOK  bool
	}{
		{"doubles", 4, 2.0, 100, 8, true},
		{"at least one more slot", 1, 1.1, 100, 2, true},
		{"from zero", 0, 2.0, 100, 1, true},
		{"rounds up", 3, 1.5, 100, 5, true},
		{"clamped to limit", 60, 2.0, 100, 100, true},
		{"at limit", 100, 2.0, 100, 0, false},
		{"near MaxInt", math.MaxInt/2 + 1, 2.0, math.MaxInt, math.MaxInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextCapacity(tt.current, tt.factor, tt.limit)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotLimit(t *testing.T) {
	assert.Equal(t, int(maxBufferBytes/8), slotLimit[int64](0))
	assert.Equal(t, 10, slotLimit[int64](10))
	assert.Equal(t, math.MaxInt, slotLimit[struct{}](0))
	assert.Equal(t, int(maxBufferBytes/8), slotLimit[int64](math.MaxInt), "bound cannot raise the platform limit")
}

func TestAllocate(t *testing.T) {
	buf, err := allocate[string](3, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", ""}, buf)

	for _, capacity := range []int{-1, 11} {
		_, err := allocate[string](capacity, 10)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrAllocation))
		assert.True(t, errors.IsFatal(err))
		assert.Contains(t, err.Error(), "RingQueue.allocate")
	}
}
