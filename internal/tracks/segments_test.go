package tracks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSegments_CountPerTrack(t *testing.T) {
	for length := 2; length <= 6; length++ {
		coords := make([][3]float64, length)
		for i := range coords {
			coords[i] = [3]float64{float64(i), float64(2 * i), float64(i + 1)}
		}
		set := CreateSegments([]Track{mkTrack(coords...)})
		assert.Equal(t, length-1, set.Len(), "track of length %d", length)
		assert.Empty(t, set.Singletons)
	}
}

func TestCreateSegments_OrderAndEndpoints(t *testing.T) {
	tr := mkTrack([3]float64{0, 0, 1}, [3]float64{1, 2, 2}, [3]float64{3, 4, 4})
	set := CreateSegments([]Track{tr})

	require.Len(t, set.Segments, 2)
	assert.Equal(t, Segment{
		XLocs:     [2]float64{0, 1},
		YLocs:     [2]float64{0, 2},
		FrameNums: [2]int{1, 2},
	}, set.Segments[0])
	assert.Equal(t, Segment{
		XLocs:     [2]float64{1, 3},
		YLocs:     [2]float64{2, 4},
		FrameNums: [2]int{2, 4},
	}, set.Segments[1])
}

func TestCreateSegments_DegenerateTracks(t *testing.T) {
	set := CreateSegments([]Track{
		mkTrack([3]float64{5, 6, 7}),
		{},
		mkTrack([3]float64{0, 0, 1}, [3]float64{1, 1, 2}),
	})

	assert.Equal(t, 1, set.Len())
	require.Len(t, set.Singletons, 1)
	assert.Equal(t, 7, set.Singletons[0].FrameNum)
}

func TestCreateSegments_Empty(t *testing.T) {
	set := CreateSegments(nil)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Singletons)
}

func TestFalarmPoints(t *testing.T) {
	pts := FalarmPoints([]Track{mkFalarm(1, 2, 3), {}, mkFalarm(4, 5, 6)})
	require.Len(t, pts, 2)
	assert.Equal(t, 6, pts[1].FrameNum)
}
