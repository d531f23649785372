package recording

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureReplayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.edf")

	const sensors = 2
	const rate = 50
	r, err := NewRecorder(path, sensors, rate, time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	require.NoError(t, err)

	// Three full seconds plus a partial second that should be dropped.
	var want [][2]int
	for i := 0; i < 3*rate+13; i++ {
		row := [2]int{1500 + i%1000, 4095 - i%1000}
		require.NoError(t, r.Add(row[:]))
		if i < 3*rate {
			want = append(want, row)
		}
	}
	require.NoError(t, r.Close())

	rp, err := OpenReplay(path)
	require.NoError(t, err)
	defer rp.Close()
	assert.Equal(t, sensors, rp.Sensors())

	var got [][2]int
	for {
		row, err := rp.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, [2]int{row[0], row[1]})
	}
	assert.Equal(t, want, got)
}

func TestRecorderRejectsWrongRowWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.edf")

	r, err := NewRecorder(path, 2, 50, time.Now())
	require.NoError(t, err)
	defer r.Close()

	assert.Error(t, r.Add([]int{2000}))
}

func TestOpenReplayMissingFile(t *testing.T) {
	_, err := OpenReplay(filepath.Join(t.TempDir(), "nope.edf"))
	assert.Error(t, err)
}
