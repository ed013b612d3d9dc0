package diag

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderWritesCallsAndResults(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	rec.Call("DescribeImages", map[string]string{"owners": "self"})
	rec.Result("DescribeImages", map[string]int{"count": 2}, nil)
	rec.Note("ranked-offers", []string{"c5.large"})

	require.NoError(t, rec.Close(true))

	content, err := os.ReadFile(rec.Path())
	require.NoError(t, err)
	require.Contains(t, string(content), "DescribeImages")
	require.Contains(t, string(content), "ranked-offers")
	require.Contains(t, string(content), "c5.large")
}

func TestRecorderRemovedOnSuccess(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	rec.Call("DescribeKeyPairs", nil)
	require.NoError(t, rec.Close(false))

	_, err = os.Stat(rec.Path())
	require.True(t, os.IsNotExist(err))
}

func TestRecorderKeptOnFailure(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	rec.Result("RequestSpotInstances", nil, os.ErrPermission)
	require.NoError(t, rec.Close(true))

	info, err := os.Stat(rec.Path())
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.Call("DescribeImages", nil)
	rec.Result("DescribeImages", nil, nil)
	rec.Note("stage", nil)
	require.Empty(t, rec.Path())
	require.NoError(t, rec.Close(false))
}
