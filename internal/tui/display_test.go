//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
)

// sliceTape replays a fixed list of updates.
type sliceTape struct {
	updates []*progrock.StatusUpdate
}

func (s *sliceTape) Read() (*progrock.StatusUpdate, error) {
	if len(s.updates) == 0 {
		return nil, io.EOF
	}
	u := s.updates[0]
	s.updates = s.updates[1:]
	return u, nil
}

func TestDisplay_RunsUntilClosed(t *testing.T) {
	d := NewDisplay(&bytes.Buffer{}, tea.WithoutRenderer())
	d.Start()

	require.NoError(t, d.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{{Id: "a", Name: "profile root", Started: started()}},
	}))

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	// Updates after close are dropped.
	require.NoError(t, d.WriteStatus(&progrock.StatusUpdate{}))
}

func TestDisplay_CloseWithoutStart(t *testing.T) {
	d := NewDisplay(&bytes.Buffer{}, tea.WithoutRenderer())
	require.NoError(t, d.WriteStatus(&progrock.StatusUpdate{}))
	require.NoError(t, d.Close())

	// The pending update is still readable before EOF.
	u, err := d.Read()
	require.NoError(t, err)
	assert.NotNil(t, u)

	_, err = d.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDisplay_RecorderIntegration(t *testing.T) {
	d := NewDisplay(&bytes.Buffer{}, tea.WithoutRenderer())
	d.Start()

	rec := progrock.NewRecorder(d)
	v := rec.Vertex("v1", "profile root")
	v.Done(nil)

	require.NoError(t, d.Close())
}
