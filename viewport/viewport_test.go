package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cazare-ro/site/geo"
)

var testBounds = geo.Bounds{SWLat: 45.1, SWLng: 25.2, NELat: 45.9, NELng: 25.8}

func TestDirtyNeedsSettledCamera(t *testing.T) {
	c := NewController(time.Millisecond)
	assert.False(t, c.Dirty())

	_, ok := c.CommitLive()
	assert.False(t, ok, "nothing to commit before the camera settles")
}

func TestPanMarksDirtyCommitClears(t *testing.T) {
	c := NewController(time.Millisecond)

	c.SetLive(testBounds)
	assert.True(t, c.Dirty())

	encoded, ok := c.CommitLive()
	require.True(t, ok)
	assert.Equal(t, testBounds.Encode(), encoded)
	assert.False(t, c.Dirty())

	// Camera at the committed area stays clean; a further pan dirties.
	c.SetLive(testBounds)
	assert.False(t, c.Dirty())

	moved := testBounds
	moved.NELat += 0.2
	c.SetLive(moved)
	assert.True(t, c.Dirty())
}

func TestRepeatedPansNeverCommit(t *testing.T) {
	c := NewController(time.Millisecond)

	b := testBounds
	for i := 0; i < 5; i++ {
		b.SWLat += 0.1
		c.SetLive(b)
	}

	assert.Empty(t, c.Committed())
	assert.True(t, c.Dirty())
}

func TestClearCommittedKeepsCamera(t *testing.T) {
	c := NewController(time.Millisecond)
	c.SetLive(testBounds)
	c.CommitLive()

	c.SetCommitted("")

	live, ok := c.Live()
	require.True(t, ok)
	assert.Equal(t, testBounds, live, "clearing the area filter must not move the camera")
	assert.True(t, c.Dirty())
}

func TestEaseTargetIsConsumedOnce(t *testing.T) {
	c := NewController(time.Millisecond)
	c.SetLive(testBounds)
	c.CommitLive()

	c.EaseTo(45.5, 25.5)

	lat, lng, ok := c.EaseTarget()
	require.True(t, ok)
	assert.Equal(t, 45.5, lat)
	assert.Equal(t, 25.5, lng)

	_, _, ok = c.EaseTarget()
	assert.False(t, ok)

	// The ease never touched the committed area.
	assert.Equal(t, testBounds.Encode(), c.Committed())
	assert.False(t, c.Dirty())
}

func TestPopupDelayedClose(t *testing.T) {
	c := NewController(20 * time.Millisecond)

	c.OpenPopup("l-001")
	c.RequestClose("l-001")

	assert.Equal(t, "l-001", c.OpenPopupID(), "popup stays open during the transit window")

	assert.Eventually(t, func() bool {
		return c.OpenPopupID() == ""
	}, time.Second, 2*time.Millisecond)
}

func TestPopupReopenCancelsClose(t *testing.T) {
	c := NewController(20 * time.Millisecond)

	c.OpenPopup("l-001")
	c.RequestClose("l-001")
	c.OpenPopup("l-001")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "l-001", c.OpenPopupID())
}

func TestPopupNewerOpenWins(t *testing.T) {
	c := NewController(20 * time.Millisecond)

	c.OpenPopup("l-001")
	c.RequestClose("l-001")
	c.OpenPopup("l-002")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "l-002", c.OpenPopupID())
}

func TestPopupStaleCloseIgnored(t *testing.T) {
	c := NewController(time.Millisecond)

	c.OpenPopup("l-002")
	c.RequestClose("l-001")

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "l-002", c.OpenPopupID())
}
