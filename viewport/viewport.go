package viewport

import (
	"sync"
	"time"

	"github.com/cazare-ro/site/geo"
)

// Controller tracks the live map camera against the last committed
// search area. Panning and zooming only ever move the live bounds; the
// committed area changes exclusively through an explicit commit, which
// is what keeps "search this area" an affordance instead of a firehose.
type Controller struct {
	mu         sync.Mutex
	live       *geo.Bounds
	committed  string
	easeTarget *[2]float64 // lat, lng; visual only

	openPopup  string
	closeTimer *time.Timer
	closeDelay time.Duration
}

// NewController creates a controller whose popup close is delayed by
// closeDelay to tolerate pointer transit between marker and popup.
func NewController(closeDelay time.Duration) *Controller {
	return &Controller{closeDelay: closeDelay}
}

// SetLive records the camera position after it settles. Never touches
// the committed area.
func (c *Controller) SetLive(b geo.Bounds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	live := b
	c.live = &live
}

// Live returns the last settled camera bounds.
func (c *Controller) Live() (geo.Bounds, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live == nil {
		return geo.Bounds{}, false
	}
	return *c.live, true
}

// SetCommitted mirrors the committed area from filter state, e.g. after
// a URL decode or a cleared area filter. Clearing never moves the camera.
func (c *Controller) SetCommitted(encoded string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed = encoded
}

// Committed returns the encoded committed search area, "" for none.
func (c *Controller) Committed() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// Dirty reports whether the settled camera differs from the committed
// search area, i.e. whether "search this area" should show.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live == nil {
		return false
	}
	return c.live.Encode() != c.committed
}

// CommitLive promotes the live bounds to the committed area and returns
// the encoding. Returns false when the camera never settled anywhere.
func (c *Controller) CommitLive() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live == nil {
		return "", false
	}
	c.committed = c.live.Encode()
	return c.committed, true
}

// EaseTo records a camera ease target toward a hovered listing. Purely
// visual: committed bounds and live bounds are untouched.
func (c *Controller) EaseTo(lat, lng float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.easeTarget = &[2]float64{lat, lng}
}

// EaseTarget returns and clears the pending ease target.
func (c *Controller) EaseTarget() (lat, lng float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.easeTarget == nil {
		return 0, 0, false
	}
	lat, lng = c.easeTarget[0], c.easeTarget[1]
	c.easeTarget = nil
	return lat, lng, true
}

// OpenPopup opens the popup for a marker. At most one popup is open at a
// time, and opening cancels any pending delayed close.
func (c *Controller) OpenPopup(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
	c.openPopup = id
}

// RequestClose schedules the popup to close after the transit delay.
// A newer open in the meantime wins.
func (c *Controller) RequestClose(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openPopup != id {
		return
	}
	if c.closeTimer != nil {
		c.closeTimer.Stop()
	}
	c.closeTimer = time.AfterFunc(c.closeDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.openPopup == id {
			c.openPopup = ""
		}
		c.closeTimer = nil
	})
}

// OpenPopupID returns the marker whose popup is open, "" for none.
func (c *Controller) OpenPopupID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openPopup
}
