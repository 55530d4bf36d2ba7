package session

// Camera is the first-person eye rig. It implements motion.CameraRig.
type Camera struct {
	pitch   float64
	offsetY float64
}

// SetPitch implements motion.CameraRig.
func (c *Camera) SetPitch(deg float64) { c.pitch = deg }

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float64 { return c.pitch }

// OffsetY implements motion.CameraRig.
func (c *Camera) OffsetY() float64 { return c.offsetY }

// SetOffsetY implements motion.CameraRig.
func (c *Camera) SetOffsetY(y float64) { c.offsetY = y }
