package runner

// camera tracks the horizontal world position at the center of the view.
type camera struct {
	x float64
}

func (c *camera) snap(x float64) {
	c.x = x
}

// follow eases toward target at rate per second.
func (c *camera) follow(target, rate, dt float64) {
	step := rate * dt
	if step > 1 {
		step = 1
	}
	c.x += (target - c.x) * step
}
