package runner

import "github.com/vovakirdan/blockrun/internal/core"

// holdInput turns key presses into a held direction. Terminals report
// presses (with auto-repeat) but no releases, so a direction stays held
// until no press refreshes it for the hold timeout.
type holdInput struct {
	dir  int     // -1 left, 0 none, +1 right
	left float64 // Seconds until the held direction lapses
}

func (h *holdInput) update(in core.InputFrame, dt, timeout float64) {
	l, r := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case l && r:
		h.dir, h.left = 0, 0
	case l:
		h.dir, h.left = -1, timeout
	case r:
		h.dir, h.left = 1, timeout
	case h.dir != 0:
		h.left -= dt
		if h.left <= 0 {
			h.dir, h.left = 0, 0
		}
	}
}
