package nes

import "testing"

// TestControllerShiftSequence walks the strobe-then-shift protocol: after
// strobe goes high then low, reads return the buttons one bit per read in
// A..Right order, and reads past the 8th bit return 1.
func TestControllerShiftSequence(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonB, false)
	c.SetButton(ButtonSelect, true)
	c.SetButton(ButtonStart, false)
	c.SetButton(ButtonUp, false)
	c.SetButton(ButtonDown, false)
	c.SetButton(ButtonLeft, false)
	c.SetButton(ButtonRight, true)

	c.Write(1)
	c.Write(0)

	want := []byte{1, 0, 1, 0, 0, 0, 0, 1, 1, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Fatalf("read %d: got=%d, want=%d", i, got, w)
		}
	}
}

// TestControllerStrobeHoldsA checks that holding strobe high makes every
// read re-latch and return button A.
func TestControllerStrobeHoldsA(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonA, true)
	c.Write(1)
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != 1 {
			t.Fatalf("read %d while strobed: got=%d, want=1", i, got)
		}
	}
}
