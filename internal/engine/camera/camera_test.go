package camera

import (
	gomath "math"
	"testing"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/model"
)

func TestOrbit_Position(t *testing.T) {
	c := NewOrbit()
	c.Target = [3]float32{0, 0, 0}
	c.Distance = 10
	c.Pitch = 0
	c.Yaw = 0

	pos := c.Position()
	if gomath.Abs(float64(pos[0])) > 1e-5 || gomath.Abs(float64(pos[1])) > 1e-5 || gomath.Abs(float64(pos[2]-10)) > 1e-5 {
		t.Errorf("Position = %v, want [0 0 10]", pos)
	}
}

func TestOrbit_DragClampsPitch(t *testing.T) {
	c := NewOrbit()
	c.Drag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %f, want clamped to %f", c.Pitch, c.MaxPitch)
	}
	c.Drag(0, -1e7)
	if c.Pitch != c.MinPitch {
		t.Errorf("Pitch = %f, want clamped to %f", c.Pitch, c.MinPitch)
	}
}

func TestOrbit_ZoomClampsDistance(t *testing.T) {
	c := NewOrbit()
	for i := 0; i < 1000; i++ {
		c.Zoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %f, want clamped to %f", c.Distance, c.MinDistance)
	}
	for i := 0; i < 1000; i++ {
		c.Zoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %f, want clamped to %f", c.Distance, c.MaxDistance)
	}
}

func TestOrbit_Frame(t *testing.T) {
	c := NewOrbit()
	c.Frame(model.Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}})

	if c.Target != [3]float32{0, 0, 0} {
		t.Errorf("Target = %v, want origin", c.Target)
	}
	if c.Distance <= 0 {
		t.Errorf("Distance = %f, want positive", c.Distance)
	}

	// A degenerate box still yields a usable distance.
	c.Frame(model.Bounds{})
	if c.Distance <= 0 {
		t.Errorf("Distance for empty bounds = %f, want positive", c.Distance)
	}
}
