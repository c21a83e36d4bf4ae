package editor

import (
	"testing"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
)

func TestChooseAxisLock(t *testing.T) {
	tests := []struct {
		name    string
		current Axis
		delta   geom.Point
		want    Axis
	}{
		{"fresh lock picks dominant x", AxisNone, geom.Pt(40, 12), AxisX},
		{"fresh lock picks dominant y", AxisNone, geom.Pt(3, 9), AxisY},
		{"fresh lock ties to x", AxisNone, geom.Pt(5, 5), AxisX},
		{"locked x holds against mild y", AxisX, geom.Pt(10, 15), AxisX},
		{"locked x holds at the margin", AxisX, geom.Pt(10, 20), AxisX},
		{"locked x switches when y dominates", AxisX, geom.Pt(5, 60), AxisY},
		{"locked y holds against mild x", AxisY, geom.Pt(15, 10), AxisY},
		{"locked y switches when x dominates", AxisY, geom.Pt(60, 5), AxisX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseAxisLock(tt.current, tt.delta); got != tt.want {
				t.Errorf("chooseAxisLock(%v, %v) = %v, want %v", tt.current, tt.delta, got, tt.want)
			}
		})
	}
}

func TestDragStateActive(t *testing.T) {
	if idleDrag.Active() {
		t.Error("idle drag reported active")
	}
	if (DragState{}).Active() {
		t.Error("zero drag reported active")
	}
	if !(DragState{Kind: DragMove}).Active() {
		t.Error("move drag reported idle")
	}
}
