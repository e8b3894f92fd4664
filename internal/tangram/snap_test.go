package tangram

import (
	"testing"

	"github.com/irfansharif/tangram/internal/geom"
)

func TestSnapTan(t *testing.T) {
	tests := []struct {
		name       string
		offsets    []geom.Point // lower-left corners; the tan under test is index 1
		moveTo     geom.Point   // lower-left corner the tan is moved to before snapping
		wantOK     bool
		wantCorner geom.Point // lower-left corner after the call
	}{
		{
			name:       "corner onto corner",
			offsets:    []geom.Point{{}, {X: 5}},
			moveTo:     geom.MakePoint(1.01, 0.005),
			wantOK:     true,
			wantCorner: geom.MakePoint(1, 0),
		},
		{
			name:       "corner onto midpoint",
			offsets:    []geom.Point{{}, {X: 5}},
			moveTo:     geom.MakePoint(1.008, 0.51),
			wantOK:     true,
			wantCorner: geom.MakePoint(1, 0.5),
		},
		{
			name:       "corner onto edge",
			offsets:    []geom.Point{{}, {X: 5}},
			moveTo:     geom.MakePoint(1.005, 0.3),
			wantOK:     true,
			wantCorner: geom.MakePoint(1, 0.3),
		},
		{
			name:       "nothing in range",
			offsets:    []geom.Point{{}, {X: 5}},
			moveTo:     geom.MakePoint(1.5, 0.3),
			wantOK:     false,
			wantCorner: geom.MakePoint(1.5, 0.3),
		},
		{
			// Snapping onto the first square would push the tan 0.005 into
			// the third one, so the snap is undone.
			name:       "rolled back on collision",
			offsets:    []geom.Point{{}, {X: 5}, {X: 1.995}},
			moveTo:     geom.MakePoint(1.01, 0),
			wantOK:     false,
			wantCorner: geom.MakePoint(1.01, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTangram(t, squaresDissection(t, tt.offsets...))
			tan := tg.Tan(1)
			tan.Transform(centerOf(tt.moveTo.X, tt.moveTo.Y), 0)

			if got := tg.SnapTan(tan, DefaultSnap); got != tt.wantOK {
				t.Errorf("SnapTan() = %v, want %v", got, tt.wantOK)
			}
			if want := centerOf(tt.wantCorner.X, tt.wantCorner.Y); !almostEqualPoints(tan.Position(), want) {
				t.Errorf("position = %v, want %v", tan.Position(), want)
			}
			if tan.Rotation() != 0 {
				t.Errorf("rotation = %v, want 0", tan.Rotation())
			}
		})
	}
}

func TestSnapPhasesInIsolation(t *testing.T) {
	tg := newTangram(t, squaresDissection(t, geom.Point{}, geom.MakePoint(5, 0)))
	tan := tg.Tan(1)

	// Corner (1.005, 0.3) is near the edge x=1 but far from every corner
	// and midpoint.
	tan.Transform(centerOf(1.005, 0.3), 0)
	if tg.SnapTanPoint(tan, DefaultSnap.PointDistance) {
		t.Error("SnapTanPoint = true, want false")
	}
	if tg.SnapTanMid(tan, DefaultSnap.MidDistance) {
		t.Error("SnapTanMid = true, want false")
	}
	if !tg.SnapTanEdge(tan, DefaultSnap.EdgeDistance, DefaultSnap.Eps) {
		t.Error("SnapTanEdge = false, want true")
	}

	// An edge of the tan slides onto a corner of the other square: tan's
	// left edge runs from y=-0.5 to y=0.5 around corner (1, 0).
	tan.Transform(centerOf(1.004, -0.5), 0)
	if !tg.SnapTanEdge(tan, DefaultSnap.EdgeDistance, DefaultSnap.Eps) {
		t.Fatal("SnapTanEdge = false, want true")
	}
	if want := centerOf(1, -0.5); !almostEqualPoints(tan.Position(), want) {
		t.Errorf("position = %v, want %v", tan.Position(), want)
	}

	// Inactive neighbours do not attract.
	tg.Tan(0).Active = false
	tan.Transform(centerOf(1.01, 0.005), 0)
	if tg.SnapTan(tan, DefaultSnap) {
		t.Error("SnapTan onto inactive tan = true, want false")
	}
}

func TestIsShapeFull(t *testing.T) {
	t.Run("classic tangram as cut", func(t *testing.T) {
		tg := newTangram(t, classicDissection(t))
		if !tg.IsShapeFull(TouchEps) {
			t.Error("IsShapeFull = false, want true")
		}
	})

	t.Run("one inactive tan", func(t *testing.T) {
		tg := newTangram(t, classicDissection(t))
		tg.Tan(4).Active = false
		if tg.IsShapeFull(TouchEps) {
			t.Error("IsShapeFull = true, want false")
		}
	})

	t.Run("chained squares", func(t *testing.T) {
		tg := newTangram(t, squaresDissection(t, geom.Point{}, geom.MakePoint(1, 0), geom.MakePoint(1, 1)))
		if !tg.IsShapeFull(TouchEps) {
			t.Error("IsShapeFull = false, want true")
		}
	})

	t.Run("two clusters", func(t *testing.T) {
		tg := newTangram(t, squaresDissection(t,
			geom.Point{}, geom.MakePoint(1, 0), geom.MakePoint(5, 0), geom.MakePoint(6, 0)))
		if tg.IsShapeFull(TouchEps) {
			t.Error("IsShapeFull = true, want false")
		}
	})

	t.Run("corner touching an edge", func(t *testing.T) {
		tg := newTangram(t, squaresDissection(t, geom.Point{}, geom.MakePoint(1, 0.5)))
		if !tg.IsShapeFull(TouchEps) {
			t.Error("IsShapeFull = false, want true")
		}
	})

	t.Run("empty", func(t *testing.T) {
		tg := newTangram(t, &Dissection{})
		if tg.IsShapeFull(TouchEps) {
			t.Error("IsShapeFull = true, want false")
		}
	})
}

func TestComputeAABBAndCenter(t *testing.T) {
	tg := newTangram(t, classicDissection(t))
	b := tg.ComputeAABB()
	if !almostEqualPoints(b.Min, geom.MakePoint(0, 0)) || !almostEqualPoints(b.Max, geom.MakePoint(1, 1)) {
		t.Errorf("AABB = %+v, want [(0,0), (1,1)]", b)
	}

	tg.Center()
	b = tg.ComputeAABB()
	if !almostEqualPoints(b.Min, geom.MakePoint(-0.5, -0.5)) || !almostEqualPoints(b.Max, geom.MakePoint(0.5, 0.5)) {
		t.Errorf("centered AABB = %+v, want [(-0.5,-0.5), (0.5,0.5)]", b)
	}
	if !tg.IsShapeFull(TouchEps) {
		t.Error("centering should not break the shape")
	}
}

func TestStageTan(t *testing.T) {
	tg := newTangram(t, classicDissection(t))
	tan := tg.Tan(2)
	tan.Transform(geom.MakePoint(3, 3), 45)

	tg.StageTan(tan, geom.MakePoint(-0.5, -0.5))
	if tan.Active {
		t.Error("staged tan should be inactive")
	}
	want := tan.Origin().Scale(StagingScale).Add(geom.MakePoint(-0.5, -0.5))
	if !almostEqualPoints(tan.Position(), want) || tan.Rotation() != 0 {
		t.Errorf("pose = (%v, %v), want (%v, 0)", tan.Position(), tan.Rotation(), want)
	}
}

func TestPicking(t *testing.T) {
	tg := newTangram(t, classicDissection(t))

	if tan := tg.PickTanFace(geom.MakePoint(0.1, 0.5), nil); tan == nil || tan.Index() != 0 {
		t.Errorf("PickTanFace = %v, want tan 0", tan)
	}
	if tan := tg.PickTanFace(geom.MakePoint(2, 2), nil); tan != nil {
		t.Errorf("PickTanFace outside = tan %d, want nil", tan.Index())
	}

	// Corner (1, 1) is shared by tans 1 and 3; the first one wins ties.
	near := geom.MakePoint(0.99, 0.99)
	if tan := tg.PickTanCorner(near, nil); tan == nil || tan.Index() != 1 {
		t.Errorf("PickTanCorner = %v, want tan 1", tan)
	}
	notOne := func(tan *Tan) bool { return tan.Index() != 1 }
	if tan := tg.PickTanCorner(near, notOne); tan == nil || tan.Index() != 3 {
		t.Errorf("PickTanCorner excluding tan 1 = %v, want tan 3", tan)
	}
	if tan := tg.PickTanCorner(geom.MakePoint(0.5, 0.9), nil); tan != nil {
		t.Errorf("PickTanCorner away from corners = tan %d, want nil", tan.Index())
	}
}
