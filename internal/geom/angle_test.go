package geom

import "testing"

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{270, -90},
		{-270, 90},
		{540, 180},
		{725, 5},
		{-190, 170},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSnapPeriodicAngle(t *testing.T) {
	tests := []struct {
		angle, period, want float64
	}{
		{190, 90, -10},
		{44, 90, -44},
		{46, 90, 44},
		{7.5, 15, 7.5},
		{-7.5, 15, 7.5},
		{-20, 15, 5},
		{30, 15, 0},
	}
	for _, tt := range tests {
		if got := SnapPeriodicAngle(tt.angle, tt.period); !almostEqual(got, tt.want) {
			t.Errorf("SnapPeriodicAngle(%v, %v) = %v, want %v", tt.angle, tt.period, got, tt.want)
		}
	}
}

func TestSnapAngle(t *testing.T) {
	tests := []struct {
		name                   string
		source, target, repeat float64
		want                   float64
	}{
		{"exact", 45, 45, 90, 0},
		{"next repeat", 100, 10, 45, 0},
		{"wraps through 180", 175, -170, 90, 15},
		{"above", 50, 10, 45, 5},
		{"below", 58, 10, 45, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapAngle(tt.source, tt.target, tt.repeat); !almostEqual(got, tt.want) {
				t.Errorf("SnapAngle(%v, %v, %v) = %v, want %v", tt.source, tt.target, tt.repeat, got, tt.want)
			}
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	for in, want := range map[float64]float64{0.5: 1, -0.5: 0, 1.49: 1, -1.5: -1, 2.5: 3} {
		if got := RoundHalfUp(in); got != want {
			t.Errorf("RoundHalfUp(%v) = %v, want %v", in, got, want)
		}
	}
}
