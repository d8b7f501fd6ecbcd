package music

import "testing"

func TestPlanFit(t *testing.T) {
	tests := []struct {
		name           string
		native, target float64
		wantTrim       bool
		wantLoops      int
	}{
		{"longer than target trims", 30, 20, true, 1},
		{"exact length trims", 20, 20, true, 1},
		{"short track loops whole copies", 8, 20, false, 3},
		{"loop count rounds up", 7.5, 20, false, 3},
		{"very short track loops many times", 0.5, 20, false, 40},
		{"barely short still loops twice", 19.9, 20, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanFit(tt.native, tt.target)
			if got.Trim != tt.wantTrim {
				t.Fatalf("PlanFit(%v, %v).Trim = %v; want %v", tt.native, tt.target, got.Trim, tt.wantTrim)
			}
			if got.Loops != tt.wantLoops {
				t.Fatalf("PlanFit(%v, %v).Loops = %d; want %d", tt.native, tt.target, got.Loops, tt.wantLoops)
			}
		})
	}
}

func TestPlanFitLoopsCoverTarget(t *testing.T) {
	cases := []struct{ native, target float64 }{
		{2, 40}, {1.5, 20}, {0.9, 19.9}, {2.9, 300},
	}
	for _, c := range cases {
		plan := PlanFit(c.native, c.target)
		if covered := c.native * float64(plan.Loops); covered < c.target {
			t.Fatalf("PlanFit(%v, %v) covers %.2fs; want at least %.2fs",
				c.native, c.target, covered, c.target)
		}
	}
}
