package background

import "math"

// Strategy names the duration-fitting approach chosen for a video.
type Strategy uint8

const (
	// StrategyTrim cuts a long enough clip down to the target.
	StrategyTrim Strategy = iota
	// StrategySlowDown time-remaps the whole clip so it plays exactly
	// once across the target duration.
	StrategySlowDown
	// StrategyLoopSlowed applies a mild 0.5x slow-down first, then loops
	// the slowed clip. Extreme uniform stretching of very short footage
	// stutters visibly; a mildly slowed loop reads better.
	StrategyLoopSlowed
)

func (s Strategy) String() string {
	switch s {
	case StrategyTrim:
		return "trim"
	case StrategySlowDown:
		return "slowdown"
	default:
		return "loop-slowed"
	}
}

// shortClipThreshold is the native duration below which extreme
// stretching switches to the loop-with-slowdown strategy.
const shortClipThreshold = 3.0

// extremeStretch is the speed factor below which a short clip would
// need more than a 10x stretch.
const extremeStretch = 0.1

// mildSlowdown is the speed applied to each loop iteration in the
// loop-with-slowdown strategy.
const mildSlowdown = 0.5

// Plan describes how a video of native duration d becomes exactly
// target seconds long.
type Plan struct {
	Strategy    Strategy
	SpeedFactor float64 // d/target; meaningful for StrategySlowDown
	Loops       int     // whole plays of the slowed clip; StrategyLoopSlowed only
}

// FitVideoPlan picks the fitting strategy for a clip of native duration
// d and target duration target.
func FitVideoPlan(d, target float64) Plan {
	if d >= target {
		return Plan{Strategy: StrategyTrim}
	}
	speedFactor := d / target
	if d < shortClipThreshold && speedFactor < extremeStretch {
		slowed := d / mildSlowdown
		return Plan{
			Strategy: StrategyLoopSlowed,
			Loops:    int(math.Ceil(target / slowed)),
		}
	}
	return Plan{Strategy: StrategySlowDown, SpeedFactor: speedFactor}
}

// LoopCount returns how many whole plays of a clip with native duration
// d cover the target. Used for audio looping and the plain-loop video
// fallback; never returns less than one play.
func LoopCount(d, target float64) int {
	if d <= 0 {
		return 1
	}
	n := int(math.Ceil(target / d))
	if n < 1 {
		n = 1
	}
	return n
}
