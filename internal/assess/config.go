// Package assess implements the arm assessment core: per-frame gesture
// validation and the timed-hold state machine that drives a session from
// the right arm to the left arm to completion under a wall-clock budget.
package assess

// Config holds the tunable parameters of an assessment session.
// Every value here is configuration, not a constant.
type Config struct {
	// SessionBudget is the overall session time limit in seconds.
	SessionBudget int

	// HoldDuration is how many uninterrupted seconds each arm must be
	// held at the target before the side is complete.
	HoldDuration int

	// LineRatio places the horizontal reference line as a fraction of
	// the frame height.
	LineRatio float64

	// LineTolerance is how close (pixels) a shoulder must be to the
	// reference line to count as on it.
	LineTolerance float64

	// AngleTolerance is the allowed deviation (degrees) from the target
	// arm angle.
	AngleTolerance float64

	// MinShoulderConfidence is the minimum keypoint score below which a
	// shoulder detection is treated as absent.
	MinShoulderConfidence float64
}

// DefaultConfig returns a Config with the standard assessment parameters.
func DefaultConfig() Config {
	return Config{
		SessionBudget:         60,
		HoldDuration:          10,
		LineRatio:             0.7,
		LineTolerance:         20,
		AngleTolerance:        15,
		MinShoulderConfidence: 0.3,
	}
}
