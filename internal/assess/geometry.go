package assess

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ayusman/armline/internal/detector"
)

// Side identifies which arm is being evaluated. The assessment always runs
// the right arm first, then the left.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// String returns the lowercase side name.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// MarshalJSON encodes the side as its string name.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a side from its string name.
func (s *Side) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("unknown side %q", name)
	}
	return nil
}

// TargetAngle returns the target arm angle in degrees for the side:
// 45° for the right arm, mirrored to 135° for the left.
func (s Side) TargetAngle() float64 {
	if s == SideLeft {
		return 135
	}
	return 45
}

// ShoulderOnLine reports whether the shoulder keypoint lies on the
// reference line at lineY. A shoulder scored at or below minConfidence is
// too unreliable to trust and never counts as on the line. The distance
// check is strict: exactly lineTolerance pixels away is off the line.
func ShoulderOnLine(shoulder detector.Keypoint, lineY, lineTolerance, minConfidence float64) bool {
	if shoulder.Score <= minConfidence {
		return false
	}
	return math.Abs(shoulder.Y-lineY) < lineTolerance
}

// ArmAngle returns the angle in degrees of the shoulder-to-wrist vector,
// measured so that 0° points horizontally away from the body and 90°
// points straight up. Results are normalized into [0, 360).
func ArmAngle(shoulder, wrist detector.Keypoint) float64 {
	angle := math.Atan2(shoulder.Y-wrist.Y, wrist.X-shoulder.X) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// AngleMatches reports whether angle is within tolerance of the side's
// target. The difference is taken raw, without wraparound at 0°/360°; with
// targets at 45° and 135° the wrap region is out of reach.
func AngleMatches(angle float64, side Side, tolerance float64) bool {
	return math.Abs(angle-side.TargetAngle()) <= tolerance
}
