package assess

import (
	"strings"

	"github.com/ayusman/armline/internal/detector"
)

// SideStatus is the per-frame evaluation of one arm. It is rebuilt from
// scratch every frame; a side with no hand this frame is fully false, never
// a carried-over value from an earlier frame.
type SideStatus struct {
	Detected       bool `json:"detected"`
	CorrectAngle   bool `json:"correct_angle"`
	ShoulderOnLine bool `json:"shoulder_on_line"`
}

// Qualified reports whether the side passes all three checks this frame.
func (s SideStatus) Qualified() bool {
	return s.Detected && s.CorrectAngle && s.ShoulderOnLine
}

// Classify evaluates one frame's detections into a SideStatus per arm.
// Hands are partitioned by handedness label, case-insensitively; if the
// estimator reports several hands with the same handedness the first one
// wins. frameHeight is the pixel height of the frame the keypoints were
// detected in, used to place the reference line.
func Classify(pose *detector.Pose, hands []detector.HandLandmarks, frameHeight float64, cfg Config) (right, left SideStatus) {
	lineY := cfg.LineRatio * frameHeight

	var rightHand, leftHand *detector.HandLandmarks
	for i := range hands {
		switch strings.ToLower(hands[i].Handedness) {
		case "right":
			if rightHand == nil {
				rightHand = &hands[i]
			}
		case "left":
			if leftHand == nil {
				leftHand = &hands[i]
			}
		}
	}

	right = classifySide(SideRight, pose, rightHand, lineY, cfg)
	left = classifySide(SideLeft, pose, leftHand, lineY, cfg)
	return right, left
}

func classifySide(side Side, pose *detector.Pose, hand *detector.HandLandmarks, lineY float64, cfg Config) SideStatus {
	var status SideStatus
	if hand == nil {
		return status
	}
	status.Detected = true

	// Without a pose there is no shoulder to measure against; do not
	// fabricate a position.
	if pose == nil {
		return status
	}

	shoulderIdx := detector.RightShoulder
	if side == SideLeft {
		shoulderIdx = detector.LeftShoulder
	}
	shoulder := pose.Keypoints[shoulderIdx]

	status.ShoulderOnLine = ShoulderOnLine(shoulder, lineY, cfg.LineTolerance, cfg.MinShoulderConfidence)

	angle := ArmAngle(shoulder, hand.WristPoint())
	status.CorrectAngle = AngleMatches(angle, side, cfg.AngleTolerance)

	return status
}
