// Package detector provides pose and hand keypoint estimation for the
// Armline arm assessment system.
package detector

// Pose keypoint indices following the COCO 17-point convention used by
// MoveNet-style pose estimators.
const (
	Nose             = 0
	LeftEye          = 1
	RightEye         = 2
	LeftEar          = 3
	RightEar         = 4
	LeftShoulder     = 5
	RightShoulder    = 6
	LeftElbow        = 7
	RightElbow       = 8
	LeftWristPose    = 9
	RightWristPose   = 10
	LeftHip          = 11
	RightHip         = 12
	LeftKnee         = 13
	RightKnee        = 14
	LeftAnkle        = 15
	RightAnkle       = 16
	NumPoseKeypoints = 17
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandLandmarks = 21
)

// Keypoint is a single estimated 2D landmark in pixel coordinates with a
// confidence score in [0,1].
type Keypoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score float64 `json:"score"`
}

// Pose represents one detected body pose. Keypoints the estimator did not
// report keep their zero value, which carries a zero confidence score.
type Pose struct {
	Keypoints [NumPoseKeypoints]Keypoint `json:"keypoints"`
	Score     float64                    `json:"score"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumHandLandmarks]Keypoint `json:"points"`
	Handedness string                     `json:"handedness"` // "Left" or "Right"
	Score      float64                    `json:"score"`
}

// WristPoint returns the wrist landmark of the hand.
func (h *HandLandmarks) WristPoint() Keypoint {
	return h.Points[Wrist]
}
