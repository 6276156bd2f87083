package detector

import (
	"math"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	pose  *Pose
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPose sets the pose that will be returned by Detect.
func (m *MockDetector) SetPose(pose *Pose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose = pose
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetFrame sets both the pose and the hands returned by Detect.
func (m *MockDetector) SetFrame(pose *Pose, hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose = pose
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured pose and hands, or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Pose, []HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.pose, m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture geometry shared by the preset frames below.
const (
	fixtureLineRatio     = 0.7
	fixtureReach         = 120.0
	fixtureLeftShoulder  = 380.0
	fixtureRightShoulder = 260.0
)

// ArmFrame returns a pose and a single hand representing a subject with the
// given arm raised at angleDeg (degrees, counterclockwise from horizontal,
// away from the body). Both shoulders sit exactly on the reference line at
// 70% of frameHeight with high confidence, so a frame built with the target
// angle qualifies under the default configuration.
func ArmFrame(handedness string, angleDeg, frameHeight float64) (*Pose, []HandLandmarks) {
	pose := &Pose{Score: 0.9}
	lineY := fixtureLineRatio * frameHeight

	pose.Keypoints[LeftShoulder] = Keypoint{X: fixtureLeftShoulder, Y: lineY, Score: 0.9}
	pose.Keypoints[RightShoulder] = Keypoint{X: fixtureRightShoulder, Y: lineY, Score: 0.9}

	shoulder := pose.Keypoints[RightShoulder]
	if handedness == "Left" || handedness == "left" {
		shoulder = pose.Keypoints[LeftShoulder]
	}

	rad := angleDeg * math.Pi / 180
	wristX := shoulder.X + fixtureReach*math.Cos(rad)
	wristY := shoulder.Y - fixtureReach*math.Sin(rad)

	hand := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}
	hand.Points[Wrist] = Keypoint{X: wristX, Y: wristY, Score: 0.95}

	// Fill remaining landmarks with a plausible open hand past the wrist.
	for i := 1; i < NumHandLandmarks; i++ {
		hand.Points[i] = Keypoint{
			X:     wristX + float64(i)*2*math.Cos(rad),
			Y:     wristY - float64(i)*2*math.Sin(rad),
			Score: 0.9,
		}
	}

	return pose, []HandLandmarks{hand}
}

// DroppedArmFrame returns a pose with both shoulders on the reference line
// but no detected hands, so neither side qualifies.
func DroppedArmFrame(frameHeight float64) (*Pose, []HandLandmarks) {
	pose := &Pose{Score: 0.9}
	lineY := fixtureLineRatio * frameHeight

	pose.Keypoints[LeftShoulder] = Keypoint{X: fixtureLeftShoulder, Y: lineY, Score: 0.9}
	pose.Keypoints[RightShoulder] = Keypoint{X: fixtureRightShoulder, Y: lineY, Score: 0.9}

	return pose, nil
}
