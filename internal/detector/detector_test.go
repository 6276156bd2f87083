package detector

import (
	"errors"
	"math"
	"testing"
)

func TestMockDetector(t *testing.T) {
	t.Run("returns nothing by default", func(t *testing.T) {
		mock := NewMockDetector()

		pose, hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if pose != nil {
			t.Errorf("expected nil pose, got %v", pose)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured frame", func(t *testing.T) {
		mock := NewMockDetector()

		pose, hands := ArmFrame("Right", 45, 480)
		mock.SetFrame(pose, hands)

		gotPose, gotHands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if gotPose == nil {
			t.Fatal("expected pose, got nil")
		}
		if len(gotHands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(gotHands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		pose, hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if pose != nil || hands != nil {
			t.Error("expected nil results when error is set")
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestArmFrame(t *testing.T) {
	t.Run("shoulders sit on the reference line", func(t *testing.T) {
		pose, _ := ArmFrame("Right", 45, 480)

		wantY := 0.7 * 480
		if pose.Keypoints[RightShoulder].Y != wantY {
			t.Errorf("right shoulder Y = %f, want %f", pose.Keypoints[RightShoulder].Y, wantY)
		}
		if pose.Keypoints[LeftShoulder].Y != wantY {
			t.Errorf("left shoulder Y = %f, want %f", pose.Keypoints[LeftShoulder].Y, wantY)
		}
		if pose.Keypoints[RightShoulder].Score <= 0.3 {
			t.Errorf("shoulder score = %f, want > 0.3", pose.Keypoints[RightShoulder].Score)
		}
	})

	t.Run("wrist sits at the requested angle", func(t *testing.T) {
		pose, hands := ArmFrame("Right", 45, 480)

		shoulder := pose.Keypoints[RightShoulder]
		wrist := hands[0].WristPoint()

		angle := math.Atan2(shoulder.Y-wrist.Y, wrist.X-shoulder.X) * 180 / math.Pi
		if math.Abs(angle-45) > 1e-9 {
			t.Errorf("wrist angle = %f, want 45", angle)
		}
	})

	t.Run("left arm uses the left shoulder", func(t *testing.T) {
		pose, hands := ArmFrame("Left", 135, 480)

		shoulder := pose.Keypoints[LeftShoulder]
		wrist := hands[0].WristPoint()

		angle := math.Atan2(shoulder.Y-wrist.Y, wrist.X-shoulder.X) * 180 / math.Pi
		if angle < 0 {
			angle += 360
		}
		if math.Abs(angle-135) > 1e-9 {
			t.Errorf("wrist angle = %f, want 135", angle)
		}
		if hands[0].Handedness != "Left" {
			t.Errorf("handedness = %q, want Left", hands[0].Handedness)
		}
	})

	t.Run("dropped frame has no hands", func(t *testing.T) {
		pose, hands := DroppedArmFrame(480)

		if pose == nil {
			t.Fatal("expected pose")
		}
		if len(hands) != 0 {
			t.Errorf("expected no hands, got %d", len(hands))
		}
	})
}
