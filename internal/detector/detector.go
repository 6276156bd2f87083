package detector

import "gocv.io/x/gocv"

// Detector defines the interface for combined pose and hand estimation.
type Detector interface {
	// Detect analyzes a video frame and returns the first detected body
	// pose (nil if none) together with all detected hands. Additional
	// poses reported by the estimator are discarded.
	Detect(frame *gocv.Mat) (*Pose, []HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for keypoint estimation.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
