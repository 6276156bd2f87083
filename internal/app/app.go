// Package app provides the main application logic for the Armline arm
// assessment system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/armline/internal/assess"
	"github.com/ayusman/armline/internal/capture"
	"github.com/ayusman/armline/internal/detector"
	"github.com/ayusman/armline/internal/notify"
)

// Config holds configuration options for the application.
type Config struct {
	CameraID     int
	Assess       assess.Config
	TickInterval time.Duration
	Hook         *notify.Runner
}

// App orchestrates the camera, the keypoint estimators, and the assessment
// session. The detection pipeline runs continuously once started; the
// session itself only consumes frames while running.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	session  *assess.Session
	mu       sync.RWMutex
	stopCh   chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.TickInterval <= 0 {
		config.TickInterval = 100 * time.Millisecond
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		session: assess.NewSession(config.Assess),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose and hand estimation")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	a.session.OnComplete(func(st assess.Status) {
		log.Printf("Assessment completed with %ds remaining", st.SecondsLeft)
		if config.Hook != nil {
			if err := config.Hook.Notify(st); err != nil {
				log.Printf("Completion hook error: %v", err)
			}
		}
	})

	return a
}

// SetDetector sets the keypoint estimator implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the keypoint estimator.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Session returns the assessment session.
func (a *App) Session() *assess.Session {
	return a.session
}

// Start opens the camera and begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Abort any in-progress assessment so no stale timers survive.
	a.session.Reset()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}
