package app

import (
	"log"
	"time"

	"github.com/ayusman/armline/internal/assess"
)

// runPipeline drives the detection loop at the configured tick interval.
// Each tick grabs a frame, runs pose and hand estimation, and feeds the
// result to the session. Detection runs synchronously on the loop: a slow
// detector drops ticker ticks rather than queueing stale frames.
func (a *App) runPipeline(stopCh chan struct{}) {
	ticker := time.NewTicker(a.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.processTick()
		}
	}
}

// processTick runs one detection cycle. Frames are discarded without
// detection while no assessment is running.
func (a *App) processTick() {
	if a.session.State() != assess.StateRunning {
		return
	}

	a.mu.RLock()
	camera := a.camera
	det := a.detector
	a.mu.RUnlock()

	frame, err := camera.ReadFrame()
	if err != nil {
		log.Printf("Frame capture error: %v", err)
		return
	}
	defer frame.Close()

	frameHeight := float64(frame.Rows())

	pose, hands, err := det.Detect(frame)
	if err != nil {
		// Skip the tick entirely; a stale result must never feed the
		// session as if it were current.
		log.Printf("Detection error: %v", err)
		return
	}

	a.session.OnFrame(pose, hands, frameHeight)
}
