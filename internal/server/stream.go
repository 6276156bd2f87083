package server

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"github.com/ayusman/armline/internal/capture"
	"gocv.io/x/gocv"
)

// referenceLineColor is the green used to paint the shoulder reference line
// onto streamed frames.
var referenceLineColor = color.RGBA{R: 0, G: 200, B: 83, A: 0}

// StreamHandler serves MJPEG frames from the camera with the shoulder
// reference line drawn in, so the operator sees the same criterion the
// assessment applies.
type StreamHandler struct {
	camera    capture.Camera
	lineRatio float64
}

// NewStreamHandler creates a new StreamHandler. lineRatio places the
// reference line as a fraction of the frame height; a value outside (0, 1)
// disables the overlay.
func NewStreamHandler(camera capture.Camera, lineRatio float64) *StreamHandler {
	return &StreamHandler{camera: camera, lineRatio: lineRatio}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		drawReferenceLine(frame, h.lineRatio)

		// Encode as JPEG
		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}

// drawReferenceLine paints the horizontal shoulder line at
// ratio × frame height across the full frame width.
func drawReferenceLine(frame *gocv.Mat, ratio float64) {
	if ratio <= 0 || ratio >= 1 {
		return
	}

	y := int(ratio * float64(frame.Rows()))
	gocv.Line(frame, image.Pt(0, y), image.Pt(frame.Cols(), y), referenceLineColor, 2)
}
