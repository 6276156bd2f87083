package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/armline/internal/capture"
	"gocv.io/x/gocv"
)

func TestDrawReferenceLine(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	drawReferenceLine(&frame, 0.7)

	lineY := int(0.7 * 480)
	on := frame.GetVecbAt(lineY, 320)
	if on[0] == 0 && on[1] == 0 && on[2] == 0 {
		t.Errorf("pixel at (%d, 320) still black, reference line not drawn", lineY)
	}

	off := frame.GetVecbAt(100, 320)
	if off[0] != 0 || off[1] != 0 || off[2] != 0 {
		t.Error("pixel far from the line should be untouched")
	}
}

func TestDrawReferenceLine_DisabledOutsideRange(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	drawReferenceLine(&frame, 0)
	drawReferenceLine(&frame, 1.5)

	for _, y := range []int{0, 240, 479} {
		px := frame.GetVecbAt(y, 320)
		if px[0] != 0 || px[1] != 0 || px[2] != 0 {
			t.Fatalf("pixel at row %d modified with overlay disabled", y)
		}
	}
}

func TestStreamHandler_ServesMJPEG(t *testing.T) {
	camera := capture.NewMockCamera(nil, true)
	if err := camera.Open(); err != nil {
		t.Fatalf("camera.Open() error = %v", err)
	}
	defer camera.Close()

	handler := NewStreamHandler(camera, 0.7)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	// Blocks until the request context expires.
	handler.ServeHTTP(rec, req)

	contentType := rec.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/x-mixed-replace") {
		t.Errorf("Content-Type = %q, want multipart/x-mixed-replace", contentType)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "--frame") {
		t.Error("stream body has no frame boundary")
	}
	if !strings.Contains(body, "image/jpeg") {
		t.Error("stream body has no JPEG part header")
	}
}

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	handler := NewStreamHandler(capture.NewMockCamera(nil, true), 0.7)

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
