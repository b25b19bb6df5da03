package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dondoffy/contract-copilot-canvas/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{fmt.Errorf("conversation x: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("document x section 9: %w", service.ErrSectionNotFound), http.StatusNotFound},
		{service.ErrEmptyMessage, http.StatusBadRequest},
		{service.ErrInvalidVersion, http.StatusBadRequest},
		{fmt.Errorf("scan.png: %w", service.ErrUnsupportedFileType), http.StatusBadRequest},
		{service.ErrNoFiles, http.StatusBadRequest},
		{service.ErrTooManyPending, http.StatusTooManyRequests},
		{service.ErrNotStored, http.StatusConflict},
		{errors.New("minio unreachable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.expected {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.expected)
		}
	}
}
