package pdfinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/mockshot/internal/pdfinfo/pdftest"
)

func TestInspect_RejectsNonPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "html", data: []byte("<!doctype html>")},
		{name: "png header", data: []byte("\x89PNG\r\n\x1a\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Inspect(tt.data)
			assert.ErrorIs(t, err, ErrNotPDF)
		})
	}
}

func TestInspect_CountsPagesAndSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		wantPages  int
		wantWidth  float64
		wantHeight float64
	}{
		{name: "single A4", data: pdftest.A4(1), wantPages: 1, wantWidth: 8.27, wantHeight: 11.69},
		{name: "three A4", data: pdftest.A4(3), wantPages: 3, wantWidth: 8.27, wantHeight: 11.69},
		{name: "letter", data: pdftest.Document(2, 612, 792), wantPages: 2, wantWidth: 8.5, wantHeight: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info, err := Inspect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPages, info.Pages)
			assert.InDelta(t, tt.wantWidth, info.Width, 0.01)
			assert.InDelta(t, tt.wantHeight, info.Height, 0.01)
		})
	}
}

func TestInspect_TruncatedPDF(t *testing.T) {
	t.Parallel()

	_, err := Inspect([]byte("%PDF-1.4\n% truncated"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadPDF)
}

func TestInfo_CheckPageSize(t *testing.T) {
	t.Parallel()

	a4 := &Info{Pages: 1, Width: 8.27, Height: 11.69}

	assert.NoError(t, a4.CheckPageSize(8.27, 11.69, 0.05))
	assert.NoError(t, a4.CheckPageSize(8.25, 11.70, 0.05))
	assert.ErrorIs(t, a4.CheckPageSize(8.5, 11, 0.05), ErrPageSize)
}
