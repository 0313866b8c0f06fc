package vision

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{2.0, 1.0, 0.1})

	var sum float64
	for i, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("prob[%d] = %v, outside [0,1]", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
	if !(probs[0] > probs[1] && probs[1] > probs[2]) {
		t.Errorf("softmax must preserve logit ordering: %v", probs)
	}

	if got := softmax(nil); got != nil {
		t.Errorf("softmax(nil) = %v, want nil", got)
	}
}

func TestSoftmaxLargeLogits(t *testing.T) {
	// Max subtraction keeps exp from overflowing.
	probs := softmax([]float32{1000, 999})
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Fatalf("prob[%d] = %v", i, p)
		}
	}
}

func TestPreprocessShapeAndRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 128, A: 255})
		}
	}

	out := preprocess(img)
	if len(out) != 3*width*height {
		t.Fatalf("preprocess output length = %d, want %d", len(out), 3*width*height)
	}
	// Normalized channel values must stay within the ImageNet bounds for
	// in-range pixels: (0-mean)/std .. (1-mean)/std.
	for i, v := range out {
		if float64(v) < -3.0 || float64(v) > 3.0 {
			t.Fatalf("out[%d] = %v, outside plausible normalized range", i, v)
		}
	}
}

func TestDecodeImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leaf.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image file: %v", err)
	}
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	f.Close()

	img, err := decodeImageFile(path)
	if err != nil {
		t.Fatalf("decodeImageFile: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}

	if _, err := decodeImageFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("decodeImageFile must fail for a missing file")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}
	if _, err := decodeImageFile(bad); err == nil {
		t.Error("decodeImageFile must fail for non-image bytes")
	}
}
