package vision

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"

	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/model"
)

// ImageNet normalization (standard for torchvision-exported crop models).
var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

const (
	width  = 224
	height = 224
)

// LeafClassifier runs ONNX inference on a crop-leaf image and maps model
// outputs to disease labels. The model and session are loaded on first
// use; the mutex makes that load race-free under concurrent first
// requests and serializes access to the shared input/output tensors.
type LeafClassifier struct {
	mu sync.Mutex

	modelPath  string
	labelsPath string
	libPath    string

	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	labels  []string
	inited  bool
}

// NewLeafClassifier creates a classifier that lazily loads the ONNX model
// and its label list.
func NewLeafClassifier(modelPath, labelsPath, onnxLibPath string) *LeafClassifier {
	return &LeafClassifier{
		modelPath:  modelPath,
		labelsPath: labelsPath,
		libPath:    onnxLibPath,
	}
}

// initOnce loads the ONNX shared library, environment, labels, and session.
func (c *LeafClassifier) initOnce() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inited {
		return nil
	}

	if c.libPath != "" {
		ort.SetSharedLibraryPath(c.libPath)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("onnx init environment: %w", err)
	}

	labels, err := loadLabels(c.labelsPath)
	if err != nil {
		return fmt.Errorf("load labels: %w", err)
	}
	c.labels = labels

	inputs, outputs, err := ort.GetInputOutputInfo(c.modelPath)
	if err != nil {
		return fmt.Errorf("onnx get input/output info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return fmt.Errorf("onnx model has no inputs or outputs")
	}

	inputTensor, err := ort.NewEmptyTensor[float32](inputs[0].Dimensions)
	if err != nil {
		return fmt.Errorf("onnx new input tensor: %w", err)
	}
	c.input = inputTensor

	outputTensor, err := ort.NewEmptyTensor[float32](outputs[0].Dimensions)
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("onnx new output tensor: %w", err)
	}
	c.output = outputTensor

	inputNames := make([]string, len(inputs))
	for i := range inputs {
		inputNames[i] = inputs[i].Name
	}
	outputNames := make([]string, len(outputs))
	for i := range outputs {
		outputNames[i] = outputs[i].Name
	}

	session, err := ort.NewAdvancedSession(c.modelPath, inputNames, outputNames,
		[]ort.Value{c.input}, []ort.Value{c.output}, nil)
	if err != nil {
		outputTensor.Destroy()
		inputTensor.Destroy()
		return fmt.Errorf("onnx new session: %w", err)
	}
	c.session = session
	c.inited = true
	return nil
}

func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var labels []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		labels = append(labels, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// Classify decodes the image at imagePath, runs inference, and returns
// one prediction per model class. Logits are softmaxed so every score
// lands in [0,1].
func (c *LeafClassifier) Classify(ctx context.Context, imagePath string) ([]model.Prediction, error) {
	if err := c.initOnce(); err != nil {
		return nil, err
	}

	img, err := decodeImageFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	inputData := preprocess(img)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	inData := c.input.GetData()
	if len(inData) < len(inputData) {
		c.mu.Unlock()
		return nil, fmt.Errorf("input tensor size %d < preprocessed %d", len(inData), len(inputData))
	}
	copy(inData, inputData)
	if err := c.session.Run(); err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("onnx run: %w", err)
	}
	logits := make([]float32, len(c.output.GetData()))
	copy(logits, c.output.GetData())
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probs := softmax(logits)
	preds := make([]model.Prediction, 0, len(probs))
	for i, p := range probs {
		label := ""
		if i < len(c.labels) {
			label = c.labels[i]
		}
		preds = append(preds, model.Prediction{Label: label, Score: p})
	}
	return preds, nil
}

// Close releases the ONNX session and tensors.
func (c *LeafClassifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inited {
		return
	}
	c.session.Destroy()
	c.output.Destroy()
	c.input.Destroy()
	c.inited = false
}

func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	max := float64(logits[0])
	for _, v := range logits[1:] {
		if float64(v) > max {
			max = float64(v)
		}
	}
	var sum float64
	exps := make([]float64, len(logits))
	for i, v := range logits {
		exps[i] = math.Exp(float64(v) - max)
		sum += exps[i]
	}
	for i := range exps {
		exps[i] /= sum
	}
	return exps
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err == nil {
		return img, nil
	}
	// image.Decode may not recognize some encoders' output; retry the
	// concrete jpeg and png decoders before giving up.
	if _, serr := f.Seek(0, 0); serr != nil {
		return nil, err
	}
	if img, jerr := jpeg.Decode(f); jerr == nil {
		return img, nil
	}
	if _, serr := f.Seek(0, 0); serr != nil {
		return nil, err
	}
	if img, perr := png.Decode(f); perr == nil {
		return img, nil
	}
	return nil, err
}

// preprocess resizes img to 224x224, converts to RGB, NCHW layout,
// float32 with ImageNet normalization.
func preprocess(img image.Image) []float32 {
	bounds := img.Bounds()

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	// NCHW: [1, 3, 224, 224]
	out := make([]float32, 1*3*height*width)
	const size = width * height

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			c := dst.RGBAAt(x, y)
			r, g, b := float32(c.R)/255.0, float32(c.G)/255.0, float32(c.B)/255.0
			out[0*size+idx] = (r - imagenetMean[0]) / imagenetStd[0]
			out[1*size+idx] = (g - imagenetMean[1]) / imagenetStd[1]
			out[2*size+idx] = (b - imagenetMean[2]) / imagenetStd[2]
		}
	}
	return out
}
