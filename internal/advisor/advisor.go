package advisor

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sony/gobreaker"

	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/model"
)

// ErrEmptyPrediction is returned when the classifier yields no outputs.
var ErrEmptyPrediction = errors.New("empty prediction from classifier")

// Classifier is the inference gateway boundary: it runs the pretrained
// model on an image file and returns its raw label scores.
type Classifier interface {
	Classify(ctx context.Context, imagePath string) ([]model.Prediction, error)
}

// Options tune the resilience wrapping around classifier calls.
type Options struct {
	// InferenceTimeout bounds one classify call; zero means no bound.
	InferenceTimeout time.Duration
	// BreakerFailures is how many consecutive failures trip the breaker.
	BreakerFailures int
	// BreakerOpenFor is how long the breaker stays open before a probe.
	BreakerOpenFor time.Duration
}

// Advisor turns a classified leaf image into a human-readable advisory.
type Advisor struct {
	classifier Classifier
	guides     Guides
	breaker    *gobreaker.CircuitBreaker
	timeout    time.Duration
}

// New builds an advisor around the given classifier.
func New(classifier Classifier, guides Guides, opts Options) *Advisor {
	failures := opts.BreakerFailures
	if failures < 1 {
		failures = 3
	}
	openFor := opts.BreakerOpenFor
	if openFor <= 0 {
		openFor = 10 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "inference",
		Timeout: openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(failures)
		},
	})
	return &Advisor{
		classifier: classifier,
		guides:     guides,
		breaker:    cb,
		timeout:    opts.InferenceTimeout,
	}
}

// Analyze classifies the image at imagePath and derives the advisory for
// the highest-scoring prediction (first encountered wins on ties). The
// returned slice always has length one on success.
func (a *Advisor) Analyze(ctx context.Context, imagePath string) ([]model.Advisory, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	res, err := a.breaker.Execute(func() (any, error) {
		preds, err := a.classifier.Classify(ctx, imagePath)
		if err != nil {
			return nil, err
		}
		if len(preds) == 0 {
			return nil, ErrEmptyPrediction
		}
		return preds, nil
	})
	if err != nil {
		return nil, err
	}
	preds := res.([]model.Prediction)

	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}

	label := NormalizeLabel(best.Label)
	nutrient := GuessNutrient(label)
	advice := ComposeAdvice(a.guides, label, nutrient, best.Score)

	return []model.Advisory{{
		Label:     label,
		Score:     RoundScore(best.Score),
		Box:       []int{50, 50, 200, 200},
		Nutrition: nutrient,
		Advice:    advice,
	}}, nil
}

// RoundScore rounds a confidence to 5 decimal places. Idempotent:
// rounding twice equals rounding once.
func RoundScore(score float64) float64 {
	return math.Round(score*1e5) / 1e5
}

// ErrorAdvisory is the synthetic record returned to clients whenever any
// step after the upload check fails. The endpoint still answers 200 with
// this payload so consumers never branch on status beyond the 400 case.
func ErrorAdvisory() model.Advisory {
	return model.Advisory{
		Label:     "Error",
		Score:     0.0,
		Box:       []int{},
		Nutrition: "Unknown",
		Advice:    "An error occurred while analyzing the image. Please try another image.",
	}
}
