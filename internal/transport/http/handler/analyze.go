package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/advisor"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/cache"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/model"
	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/transport/http/response"
)

const maxImageSize = 10 << 20 // 10 MB

// Analyzer produces advisories for a saved image file.
type Analyzer interface {
	Analyze(ctx context.Context, imagePath string) ([]model.Advisory, error)
}

// AdvisoryCache is the optional result cache. Errors are treated as
// misses; a cache must never fail a request.
type AdvisoryCache interface {
	Get(ctx context.Context, key string) ([]model.Advisory, bool, error)
	Set(ctx context.Context, key string, advisories []model.Advisory) error
}

// EventPublisher is the optional per-analysis event sink.
type EventPublisher interface {
	Publish(ctx context.Context, event model.AnalysisEvent) error
}

// AnalyzeHandler receives leaf-image uploads and returns advisories.
type AnalyzeHandler struct {
	analyzer  Analyzer
	cache     AdvisoryCache
	publisher EventPublisher
}

// NewAnalyzeHandler creates the handler. cache and publisher may be nil.
func NewAnalyzeHandler(analyzer Analyzer, cache AdvisoryCache, publisher EventPublisher) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		cache:     cache,
		publisher: publisher,
	}
}

// Analyze accepts a multipart form with "file" (image), classifies it and
// answers a JSON array with exactly one advisory. Only the content-type
// and size checks can produce a non-200 on this route: every failure
// after them is absorbed into a synthetic error advisory so consumers
// never branch on HTTP status beyond the 400 case.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	start := time.Now()

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing image file (form field 'file')")
		return
	}
	log.Printf("received file: %s", file.Filename)

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		log.Printf("rejected non-image upload: %s", contentType)
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Only image uploads are supported.")
		return
	}

	if file.Size > maxImageSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "image too large (max 10MB)")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, "open uploaded file", err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.respondError(c, "read uploaded file", err)
		return
	}

	ctx := c.Request.Context()

	cacheKey := ""
	if h.cache != nil {
		cacheKey = cache.ImageKey(data)
		cached, hit, err := h.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("advisory cache get failed: %v", err)
		} else if hit {
			log.Printf("advisory cache hit for %s", file.Filename)
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		h.respondError(c, "create temp file", err)
		return
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("remove temp file %s failed: %v", tmpPath, err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		h.respondError(c, "save upload", err)
		return
	}
	if err := tmp.Close(); err != nil {
		h.respondError(c, "close temp file", err)
		return
	}

	results, err := h.analyzer.Analyze(ctx, tmpPath)
	if err != nil {
		h.respondError(c, "analyze image", err)
		return
	}
	elapsed := time.Since(start)
	log.Printf("prediction returned %q (score %.5f) in %.2fs", results[0].Label, results[0].Score, elapsed.Seconds())

	if h.cache != nil && cacheKey != "" {
		if err := h.cache.Set(ctx, cacheKey, results); err != nil {
			log.Printf("advisory cache set failed: %v", err)
		}
	}

	if h.publisher != nil {
		event := model.AnalysisEvent{
			Label:      results[0].Label,
			Score:      results[0].Score,
			Nutrition:  results[0].Nutrition,
			ElapsedMs:  elapsed.Milliseconds(),
			AnalyzedAt: time.Now().UTC(),
		}
		if err := h.publisher.Publish(ctx, event); err != nil {
			log.Printf("publish analysis event failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, results)
}

// respondError logs the failure and answers 200 with the synthetic error
// advisory.
func (h *AnalyzeHandler) respondError(c *gin.Context, stage string, err error) {
	log.Printf("prediction error (%s): %v", stage, err)
	c.JSON(http.StatusOK, []model.Advisory{advisor.ErrorAdvisory()})
}
