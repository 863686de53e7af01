// Package server exposes the engine over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wdm0006/prepkit/pkg/engine"
	"github.com/wdm0006/prepkit/pkg/logging"
	"github.com/wdm0006/prepkit/pkg/metrics"
	p "github.com/wdm0006/prepkit/pkg/prep"
	"github.com/wdm0006/prepkit/pkg/profile"
	"github.com/wdm0006/prepkit/pkg/transform/validate"
)

// ProcessRequest is the body of POST /api/v1/process. Config is decoded
// strictly: unknown keys are rejected.
type ProcessRequest struct {
	Records json.RawMessage `json:"records"`
	Config  json.RawMessage `json:"config"`
}

type ProfileRequest struct {
	Records json.RawMessage `json:"records"`
}

// API serves processing and profiling requests.
type API struct {
	log     *zap.Logger
	metrics *metrics.Recorder
	latency time.Duration
}

func NewAPI(log *zap.Logger, rec *metrics.Recorder, latency time.Duration) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{log: log, metrics: rec, latency: latency}
}

// NewRouter builds a gin engine with the API routes registered.
func NewRouter(a *API) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), a.requestLogger())
	a.RegisterRoutes(router)
	return router
}

// RegisterRoutes registers the API routes with the given router.
func (a *API) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", a.healthHandler)
	if a.metrics != nil {
		router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/process", a.processHandler)
		v1.POST("/profile", a.profileHandler)
	}
}

func (a *API) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) processHandler(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	var cfg engine.ProcessingConfig
	if len(req.Config) > 0 && !bytes.Equal(bytes.TrimSpace(req.Config), []byte("null")) {
		var err error
		if cfg, err = engine.DecodeConfig(req.Config, engine.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid config: " + err.Error()})
			return
		}
	}
	ds, err := decodeRecords(req.Records)
	if err != nil {
		a.runFinished(err)
		a.fail(c, err)
		return
	}

	runID := uuid.NewString()
	obs := p.Observers{logging.NewObserver(a.log.With(zap.String("run_id", runID)))}
	if a.metrics != nil {
		obs = append(obs, a.metrics)
	}
	res, err := engine.New(engine.WithLatency(a.latency), engine.WithObserver(obs)).Run(c.Request.Context(), ds, cfg)
	a.runFinished(err)
	if err != nil {
		a.fail(c, err)
		return
	}
	res.RunID = runID
	c.JSON(http.StatusOK, res)
}

func (a *API) profileHandler(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	ds, err := decodeRecords(req.Records)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.Report(ds))
}

// decodeRecords validates the records field. A missing field is reported
// like any other non-array value.
func decodeRecords(raw json.RawMessage) (p.Dataset, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	return validate.DecodeJSON(bytes.NewReader(raw))
}

// runFinished counts a processing request; profile requests are not runs.
func (a *API) runFinished(err error) {
	if a.metrics != nil {
		a.metrics.RunFinished(err)
	}
}

func (a *API) fail(c *gin.Context, err error) {
	var ve *p.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "reasons": ve.Reasons})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
	}
}

func (a *API) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
