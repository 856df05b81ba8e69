package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/sentiment/internal/model"
)

// errTextTooLarge is returned when submitted text exceeds the size limit.
var errTextTooLarge = errors.New("text too large")

// probeTimeout bounds the readiness check of the predictor.
const probeTimeout = 5 * time.Second

// PredictRequest is the body of the predict and report endpoints.
// Forms use the same field names.
type PredictRequest struct {
	Model string `form:"model" json:"model" binding:"required"`
	Text  string `form:"text" json:"text"`
}

// pageData is the data of the index template.
type pageData struct {
	Models   []string
	Selected string
	Text     string
	Error    string
	Result   *model.Prediction
}

// modelNames returns the display names offered in the model select.
func modelNames() []string {
	kinds := model.AllModelKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// percent converts a chart value to a bar width in percent.
func percent(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 100))
}

// predict validates req and runs the predictor.
func (s *Server) predict(ctx context.Context, req PredictRequest) (*model.Prediction, error) {
	kind, err := model.ParseModelKind(req.Model)
	if err != nil {
		return nil, err
	}
	if int64(len(req.Text)) > s.maxTextBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errTextTooLarge, len(req.Text), s.maxTextBytes)
	}
	return s.predictor.Predict(ctx, kind, req.Text)
}

// Index handles GET /
func (s *Server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Models:   modelNames(),
		Selected: model.LogisticRegression.String(),
	})
}

// PredictForm handles POST /predict
func (s *Server) PredictForm(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", pageData{
			Models: modelNames(),
			Error:  "Please select a model.",
		})
		return
	}

	data := pageData{
		Models:   modelNames(),
		Selected: req.Model,
		Text:     req.Text,
	}

	prediction, err := s.predict(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		errResp := MapError(err)
		data.Error = errResp.Message
		c.HTML(errResp.StatusCode, "index.html", data)
		return
	}

	data.Result = prediction
	c.HTML(http.StatusOK, "index.html", data)
}

// APIPredict handles POST /api/v1/predict
func (s *Server) APIPredict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	prediction, err := s.predict(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, prediction)
}

// Report handles POST /report and POST /api/v1/report.
// The prediction is made again from the submitted model and text, so the
// report never shows a label the server did not produce.
func (s *Server) Report(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}

	prediction, err := s.predict(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		handleError(c, err)
		return
	}

	var buf bytes.Buffer
	artifact, err := s.generator.Render(&buf, prediction.ReportRequest(req.Text))
	if err != nil {
		_ = c.Error(err)
		handleError(c, err)
		return
	}

	s.logger.Debug("report rendered",
		"request_id", c.GetString(requestIDKey),
		"model", prediction.Model.String(),
		"pages", artifact.Pages,
		"size", artifact.Size,
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	c.Data(http.StatusOK, artifact.MIMEType, buf.Bytes())
}

// Models handles GET /api/v1/models
func (s *Server) Models(c *gin.Context) {
	type entry struct {
		Name   string `json:"name"`
		Slug   string `json:"slug"`
		Loaded bool   `json:"loaded"`
	}

	loaded := s.loadedKinds()
	entries := make([]entry, 0, len(model.AllModelKinds()))
	for _, k := range model.AllModelKinds() {
		_, ok := loaded[k]
		entries = append(entries, entry{Name: k.String(), Slug: k.Slug(), Loaded: ok || loaded == nil})
	}
	respondSuccess(c, http.StatusOK, entries)
}

// loadedKinds returns the kinds the predictor has loaded, or nil when the
// predictor cannot tell (a remote service).
func (s *Server) loadedKinds() map[model.ModelKind]struct{} {
	lister, ok := s.predictor.(interface{ Kinds() []model.ModelKind })
	if !ok {
		return nil
	}
	loaded := make(map[model.ModelKind]struct{})
	for _, k := range lister.Kinds() {
		loaded[k] = struct{}{}
	}
	return loaded
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status string `json:"status"`
}

// Health handles GET /health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{Status: "healthy"})
}

// Ready handles GET /ready
func (s *Server) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	if err := s.predictor.Ready(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "predictor unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
