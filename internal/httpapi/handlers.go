package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/audio-tutor/internal/apperror"
	"github.com/nguyentantai21042004/audio-tutor/internal/processor"
)

const (
	msgTextRequired     = "Text input is required"
	msgSummaryRequired  = "Summary is required"
	msgFileRequired     = "PDF file is required"
	msgGeminiConfig     = "Gemini API token is not configured"
	msgTTSConfig        = "Text-to-speech credentials are not configured"
	msgSummaryFailed    = "Failed to generate summary"
	msgSpeechFailed     = "Failed to synthesize speech"
	msgExtractFailed    = "Failed to extract text from document"
	msgDocxFailed       = "Failed to render summary document"
	msgAudioUnavailable = "No audio has been generated yet"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindText reads {text} and rejects missing, malformed or blank input.
func bindText(c *gin.Context) (string, bool) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgTextRequired})
		return "", false
	}
	return req.Text, true
}

func (s *Server) handleSummary(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}

	summary, err := s.deps.Summarizer.Summarize(c.Request.Context(), text)
	if err != nil {
		s.upstreamError(c, "summary", err, msgGeminiConfig, msgSummaryFailed)
		return
	}

	c.JSON(http.StatusOK, summaryResponse{Message: "Summary generated successfully", Summary: summary})
}

func (s *Server) handleTTS(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}

	ref, err := s.deps.Speaker.Speak(c.Request.Context(), text)
	if err != nil {
		s.upstreamError(c, "speech", err, msgTTSConfig, msgSpeechFailed)
		return
	}

	c.JSON(http.StatusOK, ttsResponse{Message: "Speech synthesis successful", FilePath: ref})
}

func (s *Server) handleExtract(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgFileRequired})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgFileRequired})
		return
	}
	defer f.Close()

	var r io.Reader = f
	limit := s.cfg.Extract.MaxFileSize
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msgExtractFailed})
		return
	}

	doc, err := s.deps.Extractor.Extract(c.Request.Context(), data)
	if err != nil {
		c.Error(err)
		status := apperror.HTTPStatus(err)
		msg := msgExtractFailed
		if status == http.StatusBadRequest {
			msg = fmt.Sprintf("PDF file must be non-empty and at most %d bytes", limit)
		}
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, extractResponse{Text: doc.Text(), Pages: len(doc.Pages)})
}

// handleProcess runs speech then summary for one text, reporting each half
// separately.
func (s *Server) handleProcess(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}

	res := s.deps.Processor.Process(c.Request.Context(), processor.Input{Text: text})
	if res.Err != nil {
		c.Error(res.Err)
		c.JSON(apperror.HTTPStatus(res.Err), errorResponse{Error: msgTextRequired})
		return
	}

	resp := processResponse{FilePath: res.AudioRef, Summary: res.Summary}
	if res.AudioErr != nil || res.SummaryErr != nil {
		resp.Errors = map[string]string{}
	}
	if res.AudioErr != nil {
		s.countUpstream("speech", res.AudioErr)
		resp.Errors["audio"] = publicMessage(res.AudioErr, msgTTSConfig, msgSpeechFailed)
	}
	if res.SummaryErr != nil {
		s.countUpstream("summary", res.SummaryErr)
		resp.Errors["summary"] = publicMessage(res.SummaryErr, msgGeminiConfig, msgSummaryFailed)
	}

	status := http.StatusOK
	if res.AudioErr != nil && res.SummaryErr != nil {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

func (s *Server) handleSummaryDocx(c *gin.Context) {
	var req docxRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Summary) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgSummaryRequired})
		return
	}
	if req.Title == "" {
		req.Title = "Generated Summary"
	}

	if err := os.MkdirAll(s.cfg.Paths.Temp, 0755); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msgDocxFailed})
		return
	}
	f, err := os.CreateTemp(s.cfg.Paths.Temp, "summary-*.docx")
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msgDocxFailed})
		return
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := s.deps.Summarizer.WriteDocx(req.Title, req.Summary, path); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: msgDocxFailed})
		return
	}

	c.FileAttachment(path, "summary.docx")
}

func (s *Server) handleAudio(c *gin.Context) {
	path := s.deps.Store.Path()
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgAudioUnavailable})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.File(path)
}

// upstreamError logs the cause and answers with a generic message.
func (s *Server) upstreamError(c *gin.Context, capability string, err error, configMsg, failMsg string) {
	c.Error(err)
	s.countUpstream(capability, err)
	c.JSON(apperror.HTTPStatus(err), errorResponse{Error: publicMessage(err, configMsg, failMsg)})
}

func (s *Server) countUpstream(capability string, err error) {
	if s.deps.Metrics == nil {
		return
	}
	s.deps.Metrics.UpstreamErrors.WithLabelValues(capability, errorKind(err)).Inc()
}

func publicMessage(err error, configMsg, failMsg string) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		return msgTextRequired
	case errors.Is(err, apperror.ErrConfigurationMissing):
		return configMsg
	default:
		return failMsg
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, apperror.ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, apperror.ErrUpstreamFailure):
		return "upstream"
	default:
		return "internal"
	}
}
