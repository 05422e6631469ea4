// Package web serves the prediction form and a JSON API over HTTP.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/i18n"
	"github.com/crimson-sun/airq/internal/output"
	"github.com/crimson-sun/airq/internal/pipeline"
	"github.com/crimson-sun/airq/internal/presentation"
)

//go:embed templates/index.html
var templateFS embed.FS

//go:embed static/image.svg
var defaultImage []byte

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Options configures a Server.
type Options struct {
	Collector collector.Collector
	Predictor pipeline.Predictor
	Table     presentation.Table
	// Language is the default UI language; a lang query parameter or the
	// Accept-Language header can override it when empty.
	Language string
	// ImagePath is the decorative image. Empty serves a built-in placeholder.
	ImagePath string
	// Authors and Footer are credit lines; empty values are not shown.
	Authors string
	Footer  []string
}

// Server renders the form and evaluates submissions. Artifacts are shared
// read-only across requests; there is no per-user state.
type Server struct {
	collector collector.Collector
	pipelines map[language.Tag]*pipeline.Pipeline
	language  string
	imagePath string
	authors   string
	footer    []string
	mux       *http.ServeMux
}

// New creates a Server with one pipeline per supported language.
func New(opts Options) *Server {
	s := &Server{
		collector: opts.Collector,
		pipelines: make(map[language.Tag]*pipeline.Pipeline, len(i18n.Supported)),
		language:  opts.Language,
		imagePath: opts.ImagePath,
		authors:   opts.Authors,
		footer:    opts.Footer,
		mux:       http.NewServeMux(),
	}
	for _, tag := range i18n.Supported {
		r := presentation.NewRenderer(opts.Table, i18n.NewPrinter(tag.String()))
		s.pipelines[tag] = pipeline.New(opts.Collector, opts.Predictor, r)
	}

	s.mux.HandleFunc("GET /{$}", s.handleForm)
	s.mux.HandleFunc("POST /{$}", s.handleSubmit)
	s.mux.HandleFunc("POST /api/predict", s.handleAPIPredict)
	s.mux.HandleFunc("GET /api/features", s.handleAPIFeatures)
	s.mux.HandleFunc("GET /static/image", s.handleImage)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		write(w, []byte("ok"))
	})
	return s
}

// Handler returns the server's routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

func (s *Server) tag(r *http.Request) language.Tag {
	pref := r.URL.Query().Get("lang")
	if pref == "" {
		pref = s.language
	}
	if pref == "" {
		pref = r.Header.Get("Accept-Language")
	}
	return i18n.Match(pref)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	tag := s.tag(r)
	s.render(w, http.StatusOK, s.page(tag, nil))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	raw := make(map[string]string)
	for _, name := range s.collector.Registry().Names() {
		if _, ok := r.PostForm[name]; ok {
			raw[name] = r.PostForm.Get(name)
		}
	}

	tag := s.tag(r)
	res, err := s.pipelines[tag].Evaluate(raw)
	data := s.page(tag, raw)
	if err != nil {
		slog.Error("prediction failed", "request_id", requestID(w), "error", err)
		data.Error = i18n.NewPrinter(tag.String()).Sprintf("Prediction failed. See the server log for details.")
		s.render(w, http.StatusInternalServerError, data)
		return
	}

	data.applyResult(res, i18n.NewPrinter(tag.String()))
	s.render(w, http.StatusOK, data)
}

func (s *Server) render(w http.ResponseWriter, status int, data *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		slog.Error("render template", "error", err)
	}
}

// apiRequest accepts numbers or strings per feature.
type apiRequest struct {
	Values map[string]any `json:"values"`
	Lang   string         `json:"lang"`
}

func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return
	}

	raw := make(map[string]string, len(req.Values))
	for name, v := range req.Values {
		switch v := v.(type) {
		case float64:
			raw[name] = feature.FormatValue(v)
		case string:
			raw[name] = v
		default:
			raw[name] = fmt.Sprint(v)
		}
	}

	tag := s.tag(r)
	if req.Lang != "" {
		tag = i18n.Match(req.Lang)
	}
	res, err := s.pipelines[tag].Evaluate(raw)
	if err != nil {
		slog.Error("prediction failed", "request_id", requestID(w), "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "prediction failed"})
		return
	}
	writeJSON(w, http.StatusOK, output.FormatResult(res, output.Full))
}

type apiFeature struct {
	Name    string  `json:"name"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

func (s *Server) handleAPIFeatures(w http.ResponseWriter, _ *http.Request) {
	bounds := collector.NewSlider(s.collector.Registry())
	var out []apiFeature
	for _, f := range s.collector.Registry().Features() {
		b := bounds.Bounds(f)
		out = append(out, apiFeature{Name: f.Name, Default: f.Default, Min: b.Min, Max: b.Max})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if s.imagePath != "" {
		http.ServeFile(w, r, s.imagePath)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	write(w, defaultImage)
}

// write sends b, logging a failed write.
func write(w http.ResponseWriter, b []byte) {
	if _, err := w.Write(b); err != nil {
		slog.Warn("write response", "request_id", requestID(w), "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

const requestIDHeader = "X-Request-Id"

func requestID(w http.ResponseWriter) string {
	return w.Header().Get(requestIDHeader)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		slog.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
