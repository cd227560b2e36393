package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/pedro-r-marques/devops-tutor/pkg/assistant"
	"github.com/pedro-r-marques/devops-tutor/pkg/workflow"
)

const maxBodySize = 1 << 20

var knownCommands = map[string]bool{
	"health":         true,
	"cicd/visualize": true,
	"cicd/samples":   true,
	"cicd/sample":    true,
	"yaml/validate":  true,
	"explain":        true,
	"analyses":       true,
	"analysis":       true,
}

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "devops_tutor",
	Subsystem: "api",
	Name:      "requests_total",
	Help:      "API requests by command and status code.",
}, []string{"command", "code"})

type ApiServer struct {
	assistant assistant.Assistant
	// Explanation language used when a request does not name one
	language string
}

func NewApiServer(assistant assistant.Assistant, language string) *ApiServer {
	if language == "" {
		language = "en"
	}
	return &ApiServer{assistant: assistant, language: language}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func setHttpError(w http.ResponseWriter, statusCode int, errMessage string) {
	w.WriteHeader(statusCode)
	w.Write([]byte(errMessage))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		setHttpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-type", "application/json")
	w.Write(body)
}

// readRequest decodes a JSON object body into msg.
func readRequest(w http.ResponseWriter, req *http.Request, msg interface{}) bool {
	if req.Body == nil {
		setHttpError(w, http.StatusBadRequest, "request body required")
		return false
	}
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
	if err != nil {
		setHttpError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := json.Unmarshal(body, msg); err != nil {
		setHttpError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// GET /api/health
func (s *ApiServer) health(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

// POST /api/cicd/visualize
func (s *ApiServer) visualize(w http.ResponseWriter, req *http.Request) {
	var msg struct {
		Content string `json:"content"`
		Lang    string `json:"lang"`
	}
	if !readRequest(w, req, &msg) {
		return
	}
	lang := msg.Lang
	if lang == "" {
		lang = s.language
	}

	analysis, err := s.assistant.Visualize(msg.Content, lang)
	if err != nil {
		setHttpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := struct {
		ID            string           `json:"id"`
		Workflow      *workflow.Result `json:"workflow"`
		Order         []string         `json:"order,omitempty"`
		Visualization string           `json:"visualization"`
		Explanation   string           `json:"explanation"`
		Warning       string           `json:"warning,omitempty"`
	}{
		ID:            analysis.ID.String(),
		Workflow:      analysis.Workflow,
		Order:         analysis.Order,
		Visualization: analysis.Visualization,
		Explanation:   analysis.Explanation,
		Warning:       analysis.Warning,
	}
	writeJSON(w, response)
}

// GET /api/cicd/samples
func (s *ApiServer) listSamples(w http.ResponseWriter, req *http.Request) {
	response := struct {
		Samples []string `json:"samples"`
	}{s.assistant.ListSamples()}
	writeJSON(w, response)
}

// GET /api/cicd/sample/<name>
func (s *ApiServer) getSample(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(req.URL.Path, "/api/cicd/sample/")
	sample, err := s.assistant.Sample(name)
	if errors.Is(err, workflow.ErrUnknownSample) {
		setHttpError(w, http.StatusNotFound, fmt.Sprintf("unknown sample: %s", name))
		return
	}
	if err != nil {
		setHttpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, sample)
}

// POST /api/yaml/validate
func (s *ApiServer) validateYAML(w http.ResponseWriter, req *http.Request) {
	var msg struct {
		Content string `json:"content"`
	}
	if !readRequest(w, req, &msg) {
		return
	}
	writeJSON(w, s.assistant.ValidateYAML(msg.Content))
}

// POST /api/explain
func (s *ApiServer) explainError(w http.ResponseWriter, req *http.Request) {
	var msg struct {
		Error string `json:"error"`
		Lang  string `json:"lang"`
	}
	if !readRequest(w, req, &msg) {
		return
	}
	lang := msg.Lang
	if lang == "" {
		lang = s.language
	}
	d := s.assistant.ExplainError(msg.Error, lang)
	response := struct {
		Pattern     string `json:"pattern"`
		Title       string `json:"title"`
		Fix         string `json:"fix"`
		Explanation string `json:"explanation"`
	}{d.Pattern, d.Title, d.Fix, d.String()}
	writeJSON(w, response)
}

// GET /api/analyses?limit=<n>&workflow=<name>
func (s *ApiServer) listAnalyses(w http.ResponseWriter, req *http.Request) {
	var limit int
	if v := req.URL.Query().Get("limit"); v != "" {
		var err error
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			setHttpError(w, http.StatusBadRequest, "invalid format for query parameter \"limit\"")
			return
		}
	}
	list, err := s.assistant.ListAnalyses(req.URL.Query().Get("workflow"), limit)
	if err != nil {
		setHttpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response := struct {
		Analyses []*assistant.Analysis `json:"analyses"`
	}{list}
	writeJSON(w, response)
}

// GET /api/analysis/<id>
func (s *ApiServer) getAnalysis(w http.ResponseWriter, req *http.Request) {
	idStr := strings.TrimPrefix(req.URL.Path, "/api/analysis/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		setHttpError(w, http.StatusBadRequest, fmt.Sprintf("invalid uuid %s", idStr))
		return
	}
	analysis, err := s.assistant.GetAnalysis(id)
	if errors.Is(err, assistant.ErrNotFound) {
		setHttpError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		setHttpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, analysis)
}

func (s *ApiServer) route(w http.ResponseWriter, req *http.Request, command string) {
	switch command {
	case "health":
		if req.Method == http.MethodGet {
			s.health(w, req)
		} else {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case "cicd/visualize", "yaml/validate", "explain":
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch command {
		case "cicd/visualize":
			s.visualize(w, req)
		case "yaml/validate":
			s.validateYAML(w, req)
		default:
			s.explainError(w, req)
		}
	case "cicd/samples", "cicd/sample", "analyses", "analysis":
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch command {
		case "cicd/samples":
			s.listSamples(w, req)
		case "cicd/sample":
			s.getSample(w, req)
		case "analyses":
			s.listAnalyses(w, req)
		default:
			s.getAnalysis(w, req)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// command maps a path to its route key: the first segment, or the first
// two under /api/cicd/ and /api/yaml/.
func command(path string) string {
	command := path[len("/api/"):]
	parts := strings.SplitN(command, "/", 3)
	if len(parts) > 1 && (parts[0] == "cicd" || parts[0] == "yaml") {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

func (s *ApiServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !strings.HasPrefix(req.URL.Path, "/api/") {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	cmd := command(req.URL.Path)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.route(rec, req, cmd)

	label := cmd
	if !knownCommands[cmd] {
		label = "unknown"
	}
	requestsTotal.WithLabelValues(label, strconv.Itoa(rec.status)).Inc()
	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", rec.status).
		Msg("api request")
}
