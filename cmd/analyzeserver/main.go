// Command analyzeserver exposes the analyzer over HTTP: POST a Structured
// Text source and get back an XML, JSON, or Graphviz DOT analysis
// artifact.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"

	"github.com/iec-st/pdganalyzer/internal/engine"
	"github.com/iec-st/pdganalyzer/internal/parser"
	"github.com/iec-st/pdganalyzer/internal/serialize"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type analyzeRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename"`
	Format   string `json:"format"` // "xml", "json", or "dot"; default "xml"
}

func handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "missing field: source")
		return
	}
	if req.Filename == "" {
		req.Filename = "<request>"
	}
	if req.Format == "" {
		req.Format = "xml"
	}

	res, err := engine.Analyze(req.Source, req.Filename)
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	var contentType string
	switch req.Format {
	case "json":
		contentType = "application/json"
		err = serialize.WriteJSON(&buf, res.Root, res.PDGs, res.Variables, res.Templates)
	case "dot":
		contentType = "text/vnd.graphviz"
		err = serialize.WriteDOT(&buf, res.PDGs)
	default:
		contentType = "application/xml"
		err = serialize.WriteXML(&buf, res.Root, res.PDGs, res.Variables, res.Templates)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func main() {
	port := flag.Int("port", 8081, "port to listen on")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", handleAnalyze)

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("analyzeserver listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}
