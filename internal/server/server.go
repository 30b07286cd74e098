// Package server exposes a loaded tree sequence over a read-only HTTP API
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coalescent/treeseq/internal/logger"
	"github.com/coalescent/treeseq/internal/metrics"
	"github.com/coalescent/treeseq/pkg/store"
	"github.com/coalescent/treeseq/pkg/tables"
)

// Config holds server configuration
type Config struct {
	Path    string // tree sequence file to serve
	Addr    string // listen address, e.g. ":8080"
	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// Server serves one loaded table collection. The collection is never
// mutated after load, so handlers read it concurrently without locking.
type Server struct {
	tc      *tables.TableCollection
	info    store.Info
	path    string
	log     *logger.Logger
	metrics *metrics.Metrics
	http    *http.Server
}

// New loads the file and builds the server.
func New(cfg Config) (*Server, error) {
	log := cfg.Log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.NewMetrics()
	}

	start := time.Now()
	tc, info, err := store.Load(cfg.Path)
	elapsed := time.Since(start)
	if err != nil {
		m.RecordStoreLoad("error", elapsed, 0)
		log.LogStoreLoad(cfg.Path, "", elapsed, err)
		return nil, fmt.Errorf("server: load %s: %w", cfg.Path, err)
	}

	var fileBytes int64
	if st, err := os.Stat(cfg.Path); err == nil {
		fileBytes = st.Size()
	}
	m.RecordStoreLoad("success", elapsed, fileBytes)
	m.UpdateTableRows(tc.RowCounts())
	log.LogStoreLoad(cfg.Path, info.UUID.String(), elapsed, nil)

	s := &Server{
		tc:      tc,
		info:    info,
		path:    cfg.Path,
		log:     log,
		metrics: m,
	}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.observe)
		r.Get("/info", s.handleInfo)
		r.Get("/tables", s.handleTables)
		r.Get("/tables/{kind}", s.handleTable)
		r.Get("/tables/{kind}/metadata", s.handleTableMetadata)
		r.Get("/tables/{kind}/rows/{id}/metadata", s.handleRowMetadata)
		r.Get("/provenance", s.handleProvenance)
	})

	mountObservability(r)
	return r
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"path":            s.path,
		"uuid":            s.info.UUID.String(),
		"format_version":  s.info.Version,
		"sequence_length": s.tc.SequenceLength,
		"tables":          s.tc.RowCounts(),
	})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	out := make([]map[string]any, 0, 8)
	for _, kind := range tables.MetadataKinds() {
		tbl := s.tc.Table(kind)
		out = append(out, map[string]any{
			"name":       kind.String(),
			"rows":       tbl.NumRows(),
			"has_schema": tbl.MetadataSchema() != "",
		})
	}
	out = append(out, map[string]any{
		"name": tables.KindProvenance.String(),
		"rows": s.tc.Provenances.NumRows(),
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.metadataTable(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":            tbl.Kind().String(),
		"rows":            tbl.NumRows(),
		"metadata_schema": tbl.MetadataSchema(),
	})
}

// rowMetadata is one entry of a bulk metadata listing. Metadata is
// base64-encoded by encoding/json; null means the row has none.
type rowMetadata struct {
	Row      tables.RowID `json:"row"`
	Metadata []byte       `json:"metadata"`
}

func (s *Server) handleRowMetadata(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.metadataTable(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "row id must be an integer")
		return
	}

	table := tbl.Kind().String()
	raw, exists := tbl.MetadataBytes(tables.RowID(id))
	switch {
	case !exists:
		s.metrics.RecordMetadataRead(table, "missing_row", 0)
		writeError(w, http.StatusNotFound, tables.ErrRowNotFound.Error())
	case len(raw) == 0:
		s.metrics.RecordMetadataRead(table, "absent", 0)
		writeJSON(w, http.StatusOK, rowMetadata{Row: tables.RowID(id)})
	default:
		s.metrics.RecordMetadataRead(table, "present", len(raw))
		writeJSON(w, http.StatusOK, rowMetadata{Row: tables.RowID(id), Metadata: raw})
	}
}

func (s *Server) handleTableMetadata(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.metadataTable(w, r)
	if !ok {
		return
	}
	out := make([]rowMetadata, 0, tbl.NumRows())
	tbl.ScanMetadata(func(id tables.RowID, raw []byte) bool {
		entry := rowMetadata{Row: id}
		if len(raw) > 0 {
			entry.Metadata = append([]byte(nil), raw...)
		}
		out = append(out, entry)
		return true
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"table": tbl.Kind().String(),
		"rows":  out,
	})
}

func (s *Server) handleProvenance(w http.ResponseWriter, r *http.Request) {
	rows := s.tc.Provenances.Rows()
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"timestamp": row.Timestamp,
			"record":    row.Record,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// metadataTable resolves the {kind} URL parameter to a metadata-bearing
// table, writing a 404 and returning false if it cannot.
func (s *Server) metadataTable(w http.ResponseWriter, r *http.Request) (tables.MetadataTable, bool) {
	kind, err := tables.ParseTableKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if !kind.HasMetadata() {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s table has no metadata column", kind))
		return nil, false
	}
	return s.tc.Table(kind), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.log.LogServerReady(s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.LogServerShutdown()
	return s.http.Shutdown(ctx)
}
