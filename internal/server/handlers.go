package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/analytics"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/gradestats"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/records"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/store"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

func (s *Server) postPriority(w http.ResponseWriter, r *http.Request) {
	recs, ok := decodeRecords(w, r)
	if !ok {
		return
	}
	s.priority(w, recs)
}

func (s *Server) getPriority(w http.ResponseWriter, r *http.Request) {
	recs, ok := s.listStudents(w, r)
	if !ok {
		return
	}
	s.priority(w, recs)
}

func (s *Server) priority(w http.ResponseWriter, recs []student.Record) {
	res, err := s.svc.Priority(recs)
	if err != nil {
		writeAnalysisErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) postCluster(w http.ResponseWriter, r *http.Request) {
	opts, err := s.clusterOptions(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, ok := decodeRecords(w, r)
	if !ok {
		return
	}
	s.cluster(w, recs, opts)
}

func (s *Server) getCluster(w http.ResponseWriter, r *http.Request) {
	opts, err := s.clusterOptions(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, ok := s.listStudents(w, r)
	if !ok {
		return
	}
	s.cluster(w, recs, opts)
}

func (s *Server) cluster(w http.ResponseWriter, recs []student.Record, opts analytics.ClusterOptions) {
	res, err := s.svc.Cluster(recs, opts)
	if err != nil {
		writeAnalysisErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type statsRequest struct {
	Grades       []float64 `json:"grades"`
	PassingGrade *float64  `json:"passingGrade,omitempty"`
}

func (s *Server) postStats(w http.ResponseWriter, r *http.Request) {
	var req statsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	passing := s.opts.PassingGrade
	if req.PassingGrade != nil {
		passing = *req.PassingGrade
	}
	writeJSON(w, http.StatusOK, gradestats.Describe(req.Grades, passing))
}

// clusterOptions applies k, maxIterations, epsilon and seed query
// parameters over the server defaults.
func (s *Server) clusterOptions(r *http.Request) (analytics.ClusterOptions, error) {
	opts := s.opts.Cluster
	q := r.URL.Query()

	if v := q.Get("k"); v != "" {
		k, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid k: %q", v)
		}
		opts.K = k
	}
	if v := q.Get("maxIterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid maxIterations: %q", v)
		}
		opts.MaxIterations = n
	}
	if v := q.Get("epsilon"); v != "" {
		e, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid epsilon: %q", v)
		}
		opts.Epsilon = e
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid seed: %q", v)
		}
		opts.Seed = &seed
	}
	return opts, nil
}

func decodeRecords(w http.ResponseWriter, r *http.Request) ([]student.Record, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}
	recs, err := records.DecodeJSON(body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return recs, true
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) ([]student.Record, bool) {
	if s.students == nil {
		writeErr(w, http.StatusServiceUnavailable, "student store not configured")
		return nil, false
	}
	q := r.URL.Query()
	recs, err := s.students.List(r.Context(), store.Filter{Class: q.Get("class"), Name: q.Get("name")})
	if err != nil {
		log.Printf("list students: %v", err)
		writeErr(w, http.StatusInternalServerError, "list students failed")
		return nil, false
	}
	return recs, true
}

func writeAnalysisErr(w http.ResponseWriter, err error) {
	if analytics.IsInvalidConfig(err) || analytics.IsDegenerate(err) {
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	var invalid *records.ErrInvalidInput
	if errors.As(err, &invalid) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("analysis failed: %v", err)
	writeErr(w, http.StatusInternalServerError, "analysis failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
