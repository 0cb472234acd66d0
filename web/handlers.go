package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rustyeddy/sizer/form"
	"github.com/rustyeddy/sizer/journal"
)

const maxBody = 16 << 10

type pageData struct {
	form.View
	Journal bool
}

// writeJSON encodes v before sending the status, so an encoding failure
// turns into a 500 instead of a success with an empty body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
		http.Error(w, "could not encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleIndex renders the form. Query or form values override the
// defaults, so the page also works without JavaScript.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	raw, err := overlay(s.defaults, r.Form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := pageData{View: form.Render(raw), Journal: s.journal != nil}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("render page")
	}
}

func (s *Server) decodeCalc(w http.ResponseWriter, r *http.Request) (CalcRequest, form.RawInputs, bool) {
	var req CalcRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return req, form.RawInputs{}, false
	}
	raw, err := req.Inputs()
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return req, form.RawInputs{}, false
	}
	return req, raw, true
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	_, raw, ok := s.decodeCalc(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, NewCalcResponse(raw, form.Evaluate(raw)))
}

func (s *Server) handleRecordPlan(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse("journal disabled"))
		return
	}

	req, raw, ok := s.decodeCalc(w, r)
	if !ok {
		return
	}

	o := form.Evaluate(raw)
	res, ok := o.Result()
	if !ok {
		s.writeJSON(w, http.StatusUnprocessableEntity, NewCalcResponse(raw, o))
		return
	}
	in, _ := form.Parse(raw)

	p := journal.NewPlanRecord(in, res, s.now())
	p.Note = req.Note
	err := s.recordPlan(p)
	if errors.Is(err, journal.ErrNotFinite) {
		resp := NewCalcResponse(raw, o)
		resp.Status = statusError
		resp.Error = err.Error()
		s.writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("plan_id", p.PlanID).Msg("record plan")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse("could not record plan"))
		return
	}

	s.log.Info().Str("plan_id", p.PlanID).Str("direction", p.Direction.String()).
		Float64("size", p.PositionSize).Float64("margin", p.Margin).Msg("plan recorded")
	s.writeJSON(w, http.StatusCreated, planJSON(p))
}

func (s *Server) store(w http.ResponseWriter) (journal.Store, bool) {
	st, ok := s.journal.(journal.Store)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, errorResponse("journal does not support queries"))
		return nil, false
	}
	return st, true
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	st, ok := s.store(w)
	if !ok {
		return
	}

	day := r.URL.Query().Get("day")
	if day == "" {
		day = s.now().In(time.Local).Format("2006-01-02")
	}
	start, end, err := journal.DayBounds(time.Local, day)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse("day must be YYYY-MM-DD"))
		return
	}

	recs, err := st.ListPlansBetween(start, end)
	if err != nil {
		s.log.Error().Err(err).Msg("list plans")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse("could not list plans"))
		return
	}

	out := make([]PlanJSON, 0, len(recs))
	for _, p := range recs {
		out = append(out, planJSON(p))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	st, ok := s.store(w)
	if !ok {
		return
	}

	p, err := st.GetPlan(r.PathValue("id"))
	switch {
	case errors.Is(err, journal.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case err != nil:
		s.log.Error().Err(err).Msg("get plan")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse("could not load plan"))
	default:
		s.writeJSON(w, http.StatusOK, planJSON(p))
	}
}
