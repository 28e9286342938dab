package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"heartbeats/ml"
	"heartbeats/monitoring"
	"heartbeats/nav"
)

const (
	msgFillAllFields  = "Please fill in all fields."
	msgNumericInvalid = "Please enter valid numeric values for all input fields."
	msgScanFailed     = "Prediction failed. Please try again later."
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, view := s.sessions.Resolve(w, r)
	s.render(w, http.StatusOK, s.newPage(view))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, current := s.sessions.Resolve(w, r)
	next := nav.Next(current, parseAction(r.PostForm.Get("action"), r.PostForm.Get("target")))
	s.sessions.Save(id, next)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseAction(kind, target string) nav.Action {
	switch nav.ActionKind(strings.TrimSpace(kind)) {
	case nav.ActionSelect:
		view, ok := nav.ParseView(target)
		if !ok {
			return nav.Action{Kind: nav.ActionSelect}
		}
		return nav.Select(view)
	case nav.ActionCheckNow:
		return nav.CheckNow()
	case nav.ActionBack:
		return nav.Back()
	default:
		return nav.Action{Kind: nav.ActionKind(kind)}
	}
}

// handleScan 执行一次 SCAN：校验并编码表单，成功后调用分类器
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, _ := s.sessions.Resolve(w, r)
	s.sessions.Save(id, nav.Scan)

	raw := make(ml.RawFormInput, ml.FeatureCount)
	for _, f := range ml.Fields() {
		raw[f] = r.PostForm.Get(string(f))
	}

	p := s.newPage(nav.Scan)
	p.Scan = newScanPage(raw)

	result := s.runScan(r.Context(), raw)
	p.Scan.Result = scanBanner(result)
	s.render(w, result.status(), p)
}

// scanResult 一次 SCAN 的结果；Outcome 决定哪个字段携带详情
type scanResult struct {
	Outcome    monitoring.Outcome
	Vector     ml.FeatureVector
	Diagnosis  ml.Diagnosis
	Incomplete *ml.IncompleteInputError
	Numeric    *ml.NumericFormatError
}

// runScan 编码并预测一次提交，记录统计；HTML 与 JSON 接口共用
func (s *Server) runScan(ctx context.Context, raw ml.RawFormInput) scanResult {
	start := time.Now()
	vector, err := ml.Encode(raw)
	if err != nil {
		res := scanResult{Outcome: monitoring.OutcomeClassifierFailure}
		var incomplete *ml.IncompleteInputError
		var numeric *ml.NumericFormatError
		switch {
		case errors.As(err, &incomplete):
			res = scanResult{Outcome: monitoring.OutcomeIncompleteInput, Incomplete: incomplete}
		case errors.As(err, &numeric):
			res = scanResult{Outcome: monitoring.OutcomeNumericFormat, Numeric: numeric}
		default:
			s.logger.Error("encode failed", zap.String("request_id", GetRequestID(ctx)), zap.Error(err))
		}
		s.metrics.Record(res.Outcome, 0)
		return res
	}

	diagnosis, err := s.predictor.Predict(vector)
	if err != nil {
		s.metrics.Record(monitoring.OutcomeClassifierFailure, 0)
		return scanResult{Outcome: monitoring.OutcomeClassifierFailure, Vector: vector}
	}

	outcome := monitoring.Outcome(diagnosis.String())
	s.metrics.Record(outcome, time.Since(start))
	s.logger.Info("scan complete",
		zap.String("request_id", GetRequestID(ctx)),
		zap.String("diagnosis", diagnosis.String()),
		zap.Duration("elapsed", time.Since(GetStartTime(ctx))),
	)
	return scanResult{Outcome: outcome, Vector: vector, Diagnosis: diagnosis}
}

func (r scanResult) status() int {
	switch r.Outcome {
	case monitoring.OutcomeIncompleteInput, monitoring.OutcomeNumericFormat:
		return http.StatusUnprocessableEntity
	case monitoring.OutcomeClassifierFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func scanBanner(r scanResult) *banner {
	switch r.Outcome {
	case monitoring.OutcomeIncompleteInput:
		return &banner{Kind: "error", Message: msgFillAllFields, Details: r.Incomplete.Labels()}
	case monitoring.OutcomeNumericFormat:
		return &banner{
			Kind:    "error",
			Message: "Error: " + r.Numeric.Label() + " must be a number. " + msgNumericInvalid,
		}
	case monitoring.OutcomeClassifierFailure:
		return &banner{Kind: "error", Message: msgScanFailed}
	default:
		return &banner{Kind: "success", Message: r.Diagnosis.Message()}
	}
}

// handleContact 校验联系表单；消息不会被发送或保存
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, _ := s.sessions.Resolve(w, r)
	s.sessions.Save(id, nav.Contact)

	p := s.newPage(nav.Contact)
	p.Contact.Name = strings.TrimSpace(r.PostForm.Get("name"))
	p.Contact.Email = strings.TrimSpace(r.PostForm.Get("email"))
	p.Contact.Message = strings.TrimSpace(r.PostForm.Get("message"))

	status := http.StatusOK
	if p.Contact.Name == "" || p.Contact.Email == "" || p.Contact.Message == "" {
		p.Contact.Result = &banner{Kind: "error", Message: msgFillAllFields}
		status = http.StatusUnprocessableEntity
	} else {
		p.Contact.Result = &banner{
			Kind:    "success",
			Message: "Thank you, " + p.Contact.Name + "! Your message has been submitted.",
		}
	}
	s.render(w, status, p)
}
