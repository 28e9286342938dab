package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"heartbeats/ml"
	"heartbeats/monitoring"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

type schemaField struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Categorical bool     `json:"categorical"`
	Options     []string `json:"options,omitempty"`
}

func handleSchema(w http.ResponseWriter, r *http.Request) {
	fields := make([]schemaField, 0, ml.FeatureCount)
	for _, f := range ml.Fields() {
		sf := schemaField{Name: string(f), Label: f.Label()}
		if table, ok := ml.CodeTableFor(f); ok {
			sf.Categorical = true
			for _, opt := range table.Options() {
				sf.Options = append(sf.Options, opt.Label)
			}
		}
		fields = append(fields, sf)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"features": ml.FeatureNames(),
		"fields":   fields,
	})
}

type predictResponse struct {
	Features  []float64 `json:"features"`
	Label     int       `json:"label"`
	Diagnosis string    `json:"diagnosis"`
	Message   string    `json:"message"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
	Field   string   `json:"field,omitempty"`
}

// handlePredict JSON接口：与 SCAN 相同的编码与预测流程
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeRawInput(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	result := s.runScan(r.Context(), raw)
	switch result.Outcome {
	case monitoring.OutcomeIncompleteInput:
		names := make([]string, len(result.Incomplete.Fields))
		for i, f := range result.Incomplete.Fields {
			names[i] = string(f)
		}
		writeJSON(w, result.status(), errorResponse{
			Error:   "incomplete_input",
			Message: msgFillAllFields,
			Fields:  names,
		})
	case monitoring.OutcomeNumericFormat:
		writeJSON(w, result.status(), errorResponse{
			Error:   "numeric_format",
			Message: msgNumericInvalid,
			Field:   string(result.Numeric.Field),
		})
	case monitoring.OutcomeClassifierFailure:
		writeJSON(w, result.status(), errorResponse{Error: "classifier_failure", Message: msgScanFailed})
	default:
		writeJSON(w, result.status(), predictResponse{
			Features:  result.Vector.Slice(),
			Label:     result.Diagnosis.Label(),
			Diagnosis: result.Diagnosis.String(),
			Message:   result.Diagnosis.Message(),
		})
	}
}

// decodeRawInput accepts strings and JSON numbers; null counts as empty.
func decodeRawInput(r *http.Request) (ml.RawFormInput, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var body map[string]interface{}
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	raw := make(ml.RawFormInput, ml.FeatureCount)
	for _, f := range ml.Fields() {
		value, ok := body[string(f)]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			raw[f] = v
		case json.Number:
			raw[f] = numberText(v)
		case bool:
			raw[f] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("field %s must be a string or number", f)
		}
	}
	return raw, nil
}

// numberText renders integral JSON numbers such as 1.0 or 1e0 as plain
// integers so they match code table labels like "1".
func numberText(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return n.String()
}
