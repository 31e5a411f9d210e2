package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
	phttp "brandgate/internal/platform/net/http"
	sigdomain "brandgate/internal/services/signals/domain"
	sigservice "brandgate/internal/services/signals/service"
)

type memTraces struct {
	traces []sigdomain.RunTrace
	fail   bool
}

func (m *memTraces) Write(_ context.Context, tr sigdomain.RunTrace) error {
	if m.fail {
		return perr.New(perr.ErrorCodeDB, "clickhouse down")
	}
	m.traces = append(m.traces, tr)
	return nil
}

func testServer(traces sigdomain.TraceWriterPort) *httptest.Server {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{
		Signals: sigservice.New(nil, sigservice.Config{}),
		Traces:  traces,
	})
	return httptest.NewServer(r.Mux())
}

func postJSON(t *testing.T, url, body string) (int, phttp.Envelope) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	var env phttp.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp.StatusCode, env
}

func TestGateValidateEndpoint(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	status, env := postJSON(t, srv.URL+"/gate/validate", `{"config":{"name":"bare"}}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	data, _ := json.Marshal(env.Data)
	var out struct {
		Status  ucr.ValidationStatus `json:"status"`
		IsValid bool                 `json:"isValid"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if out.Status != ucr.StatusBlocked || out.IsValid {
		t.Fatalf("result = %+v, a bare record blocks", out)
	}
}

func TestGateGuardrailCheckEndpoint(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	body := `{
		"config": {
			"name": "acme",
			"negativeScope": {
				"excludedKeywords": ["cheap"],
				"enforcementRules": {"hardExclusion": true}
			}
		},
		"text": "Buy cheap shoes"
	}`
	status, env := postJSON(t, srv.URL+"/gate/guardrails/check", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	data, _ := json.Marshal(env.Data)
	var out struct {
		IsBlocked  bool `json:"isBlocked"`
		Violations []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"violations"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !out.IsBlocked || len(out.Violations) != 1 || out.Violations[0].Value != "cheap" {
		t.Fatalf("result = %+v", out)
	}
}

func TestGateGuardrailCheckRequiresText(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	status, env := postJSON(t, srv.URL+"/gate/guardrails/check", `{"config":{"name":"x"}}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	if env.Code != perr.ErrorCodeValidation {
		t.Fatalf("code = %v", env.Code)
	}
}

func TestGateExclusionsAddEndpoint(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	body := `{"config":{"name":"acme"},"type":"keyword","value":"cheap","reason":"brand safety"}`
	status, env := postJSON(t, srv.URL+"/gate/exclusions/add", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	data, _ := json.Marshal(env.Data)
	var out ucr.Configuration
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(out.NegativeScope.KeywordExclusions) != 1 || len(out.NegativeScope.AuditLog) != 1 {
		t.Fatalf("returned scope = %+v", out.NegativeScope)
	}
}

func TestGateExclusionsAddRejectsBadType(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	status, _ := postJSON(t, srv.URL+"/gate/exclusions/add",
		`{"config":{"name":"x"},"type":"bogus","value":"cheap"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 from dto validation", status)
	}
}

func TestSignalsDetectEndpoint(t *testing.T) {
	traces := &memTraces{}
	srv := testServer(traces)
	defer srv.Close()

	body := `{
		"config": {
			"name": "acme launch",
			"brand": {"name":"Acme","domain":"acme.com","industry":"saas","targetMarket":"smb"},
			"categoryDefinition": {"primaryCategory":"crm software"},
			"competitors": [{
				"name":"Rival","domain":"rival.com","tier":"tier1","status":"approved",
				"serpOverlap": 85,
				"evidence": {"topOverlapKeywords":["crm pricing"],"serpExamples":["best crm"]}
			}],
			"demandDefinition": {"brandKeywords":{"seedTerms":["acme crm"]}},
			"strategicIntent": {"primaryGoal":"grow"},
			"governance": {"humanVerified": true}
		},
		"input": {}
	}`
	status, env := postJSON(t, srv.URL+"/signals/detect", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %+v", status, env)
	}

	data, _ := json.Marshal(env.Data)
	var out sigdomain.DetectResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if out.Summary.Total == 0 || len(out.Signals) != out.Summary.Total {
		t.Fatalf("result = %+v", out.Summary)
	}
	if len(traces.traces) != 1 || traces.traces[0].RunID != out.Trace.RunID {
		t.Fatalf("trace not persisted: %+v", traces.traces)
	}
}

func TestSignalsDetectBlockedConfig(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	status, env := postJSON(t, srv.URL+"/signals/detect", `{"config":{"name":"bare"},"input":{}}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %+v", status, env)
	}
	if env.Code != perr.ErrorCodeContextBlocked {
		t.Fatalf("code = %v", env.Code)
	}
}

func TestSignalsDetectTraceFailureIsSwallowed(t *testing.T) {
	srv := testServer(&memTraces{fail: true})
	defer srv.Close()

	body := `{
		"config": {
			"name": "acme",
			"brand": {"domain":"acme.com"},
			"categoryDefinition": {"primaryCategory":"crm"}
		},
		"input": {}
	}`
	status, _ := postJSON(t, srv.URL+"/signals/detect", body)
	if status != http.StatusOK {
		t.Fatalf("status = %d, trace persistence must stay best effort", status)
	}
}

func TestSignalsDetectRequiresConfigOrID(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	status, env := postJSON(t, srv.URL+"/signals/detect", `{"input":{}}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body %+v", status, env)
	}
}

func TestContextsUnavailableWithoutStore(t *testing.T) {
	srv := testServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/contexts/ctx-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
