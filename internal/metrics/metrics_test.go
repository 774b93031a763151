package metrics

import (
	"net/http"
	"testing"
	"time"
)

// Ensure NoOpMetrics methods do not panic and global functions delegate without error
func TestNoOpMetricsAndDelegates(t *testing.T) {
	m := &NoOpMetrics{}
	m.RecordHTTPRequest("GET", "/x", 200, time.Millisecond)
	m.RecordReportProcessed("src", "ok")
	m.RecordPipelineRun("src", time.Millisecond)
	m.RecordDedupeRun(10, 3, time.Millisecond)
	m.RecordGeocodeLookup("hit")
	m.RecordAllocation(5)
	m.SetDBConnectionsActive(1)
	m.RecordDBQuery("exec", "ok")
	h := m.Handler()
	if h == nil {
		t.Fatalf("NoOp handler is nil")
	}

	// Delegates
	RecordHTTPRequest("GET", "/x", 200, time.Millisecond)
	RecordReportProcessed("src", "ok")
	RecordPipelineRun("src", time.Millisecond)
	RecordDedupeRun(10, 3, time.Millisecond)
	RecordGeocodeLookup("miss")
	RecordAllocation(2)
	SetDBConnectionsActive(2)
	RecordDBQuery("query", "ok")

	// Handler should be NotFound
	req, _ := http.NewRequest("GET", "/metrics", nil)
	rw := httptestResponseRecorder{}
	h.ServeHTTP(&rw, req)
	if rw.status == 0 {
		t.Errorf("expected status set, got 0")
	}
}

type httptestResponseRecorder struct {
	header http.Header
	status int
}

func (w *httptestResponseRecorder) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}
func (w *httptestResponseRecorder) Write(b []byte) (int, error) { return len(b), nil }
func (w *httptestResponseRecorder) WriteHeader(code int)        { w.status = code }
