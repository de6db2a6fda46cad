package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTransactionsRecorded(t *testing.T) {
	before := testutil.ToFloat64(TransactionsRecorded.WithLabelValues("2024-03"))
	TransactionsRecorded.WithLabelValues("2024-03").Inc()
	after := testutil.ToFloat64(TransactionsRecorded.WithLabelValues("2024-03"))

	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestHTTPRequestsTotal(t *testing.T) {
	c := HTTPRequestsTotal.WithLabelValues("/api/health", "GET", "200")
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
}
