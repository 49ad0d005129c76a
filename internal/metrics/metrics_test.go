// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQueryLogWrite(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		err      error
		rejected bool
		result   string
	}{
		{"success", "test-success", nil, false, "success"},
		{"failure", "test-failure", errors.New("disk full"), false, "failure"},
		{"rejected", "test-rejected", nil, true, "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(QueryLogWrites.WithLabelValues(tt.backend, tt.result))
			RecordQueryLogWrite(tt.backend, 5*time.Millisecond, tt.err, tt.rejected)
			after := testutil.ToFloat64(QueryLogWrites.WithLabelValues(tt.backend, tt.result))
			if after-before != 1 {
				t.Errorf("%s counter moved by %v, want 1", tt.result, after-before)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total moved by %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordSimilarityLoad(t *testing.T) {
	RecordSimilarityLoad("tags", 1500*time.Millisecond)
	if got := testutil.ToFloat64(SimilarityLoadDuration.WithLabelValues("tags")); got != 1.5 {
		t.Errorf("load seconds = %v, want 1.5", got)
	}
}
