package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/younglafire/fruitfarm/internal/repository"
)

func TestEventsHandler_ListParsesFilter(t *testing.T) {
	svc := &mockEventLogService{}
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.On("GetEvents", mock.Anything, mock.MatchedBy(func(f repository.EventLogFilter) bool {
		return f.Owner != nil && *f.Owner == "0xbob" &&
			f.EventType != nil && *f.EventType == "land.planted" &&
			f.Since != nil && f.Since.Equal(since) &&
			f.Until == nil && f.Limit == 5
	})).Return([]repository.EventLogEntry{{ID: 7, EventType: "land.planted"}}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/events?owner=0xbob&type=land.planted&since=2026-01-02T03:04:05Z&limit=5", nil)
	NewEventsHandler(svc).HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]repository.EventLogEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].ID)
	svc.AssertExpectations(t)
}

func TestEventsHandler_ListLimits(t *testing.T) {
	tests := []struct {
		query         string
		expectedLimit int
	}{
		{"", DefaultEventLimit},
		{"?limit=0", MaxEventLimit},
		{"?limit=50000", MaxEventLimit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc := &mockEventLogService{}
			svc.On("GetEvents", mock.Anything, mock.MatchedBy(func(f repository.EventLogFilter) bool {
				return f.Limit == tt.expectedLimit
			})).Return(nil, nil)

			rec := httptest.NewRecorder()
			NewEventsHandler(svc).HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events"+tt.query, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[]`, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestEventsHandler_BadQuery(t *testing.T) {
	for _, q := range []string{"?since=yesterday", "?limit=abc", "?limit=-1"} {
		t.Run(q, func(t *testing.T) {
			svc := &mockEventLogService{}
			rec := httptest.NewRecorder()
			NewEventsHandler(svc).HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events"+q, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "GetEvents")
		})
	}
}

func TestEventsHandler_Export(t *testing.T) {
	svc := &mockEventLogService{}
	svc.On("Export", mock.Anything, mock.Anything, mock.MatchedBy(func(f repository.EventLogFilter) bool {
		return f.Limit == 0
	})).Run(func(args mock.Arguments) {
		_, _ = args.Get(1).(io.Writer).Write([]byte("gzdata"))
	}).Return(3, nil)

	rec := httptest.NewRecorder()
	NewEventsHandler(svc).HandleExport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/export", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/gzip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "events.jsonl.gz")
	assert.True(t, bytes.Equal([]byte("gzdata"), rec.Body.Bytes()))
}

func TestEventsHandler_ExportFailureBeforeWrite(t *testing.T) {
	svc := &mockEventLogService{}
	svc.On("Export", mock.Anything, mock.Anything, mock.Anything).Return(0, errors.New("db down"))

	rec := httptest.NewRecorder()
	NewEventsHandler(svc).HandleExport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}
