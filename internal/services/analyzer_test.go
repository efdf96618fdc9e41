package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

func TestAnalyzerClient_SendsBothFiles(t *testing.T) {
	resume := pdfFile(t, "resume.pdf", 1)
	resumeContent := resume.Content

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)

		jd, jdHeader, err := r.FormFile("jd_file")
		if !assert.NoError(t, err) {
			return
		}
		defer jd.Close()
		jdBody, _ := io.ReadAll(jd)
		assert.Equal(t, "jd.txt", jdHeader.Filename)
		assert.Equal(t, "text/plain", jdHeader.Header.Get("Content-Type"))
		assert.Equal(t, "Go engineer", string(jdBody))

		resume, resumeHeader, err := r.FormFile("resume_file")
		if !assert.NoError(t, err) {
			return
		}
		defer resume.Close()
		resumeBody, _ := io.ReadAll(resume)
		assert.Equal(t, "resume.pdf", resumeHeader.Filename)
		assert.Equal(t, "application/pdf", resumeHeader.Header.Get("Content-Type"))
		assert.Equal(t, resumeContent, resumeBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"overall_percentage": 82, "job_title": "Backend Engineer"}`))
	}))
	defer server.Close()

	client := NewAnalyzerClient(server.URL, 0)
	payload, err := client.Analyze(context.Background(), textFile("jd.txt", "Go engineer"), resume)

	require.NoError(t, err)
	assert.Equal(t, 82.0, payload.OverallPercentage.Float())
	assert.Equal(t, "Backend Engineer", payload.JobTitle)
	assert.EqualValues(t, 1, requests.Load())
}

func TestAnalyzerClient_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "boom"}`))
	}))
	defer server.Close()

	_, err := NewAnalyzerClient(server.URL, 0).Analyze(context.Background(), textFile("jd.txt", "a"), textFile("cv.txt", "b"))

	var serviceErr *ServiceError
	require.True(t, errors.As(err, &serviceErr), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, serviceErr.StatusCode)
	assert.Equal(t, "Failed to analyze files: HTTP error! status: 500", err.Error())
}

func TestAnalyzerClient_MalformedResponse(t *testing.T) {
	for name, body := range map[string]string{
		"html":  "<html>Bad Gateway</html>",
		"array": `[{"overall_percentage": 80}]`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := NewAnalyzerClient(server.URL, 0).Analyze(context.Background(), textFile("jd.txt", "a"), textFile("cv.txt", "b"))

			var malformedErr *MalformedResponseError
			assert.True(t, errors.As(err, &malformedErr), "got %v", err)
		})
	}
}

func TestAnalyzerClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := NewAnalyzerClient(endpoint, time.Second).Analyze(context.Background(), textFile("jd.txt", "a"), textFile("cv.txt", "b"))

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "got %v", err)
}

func TestAnalyzerClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewAnalyzerClient(server.URL, 20*time.Millisecond).Analyze(context.Background(), textFile("jd.txt", "a"), textFile("cv.txt", "b"))

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "got %v", err)
}

func TestAnalyzerClient_CancelledMidFlight(t *testing.T) {
	release := make(chan struct{})
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte(`{"overall_percentage": 82}`))
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	payload, err := NewAnalyzerClient(server.URL, 0).Analyze(ctx, textFile("jd.txt", "a"), textFile("cv.txt", "b"))

	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, context.Canceled)
	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "got %v", err)
	assert.EqualValues(t, 1, requests.Load())
}

func TestAnalyzerClient_DeadlineMidFlight(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewAnalyzerClient(server.URL, 0).Analyze(ctx, textFile("jd.txt", "a"), textFile("cv.txt", "b"))

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr), "got %v", err)
}

func TestUploadSession_CancelledSubmissionFails(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	session := newTestSession(NewAnalyzerClient(server.URL, 0))
	selectBoth(t, session)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	assert.ErrorIs(t, session.Submit(ctx), context.Canceled)
	snapshot := session.Snapshot()
	assert.Equal(t, models.StatusFailed, snapshot.Status)
	require.NotNil(t, snapshot.Error)
	assert.Equal(t, models.ErrorKindTransport, snapshot.Error.Kind)
}

func TestAnalyzerClient_ContextAlreadyDone(t *testing.T) {
	client := NewAnalyzerClient("http://127.0.0.1:1/unused", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Analyze(ctx, textFile("jd.txt", "a"), textFile("cv.txt", "b"))
	assert.ErrorIs(t, err, context.Canceled)

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()
	_, err = client.Analyze(expired, textFile("jd.txt", "a"), textFile("cv.txt", "b"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyzerClient_MissingFiles(t *testing.T) {
	_, err := NewAnalyzerClient("http://127.0.0.1:1/unused", 0).Analyze(context.Background(), textFile("jd.txt", "a"), nil)

	assert.ErrorIs(t, err, ErrMissingFiles)
}

func TestAnalyzerClient_RequestTimeout(t *testing.T) {
	client := &analyzerClient{timeout: 5 * time.Second}

	_, ok := (&analyzerClient{}).requestTimeout(context.Background())
	assert.False(t, ok)

	timeout, ok := client.requestTimeout(context.Background())
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, timeout)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	timeout, ok = client.requestTimeout(ctx)
	assert.True(t, ok)
	assert.LessOrEqual(t, timeout, time.Second)
}
