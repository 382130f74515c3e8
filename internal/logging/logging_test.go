package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := SetupLogging("info")
	logger.Out = buf
	return logger
}

func TestSetupLogging_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, SetupLogging("debug").Level)
	assert.Equal(t, logrus.WarnLevel, SetupLogging("warn").Level)
	assert.Equal(t, logrus.InfoLevel, SetupLogging("nonsense").Level)
}

func TestGetLogData_Absent(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))
}

func TestGetLogData_RoundTrip(t *testing.T) {
	logData := NewLogData(SetupLogging("info"))
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLogData_FieldsEmitted(t *testing.T) {
	var buf bytes.Buffer
	logData := NewLogData(bufferedLogger(&buf))
	logData.AddData("userID", "abc")
	stop := logData.AddTiming("dashboardMs")
	stop()

	logData.Log().Info("done")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["userID"])
	assert.Contains(t, line, "dashboardMs")
	assert.Equal(t, "info", line["loglevel"])
}

func TestLoggingWrapper_Complete(t *testing.T) {
	var buf bytes.Buffer
	var seen *LogData
	handler := LoggingWrapper("Ping", bufferedLogger(&buf), func(w http.ResponseWriter, r *http.Request, logData *LogData) error {
		seen = GetLogData(r.Context())
		assert.Same(t, logData, seen)
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, seen)
	assert.True(t, strings.Contains(buf.String(), "Handler.Ping.Complete"))
}

func TestLoggingWrapper_Error(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingWrapper("Ping", bufferedLogger(&buf), func(w http.ResponseWriter, r *http.Request, logData *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("bad ping")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Contains(t, buf.String(), "Handler.Ping.Error")
	assert.Contains(t, buf.String(), "bad ping")
}

func TestLogData_NilIsNoop(t *testing.T) {
	var logData *LogData

	assert.NotPanics(t, func() {
		logData.AddTiming("x")()
		logData.AddToExistingTiming("y")()
		logData.AddData("k", "v")
	})
}
