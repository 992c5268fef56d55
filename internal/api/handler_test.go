package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UnknownOlympus/argus/internal/api"
	"github.com/UnknownOlympus/argus/internal/elevation"
	"github.com/UnknownOlympus/argus/internal/framing"
	"github.com/UnknownOlympus/argus/internal/metrics"
	"github.com/UnknownOlympus/argus/internal/models"
	"github.com/UnknownOlympus/argus/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	polyline "github.com/twpayne/go-polyline"
)

func newServer(t *testing.T, framer api.Framer) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	api.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), framer).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newEngine() *framing.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return framing.NewEngine(logger, elevation.NewFlatProvider(), "flat", metrics.NewMetrics(prometheus.NewRegistry()))
}

func post(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(server.URL+api.FramingPath, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Error
}

func TestFramingHandler(t *testing.T) {
	server := newServer(t, newEngine())

	t.Run("frames points", func(t *testing.T) {
		resp := post(t, server, `{"points":[{"lat":0,"lng":0},{"lat":1,"lng":1}],"heading":0}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var pose api.FramingResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pose))
		assert.InDelta(t, 0.5, pose.Center.Latitude, 1e-9)
		assert.InDelta(t, 0.5, pose.Center.Longitude, 1e-9)
		assert.InDelta(t, framing.Tilt, pose.Tilt, 1e-9)
		assert.Greater(t, pose.Range, framing.MinRange)
		assert.Nil(t, pose.Sequence)
	})

	t.Run("echoes sequence", func(t *testing.T) {
		resp := post(t, server, `{"points":[{"lat":10,"lng":20}],"sequence":42}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var pose api.FramingResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pose))
		require.NotNil(t, pose.Sequence)
		assert.Equal(t, int64(42), *pose.Sequence)
		assert.InDelta(t, framing.MinRange, pose.Range, 1e-9)
	})

	t.Run("padding shifts the center", func(t *testing.T) {
		resp := post(t, server, `{"points":[{"lat":0,"lng":0},{"lat":1,"lng":1}],"padding":[0,0,0,0.3]}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var pose api.FramingResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pose))
		assert.Less(t, pose.Center.Longitude, 0.5)
		assert.InDelta(t, 0.5, pose.Center.Latitude, 1e-9)
	})

	t.Run("decodes polyline", func(t *testing.T) {
		encoded := polyline.EncodeCoords([][]float64{{38.5, -120.2}, {40.7, -120.95}, {43.252, -126.453}})
		resp := post(t, server, `{"polyline":`+string(mustJSON(t, string(encoded)))+`}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var pose api.FramingResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&pose))
		assert.InDelta(t, (38.5+43.252)/2, pose.Center.Latitude, 1e-5)
		assert.InDelta(t, (-120.2-126.453)/2, pose.Center.Longitude, 1e-5)
	})

	t.Run("empty input", func(t *testing.T) {
		resp := post(t, server, `{"points":[]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, framing.ErrEmptyInput.Error(), decodeError(t, resp))
	})

	t.Run("invalid padding", func(t *testing.T) {
		resp := post(t, server, `{"points":[{"lat":0,"lng":0}],"padding":[0,0.5,0,0.6]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp), framing.ErrInvalidPadding.Error())
	})

	t.Run("padding with wrong length", func(t *testing.T) {
		resp := post(t, server, `{"points":[{"lat":0,"lng":0}],"padding":[0.1,0.1]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp), "got 2")
	})

	t.Run("invalid point", func(t *testing.T) {
		resp := post(t, server, `{"points":[{"lat":91,"lng":0}]}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp), framing.ErrInvalidPoint.Error())
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := post(t, server, `{"points":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp), "invalid request body")
	})

	t.Run("malformed polyline", func(t *testing.T) {
		resp := post(t, server, `{"polyline":"_p~iF"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp), "invalid polyline")
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(server.URL + api.FramingPath)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
	})
}

func TestFramingHandlerInternalError(t *testing.T) {
	framer := mocks.NewFramer(t)
	framer.On("Frame", mock.Anything, mock.AnythingOfType("framing.Request")).
		Return(models.CameraPose{}, assert.AnError).Once()
	server := newServer(t, framer)

	resp := post(t, server, `{"points":[{"lat":1,"lng":2}]}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal error", decodeError(t, resp))
}

func TestFramingHandlerPassesRequest(t *testing.T) {
	framer := mocks.NewFramer(t)
	expected := framing.Request{
		Points:  []models.Point{{Latitude: 1, Longitude: 2, Altitude: 3}},
		Heading: 90,
		Padding: models.DesktopPadding,
	}
	framer.On("Frame", mock.Anything, expected).Return(models.CameraPose{Heading: 90}, nil).Once()
	server := newServer(t, framer)

	resp := post(t, server, `{"points":[{"lat":1,"lng":2,"altitude":3}],"heading":90,"padding":[0.05,0.05,0.05,0.35]}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pose api.FramingResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pose))
	assert.InDelta(t, 90, pose.Heading, 1e-9)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return data
}
