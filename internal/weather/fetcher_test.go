package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFetcher(Config{BaseURL: srv.URL})
}

func TestFetchPrimary(t *testing.T) {
	f := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "%C+%t", r.URL.Query().Get("format"))
		w.Write([]byte("Partly cloudy +11°C\n"))
	})

	res, err := f.Fetch(context.Background(), "Garrynacurry")
	require.NoError(t, err)
	assert.Equal(t, SourcePrimary, res.Source)
	assert.Equal(t, "Partly cloudy", res.Description)
	assert.Equal(t, 11, res.TempC)
	assert.True(t, res.HasTemp)
	assert.Equal(t, "Partly cloudy +11°C", res.Line())
}

func TestFetchFallsBackOnImplausiblePrimary(t *testing.T) {
	f := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("format") {
		case "%C+%t":
			w.Write([]byte("Unknown location; please try ~Garrynacurry"))
		case "3":
			w.Write([]byte("Garrynacurry: Light rain +9°C"))
		}
	})

	res, err := f.Fetch(context.Background(), "Garrynacurry")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "Light rain", res.Description)
	assert.Equal(t, 9, res.TempC)
}

func TestFetchFallsBackOnServerError(t *testing.T) {
	f := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") == "%C+%t" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("Garrynacurry: Sunny +23°C"))
	})

	res, err := f.Fetch(context.Background(), "Garrynacurry")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "Sunny +23°C", res.Line())
}

func TestFetchAllAttemptsFail(t *testing.T) {
	f := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := f.Fetch(context.Background(), "nowhere")
	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		in      string
		desc    string
		temp    int
		hasTemp bool
	}{
		{"Sunny +23°C", "Sunny", 23, true},
		{"Light drizzle -1°C", "Light drizzle", -1, true},
		{"Mild, rainy. 11C", "Mild, rainy.", 11, true},
		{"Overcast", "Overcast", 0, false},
		{"", "", 0, false},
	}

	for _, tt := range tests {
		desc, temp, hasTemp := parseLine(tt.in)
		assert.Equal(t, tt.desc, desc, tt.in)
		assert.Equal(t, tt.temp, temp, tt.in)
		assert.Equal(t, tt.hasTemp, hasTemp, tt.in)
	}
}

func TestParseManual(t *testing.T) {
	res := ParseManual("Mild, rainy. 11C")
	assert.Equal(t, SourceManual, res.Source)
	assert.Equal(t, "Mild, rainy. +11°C", res.Line())

	free := ParseManual("miserable out")
	assert.Equal(t, "miserable out", free.Line())
	assert.False(t, free.HasTemp)
}

func TestPlausible(t *testing.T) {
	assert.True(t, plausible("Sunny +23°C"))
	assert.False(t, plausible(""))
	assert.False(t, plausible("Unknown location; please try X"))
	assert.False(t, plausible("ERROR: something broke"))
	assert.False(t, plausible("this response is far too long to be a weather report "+
		"because it keeps going and going well past the hundred character cap"))
}
