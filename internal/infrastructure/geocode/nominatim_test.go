package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
	return client, srv
}

func TestResolve_Success(t *testing.T) {
	var gotQuery string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"17.2473","lon":"80.1514"}]`))
	})
	defer srv.Close()

	coord, err := client.Resolve(context.Background(), "Khammam", "Telangana")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if coord.Lat != 17.2473 || coord.Lon != 80.1514 {
		t.Errorf("coordinate = %+v", coord)
	}
	if gotQuery != "Khammam, Telangana, India" {
		t.Errorf("query = %q, want India-constrained city+state", gotQuery)
	}
}

func TestResolve_EmptyResults(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	defer srv.Close()

	_, err := client.Resolve(context.Background(), "Nowhere", "Telangana")
	if !errors.Is(err, domain.ErrCityNotGeocoded) {
		t.Fatalf("expected ErrCityNotGeocoded, got %v", err)
	}
}

func TestResolve_ServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.Resolve(context.Background(), "Khammam", "Telangana")
	if !errors.Is(err, domain.ErrCityNotGeocoded) {
		t.Fatalf("expected ErrCityNotGeocoded, got %v", err)
	}
}

func TestResolve_MalformedPayload(t *testing.T) {
	cases := map[string]string{
		"not json":          `{{{`,
		"non-numeric coord": `[{"lat":"abc","lon":"80.1"}]`,
		"out of range":      `[{"lat":"95.0","lon":"80.1"}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			defer srv.Close()

			_, err := client.Resolve(context.Background(), "Khammam", "Telangana")
			if !errors.Is(err, domain.ErrCityNotGeocoded) {
				t.Fatalf("expected ErrCityNotGeocoded, got %v", err)
			}
		})
	}
}

func TestResolve_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // closed before use

	client := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second}, zerolog.Nop())
	_, err := client.Resolve(context.Background(), "Khammam", "Telangana")
	if !errors.Is(err, domain.ErrCityNotGeocoded) {
		t.Fatalf("expected ErrCityNotGeocoded, got %v", err)
	}
}
