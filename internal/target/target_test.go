package target

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedoc/internal/config"
	"storedoc/pkg/logging"
)

func applianceProfile(t *testing.T, srv *httptest.Server) config.Profile {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	profile := config.DefaultProfile()
	profile.Host = u.Hostname()
	profile.Port = port
	profile.Scheme = "http"
	profile.Username = "admin"
	profile.Password = "secret"
	return profile
}

func applianceMux(clusterStatus int, clusterBody any) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok"})
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/rsf/clusters", func(w http.ResponseWriter, r *http.Request) {
		if clusterStatus != http.StatusOK {
			w.WriteHeader(clusterStatus)
			return
		}
		json.NewEncoder(w).Encode(clusterBody)
	})
	return mux
}

func TestResolve_Unclustered(t *testing.T) {
	srv := httptest.NewServer(applianceMux(http.StatusOK, map[string]any{"data": []any{}}))
	t.Cleanup(srv.Close)

	set, err := Resolve(context.Background(), logging.New(false, io.Discard), applianceProfile(t, srv))
	require.NoError(t, err)
	require.Len(t, set.Targets, 1)
	assert.NoError(t, set.Logout(context.Background()))
}

func TestResolve_NotFoundMeansNoPartner(t *testing.T) {
	srv := httptest.NewServer(applianceMux(http.StatusNotFound, nil))
	t.Cleanup(srv.Close)

	set, err := Resolve(context.Background(), logging.New(false, io.Discard), applianceProfile(t, srv))
	require.NoError(t, err)
	assert.Len(t, set.Targets, 1)
}

func TestResolve_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	_, err := Resolve(context.Background(), logging.New(false, io.Discard), applianceProfile(t, srv))
	assert.Error(t, err)
}

func TestPickPartner(t *testing.T) {
	resp := map[string]any{"data": []any{
		map[string]any{
			"name": "ha-pair",
			"nodes": []any{
				map[string]any{"machineName": "nas-01", "ipAddress": "10.0.0.1"},
				map[string]any{"machineName": "nas-02", "ipAddress": "10.0.0.2"},
			},
		},
	}}

	host, name := pickPartner(resp, "nas-01")
	assert.Equal(t, "10.0.0.2", host)
	assert.Equal(t, "nas-02", name)
}

func TestPickPartner_LocalOnly(t *testing.T) {
	resp := map[string]any{"data": []any{
		map[string]any{
			"nodes": []any{
				map[string]any{"machineName": "nas-01", "ipAddress": "10.0.0.1"},
			},
		},
	}}

	host, name := pickPartner(resp, "nas-01")
	assert.Empty(t, host)
	assert.Empty(t, name)
}

func TestPickPartner_MalformedShapes(t *testing.T) {
	for _, resp := range []any{nil, "oops", map[string]any{}, map[string]any{"data": []any{}}} {
		host, _ := pickPartner(resp, "nas-01")
		assert.Empty(t, host)
	}
}
