package hcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acrwebhooks/internal/config"
)

// testServer mocks the Hetzner Cloud API.
type testServer struct {
	server *httptest.Server
	mux    *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mux := http.NewServeMux()
	ts := &testServer{server: httptest.NewServer(mux), mux: mux}
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) realClient() *RealClient {
	return NewRealClient("test-token",
		WithHCloudClient(hcloud.NewClient(
			hcloud.WithToken("test-token"),
			hcloud.WithEndpoint(ts.server.URL),
		)),
		WithTimeouts(config.TestTimeouts()),
	)
}

func (ts *testServer) handleFunc(pattern string, handler http.HandlerFunc) {
	ts.mux.HandleFunc(pattern, handler)
}

func jsonResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func TestRealClient_CreateSSHKey_WithHTTPMock(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body schema.SSHKeyCreateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acrw-engine-key-1", body.Name)
		jsonResponse(w, http.StatusCreated, schema.SSHKeyCreateResponse{
			SSHKey: schema.SSHKey{ID: 1001, Name: body.Name, PublicKey: body.PublicKey},
		})
	})

	id, err := ts.realClient().CreateSSHKey(context.Background(), "acrw-engine-key-1", "ssh-ed25519 AAAA", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), id)
}

func TestRealClient_DeleteSSHKey_WithHTTPMock(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	deleted := false
	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "key-to-delete" {
			jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{
				SSHKeys: []schema.SSHKey{{ID: 1050, Name: "key-to-delete"}},
			})
			return
		}
		jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{SSHKeys: []schema.SSHKey{}})
	})
	ts.handleFunc("/ssh_keys/1050", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	c := ts.realClient()
	require.NoError(t, c.DeleteSSHKey(context.Background(), "key-to-delete"))
	assert.True(t, deleted)

	// Missing keys are not an error.
	require.NoError(t, c.DeleteSSHKey(context.Background(), "missing"))
}

func TestRealClient_CreateServer_WithHTTPMock(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.handleFunc("/server_types", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.ServerTypeListResponse{
			ServerTypes: []schema.ServerType{{ID: 1, Name: "cx22", Architecture: "x86"}},
		})
	})
	ts.handleFunc("/images", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "docker-ce", r.URL.Query().Get("name"))
		assert.Equal(t, "x86", r.URL.Query().Get("architecture"))
		jsonResponse(w, http.StatusOK, schema.ImageListResponse{
			Images: []schema.Image{{ID: 2, Name: hcloud.Ptr("docker-ce"), Type: "app", Status: "available", Architecture: "x86"}},
		})
	})
	ts.handleFunc("/locations", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.LocationListResponse{
			Locations: []schema.Location{{ID: 3, Name: "nbg1"}},
		})
	})
	ts.handleFunc("/servers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acrw-engine-1", body["name"])
		jsonResponse(w, http.StatusCreated, schema.ServerCreateResponse{
			Server: schema.Server{ID: 42, Name: "acrw-engine-1"},
			Action: schema.Action{ID: 5, Status: "success", Progress: 100},
		})
	})

	id, err := ts.realClient().CreateServer(context.Background(), HostSpec{
		Name:       "acrw-engine-1",
		Image:      "docker-ce",
		ServerType: "cx22",
		Location:   "nbg1",
		SSHKeyIDs:  []int64{1001},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestRealClient_CreateServer_Validation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	_, err := ts.realClient().CreateServer(context.Background(), HostSpec{Name: "x"})
	require.Error(t, err)
}

func TestRealClient_GetServerIP_WithHTTPMock(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.handleFunc("/servers", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "acrw-engine-1" {
			jsonResponse(w, http.StatusOK, schema.ServerListResponse{
				Servers: []schema.Server{{
					ID:   42,
					Name: "acrw-engine-1",
					PublicNet: schema.ServerPublicNet{
						IPv4: schema.ServerPublicNetIPv4{IP: "203.0.113.42"},
					},
				}},
			})
			return
		}
		jsonResponse(w, http.StatusOK, schema.ServerListResponse{Servers: []schema.Server{}})
	})

	c := ts.realClient()

	ip, err := c.GetServerIP(context.Background(), "acrw-engine-1")
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.42", ip)

	_, err = c.GetServerIP(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRealClient_DeleteServer_WithHTTPMock(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	ts.handleFunc("/servers", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "acrw-engine-1" {
			jsonResponse(w, http.StatusOK, schema.ServerListResponse{
				Servers: []schema.Server{{ID: 789, Name: "acrw-engine-1"}},
			})
			return
		}
		jsonResponse(w, http.StatusOK, schema.ServerListResponse{Servers: []schema.Server{}})
	})
	ts.handleFunc("/servers/789", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			jsonResponse(w, http.StatusOK, schema.ServerDeleteResponse{
				Action: schema.Action{ID: 1, Status: "success", Progress: 100},
			})
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	require.NoError(t, ts.realClient().DeleteServer(context.Background(), "acrw-engine-1"))
}
