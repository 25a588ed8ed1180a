package param

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/param/get", r.URL.Path)
		assert.Equal(t, "psu_voltage_out", r.URL.Query().Get("name"))
		assert.Equal(t, "4", r.URL.Query().Get("node"))
		w.Write([]byte(`{"value": 12.125}`))
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL)
	v, err := c.Get("psu_voltage_out", 4)
	require.NoError(t, err)
	assert.Equal(t, 12.125, v)
}

func TestBridgeIfstat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ifstat", r.URL.Path)
		assert.Equal(t, "CAN0", r.URL.Query().Get("name"))
		w.Write([]byte(`{"tx": 100, "rx": 90, "drop": 5, "tx_error": 1, "autherr": 0, "txbytes": 6400}`))
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL)
	stats, err := c.Ifstat("CAN0", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), stats.TX)
	assert.Equal(t, uint64(90), stats.RX)
	assert.Equal(t, uint64(5), stats.Drop)
	assert.Equal(t, uint64(1), stats.TXError)
	assert.Equal(t, uint64(6400), stats.TXBytes)
}

func TestBridgeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such node", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL)

	_, err := c.Get("psu_voltage_out", 99)
	assert.ErrorContains(t, err, "status 404")

	_, err = c.Ifstat("CAN0", 99)
	assert.ErrorContains(t, err, "status 404")
}

func TestBridgeInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewBridgeClient(srv.URL)
	_, err := c.Ifstat("CAN0", 1)
	assert.ErrorContains(t, err, "invalid JSON")
}

func TestLocalGetUnsupported(t *testing.T) {
	_, err := LocalClient{}.Get("psu_voltage_out", 4)
	assert.Error(t, err)
}
