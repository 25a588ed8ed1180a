// Package param is the binding to the csh parameter system. Checks treat it
// as an opaque synchronous accessor: one blocking request per call, failures
// surface as errors.
package param

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spaceinventor/sidoc/internal/models"
)

// Client reads remote parameters and interface statistics.
type Client interface {
	// Get reads a named parameter from a node.
	Get(name string, node int) (float64, error)
	// Ifstat takes a fresh statistics snapshot of a named interface on a node.
	Ifstat(name string, node int) (*models.IfStat, error)
}

// BridgeClient talks to a csh param bridge over HTTP.
type BridgeClient struct {
	baseURL string
	client  *http.Client
}

func NewBridgeClient(baseURL string) *BridgeClient {
	return &BridgeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BridgeClient) Get(name string, node int) (float64, error) {
	var resp struct {
		Value float64 `json:"value"`
	}
	if err := b.get("/param/get", name, node, &resp); err != nil {
		return 0, err
	}
	return resp.Value, nil
}

func (b *BridgeClient) Ifstat(name string, node int) (*models.IfStat, error) {
	var stats models.IfStat
	if err := b.get("/ifstat", name, node, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (b *BridgeClient) get(path, name string, node int, out interface{}) error {
	q := url.Values{}
	q.Set("name", name)
	q.Set("node", strconv.Itoa(node))

	resp, err := b.client.Get(b.baseURL + path + "?" + q.Encode())
	if err != nil {
		return fmt.Errorf("param bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("param bridge returned status %d for %s on node %d", resp.StatusCode, name, node)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("param bridge sent invalid JSON: %w", err)
	}
	return nil
}
