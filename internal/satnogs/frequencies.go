// Package satnogs resolves current downlink frequencies from the
// SatNOGS DB transmitters API.
package satnogs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://db.satnogs.org/api"

// Downlink is the carrier a ground station should expect from a
// satellite, before Doppler.
type Downlink struct {
	NoradID    uint32
	DownlinkHz float64
	UplinkHz   float64 // 0 when the transmitter has no uplink
	Mode       string
}

// Client queries the SatNOGS DB API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client against the public SatNOGS DB. An empty
// baseURL selects the production API; tests point it elsewhere.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// transmitterJSON mirrors the subset of the API payload we consume.
type transmitterJSON struct {
	Description string   `json:"description"`
	Alive       bool     `json:"alive"`
	DownlinkLow *float64 `json:"downlink_low"`
	UplinkLow   *float64 `json:"uplink_low"`
	Mode        string   `json:"mode"`
	NoradCatID  uint32   `json:"norad_cat_id"`
	Status      string   `json:"status"`
}

// ActiveDownlink fetches the satellite's active transmitters and picks
// the first one that actually publishes a downlink frequency.
func (c *Client) ActiveDownlink(ctx context.Context, noradID uint32) (Downlink, error) {
	url := fmt.Sprintf("%s/transmitters/?satellite__norad_cat_id=%d&format=json&status=active", c.baseURL, noradID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Downlink{}, fmt.Errorf("creating SatNOGS request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Downlink{}, fmt.Errorf("querying SatNOGS for NORAD %d: %w", noradID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Downlink{}, fmt.Errorf("unexpected status %d from SatNOGS for NORAD %d", resp.StatusCode, noradID)
	}

	var transmitters []transmitterJSON
	if err := json.NewDecoder(resp.Body).Decode(&transmitters); err != nil {
		return Downlink{}, fmt.Errorf("decoding SatNOGS response: %w", err)
	}

	for _, tx := range transmitters {
		if !tx.Alive || tx.DownlinkLow == nil || *tx.DownlinkLow <= 0 {
			continue
		}
		dl := Downlink{
			NoradID:    noradID,
			DownlinkHz: *tx.DownlinkLow,
			Mode:       tx.Mode,
		}
		if tx.UplinkLow != nil {
			dl.UplinkHz = *tx.UplinkLow
		}
		return dl, nil
	}

	return Downlink{}, fmt.Errorf("no active transmitter with a downlink for NORAD %d", noradID)
}
