package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.reliefops.example.com"
	}
	return &Client{BaseURL: baseURL, APIKey: apiKey, HTTP: http.DefaultClient}
}

func (c *Client) headers(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

func (c *Client) Events(params map[string]string) (*http.Response, error) {
	u, _ := url.Parse(c.BaseURL + "/v1/events")
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	req, _ := http.NewRequest("GET", u.String(), nil)
	c.headers(req)
	return c.HTTP.Do(req)
}

func (c *Client) Event(id string) (map[string]interface{}, error) {
	req, _ := http.NewRequest("GET", c.BaseURL+"/v1/events/"+url.PathEscape(id), nil)
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get event: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dedupe submits a batch of raw reports for clustering. reports must
// marshal to a JSON array.
func (c *Client) Dedupe(reports interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(reports)
	if err != nil {
		return nil, err
	}
	req, _ := http.NewRequest("POST", c.BaseURL+"/v1/dedupe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dedupe: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Allocate requests a supply allocation report. With no event IDs the
// server allocates across all stored events.
func (c *Client) Allocate(eventIDs []string) (map[string]interface{}, error) {
	var req *http.Request
	if len(eventIDs) > 0 {
		body, err := json.Marshal(map[string][]string{"event_ids": eventIDs})
		if err != nil {
			return nil, err
		}
		req, _ = http.NewRequest("POST", c.BaseURL+"/v1/allocations", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest("POST", c.BaseURL+"/v1/allocations", nil)
	}
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("allocate: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Inventory() (map[string]interface{}, error) {
	req, _ := http.NewRequest("GET", c.BaseURL+"/v1/inventory", nil)
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get inventory: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetInventory(food, water, medicine, shelter float64) (map[string]interface{}, error) {
	body := fmt.Sprintf(`{"food":%g,"water":%g,"medicine":%g,"shelter":%g}`, food, water, medicine, shelter)
	req, _ := http.NewRequest("PUT", c.BaseURL+"/v1/inventory", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	c.headers(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("set inventory: unexpected status %d", resp.StatusCode)
	}
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
