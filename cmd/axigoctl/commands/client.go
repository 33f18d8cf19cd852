package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// getJSON fetches addr+path and decodes the JSON response into v.
func getJSON(path string, v interface{}) error {
	resp, err := httpClient.Get(addr + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return httpError(path, resp)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// postJSON posts body (may be nil) to addr+path and checks for a 2xx status.
func postJSON(path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	resp, err := httpClient.Post(addr+path, "application/json", reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpError(path, resp)
	}
	return nil
}

func httpError(path string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
}

// wsURL converts the device base URL into its WebSocket endpoint.
func wsURL() string {
	url := addr
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	default:
		url = "ws://" + url
	}
	return strings.TrimSuffix(url, "/") + "/ws"
}
