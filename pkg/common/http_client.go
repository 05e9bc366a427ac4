package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// PostBasicAuth sends a JSON POST request with HTTP basic auth credentials.
// Used for gateway order creation.
func PostBasicAuth(urlStr string, payload interface{}, username, password string) (interface{}, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, urlStr, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(username, password)

	return doRequest(req)
}

// PostForm sends a POST request with an x-www-form-urlencoded body.
func PostForm(urlStr string, data url.Values) (interface{}, error) {
	resp, err := httpClient.PostForm(urlStr, data)
	if err != nil {
		return nil, err
	}
	return decodeResponse(resp)
}

func doRequest(req *http.Request) (interface{}, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) (interface{}, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return string(body), nil
		}
	}
	return result, nil
}
