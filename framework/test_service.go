package framework

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const statusQueryInterval = time.Millisecond * 100

// TestServiceInfo is status information returned by the test service from the initial status query.
type TestServiceInfo struct {
	Description  string   `json:"description"`
	Capabilities []string `json:"capabilities"`

	raw []byte
}

// Decode unmarshals the full status document into a domain-specific type, for fields this
// package does not know about.
func (i TestServiceInfo) Decode(target interface{}) error {
	if len(i.raw) == 0 {
		return nil
	}
	return json.Unmarshal(i.raw, target)
}

func (h *TestHarness) queryTestServiceInfo(timeout time.Duration, output io.Writer) (TestServiceInfo, error) {
	url := h.testServiceBaseURL + "/"
	fmt.Fprintf(output, "Connecting to test service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := h.httpClient.Get(url)
		if err == nil {
			fmt.Fprintln(output)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return TestServiceInfo{}, fmt.Errorf("test service returned status code %d", resp.StatusCode)
			}
			respData, err := io.ReadAll(resp.Body)
			if err != nil {
				return TestServiceInfo{}, err
			}
			if len(respData) == 0 {
				fmt.Fprintf(output, "Status query successful, but service provided no metadata\n")
				return TestServiceInfo{}, nil
			}
			fmt.Fprintf(output, "Status query returned metadata: %s\n", string(respData))
			info := TestServiceInfo{raw: respData}
			if err := json.Unmarshal(respData, &info); err != nil {
				return TestServiceInfo{}, fmt.Errorf("malformed status response from test service: %s", string(respData))
			}
			return info, nil
		}
		h.logger.Printf("Status query failed: %s", err)
		if !time.Now().Before(deadline) {
			return TestServiceInfo{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(statusQueryInterval)
	}
}

// StopService tells the test service that it should exit.
func (h *TestHarness) StopService() error {
	req, _ := http.NewRequest(http.MethodDelete, h.testServiceBaseURL+"/", nil)
	resp, err := h.httpClient.Do(req)
	if err != nil {
		// It's normal for the request to return an I/O error if the service immediately quit before sending a response
		return nil
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("service returned HTTP %d", resp.StatusCode)
	}
	return nil
}
