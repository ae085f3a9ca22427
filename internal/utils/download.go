package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const downloadTimeout = 30 * time.Second

func newClient() *http.Client {
	return &http.Client{Timeout: downloadTimeout}
}

func buildRequest(urlStr string, params map[string]string, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequest("GET", urlStr, nil)
	if err != nil {
		return nil, err
	}
	vals := make(url.Values)
	for k, v := range params {
		vals.Set(k, v)
	}
	req.URL.RawQuery = vals.Encode()
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

/**
 * Download a remote file and save it to disk
 * @param {string} urlStr - Request URL
 * @param {map} params - Optional query parameters
 * @param {map} headers - Optional request headers
 * @param {string} savePath - Local path to save the file to
 * @returns {error} Returns error on network, status or filesystem failure
 */
func GetFile(urlStr string, params map[string]string, headers map[string]string, savePath string) error {
	client := newClient()
	req, err := buildRequest(urlStr, params, headers)
	if err != nil {
		return fmt.Errorf("GetFile('%s') failed: %v", urlStr, err)
	}

	rsp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GetFile('%s') failed: %v", urlStr, err)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != 200 {
		rspBody, _ := io.ReadAll(rsp.Body)
		return fmt.Errorf("GetFile('%s') code: %d, error:%s",
			urlStr, rsp.StatusCode, string(rspBody))
	}

	if err = os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return fmt.Errorf("GetFile('%s'): MkdirAll('%s') error:%v", urlStr, savePath, err)
	}
	out, err := os.Create(savePath)
	if err != nil {
		return fmt.Errorf("GetFile('%s'): create('%s') error: %v", urlStr, savePath, err)
	}
	defer out.Close()

	_, err = io.Copy(out, rsp.Body)
	if err != nil {
		return fmt.Errorf("GetFile('%s'): copy error: %v", urlStr, err)
	}
	return err
}
