package internal

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ImageClient retrieves source images that live on the web rather than on disk.
type ImageClient interface {
	Fetch(url string) (io.ReadCloser, error)
}

type RemoteImageFetcher struct {
	userAgent string
	client    HttpClient
}

func NewImageClient(userAgent string) ImageClient {
	return &RemoteImageFetcher{
		userAgent: userAgent,
		client:    &http.Client{},
	}
}

// IsRemote reports whether input names an http(s) URL.
func IsRemote(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (f *RemoteImageFetcher) Fetch(url string) (io.ReadCloser, error) {
	log.Printf("Retrieving: %s", url)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("http status response from %s: %s", url, res.Status)
	}

	return res.Body, nil
}
