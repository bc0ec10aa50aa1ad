package internal

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockHTTPClient is a mock implementation of http.Client for testing
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func TestRemoteImageFetcher_Fetch(t *testing.T) {
	mockImageData := "this is mock image data"

	t.Run("successful retrieval", func(t *testing.T) {
		var captured *http.Request
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				captured = req
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(mockImageData)),
					Header:     make(http.Header),
				}, nil
			},
		}

		f := &RemoteImageFetcher{
			userAgent: "image-convolution/test",
			client:    mockClient,
		}

		reader, err := f.Fetch("http://test-url/imagem_exemplo.png")
		assert.NoError(t, err)
		assert.NotNil(t, reader)

		data, err := io.ReadAll(reader)
		assert.NoError(t, err)
		assert.Equal(t, mockImageData, string(data))
		assert.NoError(t, reader.Close())

		assert.Equal(t, "image/*", captured.Header.Get("Accept"))
		assert.Equal(t, "image-convolution/test", captured.Header.Get("User-Agent"))
	})

	t.Run("API error response", func(t *testing.T) {
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusNotFound,
					Status:     "404 Not Found",
					Body:       io.NopCloser(bytes.NewBufferString("Not Found")),
					Header:     make(http.Header),
				}, nil
			},
		}

		f := &RemoteImageFetcher{client: mockClient}

		reader, err := f.Fetch("http://test-url/missing.png")
		assert.Error(t, err)
		assert.Nil(t, reader)
		assert.Equal(t, "http status response from http://test-url/missing.png: 404 Not Found", err.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		f := &RemoteImageFetcher{client: mockClient}

		reader, err := f.Fetch("http://test-url/a.png")
		assert.Nil(t, reader)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/a.png"))
	assert.True(t, IsRemote("HTTP://example.com/a.png"))
	assert.False(t, IsRemote("imagem_exemplo.png"))
	assert.False(t, IsRemote("/tmp/http/a.png"))
}
