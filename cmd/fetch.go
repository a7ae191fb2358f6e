package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

type fetchClient struct {
	*http.Client
}

// fetch retrieves a remote schema file over plain HTTP.
func (c *fetchClient) fetch(url *url.URL, headers http.Header) (io.ReadCloser, error) {
	req, _ := http.NewRequest(http.MethodGet, url.String(), nil)
	req.Header = headers

	zap.L().Info("fetching remote file", zap.String("name", url.String()), zap.Any("headers", headers))
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("dsgen: unexpected status when fetching %s: %s", url, resp.Status)
	}

	return resp.Body, nil
}
