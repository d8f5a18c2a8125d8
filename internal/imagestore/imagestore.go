package imagestore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nbataa/agentmart/pkg/apperr"
	"github.com/nbataa/agentmart/pkg/clients"
	"go.uber.org/zap"
)

// maxImageBytes caps the decoded payload at 5MB.
const maxImageBytes = 5 << 20

var (
	ErrInvalidPayload = apperr.New(apperr.CodeValidation, "invalid base64 image payload")
	ErrImageTooLarge  = apperr.New(apperr.CodeValidation, "image exceeds the 5MB limit")
	ErrUploadFailed   = apperr.New(apperr.CodeInternal, "image store upload failed")
)

// Client talks to the external image store. The store accepts a base64
// payload and returns a public URL.
type Client struct {
	baseURL    string
	httpClient clients.HTTPClientI
}

func New(baseURL string, httpClient clients.HTTPClientI) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type uploadRequest struct {
	Data string `json:"data"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload validates and forwards the base64 payload, returning the stored URL.
func (c *Client) Upload(ctx context.Context, data string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrInvalidPayload
	}
	if len(decoded) == 0 {
		return "", ErrInvalidPayload
	}
	if len(decoded) > maxImageBytes {
		return "", ErrImageTooLarge
	}

	body, err := json.Marshal(uploadRequest{Data: data})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/api/images", c.baseURL)
	statusCode, respBody, err := c.httpClient.Post(url, nil, body)
	if err != nil {
		zap.L().Error("image store request failed", zap.Error(err))
		return "", apperr.Wrap(apperr.CodeInternal, err, "image store upload failed")
	}
	if statusCode != http.StatusOK && statusCode != http.StatusCreated {
		zap.L().Error("image store rejected upload", zap.Int("status", statusCode))
		return "", ErrUploadFailed
	}

	var resp uploadResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", apperr.Wrap(apperr.CodeInternal, err, "malformed image store response")
	}
	return resp.URL, nil
}
