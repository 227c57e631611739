package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"pet-adoption-backend/internal/ports/blobstore"
)

const defaultTimeout = 30 * time.Second

// Config para el cliente de Cloudinary. UploadPreset debe ser un preset
// unsigned configurado en la cuenta.
type Config struct {
	BaseURL      string // default: https://api.cloudinary.com
	CloudName    string
	UploadPreset string
	Timeout      time.Duration
}

// Client sube imágenes vía la API de upload unsigned de Cloudinary.
// Implementa blobstore.Store.
type Client struct {
	http   *resty.Client
	cloud  string
	preset string
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, fmt.Errorf("cloudinary: cloud name requerido")
	}
	if strings.TrimSpace(cfg.UploadPreset) == "" {
		return nil, fmt.Errorf("cloudinary: upload preset requerido")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &Client{
		http:   http,
		cloud:  cfg.CloudName,
		preset: cfg.UploadPreset,
	}, nil
}

// Upload sube la imagen y devuelve su URL pública (secure_url).
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", blobstore.ErrUpload)
	}

	var out uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", uuid.NewString(), bytes.NewReader(data)).
		SetFormData(map[string]string{"upload_preset": c.preset}).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/v1_1/%s/image/upload", c.cloud))
	if err != nil {
		return "", fmt.Errorf("%w: %v", blobstore.ErrUpload, err)
	}

	if resp.IsError() {
		msg := out.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("%w: %s", blobstore.ErrUpload, msg)
	}

	url := out.SecureURL
	if url == "" {
		url = out.URL
	}
	if url == "" {
		return "", fmt.Errorf("%w: respuesta sin url", blobstore.ErrUpload)
	}
	return url, nil
}

var _ blobstore.Store = (*Client)(nil)
