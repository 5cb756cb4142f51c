package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/shared/constant"
	"shareit/shared/logger"
	"strings"
	"time"
)

// Request is one call relayed to the ShareIt server.
type Request struct {
	Method    string
	Path      string
	RawQuery  string
	Body      []byte
	UserID    string
	RequestID string
}

// Response is the upstream answer, relayed as is.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

type Server interface {
	Forward(ctx context.Context, req Request) (Response, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Server {
	return &client{
		baseURL: strings.TrimRight(cfg.Gateway.ServerURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		},
		otel: otel,
	}
}

func (c *client) Forward(ctx context.Context, req Request) (res Response, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".server.Forward")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	url := c.baseURL + req.Path
	if req.RawQuery != "" {
		url += "?" + req.RawQuery
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	upstream, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return res, fmt.Errorf("failed to build upstream request: %w", err)
	}

	if body != nil {
		upstream.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if req.UserID != "" {
		upstream.Header.Set(constant.RequestHeaderSharerUserID, req.UserID)
	}

	if req.RequestID != "" {
		upstream.Header.Set(constant.RequestHeaderRequestID, req.RequestID)
	}

	scope.SetAttributes(map[string]any{
		"http.method": req.Method,
		"http.url":    url,
	})

	resp, err := c.httpClient.Do(upstream)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("url", url).Msg("upstream call failed")

		return res, fmt.Errorf("failed to call server: %w", err)
	}
	defer resp.Body.Close()

	res.Body, err = io.ReadAll(resp.Body)
	if err != nil {
		return res, fmt.Errorf("failed to read server response: %w", err)
	}

	res.Status = resp.StatusCode
	res.ContentType = resp.Header.Get(constant.RequestHeaderContentType)

	scope.SetAttribute("http.status_code", res.Status)

	return res, nil
}
