// Package moneris sends transaction requests to the Moneris gateway as XML
// over HTTPS.
package moneris

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
	"github.com/killbill/killbill-moneris-plugin/internal/domain/port"
	"github.com/killbill/killbill-moneris-plugin/pkg/tlsutil"
)

// Compile-time interface check.
var _ port.GatewayClient = (*Client)(nil)

const (
	requestPath    = "/gateway2/servlet/MpgRequest"
	defaultTimeout = 30 * time.Second
	instrumentName = "github.com/killbill/killbill-moneris-plugin/internal/infrastructure/gateway/moneris"
	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Config holds the gateway endpoint and merchant credentials.
type Config struct {
	Host     string
	StoreID  string
	APIToken string
	CAFile   string
	Timeout  time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from Config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// Client implements port.GatewayClient against the Moneris XML API.
type Client struct {
	endpoint string
	storeID  string
	apiToken string
	http     *http.Client

	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewClient creates a gateway client. Host, store id and API token are
// required.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Host == "" || cfg.StoreID == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("moneris: host, store id and api token are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		endpoint: "https://" + strings.TrimRight(cfg.Host, "/") + requestPath,
		storeID:  cfg.StoreID,
		apiToken: cfg.APIToken,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		tlsCfg, err := tlsutil.ClientConfig(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("moneris: %w", err)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = tlsCfg
		c.http = &http.Client{Timeout: timeout, Transport: transport}
	}

	meter := otel.Meter(instrumentName)
	var err error
	c.requests, err = meter.Int64Counter("moneris.gateway.requests",
		metric.WithDescription("Gateway requests by kind and outcome"))
	if err != nil {
		return nil, fmt.Errorf("moneris: create request counter: %w", err)
	}
	c.duration, err = meter.Float64Histogram("moneris.gateway.duration",
		metric.WithDescription("Gateway round-trip time"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("moneris: create duration histogram: %w", err)
	}
	c.tracer = otel.Tracer(instrumentName)

	return c, nil
}

// Send posts one request and returns the gateway's receipt. A declined
// transaction is still a receipt; only transport and protocol failures are
// errors.
func (c *Client) Send(ctx context.Context, req model.GatewayRequest) (model.Receipt, error) {
	ctx, span := c.tracer.Start(ctx, "moneris."+string(req.Kind),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("moneris.request_kind", string(req.Kind)),
			attribute.String("moneris.order_id", req.OrderID),
		))
	defer span.End()

	start := time.Now()
	receipt, err := c.send(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if receipt.ResponseCode != nil {
		span.SetAttributes(attribute.String("moneris.response_code", *receipt.ResponseCode))
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", string(req.Kind)),
		attribute.String("outcome", outcome),
	)
	c.requests.Add(ctx, 1, attrs)
	c.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	return receipt, err
}

func (c *Client) send(ctx context.Context, req model.GatewayRequest) (model.Receipt, error) {
	payload, err := encodeRequest(c.storeID, c.apiToken, req)
	if err != nil {
		return model.Receipt{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.Receipt{}, fmt.Errorf("moneris: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("User-Agent", "killbill-moneris-plugin")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("moneris: %s request failed: %w", req.Kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.Receipt{}, fmt.Errorf("moneris: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Receipt{}, fmt.Errorf("moneris: gateway error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decodeReceipt(body)
}
