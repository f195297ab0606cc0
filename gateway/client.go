package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	ciudadauth "github.com/Aytsuu/CIUDAD-APP-sub033"
)

const (
	pathLogin          = "authentication/mobile/login/"
	pathSendOTP        = "authentication/mobile/sendOtp/"
	pathVerifyOTP      = "authentication/mobile/verifyOtp/"
	pathSignUp         = "authentication/signup/"
	pathRefresh        = "authentication/mobile/refresh-token/"
	pathLogout         = "authentication/logout/"
	pathSendEmailOTP   = "authentication/email/sendOtp/"
	pathVerifyEmailOTP = "authentication/email/verifyOtp/"
)

const defaultTimeout = 15 * time.Second

// maxErrorBody caps how much of a failure response is read while looking for
// a structured message.
const maxErrorBody = 64 << 10

// RequestSigner attaches the current access token to an outbound request.
// *ciudadauth.TokenHolder satisfies it.
type RequestSigner interface {
	Apply(req *http.Request)
}

// Config defines a public type used by gateway APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// BaseURL is the deployment's API root, e.g. "https://api.ciudad.gov.ph/".
	BaseURL string

	// HTTPClient overrides the transport. Optional; a client with a
	// 15-second timeout is used when nil.
	HTTPClient *http.Client

	// UserAgent is sent on every request when non-empty.
	UserAgent string

	// Logger receives per-request debug records. Optional.
	Logger *slog.Logger
}

// Client is the HTTP [ciudadauth.Gateway] implementation.
type Client struct {
	baseURL string
	http    *http.Client
	signer  RequestSigner
	agent   string
	logger  *slog.Logger
}

var _ ciudadauth.Gateway = (*Client)(nil)

// New creates a gateway client. signer may be nil for unauthenticated use;
// pass the store's TokenHolder so logout and subsequent calls are signed.
func New(cfg Config, signer RequestSigner) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base url required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		http:    httpClient,
		signer:  signer,
		agent:   cfg.UserAgent,
		logger:  logger,
	}, nil
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Login(ctx context.Context, email, password string) (*ciudadauth.CredentialPayload, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	return c.credentialCall(ctx, pathLogin, body)
}

// SendOTP describes the sendotp operation and its observable behavior.
//
// SendOTP may return an error when input validation, dependency calls, or security checks fail.
// SendOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) SendOTP(ctx context.Context, phoneNumber string) error {
	body := map[string]string{
		"phone_number": phoneNumber,
	}
	return c.ackCall(ctx, pathSendOTP, body)
}

// VerifyOTP describes the verifyotp operation and its observable behavior.
//
// VerifyOTP may return an error when input validation, dependency calls, or security checks fail.
// VerifyOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) VerifyOTP(ctx context.Context, phoneNumber, otp string) (*ciudadauth.CredentialPayload, error) {
	body := map[string]string{
		"phone_number": phoneNumber,
		"otp":          otp,
	}
	return c.credentialCall(ctx, pathVerifyOTP, body)
}

// SignUp describes the signup operation and its observable behavior.
//
// SignUp may return an error when input validation, dependency calls, or security checks fail.
// SignUp does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) SignUp(ctx context.Context, req ciudadauth.SignUpRequest) (*ciudadauth.CredentialPayload, error) {
	body := map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}
	if req.Username != "" {
		body["username"] = req.Username
	}
	return c.credentialCall(ctx, pathSignUp, body)
}

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh may return an error when input validation, dependency calls, or security checks fail.
// Refresh does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*ciudadauth.CredentialPayload, error) {
	body := map[string]string{
		"refresh_token": refreshToken,
	}
	return c.credentialCall(ctx, pathRefresh, body)
}

// Logout revokes the current session server-side. The request carries no
// body; the signer identifies the session by access token.
func (c *Client) Logout(ctx context.Context) error {
	return c.ackCall(ctx, pathLogout, nil)
}

// SendEmailOTP describes the sendemailotp operation and its observable behavior.
//
// SendEmailOTP may return an error when input validation, dependency calls, or security checks fail.
// SendEmailOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) SendEmailOTP(ctx context.Context, email string) error {
	body := map[string]string{
		"email": email,
	}
	return c.ackCall(ctx, pathSendEmailOTP, body)
}

// VerifyEmailOTP describes the verifyemailotp operation and its observable behavior.
//
// VerifyEmailOTP may return an error when input validation, dependency calls, or security checks fail.
// VerifyEmailOTP does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) VerifyEmailOTP(ctx context.Context, email, otp string) (*ciudadauth.CredentialPayload, error) {
	body := map[string]string{
		"email": email,
		"otp":   otp,
	}
	return c.credentialCall(ctx, pathVerifyEmailOTP, body)
}

func (c *Client) credentialCall(ctx context.Context, path string, body any) (*ciudadauth.CredentialPayload, error) {
	resp, err := c.do(ctx, path, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	payload := &ciudadauth.CredentialPayload{}
	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return payload, nil
}

func (c *Client) ackCall(ctx context.Context, path string, body any) error {
	resp, err := c.do(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	// Ack bodies are implementation-defined; drain so the connection is
	// reusable.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

func (c *Client) do(ctx context.Context, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.agent != "" {
		req.Header.Set("User-Agent", c.agent)
	}

	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	if deviceID := deviceIDFromContext(ctx); deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}

	if c.signer != nil {
		c.signer.Apply(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("auth api call failed", "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("call %s: %w", path, err)
	}

	c.logger.Debug("auth api call", "path", path, "request_id", requestID, "status", resp.StatusCode)
	return resp, nil
}

// checkStatus maps a non-2xx response to *ciudadauth.APIError, extracting a
// structured message when the body carries one.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return &ciudadauth.APIError{
		Status:  resp.StatusCode,
		Message: extractMessage(data),
	}
}

// extractMessage looks for the backend's error text under the field names it
// is known to use.
func extractMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Detail != "":
		return body.Detail
	default:
		return body.Error
	}
}
