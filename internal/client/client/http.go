package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/common"
	"github.com/dmitrijs2005/naijatax/internal/logging"
	"github.com/google/uuid"
)

const (
	pathMe                 = "/api/auth/me"
	pathLogin              = "/api/auth/login"
	pathRegister           = "/api/auth/register"
	pathForgotPassword     = "/api/auth/forgot-password"
	pathResendVerification = "/api/auth/resend-verification"
	pathVerifyEmail        = "/api/auth/verify-email"
	pathVerifyPhone        = "/api/auth/verify-phone"
	pathResendSMS          = "/api/auth/resend-sms"
	pathProfileUpdate      = "/api/profile/update"
)

// maxBodySize caps how much of a response is read into memory.
const maxBodySize = 1 << 20

// access says whether a request is made on behalf of the session.
type access bool

const (
	// authenticated requests carry the bearer token; a 401 on them runs the
	// unauthorized hook.
	authenticated access = true
	// anonymous requests (login, register, email and phone flows) never
	// carry the token, so a 401 there is a credential rejection and leaves
	// the session alone.
	anonymous access = false
)

// HTTPClient implements Client over HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized UnauthorizedFunc
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the backend at baseURL. A zero timeout
// means no client-side deadline beyond the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) OnUnauthorized(fn UnauthorizedFunc) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *HTTPClient) credentials() (string, UnauthorizedFunc) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.onUnauthorized
}

// do sends one request and returns the raw response body of a successful
// (< 400) answer. in, when non-nil, is sent as a JSON body.
func (c *HTTPClient) do(ctx context.Context, acc access, method, path string, query url.Values, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var (
		token          string
		onUnauthorized UnauthorizedFunc
	)
	if acc == authenticated {
		token, onUnauthorized = c.credentials()
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusBadRequest {
		return data, nil
	}

	apiErr := parseAPIError(resp.StatusCode, data)
	if resp.StatusCode == http.StatusUnauthorized && token != "" && onUnauthorized != nil {
		onUnauthorized(ctx, token)
	}
	return nil, apiErr
}

func decodeJSON(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// decodeMessage pulls {message} out of a success body. Endpoints that only
// promise "200" may answer with an empty or non-JSON body; that is not an
// error.
func decodeMessage(data []byte) string {
	var m models.MessageResponse
	if len(bytes.TrimSpace(data)) == 0 || json.Unmarshal(data, &m) != nil {
		return ""
	}
	return m.Message
}

func (c *HTTPClient) profile(ctx context.Context, acc access, method, path string, in any) (*models.Profile, error) {
	data, err := c.do(ctx, acc, method, path, nil, in)
	if err != nil {
		return nil, err
	}
	var p models.Profile
	if err := decodeJSON(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) message(ctx context.Context, path string, query url.Values, in any) (string, error) {
	data, err := c.do(ctx, anonymous, http.MethodPost, path, query, in)
	if err != nil {
		return "", err
	}
	return decodeMessage(data), nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	data, err := c.do(ctx, anonymous, http.MethodPost, pathLogin, nil, req)
	if err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := decodeJSON(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	return c.profile(ctx, anonymous, http.MethodPost, pathRegister, req)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Profile, error) {
	return c.profile(ctx, authenticated, http.MethodGet, pathMe, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error) {
	return c.profile(ctx, authenticated, http.MethodPut, pathProfileUpdate, upd)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.message(ctx, pathForgotPassword, nil, models.EmailRequest{Email: email})
}

func (c *HTTPClient) ResendVerification(ctx context.Context, email string) (string, error) {
	return c.message(ctx, pathResendVerification, nil, models.EmailRequest{Email: email})
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, token, email string) (string, error) {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return c.message(ctx, pathVerifyEmail, q, nil)
}

func (c *HTTPClient) VerifyPhone(ctx context.Context, req models.PhoneVerification) (string, error) {
	return c.message(ctx, pathVerifyPhone, nil, req)
}

func (c *HTTPClient) ResendSMS(ctx context.Context, email string) (string, error) {
	return c.message(ctx, pathResendSMS, nil, models.EmailRequest{Email: email})
}

// errorBody is the loosest shape of a backend error response.
type errorBody struct {
	Detail    json.RawMessage `json:"detail"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
}

// validationItem is one entry of a list-shaped detail (request validation).
type validationItem struct {
	Msg string `json:"msg"`
}

// structuredDetail is an object-shaped detail.
type structuredDetail struct {
	Message   string `json:"message"`
	Msg       string `json:"msg"`
	ErrorCode string `json:"error_code"`
}

func parseAPIError(status int, data []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	apiErr.Code = body.ErrorCode
	apiErr.Detail = body.Message

	detail := bytes.TrimSpace(body.Detail)
	if len(detail) == 0 || bytes.Equal(detail, []byte("null")) {
		return apiErr
	}

	var s string
	var items []validationItem
	var obj structuredDetail

	switch {
	case json.Unmarshal(detail, &s) == nil:
		apiErr.Detail = s
	case json.Unmarshal(detail, &items) == nil:
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			apiErr.Detail = strings.Join(msgs, "; ")
		}
	case json.Unmarshal(detail, &obj) == nil:
		if obj.Message != "" {
			apiErr.Detail = obj.Message
		} else if obj.Msg != "" {
			apiErr.Detail = obj.Msg
		}
		if obj.ErrorCode != "" {
			apiErr.Code = obj.ErrorCode
		}
	}
	return apiErr
}

// IsTransport reports whether err is a transport-level failure (nothing, or
// nothing usable, came back from the server).
func IsTransport(err error) bool {
	if _, ok := AsAPIError(err); ok {
		return false
	}
	return errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
