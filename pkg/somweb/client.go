package somweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Gateway endpoints. The device serves HTML pages and bare text responses;
// there is no structured API.
const (
	aliveURI         = "/blank.html"
	authURI          = "/index.php"
	deviceInfoURI    = "/index.php?op=config&opc=deviceinfo&lang=en"
	doorStatusURI    = "/isg/statusDoor.php"
	allDoorStatusURI = "/isg/statusDoorAll.php"
	toggleDoorURI    = "/isg/opendoor.php"
	checkUpdateURI   = "/isg/CheckForUpdates.php"
)

// DefaultStateChangeTimeout is the maximum time WaitForDoorState waits for
// a door to reach the requested state when no timeout is given.
const DefaultStateChangeTimeout = 60 * time.Second

var (
	// ErrUnreachable indicates a transport level fault (DNS, connect,
	// timeout) talking to the gateway.
	ErrUnreachable = errors.New("gateway unreachable")

	// ErrUnexpectedStatus indicates the gateway answered with an HTTP
	// error status on an operation that requires a page body.
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// Client represents a session against a SOMweb gateway.
//
// The client is stateless apart from the session cookie held in the HTTP
// cookie jar. The webtoken returned by Authenticate must be passed
// explicitly to the door command methods.
type Client struct {
	baseURL        string
	username       string
	password       string
	hc             *http.Client
	requestTimeout time.Duration
	pollInterval   time.Duration
	logger         *slog.Logger
}

// NewClient creates a client for the gateway at baseURL, which is either
// the local address of the device or its cloud address (see CloudURL).
// No connection is made until the first call.
func NewClient(baseURL, username, password string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL must not be empty")
	}
	if username == "" || password == "" {
		return nil, errors.New("credentials must not be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	// The gateway issues a session cookie on login. A jar is always
	// installed so the cookie survives across calls, also when the
	// gateway is addressed by bare IP.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	hc.Jar = jar

	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		username:       username,
		password:       password,
		hc:             hc,
		requestTimeout: cfg.requestTimeout,
		pollInterval:   cfg.pollInterval,
		logger:         cfg.logger,
	}, nil
}

// BaseURL returns the gateway address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IsAlive reports whether the gateway is reachable and responding.
// It does not require authentication and is the only call that may be
// issued before Authenticate.
func (c *Client) IsAlive(ctx context.Context) bool {
	status, body, err := c.get(ctx, aliveURI)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("gateway not reachable", "url", c.baseURL, "error", err)
		}
		return false
	}
	return status < 400 && body == "1"
}

// Authenticate performs the login form submission and extracts the webtoken
// from the returned page.
//
// Rejected credentials yield AuthResult.Success false with a nil error; an
// error is only returned for transport level faults. The returned page body
// can be fed to ParseDoors, UDIFromPage and IsAdminPage.
func (c *Client) Authenticate(ctx context.Context) (AuthResult, error) {
	form := url.Values{
		"login":      {c.username},
		"pass":       {c.password},
		"send-login": {"Sign in"},
	}

	status, body, err := c.postForm(ctx, authURI, form)
	if err != nil {
		return AuthResult{}, err
	}
	if status >= 400 {
		if c.logger != nil {
			c.logger.Error("authentication failed", "status", status)
		}
		return AuthResult{}, nil
	}

	token, ok := ExtractWebToken(body)
	if !ok {
		// The gateway answers a bad login with a page that has no
		// webtoken, so this is treated as a rejection.
		if c.logger != nil {
			c.logger.Error("authentication failed", "reason", "no webtoken in response")
		}
		return AuthResult{Success: false, Page: body}, nil
	}

	if c.logger != nil {
		c.logger.Debug("authenticated", "url", c.baseURL)
	}
	return AuthResult{Success: true, Token: token, Page: body}, nil
}

// DoorStatus fetches the current state of a door. The state is never
// cached; every call hits the gateway.
func (c *Client) DoorStatus(ctx context.Context, doorID int) (DoorState, error) {
	// status=1 asks "is the door closed": the gateway answers OK when the
	// door matches the sent status and FAIL when it is the opposite.
	// bit=1 would make a non-matching status always answer FALSE.
	uri := fmt.Sprintf("%s?numdoor=%d&status=1&bit=0", doorStatusURI, doorID)

	status, body, err := c.get(ctx, uri)
	if err != nil {
		return StateUnknown, err
	}
	if status >= 400 {
		return StateUnknown, fmt.Errorf("%w: %d getting door status", ErrUnexpectedStatus, status)
	}

	switch body {
	case "OK":
		return StateClosed, nil
	case "FAIL":
		return StateOpen, nil
	default:
		return StateUnknown, nil
	}
}

// AllDoorStatuses fetches the state of the given doors in one call.
//
// The gateway rotates the webtoken in this response; the returned token
// must be used for subsequent door commands in place of the one passed in.
func (c *Client) AllDoorStatuses(ctx context.Context, token string, doorIDs []int) ([]DoorStatus, string, error) {
	uri := fmt.Sprintf("%s?webtoken=%s", allDoorStatusURI, url.QueryEscape(token))

	status, body, err := c.get(ctx, uri)
	if err != nil {
		return nil, token, err
	}
	if status >= 400 {
		return nil, token, fmt.Errorf("%w: %d getting door statuses", ErrUnexpectedStatus, status)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, token, fmt.Errorf("%w: %v", ErrParse, err)
	}

	// Field "11" carries the rotated webtoken.
	newToken := token
	if s, ok := raw["11"].(string); ok {
		newToken = s
	}

	statuses := make([]DoorStatus, 0, len(doorIDs))
	for _, id := range doorIDs {
		statuses = append(statuses, DoorStatus{ID: id, State: jsonDoorState(raw[strconv.Itoa(id)])})
	}
	return statuses, newToken, nil
}

// jsonDoorState maps a statusDoorAll value to a DoorState. The gateway
// reports closed as the string "0" and open as the number 1.
func jsonDoorState(v any) DoorState {
	switch t := v.(type) {
	case string:
		if t == "0" {
			return StateClosed
		}
	case float64:
		if t == 1 {
			return StateOpen
		}
	}
	return StateUnknown
}

// Toggle flips the position of a door: opens a closed door and vice versa.
// The webtoken from Authenticate must be supplied.
//
// A true result means the gateway accepted the command, not that the door
// has finished moving; use WaitForDoorState for that.
func (c *Client) Toggle(ctx context.Context, token string, doorID int) (bool, error) {
	uri := fmt.Sprintf("%s?numdoor=%d&status=0&webtoken=%s", toggleDoorURI, doorID, url.QueryEscape(token))

	status, body, err := c.get(ctx, uri)
	if err != nil {
		return false, err
	}

	ok := status < 400 && body == "OK"
	if c.logger != nil {
		c.logger.Debug("toggle door", "door", doorID, "accepted", ok)
	}
	return ok, nil
}

// OpenDoor opens a door. No command is sent if the door is already open.
func (c *Client) OpenDoor(ctx context.Context, token string, doorID int) (bool, error) {
	return c.DoorAction(ctx, token, doorID, ActionOpen)
}

// CloseDoor closes a door. No command is sent if the door is already closed.
func (c *Client) CloseDoor(ctx context.Context, token string, doorID int) (bool, error) {
	return c.DoorAction(ctx, token, doorID, ActionClose)
}

// DoorAction opens or closes a door. The current state is checked first and
// no command is sent if the door is already in the requested position.
func (c *Client) DoorAction(ctx context.Context, token string, doorID int, action DoorAction) (bool, error) {
	current, err := c.DoorStatus(ctx, doorID)
	if err != nil {
		return false, err
	}
	if current == action.TargetState() {
		if c.logger != nil {
			c.logger.Debug("door already in requested state", "door", doorID, "state", current)
		}
		return true, nil
	}
	return c.Toggle(ctx, token, doorID)
}

// WaitForDoorState polls a door at the configured interval until it reaches
// the target state or the timeout elapses. A non-positive timeout selects
// DefaultStateChangeTimeout.
//
// It returns true when the state was reached and false on timeout; a
// timeout is a normal result, not an error. Cancelling the context aborts
// the wait between polls and returns the context error.
func (c *Client) WaitForDoorState(ctx context.Context, doorID int, target DoorState, timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		timeout = DefaultStateChangeTimeout
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		state, err := c.DoorStatus(waitCtx, doorID)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if waitCtx.Err() != nil {
				// Deadline hit mid fetch.
				if c.logger != nil {
					c.logger.Warn("timeout waiting for door state", "door", doorID, "target", target)
				}
				return false, nil
			}
			return false, err
		}
		if state == target {
			return true, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if c.logger != nil {
				c.logger.Warn("timeout waiting for door state", "door", doorID, "target", target)
			}
			return false, nil
		case <-time.After(c.pollInterval):
		}
	}
}

// UpdateAvailable reports whether a firmware update is available for the
// gateway.
func (c *Client) UpdateAvailable(ctx context.Context) (bool, error) {
	status, body, err := c.get(ctx, checkUpdateURI)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("%w: %d checking for updates", ErrUnexpectedStatus, status)
	}

	// 0 = no internet connection, 1 = update available, 2 = up to date.
	return body == "1", nil
}

// DeviceInfo fetches gateway details from the device info page. The page is
// only served to administrator sessions; use IsAdminPage on the
// authenticated page body to check beforehand.
func (c *Client) DeviceInfo(ctx context.Context) (DeviceInfo, error) {
	status, body, err := c.get(ctx, deviceInfoURI)
	if err != nil {
		return DeviceInfo{}, err
	}
	if status != http.StatusOK {
		return DeviceInfo{}, fmt.Errorf("%w: %d getting device info", ErrUnexpectedStatus, status)
	}
	return parseDeviceInfo(body)
}

func (c *Client) get(ctx context.Context, uri string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+uri, nil)
	if err != nil {
		return 0, "", err
	}
	return c.do(req)
}

func (c *Client) postForm(ctx context.Context, uri string, form url.Values) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uri, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, string, error) {
	callerCtx := req.Context()

	// Apply request timeout if context has no deadline
	if _, hasDeadline := callerCtx.Deadline(); !hasDeadline {
		ctx, cancel := context.WithTimeout(callerCtx, c.requestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		// Caller cancellation is surfaced as is; everything else,
		// including the per request timeout, means the gateway could
		// not be reached.
		if callerCtx.Err() != nil {
			return 0, "", callerCtx.Err()
		}
		return 0, "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if c.logger != nil {
		c.logger.Debug("request done", "method", req.Method, "uri", uriPath(req), "status", resp.StatusCode)
	}
	return resp.StatusCode, string(body), nil
}

func uriPath(req *http.Request) string {
	if req.URL == nil {
		return ""
	}
	return req.URL.Path
}
