// Package concourse is a typed client for the Concourse REST API
package concourse

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ciwatch/cli/internal/decode"
	cierrors "github.com/ciwatch/cli/internal/errors"
	httpClient "github.com/ciwatch/cli/internal/http"
	"github.com/ciwatch/cli/internal/logs"
	"github.com/ciwatch/cli/internal/models"
)

// Client calls one Concourse server. A zero token makes unauthenticated requests.
type Client struct {
	http   *httpClient.Client
	token  models.Token
	logger *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithToken authenticates requests with token
func WithToken(token models.Token) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLogger sets the logger passed on to log streams
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client on top of an HTTP client for the server
func New(client *httpClient.Client, opts ...Option) *Client {
	c := &Client{
		http:   client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that authenticates with token
func (c *Client) WithToken(token models.Token) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Token is the token requests are authenticated with
func (c *Client) Token() models.Token {
	return c.token
}

// API is the server URL
func (c *Client) API() string {
	return c.http.BaseURL()
}

func (c *Client) header() http.Header {
	header := http.Header{}
	if !c.token.IsZero() {
		header.Set("Authorization", c.token.AuthValue())
	}
	return header
}

// do performs a request and returns the body of a 2xx response. Other
// outcomes become categorized CLI errors.
func (c *Client) do(ctx context.Context, method, endpoint string, header http.Header, operation string) ([]byte, error) {
	resp, err := c.http.Do(ctx, method, endpoint, header, nil)
	if err != nil {
		return nil, cierrors.WrapAPIError(err, operation)
	}
	if err := resp.Err(); err != nil {
		return nil, cierrors.WrapAPIError(err, operation)
	}
	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, endpoint, operation string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, c.header(), operation)
}

func decoded[T any](operation string, v T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, cierrors.NewDeserializationError(err, operation)
	}
	return v, nil
}

func teamPath(team string) string {
	return "/api/v1/teams/" + url.PathEscape(team)
}

func pipelinePath(team, pipeline string) string {
	return teamPath(team) + "/pipelines/" + url.PathEscape(pipeline)
}

// Info fetches the server version
func (c *Client) Info(ctx context.Context) (models.Info, error) {
	const operation = "fetch server info"
	body, err := c.get(ctx, "/api/v1/info", operation)
	if err != nil {
		return models.Info{}, err
	}
	info, err := decode.Info(body)
	return decoded(operation, info, err)
}

// Teams lists the teams visible to the caller
func (c *Client) Teams(ctx context.Context) ([]models.Team, error) {
	const operation = "list teams"
	body, err := c.get(ctx, "/api/v1/teams", operation)
	if err != nil {
		return nil, err
	}
	teams, err := decode.Teams(body)
	return decoded(operation, teams, err)
}

// AuthMethods lists the ways a team can be logged in to
func (c *Client) AuthMethods(ctx context.Context, team string) ([]models.AuthMethod, error) {
	const operation = "list auth methods"
	body, err := c.do(ctx, http.MethodGet, teamPath(team)+"/auth/methods", http.Header{}, operation)
	if err != nil {
		return nil, err
	}
	methods, err := decode.AuthMethods(body)
	return decoded(operation, methods, err)
}

// AnonymousToken requests a token without credentials, for teams with no
// auth configured.
func (c *Client) AnonymousToken(ctx context.Context, team string) (models.Token, error) {
	return c.requestToken(ctx, team, http.Header{})
}

// BasicToken exchanges a username and password for a token
func (c *Client) BasicToken(ctx context.Context, team, username, password string) (models.Token, error) {
	header := http.Header{}
	header.Set("Authorization", BasicAuthorization(username, password))
	return c.requestToken(ctx, team, header)
}

// BasicAuthorization builds the Authorization header value for HTTP basic auth
func BasicAuthorization(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func (c *Client) requestToken(ctx context.Context, team string, header http.Header) (models.Token, error) {
	const operation = "request token"
	body, err := c.do(ctx, http.MethodGet, teamPath(team)+"/auth/token", header, operation)
	if err != nil {
		return models.Token{}, err
	}
	token, err := decode.Token(body)
	return decoded(operation, token, err)
}

// ValidateToken checks a token obtained outside this client by making an
// authenticated request with it. A non-2xx answer rejects the token.
func (c *Client) ValidateToken(ctx context.Context, token models.Token) error {
	header := http.Header{}
	header.Set("Authorization", token.AuthValue())

	resp, err := c.http.Get(ctx, "/api/v1/containers", header)
	if err != nil {
		return cierrors.WrapAPIError(err, "validate token")
	}
	if httpErr := resp.Err(); httpErr != nil {
		var details string
		if e, ok := httpErr.(*httpClient.ErrorResponse); ok {
			details = cierrors.ServerMessage(e)
		}
		return cierrors.NewTokenRejectedError(httpErr, details,
			"Copy the whole token shown after logging in through the browser")
	}
	return nil
}

// Pipelines lists the pipelines of a team
func (c *Client) Pipelines(ctx context.Context, team string) ([]models.Pipeline, error) {
	const operation = "list pipelines"
	body, err := c.get(ctx, teamPath(team)+"/pipelines", operation)
	if err != nil {
		return nil, err
	}
	pipelines, err := decode.Pipelines(body)
	return decoded(operation, pipelines, err)
}

// Jobs lists the jobs of a pipeline. A 401 means the stored token is no
// longer accepted and is reported as authorization expired.
func (c *Client) Jobs(ctx context.Context, team, pipeline string) ([]models.Job, error) {
	const operation = "list jobs"
	endpoint := pipelinePath(team, pipeline) + "/jobs"

	resp, err := c.http.Get(ctx, endpoint, c.header())
	if err != nil {
		return nil, cierrors.WrapAPIError(err, operation)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, cierrors.NewAuthorizationExpiredError(resp.Err(),
			fmt.Sprintf("the token for team %q is no longer valid", team),
			"Run 'ciw login' to log in again")
	}
	if err := resp.Err(); err != nil {
		return nil, cierrors.WrapAPIError(err, operation)
	}

	jobs, err := decode.Jobs(resp.Body)
	return decoded(operation, jobs, err)
}

// Builds lists recent builds visible to the caller
func (c *Client) Builds(ctx context.Context) ([]models.Build, error) {
	const operation = "list builds"
	body, err := c.get(ctx, "/api/v1/builds", operation)
	if err != nil {
		return nil, err
	}
	builds, err := decode.Builds(body)
	return decoded(operation, builds, err)
}

// JobBuilds lists the builds of one job
func (c *Client) JobBuilds(ctx context.Context, team, pipeline, job string) ([]models.Build, error) {
	const operation = "list job builds"
	body, err := c.get(ctx, pipelinePath(team, pipeline)+"/jobs/"+url.PathEscape(job)+"/builds", operation)
	if err != nil {
		return nil, err
	}
	builds, err := decode.Builds(body)
	return decoded(operation, builds, err)
}

// TriggerBuild starts a new build of a job
func (c *Client) TriggerBuild(ctx context.Context, team, pipeline, job string) (models.Build, error) {
	const operation = "trigger build"
	endpoint := pipelinePath(team, pipeline) + "/jobs/" + url.PathEscape(job) + "/builds"
	body, err := c.do(ctx, http.MethodPost, endpoint, c.header(), operation)
	if err != nil {
		return models.Build{}, err
	}
	build, err := decode.Build(body)
	return decoded(operation, build, err)
}

// BuildEventsEndpoint is the path of the event stream of a build
func BuildEventsEndpoint(buildID int) string {
	return fmt.Sprintf("/api/v1/builds/%d/events", buildID)
}

// WatchBuild follows the output of a build until the server ends the
// stream, the connection fails or the returned stream is closed.
func (c *Client) WatchBuild(ctx context.Context, buildID int, handler logs.Handler) *logs.Stream {
	return logs.Connect(ctx, c.http, BuildEventsEndpoint(buildID), c.header(), handler, logs.WithLogger(c.logger))
}
