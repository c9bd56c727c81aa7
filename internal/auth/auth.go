// Package auth works out how to log in to a team and produces its token
package auth

import (
	"context"
	"strings"

	"github.com/ciwatch/cli/internal/ansi"
	"github.com/ciwatch/cli/internal/async"
	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/models"
)

// Flow is the login flow a team's auth methods lead to
type Flow int

const (
	// FlowAnonymous fetches a token without credentials
	FlowAnonymous Flow = iota
	// FlowUnsupported means the team can only be logged in to with UAA
	FlowUnsupported
	// FlowExternal asks for a token obtained at Decision.Method's URL
	FlowExternal
	// FlowChoose lets the user pick one of Decision.Methods
	FlowChoose
)

func (f Flow) String() string {
	switch f {
	case FlowAnonymous:
		return "anonymous"
	case FlowUnsupported:
		return "unsupported"
	case FlowExternal:
		return "external"
	case FlowChoose:
		return "choose"
	default:
		return "unknown"
	}
}

// Decision is the outcome of inspecting a team's auth methods
type Decision struct {
	Flow Flow
	// Method is set for FlowExternal
	Method models.AuthMethod
	// Methods holds the choices for FlowChoose, UAA excluded
	Methods []models.AuthMethod
}

// Decide picks the login flow for a list of auth methods:
//   - no methods: anonymous
//   - only UAA methods: unsupported
//   - a single external method besides any UAA ones: external, no choice
//   - anything else: choose among the non-UAA methods
func Decide(methods []models.AuthMethod) Decision {
	if len(methods) == 0 {
		return Decision{Flow: FlowAnonymous}
	}

	usable := make([]models.AuthMethod, 0, len(methods))
	for _, m := range methods {
		if m.Type != models.AuthTypeUAA {
			usable = append(usable, m)
		}
	}

	switch {
	case len(usable) == 0:
		return Decision{Flow: FlowUnsupported}
	case len(usable) == 1 && usable[0].External():
		return Decision{Flow: FlowExternal, Method: usable[0]}
	default:
		return Decision{Flow: FlowChoose, Methods: usable}
	}
}

// Service is the part of the API login needs
type Service interface {
	AuthMethods(ctx context.Context, team string) ([]models.AuthMethod, error)
	AnonymousToken(ctx context.Context, team string) (models.Token, error)
	BasicToken(ctx context.Context, team, username, password string) (models.Token, error)
	ValidateToken(ctx context.Context, token models.Token) error
}

// Prompter asks the user for what a login flow needs
type Prompter interface {
	// ChooseMethod picks one of several auth methods
	ChooseMethod(methods []models.AuthMethod) (models.AuthMethod, error)
	// Credentials asks for a username and password
	Credentials() (username, password string, err error)
	// ExternalToken shows where to get a token and reads the pasted value
	ExternalToken(method models.AuthMethod) (string, error)
}

// Resolver logs in to one team. The team's auth methods are fetched at most
// once however many times they are asked for.
type Resolver struct {
	service Service
	team    string
	methods *async.Shared[[]models.AuthMethod]
}

// NewResolver creates a resolver for team
func NewResolver(service Service, team string) *Resolver {
	r := &Resolver{service: service, team: team}
	r.methods = async.Share(async.Producer[[]models.AuthMethod](func(ctx context.Context) ([]models.AuthMethod, error) {
		return service.AuthMethods(ctx, team)
	}))
	return r
}

// Team is the team being logged in to
func (r *Resolver) Team() string {
	return r.team
}

// Methods returns the team's auth methods
func (r *Resolver) Methods(ctx context.Context) ([]models.AuthMethod, error) {
	return r.methods.Await(ctx)
}

// Decide returns the login flow for the team
func (r *Resolver) Decide(ctx context.Context) (Decision, error) {
	methods, err := r.Methods(ctx)
	if err != nil {
		return Decision{}, err
	}
	return Decide(methods), nil
}

// Anonymous fetches a token without credentials
func (r *Resolver) Anonymous(ctx context.Context) (models.Token, error) {
	return r.service.AnonymousToken(ctx, r.team)
}

// Basic exchanges a username and password for a token
func (r *Resolver) Basic(ctx context.Context, username, password string) (models.Token, error) {
	if username == "" {
		return models.Token{}, cierrors.NewValidationError(nil, "a username is required")
	}
	return r.service.BasicToken(ctx, r.team, username, password)
}

// External accepts a token pasted by the user once the server has accepted it.
// Styling copied along with the token is removed.
func (r *Resolver) External(ctx context.Context, pasted string) (models.Token, error) {
	value := strings.TrimSpace(ansi.String(pasted))
	if value == "" {
		return models.Token{}, cierrors.NewValidationError(nil, "no token was entered")
	}

	token := models.Token{Value: value}
	if err := r.service.ValidateToken(ctx, token); err != nil {
		return models.Token{}, err
	}
	return token, nil
}

// Resolve runs whichever login flow the team's auth methods call for
func (r *Resolver) Resolve(ctx context.Context, prompter Prompter) (models.Token, error) {
	decision, err := r.Decide(ctx)
	if err != nil {
		return models.Token{}, err
	}

	switch decision.Flow {
	case FlowAnonymous:
		return r.Anonymous(ctx)
	case FlowUnsupported:
		return models.Token{}, cierrors.NewUnsupportedAuthError(nil, cierrors.MessageUnsupportedAuth)
	case FlowExternal:
		return r.external(ctx, prompter, decision.Method)
	}

	method, err := prompter.ChooseMethod(decision.Methods)
	if err != nil {
		return models.Token{}, err
	}
	if method.External() {
		return r.external(ctx, prompter, method)
	}

	username, password, err := prompter.Credentials()
	if err != nil {
		return models.Token{}, err
	}
	return r.Basic(ctx, username, password)
}

func (r *Resolver) external(ctx context.Context, prompter Prompter, method models.AuthMethod) (models.Token, error) {
	pasted, err := prompter.ExternalToken(method)
	if err != nil {
		return models.Token{}, err
	}
	return r.External(ctx, pasted)
}
