package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ciwatch/cli/internal/concourse"
	cierrors "github.com/ciwatch/cli/internal/errors"
	httpClient "github.com/ciwatch/cli/internal/http"
	"github.com/ciwatch/cli/internal/models"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	basic := models.AuthMethod{Type: models.AuthTypeBasic}
	github := models.AuthMethod{Type: models.AuthTypeGitHub, URL: "https://ci.example.com/auth/github"}
	uaa := models.AuthMethod{Type: models.AuthTypeUAA, URL: "https://uaa.example.com"}

	testCases := []struct {
		name    string
		methods []models.AuthMethod
		flow    Flow
		choices int
	}{
		{name: "no methods", methods: nil, flow: FlowAnonymous},
		{name: "empty list", methods: []models.AuthMethod{}, flow: FlowAnonymous},
		{name: "single uaa", methods: []models.AuthMethod{uaa}, flow: FlowUnsupported},
		{name: "only uaa", methods: []models.AuthMethod{uaa, uaa}, flow: FlowUnsupported},
		{name: "single github", methods: []models.AuthMethod{github}, flow: FlowExternal},
		{name: "github beside uaa", methods: []models.AuthMethod{uaa, github}, flow: FlowExternal},
		{name: "single basic", methods: []models.AuthMethod{basic}, flow: FlowChoose, choices: 1},
		{name: "basic and github", methods: []models.AuthMethod{basic, github}, flow: FlowChoose, choices: 2},
		{name: "uaa hidden from choices", methods: []models.AuthMethod{basic, uaa, github}, flow: FlowChoose, choices: 2},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			decision := Decide(tc.methods)
			if decision.Flow != tc.flow {
				t.Errorf("expected flow %s, got %s", tc.flow, decision.Flow)
			}
			if len(decision.Methods) != tc.choices {
				t.Errorf("expected %d choices, got %+v", tc.choices, decision.Methods)
			}
			if tc.flow == FlowExternal && decision.Method != github {
				t.Errorf("expected github method, got %+v", decision.Method)
			}
		})
	}
}

// stubService records calls and answers from fixed values
type stubService struct {
	mu          sync.Mutex
	calls       []string
	methods     []models.AuthMethod
	methodsErr  error
	token       models.Token
	validateErr error
}

func (s *stubService) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubService) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubService) AuthMethods(ctx context.Context, team string) ([]models.AuthMethod, error) {
	s.record("methods")
	return s.methods, s.methodsErr
}

func (s *stubService) AnonymousToken(ctx context.Context, team string) (models.Token, error) {
	s.record("anonymous")
	return s.token, nil
}

func (s *stubService) BasicToken(ctx context.Context, team, username, password string) (models.Token, error) {
	s.record("basic " + username + ":" + password)
	return s.token, nil
}

func (s *stubService) ValidateToken(ctx context.Context, token models.Token) error {
	s.record("validate " + token.Value)
	return s.validateErr
}

// scriptedPrompter answers prompts from fixed values
type scriptedPrompter struct {
	choice   int
	username string
	password string
	pasted   string
	asked    []string
}

func (p *scriptedPrompter) ChooseMethod(methods []models.AuthMethod) (models.AuthMethod, error) {
	p.asked = append(p.asked, "choose")
	return methods[p.choice], nil
}

func (p *scriptedPrompter) Credentials() (string, string, error) {
	p.asked = append(p.asked, "credentials")
	return p.username, p.password, nil
}

func (p *scriptedPrompter) ExternalToken(method models.AuthMethod) (string, error) {
	p.asked = append(p.asked, "external "+method.URL)
	return p.pasted, nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("empty methods go straight to the anonymous token", func(t *testing.T) {
		t.Parallel()

		service := &stubService{methods: []models.AuthMethod{}, token: models.Token{Value: "anon"}}
		prompter := &scriptedPrompter{}

		token, err := NewResolver(service, "main").Resolve(context.Background(), prompter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Value != "anon" {
			t.Errorf("unexpected token %q", token.Value)
		}
		if !equal(service.called(), []string{"methods", "anonymous"}) {
			t.Errorf("unexpected calls %v", service.called())
		}
		if len(prompter.asked) != 0 {
			t.Errorf("expected no prompts, got %v", prompter.asked)
		}
	})

	t.Run("uaa only fails without requesting a token", func(t *testing.T) {
		t.Parallel()

		service := &stubService{methods: []models.AuthMethod{{Type: models.AuthTypeUAA}}}

		_, err := NewResolver(service, "main").Resolve(context.Background(), &scriptedPrompter{})
		if !cierrors.IsUnsupportedAuth(err) {
			t.Fatalf("expected unsupported auth, got %v", err)
		}
		if !equal(service.called(), []string{"methods"}) {
			t.Errorf("expected no token call, got %v", service.called())
		}
	})

	t.Run("single external method skips the chooser", func(t *testing.T) {
		t.Parallel()

		service := &stubService{methods: []models.AuthMethod{{Type: models.AuthTypeGitHub, URL: "https://ci/auth"}}}
		prompter := &scriptedPrompter{pasted: "  pasted-token\n"}

		token, err := NewResolver(service, "main").Resolve(context.Background(), prompter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Value != "pasted-token" {
			t.Errorf("unexpected token %q", token.Value)
		}
		if !equal(prompter.asked, []string{"external https://ci/auth"}) {
			t.Errorf("unexpected prompts %v", prompter.asked)
		}
		if !equal(service.called(), []string{"methods", "validate pasted-token"}) {
			t.Errorf("unexpected calls %v", service.called())
		}
	})

	t.Run("styling copied with the token is removed", func(t *testing.T) {
		t.Parallel()

		service := &stubService{methods: []models.AuthMethod{{Type: models.AuthTypeGitHub}}}

		token, err := NewResolver(service, "main").Resolve(context.Background(), &scriptedPrompter{pasted: "\x1b[1mtok\x1b[0m\n"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.Value != "tok" {
			t.Errorf("unexpected token %q", token.Value)
		}
	})

	t.Run("rejected external token", func(t *testing.T) {
		t.Parallel()

		rejected := cierrors.NewTokenRejectedError(nil, "token is invalid")
		service := &stubService{
			methods:     []models.AuthMethod{{Type: models.AuthTypeGitHub}},
			validateErr: rejected,
		}

		_, err := NewResolver(service, "main").Resolve(context.Background(), &scriptedPrompter{pasted: "bad"})
		if !errors.Is(err, rejected) {
			t.Errorf("expected the rejection, got %v", err)
		}
	})

	t.Run("empty pasted token", func(t *testing.T) {
		t.Parallel()

		service := &stubService{methods: []models.AuthMethod{{Type: models.AuthTypeGitHub}}}

		_, err := NewResolver(service, "main").Resolve(context.Background(), &scriptedPrompter{pasted: "   "})
		if !cierrors.IsValidationError(err) {
			t.Errorf("expected a validation error, got %v", err)
		}
		if !equal(service.called(), []string{"methods"}) {
			t.Errorf("expected no validation call, got %v", service.called())
		}
	})

	t.Run("chosen basic method asks for credentials", func(t *testing.T) {
		t.Parallel()

		service := &stubService{
			methods: []models.AuthMethod{{Type: models.AuthTypeBasic}, {Type: models.AuthTypeGitHub}},
			token:   models.Token{Value: "abc123"},
		}
		prompter := &scriptedPrompter{choice: 0, username: "u", password: "p"}

		token, err := NewResolver(service, "main").Resolve(context.Background(), prompter)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token.AuthValue() != "Bearer abc123" {
			t.Errorf("unexpected token %q", token.AuthValue())
		}
		if !equal(prompter.asked, []string{"choose", "credentials"}) {
			t.Errorf("unexpected prompts %v", prompter.asked)
		}
		if !equal(service.called(), []string{"methods", "basic u:p"}) {
			t.Errorf("unexpected calls %v", service.called())
		}
	})

	t.Run("methods lookup failure", func(t *testing.T) {
		t.Parallel()

		lookupErr := cierrors.NewNetworkError(errors.New("refused"), "list auth methods")
		service := &stubService{methodsErr: lookupErr}

		_, err := NewResolver(service, "main").Resolve(context.Background(), &scriptedPrompter{})
		if !cierrors.IsNetworkError(err) {
			t.Errorf("expected network error, got %v", err)
		}
	})
}

func TestResolverSharesMethodsLookup(t *testing.T) {
	t.Parallel()

	var lookups atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/teams/main/auth/methods":
			lookups.Add(1)
			io.WriteString(w, `[{"type":"basic","url":"https://ci/sky/login"}]`)
		case "/api/v1/teams/main/auth/token":
			if r.Header.Get("Authorization") != "Basic dTpw" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			io.WriteString(w, `{"value":"abc123"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	resolver := NewResolver(concourse.New(httpClient.NewClient(server.URL)), "main")

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := resolver.Methods(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	token, err := resolver.Resolve(context.Background(), &scriptedPrompter{username: "u", password: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AuthValue() != "Bearer abc123" {
		t.Errorf("unexpected token %q", token.AuthValue())
	}
	if lookups.Load() != 1 {
		t.Errorf("expected one auth methods request, got %d", lookups.Load())
	}
}
