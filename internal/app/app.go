package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeforge/pkg/ai"
	"codeforge/pkg/auth"
	"codeforge/pkg/domain"
	"codeforge/pkg/store"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	SessionTTL  time.Duration

	OpenAIAPIKey    string
	OpenAIModel     string
	CohereAPIKey    string
	CohereModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	GenerateTimeout time.Duration

	// Store, Sessions and Generators override the defaults built from the
	// fields above; tests use these to inject fakes.
	Store      store.Store
	Sessions   store.SessionIssuer
	Generators []ai.TextGenerator
}

// App is the core application service wiring together storage, sessions,
// project CRUD and code generation.
type App struct {
	store      store.Store
	sessions   store.SessionIssuer
	generators []ai.TextGenerator
	genTimeout time.Duration
}

// New constructs the application. An empty DatabaseURL selects the in-memory
// store; provider generators are probed in priority order from configured
// API keys (OpenAI, then Cohere, then Anthropic).
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.GenerateTimeout == 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if strings.TrimSpace(cfg.DatabaseURL) != "" {
			var err error
			dataStore, err = store.NewGormStore(cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("init postgres store: %w", err)
			}
		} else {
			dataStore = store.NewMemoryStore()
		}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return nil, fmt.Errorf("jwtSecret is required")
		}
		sessions = store.NewJWTSessionIssuer(cfg.JWTSecret, cfg.SessionTTL)
	}

	generators := cfg.Generators
	if generators == nil {
		if key := strings.TrimSpace(cfg.OpenAIAPIKey); key != "" {
			generators = append(generators, ai.NewOpenAIGenerator(key, cfg.OpenAIModel))
		}
		if key := strings.TrimSpace(cfg.CohereAPIKey); key != "" {
			generators = append(generators, ai.NewCohereGenerator(key, cfg.CohereModel))
		}
		if key := strings.TrimSpace(cfg.AnthropicAPIKey); key != "" {
			generators = append(generators, ai.NewAnthropicGenerator(key, cfg.AnthropicModel))
		}
	}

	return &App{
		store:      dataStore,
		sessions:   sessions,
		generators: generators,
		genTimeout: cfg.GenerateTimeout,
	}, nil
}

// SignUp registers a new user and issues a session token.
func (a *App) SignUp(name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return domain.User{}, "", ErrNameEmailPasswordRequired
	}
	if err := auth.ValidatePassword(password); err != nil {
		return domain.User{}, "", err
	}
	exists, err := a.store.HasUserEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return domain.User{}, "", ErrEmailAlreadyExists
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, "", fmt.Errorf("save user: %w", err)
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// Login validates credentials and issues a session token.
func (a *App) Login(email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issue session: %w", err)
	}
	return user, token, nil
}

// UserFromToken verifies a session token and resolves its user.
// The token status is reported even when the user lookup fails so the
// caller can distinguish 401/403 cases.
func (a *App) UserFromToken(token string) (domain.User, store.TokenStatus) {
	uid, status := a.sessions.Verify(token)
	if status != store.TokenValid {
		return domain.User{}, status
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, store.TokenInvalid
	}
	return user, store.TokenValid
}

// UpdateProfile changes the user's display name, the only mutable field.
func (a *App) UpdateProfile(user domain.User, name string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, ErrNameRequired
	}
	user.Name = name
	user.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveUser(user); err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
