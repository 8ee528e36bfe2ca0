package api

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenSource picks the credentials for backend requests: OAuth2 client
// credentials when a token URL is configured, otherwise a static bearer
// token. It returns nil when no credentials are configured.
func tokenSource(ctx context.Context, opts Options) oauth2.TokenSource {
	if opts.TokenURL != "" && opts.ClientID != "" {
		cc := &clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     opts.TokenURL,
			Scopes:       opts.Scopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		}
		if opts.TokenFile == "" {
			return cc.TokenSource(ctx)
		}
		cached, err := loadToken(opts.TokenFile)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("ignoring cached token", "path", opts.TokenFile, "err", err)
			}
			cached = nil
		}
		return oauth2.ReuseTokenSource(cached, &savingTokenSource{
			ts:   cc.TokenSource(ctx),
			path: opts.TokenFile,
		})
	}
	if opts.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
	}
	return nil
}

// savingTokenSource wraps a TokenSource and persists newly issued tokens.
type savingTokenSource struct {
	ts   oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		// Best-effort save; a failed write only costs a token request next run.
		if saveToken(s.path, tok) == nil {
			s.last = tok.AccessToken
		}
	}
	return tok, nil
}

// loadToken loads a previously saved token. A missing file is not an error.
func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to fetch a new one): %w", path, err)
	}
	return &tok, nil
}

// saveToken persists a token to disk with an atomic rename.
func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}
