// Package gmail hands finished emails to Gmail: a prefilled compose URL for
// manual sending, or a draft created through the Gmail API. Nothing here
// sends mail.
package gmail

import (
	"bufio"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/billlayne/mailcomposer/config"
)

const (
	user       = "me"
	composeURL = "https://mail.google.com/mail/?view=cm&fs=1"
)

// ComposeURL opens a Gmail compose window addressed to to with subject
// filled in. Spaces are encoded as %20.
func ComposeURL(to, subject string) string {
	return composeURL + "&to=" + encodeComponent(to) + "&su=" + encodeComponent(subject)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

type Client struct {
	srv *gmail.Service
	log *zap.Logger
}

// Prompt is used for the one-time OAuth consent when no token is saved.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// NewClient authorizes with the credentials and token files in cfg. When
// the token file is missing, the consent URL is written to p.Out and the
// code is read from p.In.
func NewClient(ctx context.Context, cfg config.Gmail, p Prompt, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gmail.GmailComposeScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	httpClient, err := getOAuthClient(ctx, oauthConfig, cfg.TokenFile, p, log)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &Client{srv: srv, log: log}, nil
}

func getOAuthClient(ctx context.Context, cfg *oauth2.Config, tokenFile string, p Prompt, log *zap.Logger) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, cfg, p)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
		log.Info("gmail token saved", zap.String("path", tokenFile))
	}
	return cfg.Client(ctx, tok), nil
}

func getTokenFromWeb(ctx context.Context, cfg *oauth2.Config, p Prompt) (*oauth2.Token, error) {
	if p.In == nil || p.Out == nil {
		return nil, errors.New("gmail: no saved token and no terminal to authorize on")
	}
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(p.Out, "Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)
	sc := bufio.NewScanner(p.In)
	if !sc.Scan() {
		return nil, fmt.Errorf("unable to read authorization code: %w", sc.Err())
	}
	tok, err := cfg.Exchange(ctx, strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// CreateDraft stores d in the user's drafts and returns the draft id.
func (c *Client) CreateDraft(ctx context.Context, d Draft) (string, error) {
	raw, err := buildMessage(d)
	if err != nil {
		return "", err
	}
	draft := &gmail.Draft{Message: &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}}
	created, err := c.srv.Users.Drafts.Create(user, draft).Context(ctx).Do()
	if err != nil {
		c.log.Error("draft create failed", zap.String("to", d.To), zap.Error(err))
		return "", fmt.Errorf("gmail: create draft: %w", err)
	}
	c.log.Info("draft created", zap.String("id", created.Id), zap.String("to", d.To),
		zap.Int("attachments", len(d.Attachments)))
	return created.Id, nil
}
