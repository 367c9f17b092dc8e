package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

// Authorize returns an HTTP client authorised for read/write access to Google Sheets.
//
// The credentials file may be either a service account key or an OAuth2 client secret.
// For a client secret the OAuth2 token is cached in the working directory as
// <credentials>.sheets and, if there is no cached token, the user is asked to
// authorise access in a browser and enter the resulting code, which is read from in.
func Authorize(ctx context.Context, credentials, workdir string, in io.Reader, out io.Writer) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrAuth, err)
	}

	var key struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &key); err != nil {
		return nil, fmt.Errorf("%w (invalid credentials file %v: %v)", ErrAuth, credentials, err)
	}

	if key.Type == "service_account" {
		jwt, err := google.JWTConfigFromJSON(b, SHEETS)
		if err != nil {
			return nil, fmt.Errorf("%w (%v)", ErrAuth, err)
		}

		return jwt.Client(ctx), nil
	}

	config, err := google.ConfigFromJSON(b, SHEETS)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrAuth, err)
	}

	tokens := tokensFile(credentials, workdir)
	token, err := tokenFromFile(tokens)
	if err != nil {
		if token, err = getTokenFromWeb(ctx, config, in, out); err != nil {
			return nil, fmt.Errorf("%w (%v)", ErrAuth, err)
		}

		if err := saveToken(tokens, token); err != nil {
			return nil, fmt.Errorf("unable to cache OAuth2 token (%w)", err)
		}
	}

	return config.Client(ctx, token), nil
}

func tokensFile(credentials, workdir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(workdir, fmt.Sprintf("%s.sheets", name))
}

// Request a token from the web, then returns the retrieved token.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Fscan(in, &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code (%v)", err)
	}

	token, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web (%v)", err)
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}

	return token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
