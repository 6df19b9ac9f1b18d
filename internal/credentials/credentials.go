// Package credentials resolves the Firebase service account key used to
// authorize the Admin SDK.
package credentials

import (
	"encoding/base64"
	"encoding/json"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/go-faster/errors"
	"google.golang.org/api/option"
)

// DefaultFile is the key file used for local development when no key is set
// in the environment.
const DefaultFile = "config/firebase-service-account.json"

const serviceAccountType = "service_account"

var (
	ErrInvalidFormat     = errors.New("invalid FIREBASE_SERVICE_ACCOUNT_KEY format: must be JSON or base64 encoded JSON")
	ErrInvalidCredential = errors.New("invalid service account credential")
	ErrNotFound          = errors.New("service account file not found")
)

// Source identifies where a credential was read from.
type Source string

const (
	SourceEnv       Source = "env"
	SourceEnvBase64 Source = "env-base64"
	SourceFile      Source = "file"
)

// ServiceAccount is a Google service account key as downloaded from the
// Firebase console.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain"`
}

type Credential struct {
	ServiceAccount
	Source Source

	raw []byte
}

// Resolve prefers key, the value of FIREBASE_SERVICE_ACCOUNT_KEY, and only
// reads the file at path when key is blank. A malformed key is never
// rescued by the file.
func Resolve(key, path string) (*Credential, error) {
	if strings.TrimSpace(key) != "" {
		return Parse(key)
	}
	if path == "" {
		path = DefaultFile
	}
	return Load(path)
}

// Parse reads raw as JSON, falling back to base64 encoded JSON.
func Parse(raw string) (*Credential, error) {
	raw = strings.TrimSpace(raw)

	if sa, err := decode([]byte(raw)); err == nil {
		return newCredential(sa, []byte(raw), SourceEnv)
	}

	b, err := decodeBase64(raw)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sa, err := decode(b)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	return newCredential(sa, b, SourceEnvBase64)
}

// Load reads a service account key file.
func Load(path string) (*Credential, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(ErrNotFound, path)
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	sa, err := decode(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, path)
	}

	return newCredential(sa, b, SourceFile)
}

// Validate mirrors the checks the Admin SDK applies to certificate
// credentials.
func (c *Credential) Validate() error {
	if c.Type != "" && c.Type != serviceAccountType {
		return errors.Wrapf(ErrInvalidCredential, "unsupported type %q", c.Type)
	}
	if strings.TrimSpace(c.ProjectID) == "" {
		return errors.Wrap(ErrInvalidCredential, `must contain a string "project_id" property`)
	}
	if strings.TrimSpace(c.PrivateKey) == "" {
		return errors.Wrap(ErrInvalidCredential, `must contain a string "private_key" property`)
	}
	if strings.TrimSpace(c.ClientEmail) == "" {
		return errors.Wrap(ErrInvalidCredential, `must contain a string "client_email" property`)
	}
	return nil
}

// JSON returns the key exactly as it was read.
func (c *Credential) JSON() []byte {
	return c.raw
}

func (c *Credential) ClientOption() option.ClientOption {
	return option.WithCredentialsJSON(c.raw)
}

// String never includes key material.
func (c *Credential) String() string {
	return c.ClientEmail + " (" + c.ProjectID + ") from " + string(c.Source)
}

func newCredential(sa ServiceAccount, raw []byte, src Source) (*Credential, error) {
	c := &Credential{ServiceAccount: sa, Source: src, raw: raw}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(b []byte) (ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(b, &sa); err != nil {
		return ServiceAccount{}, err
	}
	return sa, nil
}

// decodeBase64 accepts the standard and URL alphabets, with or without
// padding, and ignores embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return nil, ErrInvalidFormat
	}

	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		var b []byte
		if b, err = enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, err
}
