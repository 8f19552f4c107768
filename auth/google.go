package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/tranphattrien/easycode-server/apperr"
)

// FederatedIdentity is what a verified federated token resolves to.
type FederatedIdentity struct {
	Email   string
	Name    string
	Picture string
}

// FederatedVerifier validates a federated id token. Tests substitute a
// fake; production uses GoogleVerifier.
type FederatedVerifier interface {
	Verify(ctx context.Context, token string) (*FederatedIdentity, error)
}

// GoogleVerifier checks Google ID tokens against the tokeninfo
// endpoint.
type GoogleVerifier struct {
	ClientId   string
	HttpClient *http.Client
}

func NewGoogleVerifier(clientId string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientId:   clientId,
		HttpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

const tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"

type tokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*FederatedIdentity, error) {
	endpoint := tokenInfoEndpoint + "?id_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed building tokeninfo request", err)
	}

	res, err := v.HttpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed reaching google", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, apperr.New(apperr.Authorization, "Failed to authenticate you with google. Try with some other google account!")
	}

	info := tokenInfo{}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed decoding tokeninfo response", err)
	}

	if info.Aud != v.ClientId || info.EmailVerified != "true" {
		return nil, apperr.New(apperr.Authorization, "Failed to authenticate you with google. Try with some other google account!")
	}

	return &FederatedIdentity{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}
