package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"commune/internal/draft/ports"
)

// DefaultCaptchaVerifyURL is the hCaptcha siteverify endpoint.
const DefaultCaptchaVerifyURL = "https://api.hcaptcha.com/siteverify"

// HCaptchaVerifier verifies captcha solution tokens against the provider.
type HCaptchaVerifier struct {
	client    *http.Client
	secret    string
	verifyURL string
}

var _ ports.CaptchaVerifier = (*HCaptchaVerifier)(nil)

func NewHCaptchaVerifier(secret, verifyURL string, client *http.Client) *HCaptchaVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	if verifyURL == "" {
		verifyURL = DefaultCaptchaVerifyURL
	}
	return &HCaptchaVerifier{client: client, secret: secret, verifyURL: verifyURL}
}

type captchaResponse struct {
	Success bool `json:"success"`
}

func (v *HCaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha provider returned status %d", resp.StatusCode)
	}
	var body captchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.Success, nil
}

// StaticCaptcha accepts any non-empty token. Used when no captcha secret
// is configured.
type StaticCaptcha struct{}

var _ ports.CaptchaVerifier = StaticCaptcha{}

func (StaticCaptcha) Verify(_ context.Context, token string) (bool, error) {
	return token != "", nil
}
