package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	collection "commune/internal/collection/models"
	"commune/internal/draft/ports"
)

// PassportSybil scores an address against a stamp scorer service. The
// sybil config carries per-stamp weights and the passing threshold; the
// scorer reports which stamps an address holds.
type PassportSybil struct {
	client    *http.Client
	scorerURL string
}

var _ ports.SybilService = (*PassportSybil)(nil)

func NewPassportSybil(scorerURL string, client *http.Client) *PassportSybil {
	if client == nil {
		client = http.DefaultClient
	}
	return &PassportSybil{client: client, scorerURL: scorerURL}
}

type stampsResponse struct {
	Stamps []string `json:"stamps"`
}

func (s *PassportSybil) PassesSybilCheck(ctx context.Context, address string, cfg collection.SybilConfig) (bool, error) {
	if !cfg.Enabled {
		return true, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.scorerURL+"?address="+url.QueryEscape(address), nil)
	if err != nil {
		return false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("scorer returned status %d", resp.StatusCode)
	}
	var body stampsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}

	var total float64
	for _, stamp := range body.Stamps {
		total += cfg.Scores[stamp]
	}
	return total >= cfg.Threshold, nil
}

// StaticSybil passes every enabled check. Used when no scorer is
// configured, so local setups are not locked out of sybil-gated forms.
type StaticSybil struct{}

var _ ports.SybilService = StaticSybil{}

func (StaticSybil) PassesSybilCheck(context.Context, string, collection.SybilConfig) (bool, error) {
	return true, nil
}
