package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"commune/internal/draft/ports"
)

// HTTPClaimService queries a credential provider for per-kind claim
// status. Claim execution and settlement stay on the provider side.
type HTTPClaimService struct {
	client  *http.Client
	baseURL string
}

var _ ports.ClaimService = (*HTTPClaimService)(nil)

func NewHTTPClaimService(baseURL string, client *http.Client) *HTTPClaimService {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClaimService{client: client, baseURL: baseURL}
}

func (s *HTTPClaimService) Status(ctx context.Context, kind ports.ClaimKind, collectionID, responderID string) (ports.ClaimStatus, error) {
	endpoint := fmt.Sprintf("%s/claims/%s?collection=%s&user=%s",
		s.baseURL, kind, url.QueryEscape(collectionID), url.QueryEscape(responderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.ClaimStatus{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return ports.ClaimStatus{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ports.ClaimStatus{}, fmt.Errorf("claim provider returned status %d", resp.StatusCode)
	}
	var status ports.ClaimStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return ports.ClaimStatus{}, err
	}
	return status, nil
}

// StaticClaimService reports every claim as claimable and unclaimed.
// Used when no provider is configured.
type StaticClaimService struct{}

var _ ports.ClaimService = StaticClaimService{}

func (StaticClaimService) Status(context.Context, ports.ClaimKind, string, string) (ports.ClaimStatus, error) {
	return ports.ClaimStatus{CanClaim: true}, nil
}
