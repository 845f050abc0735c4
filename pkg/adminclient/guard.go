package adminclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// State is the protected-route guard state.
//
//	Unverified -> Denied     no stored token, no round trip
//	Unverified -> Verifying  stored token, verification in flight
//	Verifying  -> Verified   server confirmed the token
//	Verifying  -> Denied     any rejection, transport error, or timeout
//
// Denied is terminal for the current page load. The guard never retries.
type State int

const (
	StateUnverified State = iota
	StateVerifying
	StateVerified
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateUnverified:
		return "unverified"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// GuardResult is the outcome of a protected-route check.
type GuardResult struct {
	State State
	Admin *AdminInfo
	Err   error
}

type verifyResponse struct {
	Success bool      `json:"success"`
	Admin   AdminInfo `json:"admin"`
}

// GuardRoute decides whether the protected view may render. With no stored
// token it denies without touching the network. Otherwise it verifies the
// token server-side; any rejection or transport failure denies and clears the
// stored token, so a rejected token cannot be retried against the same view.
//
// Cancellation of the caller's context is the one exception: the requesting
// component is gone, so the result is discarded without a state change and
// the stored token is left alone.
func (c *Client) GuardRoute(ctx context.Context) GuardResult {
	token, _ := c.store.Load()
	if token == "" {
		return GuardResult{State: StateDenied}
	}

	vctx, cancel := context.WithTimeout(ctx, c.verifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(vctx, http.MethodGet, c.baseURL+"/api/admin/verify", nil)
	if err != nil {
		return c.deny(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return GuardResult{State: StateUnverified, Err: ctx.Err()}
		}
		return c.deny(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.deny(nil)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.deny(err)
	}
	if !body.Success {
		return c.deny(nil)
	}

	admin := body.Admin
	return GuardResult{State: StateVerified, Admin: &admin}
}

func (c *Client) deny(err error) GuardResult {
	c.store.Clear()
	return GuardResult{State: StateDenied, Err: err}
}
