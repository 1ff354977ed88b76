package mcrypto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// SessionProperty is one entry of a session response's property list
// (e.g. the signed "textures" property).
type SessionProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// SessionResponse is the body Mojang's session server returns from
// hasJoined when a client's auth session is valid.
type SessionResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Properties []SessionProperty `json:"properties"`
}

// CallSessionServer performs the online-mode join verification GET
// against baseURL + "/session/minecraft/hasJoined". A non-200 response
// (including the 204 Mojang returns for an invalid session) is reported
// as ErrEncryption.
func CallSessionServer(ctx context.Context, baseURL, username, serverIDHash string) (*SessionResponse, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("serverId", serverIDHash)
	endpoint := baseURL + "/session/minecraft/hasJoined?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building session request: %v", protoerr.ErrEncryption, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: session server request: %v", protoerr.ErrEncryption, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: session server returned status %d", protoerr.ErrEncryption, resp.StatusCode)
	}
	var out SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decoding session response: %v", protoerr.ErrEncryption, err)
	}
	return &out, nil
}
