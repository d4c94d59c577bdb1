package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/stretchr/testify/require"
)

const testKeyID = "test-key-1"

// jwksServer serves a one-key JWKS document and counts fetches.
type jwksServer struct {
	priv   *rsa.PrivateKey
	server *httptest.Server
	hits   atomic.Int32
	status atomic.Int32
}

func newJWKSServer(t *testing.T) *jwksServer {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pub, err := jwk.Import(&priv.PublicKey)
	require.NoError(t, err)
	require.NoError(t, pub.Set(jwk.KeyIDKey, testKeyID))

	set := jwk.NewSet()
	require.NoError(t, set.AddKey(pub))

	body, err := json.Marshal(set)
	require.NoError(t, err)

	s := &jwksServer{priv: priv}
	s.status.Store(http.StatusOK)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if code := int(s.status.Load()); code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.server.Close)

	return s
}

func (s *jwksServer) URL() string {
	return s.server.URL
}

func (s *jwksServer) keySet() *RemoteKeySet {
	return NewRemoteKeySet(s.URL(), time.Second, WithHTTPClient(s.server.Client()))
}

func (s *jwksServer) sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	return signWith(t, s.priv, testKeyID, claims)
}

func signWith(t *testing.T, priv *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(priv)
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
}
