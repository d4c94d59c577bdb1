package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"golang.org/x/time/rate"
)

var (
	ErrKeySourceUnconfigured = errors.New("key source not configured")
	ErrKeyNotFound           = errors.New("signing key not found")
	ErrFetchThrottled        = errors.New("jwks fetch throttled")
)

const (
	defaultFetchTimeout = 5 * time.Second
	defaultFetchRate    = rate.Limit(1)
	defaultFetchBurst   = 5
	maxKeySetBytes      = 1 << 20
)

// KeySource resolves token verification keys.
type KeySource interface {
	Configured() bool
	Key(ctx context.Context, kid string) (any, error)
}

// RemoteKeySet loads a JWKS document from one URL the first time a key is
// needed and keeps it for the life of the process. Rotated keys are not
// picked up until restart. Concurrent first callers may each fetch; the first
// stored set wins.
type RemoteKeySet struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter

	mu  sync.RWMutex
	set jwk.Set
}

type RemoteKeySetOption func(*RemoteKeySet)

func WithHTTPClient(client *http.Client) RemoteKeySetOption {
	return func(k *RemoteKeySet) {
		k.client = client
	}
}

// WithFetchLimit bounds how often the key server is contacted while no set
// has been loaded yet.
func WithFetchLimit(r rate.Limit, burst int) RemoteKeySetOption {
	return func(k *RemoteKeySet) {
		k.limiter = rate.NewLimiter(r, burst)
	}
}

func NewRemoteKeySet(url string, timeout time.Duration, opts ...RemoteKeySetOption) *RemoteKeySet {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	k := &RemoteKeySet{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(defaultFetchRate, defaultFetchBurst),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *RemoteKeySet) Configured() bool {
	return k != nil && k.url != ""
}

// Key returns the raw public key for kid. A token without a kid is accepted
// when the set holds exactly one key.
func (k *RemoteKeySet) Key(ctx context.Context, kid string) (any, error) {
	if !k.Configured() {
		return nil, ErrKeySourceUnconfigured
	}

	set, err := k.load(ctx)
	if err != nil {
		return nil, err
	}

	var key jwk.Key
	var found bool
	if kid != "" {
		key, found = set.LookupKeyID(kid)
	} else if set.Len() == 1 {
		key, found = set.Key(0)
	}
	if !found {
		return nil, fmt.Errorf(errKeyNotFoundFmt, ErrKeyNotFound, kid)
	}

	pub, err := jwk.PublicKeyOf(key)
	if err != nil {
		return nil, fmt.Errorf(errKeyExportFmt, kid, err)
	}

	var raw any
	if err := jwk.Export(pub, &raw); err != nil {
		return nil, fmt.Errorf(errKeyExportFmt, kid, err)
	}
	return raw, nil
}

func (k *RemoteKeySet) load(ctx context.Context) (jwk.Set, error) {
	k.mu.RLock()
	set := k.set
	k.mu.RUnlock()
	if set != nil {
		return set, nil
	}

	if !k.limiter.Allow() {
		return nil, ErrFetchThrottled
	}

	fetched, err := k.fetch(ctx)
	if err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.set == nil {
		k.set = fetched
	}
	return k.set, nil
}

func (k *RemoteKeySet) fetch(ctx context.Context) (jwk.Set, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.url, nil)
	if err != nil {
		return nil, fmt.Errorf(errFetchFmt, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFetchFmt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(errUnexpectedStatusFmt, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySetBytes))
	if err != nil {
		return nil, fmt.Errorf(errFetchFmt, err)
	}

	set, err := jwk.Parse(body)
	if err != nil {
		return nil, fmt.Errorf(errParseFmt, err)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf(errParseFmt, ErrKeyNotFound)
	}
	return set, nil
}
