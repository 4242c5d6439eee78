// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ratio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/lswap"
)

var logger = log.New("pkg", "ratio")

func SetLogger(l log.Logger) {
	logger = l
}

// ErrZeroRatio is returned when the status endpoint reports a zero ratio.
var ErrZeroRatio = errors.New("ratio source reported zero ratio")

// status is the staking manager status document.
type status struct {
	Ratio lswap.Decimal `json:"ratio"`
}

// HTTPSource queries the ratio from a staking manager status endpoint, e.g. GET /status
// answering {"ratio":"1.02"}. The latest fetched ratio is kept, and refreshed by Run.
type HTTPSource struct {
	url    string
	client *http.Client

	mu      sync.RWMutex
	latest  *lswap.Decimal
	updated time.Time
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Ratio returns the latest polled ratio, fetching it once if never polled.
func (s *HTTPSource) Ratio(ctx context.Context) (lswap.Decimal, error) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	if latest != nil {
		return *latest, nil
	}
	return s.Fetch(ctx)
}

// Latest returns the latest fetched ratio and when it was fetched, nil if never fetched.
func (s *HTTPSource) Latest() (*lswap.Decimal, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.updated
}

// Fetch queries the endpoint and records the answer as the latest ratio.
func (s *HTTPSource) Fetch(ctx context.Context) (lswap.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return lswap.Decimal{}, errors.Wrap(err, "error creating request")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return lswap.Decimal{}, errors.Wrap(err, "error performing request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return lswap.Decimal{}, errors.Wrap(err, "error reading response body")
	}
	if resp.StatusCode != http.StatusOK {
		return lswap.Decimal{}, errors.Errorf("http error - status code %d - %s", resp.StatusCode, body)
	}

	var st status
	if err := json.Unmarshal(body, &st); err != nil {
		return lswap.Decimal{}, errors.Wrap(err, "decode ratio status")
	}
	if st.Ratio.IsZero() {
		return lswap.Decimal{}, ErrZeroRatio
	}

	s.mu.Lock()
	s.latest = &st.Ratio
	s.updated = time.Now()
	s.mu.Unlock()
	return st.Ratio, nil
}

// Run refreshes the ratio every interval until ctx is done.
// Failures are logged and the previous ratio is kept.
func (s *HTTPSource) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if r, err := s.Fetch(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("failed to fetch ratio", "url", s.url, "err", err)
		} else {
			logger.Debug("ratio refreshed", "ratio", r)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
