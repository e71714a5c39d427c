package collector

import (
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var browserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
}

// UserAgentPool hands out a random browser User-Agent per request.
// Safe for concurrent use.
type UserAgentPool struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	agents []string
}

// NewUserAgentPool pins every request to fixed when it is set
func NewUserAgentPool(fixed string) *UserAgentPool {
	agents := browserAgents
	if fixed != "" {
		agents = []string{fixed}
	}
	return &UserAgentPool{
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		agents: agents,
	}
}

func (p *UserAgentPool) Pick() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.agents[p.rnd.Intn(len(p.agents))]
}

// agentTransport stamps every outgoing request with a pooled User-Agent.
// It sits innermost, so it also wins over headers set by wrapping clients.
type agentTransport struct {
	agents *UserAgentPool
	base   http.RoundTripper
}

func (t *agentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.agents.Pick())
	return t.base.RoundTrip(r)
}

// newHTTPClient returns a client whose requests rotate User-Agents.
// Deadlines come from the caller's context; Timeout is only a backstop.
func newHTTPClient(agents *UserAgentPool) *http.Client {
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: &agentTransport{agents: agents, base: http.DefaultTransport},
	}
}
