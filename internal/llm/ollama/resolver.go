package ollama

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/llm"
	"github.com/spigell/recruiter/internal/logger"
	"github.com/spigell/recruiter/internal/utils"
)

const (
	// EnvHost names the environment variable holding a preferred server address.
	EnvHost = "OLLAMA_HOST"

	maxFailureRunes = 100
)

// DefaultHosts lists the addresses tried when discovering a server, in order.
var DefaultHosts = []string{
	"http://localhost:11434",
	"http://host.docker.internal:11434",
	"http://172.17.0.1:11434",
	"http://ollama:11434",
}

// ResolverConfig configures endpoint discovery.
type ResolverConfig struct {
	// Override is tried before Hosts when set.
	Override string
	// Hosts replaces DefaultHosts when non-empty.
	Hosts []string
	// Timeout bounds every request made by resolved clients.
	Timeout time.Duration
}

// Resolver finds a reachable Ollama server and remembers it between calls.
// It is safe for concurrent use.
type Resolver struct {
	mu         sync.Mutex
	cached     string
	candidates []string
	timeout    time.Duration
	logger     *zap.Logger
}

// NewResolver builds a resolver with an empty cache.
func NewResolver(cfg ResolverConfig, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}

	hosts := cfg.Hosts
	if len(hosts) == 0 {
		hosts = DefaultHosts
	}

	candidates := make([]string, 0, len(hosts)+1)
	seen := make(map[string]struct{}, len(hosts)+1)
	for _, host := range append([]string{cfg.Override}, hosts...) {
		host = strings.TrimRight(strings.TrimSpace(host), "/")
		if host == "" {
			continue
		}
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		candidates = append(candidates, host)
	}

	return &Resolver{
		candidates: candidates,
		timeout:    cfg.Timeout,
		logger:     log,
	}
}

// Resolve returns a client for model against a server that answered a probe.
// The cached address is tried first. On failure the cache is cleared and every
// candidate is probed once, in order. If none answers, the returned error wraps
// llm.ErrServiceUnavailable and the cache stays empty.
func (r *Resolver) Resolve(ctx context.Context, model string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		client := r.newClient(r.cached, model)
		err := client.Probe(ctx)
		if err == nil {
			return client, nil
		}

		r.logger.Warn("cached ollama endpoint failed, retrying all endpoints",
			zap.String(logger.FieldEndpoint, r.cached),
			zap.String("error", utils.TruncateForLog(err.Error(), maxFailureRunes)),
		)
		r.cached = ""
	}

	for _, host := range r.candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log := r.logger.With(zap.String(logger.FieldEndpoint, host))
		log.Info("trying to connect to ollama")

		client := r.newClient(host, model)
		if err := client.Probe(ctx); err != nil {
			log.Warn("failed to connect to ollama",
				zap.String("error", utils.TruncateForLog(err.Error(), maxFailureRunes)),
			)
			continue
		}

		log.Info("connected to ollama")
		r.cached = host
		return client, nil
	}

	r.logger.Error("could not connect to ollama from any endpoint",
		zap.Strings("endpoints", r.candidates),
		zap.Strings("hints", []string{
			"make sure ollama is running: ollama serve",
			"when running in docker try --network=host",
			"or set the " + EnvHost + " environment variable",
		}),
	)

	return nil, fmt.Errorf("%w: ollama is not accessible at any of %s", llm.ErrServiceUnavailable, strings.Join(r.candidates, ", "))
}

// Cached returns the remembered address, or an empty string.
func (r *Resolver) Cached() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached
}

// Reset forgets the cached address so the next Resolve runs full discovery.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = ""
	r.logger.Info("ollama endpoint cache reset")
}

// Candidates returns the discovery order.
func (r *Resolver) Candidates() []string {
	return append([]string(nil), r.candidates...)
}

func (r *Resolver) newClient(host, model string) *Client {
	return NewClient(host, model, r.timeout, r.logger.With(zap.String(logger.FieldEndpoint, host)))
}

// Source adapts a Resolver to llm.Source, resolving before every model call.
type Source struct {
	resolver *Resolver
	model    string
}

// NewSource returns a Source that resolves clients for model.
func NewSource(resolver *Resolver, model string) *Source {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	return &Source{resolver: resolver, model: model}
}

// Acquire implements llm.Source.
func (s *Source) Acquire(ctx context.Context) (llm.Generator, error) {
	client, err := s.resolver.Resolve(ctx, s.model)
	if err != nil {
		return nil, err
	}
	return client, nil
}
