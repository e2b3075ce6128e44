// Package verifier replays the interactions of a contract against a running
// provider and checks each actual response against the expected one.
//
// Interactions run one at a time in contract order because providers are
// usually stateful across calls. A failing interaction never stops the
// run: every interaction gets a result entry, and the run succeeds only if
// all of them do. Only infrastructure failures, such as a contract that
// cannot be fetched or parsed, abort a run before any interaction executes.
package verifier

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VaticanUK/com-pact/internal/matching"
	"github.com/VaticanUK/com-pact/pkg/broker"
	"github.com/VaticanUK/com-pact/pkg/contract"
	"github.com/VaticanUK/com-pact/pkg/logging"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
	"github.com/VaticanUK/com-pact/pkg/verification"
)

// VerificationResult is the outcome of a verification run.
type VerificationResult = verification.Result

// InteractionResult is the outcome of one interaction.
type InteractionResult = verification.InteractionResult

// ContractSource retrieves contracts. *broker.Client implements it.
type ContractSource interface {
	Fetch(ctx context.Context, path string) (*broker.FetchResult, error)
}

// ResultPublisher publishes verification results. *broker.Client
// implements it.
type ResultPublisher interface {
	Publish(ctx context.Context, url string, result *VerificationResult) error
}

// ProviderInvoker sends an expected request to the provider under test and
// returns what the provider answered.
type ProviderInvoker interface {
	Invoke(ctx context.Context, providerState string, req *contract.Request) (*contract.Response, error)
}

// StateSetter is implemented by invokers that can put the provider into the
// provider states an interaction declares. It is called before Invoke.
type StateSetter interface {
	SetupState(ctx context.Context, consumer string, states []string) error
}

// Verifier runs verifications.
type Verifier struct {
	provider           ProviderInvoker
	source             ContractSource
	publisher          ResultPublisher
	logger             *slog.Logger
	interactionTimeout time.Duration
	providerVersion    string
	toolVersion        string
	now                func() time.Time
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithSource sets where Verify fetches contracts from.
func WithSource(source ContractSource) Option {
	return func(v *Verifier) {
		v.source = source
	}
}

// WithPublisher enables publishing results after Verify.
func WithPublisher(publisher ResultPublisher) Option {
	return func(v *Verifier) {
		v.publisher = publisher
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithInteractionTimeout bounds each interaction, including provider state
// setup. A timeout fails that interaction only. Zero means no bound.
func WithInteractionTimeout(d time.Duration) Option {
	return func(v *Verifier) {
		v.interactionTimeout = d
	}
}

// WithProviderVersion sets the provider application version reported in
// results.
func WithProviderVersion(version string) Option {
	return func(v *Verifier) {
		v.providerVersion = version
	}
}

// WithToolVersion sets the version reported in the verifiedBy block.
func WithToolVersion(version string) Option {
	return func(v *Verifier) {
		v.toolVersion = version
	}
}

// New creates a Verifier that exercises provider.
func New(provider ProviderInvoker, opts ...Option) *Verifier {
	v := &Verifier{
		provider: provider,
		logger:   logging.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify fetches the contract at ref, verifies every interaction and, when
// a publisher is configured and the broker advertised a publish URL,
// publishes the result. Fetch and parse failures are returned unchanged and
// no interaction runs. A publish failure is returned together with the
// result.
func (v *Verifier) Verify(ctx context.Context, ref string) (*VerificationResult, error) {
	if v.source == nil {
		return nil, pacterr.New("A contract source must be configured to verify contracts from a Pact Broker.")
	}

	fetched, err := v.source.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	c, err := contract.Parse([]byte(fetched.ContractBody))
	if err != nil {
		return nil, err
	}

	result := v.VerifyContract(ctx, c)
	result.Source = ref

	if v.publisher == nil {
		return result, nil
	}
	if fetched.PublishResultsURL == "" {
		v.logger.Warn("broker did not advertise a publish URL, results not published", "ref", ref)
		return result, nil
	}
	if err := v.publisher.Publish(ctx, fetched.PublishResultsURL, result); err != nil {
		return result, err
	}
	v.logger.Info("published verification results", "url", fetched.PublishResultsURL, "success", result.Success)
	return result, nil
}

// VerifyContract verifies an already loaded contract. Nothing is published.
func (v *Verifier) VerifyContract(ctx context.Context, c *contract.Contract) *VerificationResult {
	result := &VerificationResult{
		RunID:                      uuid.NewString(),
		Consumer:                   c.Consumer.Name,
		Provider:                   c.Provider.Name,
		Success:                    true,
		ProviderApplicationVersion: v.providerVersion,
		VerifiedBy: verification.VerifiedBy{
			Implementation: verification.Implementation,
			Version:        v.toolVersion,
		},
		StartedAt: v.now(),
	}

	log := v.logger.With("run", result.RunID, "consumer", c.Consumer.Name, "provider", c.Provider.Name)
	for i := range c.Interactions {
		in := &c.Interactions[i]
		ir := v.verifyInteraction(ctx, c.Consumer.Name, in)
		result.Add(ir)
		if ir.Success {
			log.Debug("interaction verified", "description", in.Description)
		} else {
			log.Debug("interaction failed", "description", in.Description, "detail", ir.FailureDetail)
		}
	}

	result.FinishedAt = v.now()
	log.Info(result.Summary(), "duration", result.Duration())
	return result
}

func (v *Verifier) verifyInteraction(ctx context.Context, consumer string, in *contract.Interaction) InteractionResult {
	if v.interactionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.interactionTimeout)
		defer cancel()
	}

	states := in.States()
	ir := InteractionResult{
		Description:   in.Description,
		ProviderState: strings.Join(states, ", "),
	}

	if v.provider == nil {
		ir.FailureDetail = "no provider is configured"
		return ir
	}

	if setter, ok := v.provider.(StateSetter); ok && len(states) > 0 {
		if err := setter.SetupState(ctx, consumer, states); err != nil {
			ir.FailureDetail = "provider state setup failed: " + err.Error()
			return ir
		}
	}

	var state string
	if len(states) > 0 {
		state = states[0]
	}
	actual, err := v.provider.Invoke(ctx, state, &in.Request)
	if err != nil {
		ir.FailureDetail = "provider could not be invoked: " + err.Error()
		return ir
	}

	m := matching.MatchResponse(&in.Response, actual)
	ir.Success = m.Matched()
	if !ir.Success {
		ir.FailureDetail = m.String()
		ir.Mismatches = m.Mismatches
	}
	return ir
}
