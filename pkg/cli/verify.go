package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/VaticanUK/com-pact/pkg/broker"
	"github.com/VaticanUK/com-pact/pkg/cli/internal/output"
	"github.com/VaticanUK/com-pact/pkg/cliconfig"
	"github.com/VaticanUK/com-pact/pkg/contract"
	"github.com/VaticanUK/com-pact/pkg/history"
	"github.com/VaticanUK/com-pact/pkg/verification"
	"github.com/VaticanUK/com-pact/pkg/verifier"
	"github.com/spf13/cobra"
)

var (
	verifyBrokerURL       string
	verifyBrokerToken     string
	verifyPactPath        string
	verifyFile            string
	verifyProviderURL     string
	verifyStateSetupURL   string
	verifyProviderVersion string
	verifyTimeout         int
	verifyPublish         bool
	verifyHistory         bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a provider against one or more contracts",
	Long: `Replay every interaction of a contract against a running provider and
report the mismatches. Contracts come either from a Pact Broker
(--broker-url and --pact-path) or from local files (--file, which accepts
globs including **). Without either, *.json files in pactDir are used.

Exit code is 0 when every interaction passed and 1 otherwise.`,
	Example: `  # Verify a contract from a broker and publish the outcome
  compact verify --broker-url https://broker.example.com \
    --pact-path pacts/provider/orders-api/consumer/web-app/latest \
    --provider-url http://localhost:8080 --publish

  # Verify local files and record the runs in the history store
  compact verify --file 'pacts/**/*.json' --provider-url http://localhost:8080 --history`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyBrokerURL, "broker-url", "", "Pact Broker base URL")
	f.StringVar(&verifyBrokerToken, "broker-token", "", "Pact Broker bearer token")
	f.StringVar(&verifyPactPath, "pact-path", "", "Contract path relative to the broker URL")
	f.StringVarP(&verifyFile, "file", "f", "", "Local contract file or glob")
	f.StringVar(&verifyProviderURL, "provider-url", "", "Base URL of the provider under test")
	f.StringVar(&verifyStateSetupURL, "state-setup-url", "", "URL receiving provider state setup requests")
	f.StringVar(&verifyProviderVersion, "provider-version", "", "Provider version reported in published results")
	f.IntVar(&verifyTimeout, "timeout", cliconfig.DefaultTimeout, "Per-request timeout in seconds")
	f.BoolVar(&verifyPublish, "publish", false, "Publish results to the broker")
	f.BoolVar(&verifyHistory, "history", false, "Record results in the local history store")
	rootCmd.AddCommand(verifyCmd)
}

// applyVerifyFlags merges the verify flags the user actually set into cfg.
func applyVerifyFlags(cmd *cobra.Command, c *cliconfig.CLIConfig) error {
	flagCfg := &cliconfig.CLIConfig{SetFields: map[string]bool{}}
	changed := cmd.Flags().Changed
	if changed("broker-url") {
		flagCfg.BrokerURL = verifyBrokerURL
	}
	if changed("broker-token") {
		flagCfg.BrokerToken = verifyBrokerToken
	}
	if changed("provider-url") {
		flagCfg.ProviderURL = verifyProviderURL
	}
	if changed("state-setup-url") {
		flagCfg.StateSetupURL = verifyStateSetupURL
	}
	if changed("provider-version") {
		flagCfg.ProviderVersion = verifyProviderVersion
	}
	if changed("timeout") {
		flagCfg.Timeout = verifyTimeout
	}
	if changed("publish") {
		flagCfg.Publish = verifyPublish
		flagCfg.SetFields["publish"] = true
	}
	cliconfig.MergeConfig(c, flagCfg, cliconfig.SourceFlag)
	return c.Validate()
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if err := applyVerifyFlags(cmd, cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.ProviderURL == "" {
		return errNoProvider
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	timeout := time.Duration(cfg.Timeout) * time.Second
	provider := &verifier.HTTPProvider{
		BaseURL:       cfg.ProviderURL,
		StateSetupURL: cfg.StateSetupURL,
		Client:        &http.Client{Timeout: timeout},
	}
	opts := []verifier.Option{
		verifier.WithLogger(logger),
		verifier.WithInteractionTimeout(timeout),
		verifier.WithProviderVersion(cfg.ProviderVersion),
		verifier.WithToolVersion(Version),
	}

	var (
		results []*verification.Result
		runErr  error
	)
	if cfg.BrokerURL != "" && verifyFile == "" {
		results, runErr = verifyFromBroker(ctx, provider, opts)
	} else {
		results, runErr = verifyFromFiles(ctx, provider, opts)
	}
	if len(results) == 0 {
		return runErr
	}

	if verifyHistory {
		if err := recordHistory(results); err != nil {
			output.Warn(cmd.ErrOrStderr(), "results not recorded: %v", err)
		}
	}

	if err := printVerification(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	for _, r := range results {
		if !r.Success {
			return ErrVerificationFailed
		}
	}
	return nil
}

func verifyFromBroker(ctx context.Context, provider *verifier.HTTPProvider, opts []verifier.Option) ([]*verification.Result, error) {
	if verifyPactPath == "" {
		return nil, errNoContractSource
	}

	brokerOpts := []broker.Option{
		broker.WithTimeout(time.Duration(cfg.Timeout) * time.Second),
		broker.WithLogger(logger),
		broker.WithUserAgent(verification.Implementation + "/" + Version),
	}
	switch {
	case cfg.BrokerToken != "":
		brokerOpts = append(brokerOpts, broker.WithToken(cfg.BrokerToken))
	case cfg.BrokerUsername != "":
		brokerOpts = append(brokerOpts, broker.WithBasicAuth(cfg.BrokerUsername, cfg.BrokerPassword))
	}
	client, err := broker.New(cfg.BrokerURL, brokerOpts...)
	if err != nil {
		return nil, err
	}

	opts = append(opts, verifier.WithSource(client))
	if cfg.Publish {
		opts = append(opts, verifier.WithPublisher(client))
	}

	result, err := verifier.New(provider, opts...).Verify(ctx, verifyPactPath)
	if result == nil {
		return nil, err
	}
	return []*verification.Result{result}, err
}

func verifyFromFiles(ctx context.Context, provider *verifier.HTTPProvider, opts []verifier.Option) ([]*verification.Result, error) {
	pattern := verifyFile
	if pattern == "" {
		pattern = filepath.Join(cfg.PactDir, "*.json")
	}
	files, err := contract.LoadGlob(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no contract files match %s", pattern)
	}
	if cfg.Publish {
		logger.Warn("results of local contract files are not published")
	}

	v := verifier.New(provider, opts...)
	results := make([]*verification.Result, 0, len(files))
	for _, f := range files {
		r := v.VerifyContract(ctx, f.Contract)
		r.Source = f.Path
		results = append(results, r)
	}
	return results, nil
}

func recordHistory(results []*verification.Result) error {
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, r := range results {
		if err := store.Save(r); err != nil {
			return err
		}
	}
	return nil
}

func printVerification(w io.Writer, results []*verification.Result) error {
	return printResult(w, results, func() {
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeResult(w, r)
		}
	})
}

// writeResult prints one run: a header, a line per interaction with the
// failure detail indented below it, then the summary.
func writeResult(w io.Writer, r *verification.Result) {
	fmt.Fprintf(w, "Verifying %s -> %s (%s)\n", r.Consumer, r.Provider, r.Source)
	for _, in := range r.Interactions {
		name := in.Description
		if in.ProviderState != "" {
			name += " given " + in.ProviderState
		}
		fmt.Fprintf(w, "  %s  %s\n", output.Mark(in.Success), name)
		if in.FailureDetail == "" {
			continue
		}
		for _, line := range strings.Split(in.FailureDetail, "\n") {
			fmt.Fprintf(w, "          %s\n", line)
		}
	}
	fmt.Fprintln(w, r.Summary())
}
