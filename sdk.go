package stxswap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"stxswap/internal/account"
	"stxswap/internal/api"
	"stxswap/internal/chain"
	"stxswap/internal/token"
)

// marketFetcher is the marketplace REST boundary.
type marketFetcher interface {
	Get(ctx context.Context, endpoint string, v interface{}) error
}

// chainReader resolves live on-chain state through read-only calls.
type chainReader interface {
	TokenDecimals(ctx context.Context, info *token.Info, senderAddress string) (int, error)
	GetSwap(ctx context.Context, contract chain.Contract, swapID uint64, senderAddress string) (*chain.SwapRecord, error)
}

// nonceSource resolves the next usable account nonce, fresh per call.
type nonceSource interface {
	NextNonce(ctx context.Context, address string) (uint64, error)
}

// txSender is the chain write boundary: it signs a prepared contract call
// and broadcasts it.
type txSender interface {
	SignAndBroadcast(ctx context.Context, call *chain.ContractCall, privateKey []byte) (*chain.BroadcastResult, error)
}

// accountDeriver derives the signing account for a mnemonic and index.
type accountDeriver interface {
	DeriveChildAccount(network chain.Network, mnemonic string, index int) (*account.Account, error)
}

// Config configures an SDK instance. APIHost and APIKey are required.
type Config struct {
	// APIHost is the marketplace REST base URL.
	APIHost string
	// APIKey authenticates marketplace requests.
	APIKey string
	// Network selects the chain ("mainnet" or "testnet"); defaults to testnet.
	Network string
	// DefaultAddress is the sender principal stamped on read-only contract
	// calls. Defaults to the marketplace bid contract address.
	DefaultAddress string
	// NodeURL overrides the per-network default node API host.
	NodeURL string
	// HTTPClient, when set, is used for marketplace requests.
	HTTPClient *http.Client
	// Logger receives operational log lines; defaults to stderr.
	Logger *log.Logger
}

// SDK is the marketplace client. All methods are safe for concurrent use.
type SDK struct {
	market   marketFetcher
	reader   chainReader
	nonces   nonceSource
	sender   txSender
	deriver  accountDeriver
	registry *token.Registry

	network        chain.Network
	defaultAddress string
	logger         *log.Logger
}

// New creates an SDK from the config, wiring live marketplace and node
// clients.
func New(cfg Config) (*SDK, error) {
	if cfg.APIHost == "" {
		return nil, fmt.Errorf("config: APIHost is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("config: APIKey is required")
	}

	network := chain.ValidateNetwork(cfg.Network)

	var nodeOpts []chain.ClientOption
	if cfg.NodeURL != "" {
		nodeOpts = append(nodeOpts, chain.WithBaseURL(cfg.NodeURL))
	}
	nodeClient := chain.NewClient(network, nodeOpts...)

	var apiOpts []api.ClientOption
	if cfg.HTTPClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.HTTPClient))
	}

	defaultAddress := cfg.DefaultAddress
	if defaultAddress == "" {
		defaultAddress = chain.BidContract.Address
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[stxswap] ", log.LstdFlags)
	}

	return &SDK{
		market:         api.NewClient(cfg.APIHost, cfg.APIKey, apiOpts...),
		reader:         chain.NewReader(nodeClient),
		nonces:         nodeClient,
		sender:         &chainSender{client: nodeClient},
		deriver:        account.Deriver{},
		registry:       token.DefaultRegistry(),
		network:        network,
		defaultAddress: defaultAddress,
		logger:         logger,
	}, nil
}

// Network returns the network the SDK targets.
func (s *SDK) Network() chain.Network { return s.network }

// chainSender signs and broadcasts through a live node client.
type chainSender struct {
	client *chain.Client
}

func (cs *chainSender) SignAndBroadcast(ctx context.Context, call *chain.ContractCall, privateKey []byte) (*chain.BroadcastResult, error) {
	rawTx, err := call.Sign(privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	return cs.client.Broadcast(ctx, rawTx)
}
