// Command stxswap is a command-line client for the swap marketplace:
// order-book queries, offer lifecycle transactions and a polling watch
// mode that exposes Prometheus metrics.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stxswap"
	"stxswap/internal/observability"
)

func main() {
	loadEnvFile()

	logger := log.New(os.Stderr, "[stxswap] ", log.LstdFlags)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger, command, args); err != nil {
		logger.Fatalf("%s: %v", command, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: stxswap <command> [flags]

Query commands:
  markets       List tradable markets
  book          Show the order book for a pair
  pending       Show the cross-pair pending order feed
  offers        Show offers created by an address on a pair
  private       Show private offers addressed to an address on a pair
  get-bid       Show one bid's on-chain state
  get-ask       Show one ask's on-chain state
  watch         Poll a pair's book and serve Prometheus metrics

Lifecycle commands (require -mnemonic or STXSWAP_MNEMONIC):
  bid           Create a bid offer
  ask           Create an ask offer
  cancel-bid    Cancel a bid you created
  cancel-ask    Cancel an ask you created
  submit-bid    Fill an open bid
  submit-ask    Fill an open ask
  reprice-bid   Change the token amount a bid demands
  reprice-ask   Change the STX amount an ask demands`)
}

func run(ctx context.Context, logger *log.Logger, command string, args []string) error {
	switch command {
	case "markets":
		return runMarkets(args)
	case "book":
		return runBook(ctx, args)
	case "pending":
		return runPending(ctx, args)
	case "offers":
		return runUserOffers(ctx, args)
	case "private":
		return runPrivateOffers(ctx, args)
	case "get-bid":
		return runGetSwap(ctx, args, "get-bid")
	case "get-ask":
		return runGetSwap(ctx, args, "get-ask")
	case "watch":
		return runWatch(ctx, logger, args)
	case "bid":
		return runCreate(ctx, args, "bid")
	case "ask":
		return runCreate(ctx, args, "ask")
	case "cancel-bid", "cancel-ask", "submit-bid", "submit-ask":
		return runSwapAction(ctx, args, command)
	case "reprice-bid":
		return runRepriceBid(ctx, args)
	case "reprice-ask":
		return runRepriceAsk(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// sdkFlags registers the flags every command shares, with env defaults.
func sdkFlags(fs *flag.FlagSet) *stxswap.Config {
	cfg := &stxswap.Config{}
	fs.StringVar(&cfg.APIHost, "api-host", os.Getenv("STXSWAP_API_HOST"), "Marketplace API base URL")
	fs.StringVar(&cfg.APIKey, "api-key", os.Getenv("STXSWAP_API_KEY"), "Marketplace API key")
	fs.StringVar(&cfg.Network, "network", os.Getenv("STXSWAP_NETWORK"), "Network (mainnet or testnet)")
	fs.StringVar(&cfg.NodeURL, "node-url", os.Getenv("STXSWAP_NODE_URL"), "Node API URL override")
	return cfg
}

// authFlags registers the signing flags for lifecycle commands.
type authArgs struct {
	mnemonic     string
	accountIndex int
	gasFee       uint64
}

func authFlags(fs *flag.FlagSet) *authArgs {
	auth := &authArgs{}
	fs.StringVar(&auth.mnemonic, "mnemonic", os.Getenv("STXSWAP_MNEMONIC"), "Wallet mnemonic")
	fs.IntVar(&auth.accountIndex, "account", 0, "Derivation index of the signing account")
	fs.Uint64Var(&auth.gasFee, "gas-fee", 10_000, "Transaction fee in ustx")
	return auth
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runMarkets(args []string) error {
	fs := flag.NewFlagSet("markets", flag.ExitOnError)
	cfg := sdkFlags(fs)
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	return printJSON(sdk.GetAvailableMarkets())
}

func runBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	cfg := sdkFlags(fs)
	pair := fs.String("pair", "", "Trading pair, e.g. PEPE-STX")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	book, err := sdk.GetOrderBook(ctx, *pair)
	if err != nil {
		return err
	}
	return printJSON(book)
}

func runPending(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pending", flag.ExitOnError)
	cfg := sdkFlags(fs)
	page := fs.Int("page", 1, "Feed page")
	limit := fs.Int("limit", 50, "Entries per page")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	orders, err := sdk.GetPendingOrders(ctx, *page, *limit)
	if err != nil {
		return err
	}
	return printJSON(orders)
}

func runUserOffers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("offers", flag.ExitOnError)
	cfg := sdkFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	address := fs.String("address", "", "Account principal")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	offers, err := sdk.GetUserOffers(ctx, *pair, *address)
	if err != nil {
		return err
	}
	return printJSON(offers)
}

func runPrivateOffers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("private", flag.ExitOnError)
	cfg := sdkFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	address := fs.String("address", "", "Account principal")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	offers, err := sdk.GetPrivateOffers(ctx, *pair, *address)
	if err != nil {
		return err
	}
	return printJSON(offers)
}

func runGetSwap(ctx context.Context, args []string, command string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	cfg := sdkFlags(fs)
	swapID := fs.Uint64("id", 0, "Swap ID")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}

	var details *stxswap.SwapDetails
	if command == "get-bid" {
		details, err = sdk.GetBid(ctx, *swapID)
	} else {
		details, err = sdk.GetAsk(ctx, *swapID)
	}
	if err != nil {
		return err
	}
	if details == nil {
		fmt.Printf("swap %d not found\n", *swapID)
		return nil
	}
	return printJSON(details)
}

func runCreate(ctx context.Context, args []string, side string) error {
	fs := flag.NewFlagSet(side, flag.ExitOnError)
	cfg := sdkFlags(fs)
	auth := authFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	stxAmount := fs.Float64("stx", 0, "STX amount")
	tokenAmount := fs.Float64("tokens", 0, "Token amount")
	recipient := fs.String("recipient", "", "Optional private counterparty")
	expiry := fs.Uint64("expiry", 0, "Optional expiry block height")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}

	req := stxswap.CreateOfferRequest{
		Pair:         *pair,
		STXAmount:    *stxAmount,
		TokenAmount:  *tokenAmount,
		GasFee:       auth.gasFee,
		Recipient:    *recipient,
		Expiry:       *expiry,
		AccountIndex: auth.accountIndex,
		Mnemonic:     auth.mnemonic,
	}

	var result *stxswap.TxResult
	if side == "bid" {
		result, err = sdk.CreateBidOffer(ctx, req)
	} else {
		result, err = sdk.CreateAskOffer(ctx, req)
	}
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runSwapAction(ctx context.Context, args []string, command string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	cfg := sdkFlags(fs)
	auth := authFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	swapID := fs.Uint64("id", 0, "Swap ID")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}

	req := stxswap.SwapRequest{
		SwapID:       *swapID,
		Pair:         *pair,
		GasFee:       auth.gasFee,
		AccountIndex: auth.accountIndex,
		Mnemonic:     auth.mnemonic,
	}

	var result *stxswap.TxResult
	switch command {
	case "cancel-bid":
		result, err = sdk.CancelBid(ctx, req)
	case "cancel-ask":
		result, err = sdk.CancelAsk(ctx, req)
	case "submit-bid":
		result, err = sdk.SubmitBid(ctx, req)
	case "submit-ask":
		result, err = sdk.SubmitAsk(ctx, req)
	}
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runRepriceBid(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reprice-bid", flag.ExitOnError)
	cfg := sdkFlags(fs)
	auth := authFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	swapID := fs.Uint64("id", 0, "Swap ID")
	tokens := fs.Float64("tokens", 0, "New token amount demanded")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	result, err := sdk.RepriceBid(ctx, stxswap.RepriceBidRequest{
		SwapID:         *swapID,
		Pair:           *pair,
		NewTokenAmount: *tokens,
		GasFee:         auth.gasFee,
		AccountIndex:   auth.accountIndex,
		Mnemonic:       auth.mnemonic,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runRepriceAsk(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reprice-ask", flag.ExitOnError)
	cfg := sdkFlags(fs)
	auth := authFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	swapID := fs.Uint64("id", 0, "Swap ID")
	stx := fs.Float64("stx", 0, "New STX amount demanded")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}
	result, err := sdk.RepriceAsk(ctx, stxswap.RepriceAskRequest{
		SwapID:       *swapID,
		Pair:         *pair,
		NewSTXAmount: *stx,
		GasFee:       auth.gasFee,
		AccountIndex: auth.accountIndex,
		Mnemonic:     auth.mnemonic,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

// runWatch polls a pair's order book on an interval and serves Prometheus
// metrics until interrupted.
func runWatch(ctx context.Context, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cfg := sdkFlags(fs)
	pair := fs.String("pair", "", "Trading pair")
	interval := fs.Duration("interval", 30*time.Second, "Polling interval")
	metricsAddr := fs.String("metrics-addr", ":9090", "Prometheus metrics HTTP address")
	fs.Parse(args)

	sdk, err := stxswap.New(*cfg)
	if err != nil {
		return err
	}

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		mux.Handle("/metrics", observability.Handler())
		logger.Printf("Serving metrics on %s", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
			logger.Printf("Metrics server error: %v", err)
		}
	}()

	poll := func() {
		book, err := sdk.GetOrderBook(ctx, *pair)
		if err != nil {
			logger.Printf("Poll error: %v", err)
			return
		}
		logger.Printf("%s book: %d bids, %d asks", *pair, len(book.Bids), len(book.Asks))
	}

	poll()
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Println("Shutdown complete")
			return nil
		case <-ticker.C:
			poll()
		}
	}
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
