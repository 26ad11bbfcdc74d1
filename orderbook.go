package stxswap

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"stxswap/internal/token"
)

// GetOrderBook fetches both sides of the book for a pair concurrently,
// keeps only live open orders, and sorts each side by unit price: bids
// descending, asks ascending.
func (s *SDK) GetOrderBook(ctx context.Context, pair string) (*OrderBook, error) {
	const op = "fetch order book"

	if !s.registry.IsSupportedPair(pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", pair)
	}

	var bids bidPage
	var asks askPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.market.Get(gctx, fmt.Sprintf("/token-pairs/%s/stx-bids", pair), &bids)
	})
	g.Go(func() error {
		return s.market.Get(gctx, fmt.Sprintf("/token-pairs/%s/stx-asks", pair), &asks)
	})
	if err := g.Wait(); err != nil {
		return nil, opErr(op, KindTransport, err)
	}

	book := &OrderBook{
		Bids: make([]Bid, 0, len(bids.Results)),
		Asks: make([]Ask, 0, len(asks.Results)),
	}
	for _, bid := range bids.Results {
		if bid.Status == StatusOpen && bid.Open {
			book.Bids = append(book.Bids, bid)
		}
	}
	for _, ask := range asks.Results {
		if ask.Status == StatusOpen && ask.Open {
			book.Asks = append(book.Asks, ask)
		}
	}

	sort.Slice(book.Bids, func(i, j int) bool {
		return unitPrice(book.Bids[i].Ustx, book.Bids[i].Amount) > unitPrice(book.Bids[j].Ustx, book.Bids[j].Amount)
	})
	sort.Slice(book.Asks, func(i, j int) bool {
		return unitPrice(book.Asks[i].Ustx, book.Asks[i].Amount) < unitPrice(book.Asks[j].Ustx, book.Asks[j].Amount)
	})

	return book, nil
}

// unitPrice is ustx per token micro-unit. Within one pair both sides share
// decimals, so the ratio orders offers correctly without display conversion.
func unitPrice(ustx, amount uint64) float64 {
	if amount == 0 {
		return 0
	}
	return float64(ustx) / float64(amount)
}

// pendingPage is the paginated mixed-feed envelope.
type pendingPage struct {
	Results []json.RawMessage `json:"results"`
}

// orderProbe reads just enough of a feed entry to discriminate its side.
type orderProbe struct {
	OutContract string `json:"out_contract"`
}

// GetPendingOrders fetches a page of the cross-pair pending feed, keeps
// open and private offers, formats each for display, and sorts newest
// first by processing time. Entries without a processing time sort last.
func (s *SDK) GetPendingOrders(ctx context.Context, page, limit int) ([]DisplayOrder, error) {
	const op = "fetch pending orders"

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var feed pendingPage
	endpoint := fmt.Sprintf("/all-pending-stx-swaps?page=%d&limit=%d", page, limit)
	if err := s.market.Get(ctx, endpoint, &feed); err != nil {
		return nil, opErr(op, KindTransport, err)
	}

	orders := make([]DisplayOrder, 0, len(feed.Results))
	for _, raw := range feed.Results {
		order, err := s.decodePendingOrder(raw)
		if err != nil {
			return nil, opErr(op, KindDecode, err)
		}
		if status := order.status(); status != StatusOpen && status != StatusPrivate {
			continue
		}
		orders = append(orders, order)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].processedAt() > orders[j].processedAt()
	})
	return orders, nil
}

// decodePendingOrder discriminates a mixed-feed entry once, at the decoding
// boundary: an entry whose out-leg is the native token is an ask.
func (s *SDK) decodePendingOrder(raw json.RawMessage) (DisplayOrder, error) {
	var probe orderProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return DisplayOrder{}, fmt.Errorf("unmarshal feed entry: %w", err)
	}

	if probe.OutContract == token.STX {
		var ask Ask
		if err := json.Unmarshal(raw, &ask); err != nil {
			return DisplayOrder{}, fmt.Errorf("unmarshal ask entry: %w", err)
		}
		return s.displayAsk(ask), nil
	}

	var bid Bid
	if err := json.Unmarshal(raw, &bid); err != nil {
		return DisplayOrder{}, fmt.Errorf("unmarshal bid entry: %w", err)
	}
	return s.displayBid(bid), nil
}

// displayAsk formats an ask for the mixed feed. The token leg is the in-leg.
func (s *SDK) displayAsk(ask Ask) DisplayOrder {
	symbol := s.registry.TokenSymbol(ask.InContract)
	tokenAmount := token.FromMicroUnits(ask.Amount, ask.InDecimals)
	stxAmount := token.FromMicroUnits(ask.Ustx, token.STXDecimals)

	a := ask
	return DisplayOrder{
		Type:          OrderTypeAsk,
		Market:        s.registry.MarketPair(ask.InContract),
		DisplayAmount: formatDisplay(tokenAmount, symbol),
		DisplayPrice:  formatPrice(stxAmount, tokenAmount, symbol),
		Ask:           &a,
	}
}

// displayBid formats a bid for the mixed feed. The token leg is the out-leg.
func (s *SDK) displayBid(bid Bid) DisplayOrder {
	symbol := s.registry.TokenSymbol(bid.OutContract)
	tokenAmount := token.FromMicroUnits(bid.Amount, bid.OutDecimals)
	stxAmount := token.FromMicroUnits(bid.Ustx, token.STXDecimals)

	b := bid
	return DisplayOrder{
		Type:          OrderTypeBid,
		Market:        s.registry.MarketPair(bid.OutContract),
		DisplayAmount: formatDisplay(tokenAmount, symbol),
		DisplayPrice:  formatPrice(stxAmount, tokenAmount, symbol),
		Bid:           &b,
	}
}

func formatDisplay(amount float64, symbol string) string {
	return strconv.FormatFloat(amount, 'f', -1, 64) + " " + symbol
}

func formatPrice(stxAmount, tokenAmount float64, symbol string) string {
	if tokenAmount == 0 {
		return "0 STX/" + symbol
	}
	return strconv.FormatFloat(stxAmount/tokenAmount, 'f', -1, 64) + " STX/" + symbol
}

func (o *DisplayOrder) status() Status {
	if o.Ask != nil {
		return o.Ask.Status
	}
	return o.Bid.Status
}

func (o *DisplayOrder) processedAt() int64 {
	var at *int64
	if o.Ask != nil {
		at = o.Ask.ProcessedAt
	} else {
		at = o.Bid.ProcessedAt
	}
	if at == nil {
		return 0
	}
	return *at
}

// GetPrivateOffers fetches the offers privately addressed to an account on
// one pair.
func (s *SDK) GetPrivateOffers(ctx context.Context, pair, userAddress string) (*PrivateOffersResponse, error) {
	const op = "fetch private offers"

	info, ok := s.registry.TokenInfo(pair)
	if !ok {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", pair)
	}

	var offers PrivateOffersResponse
	endpoint := fmt.Sprintf("/token-pairs/%s/private-offers?userAddress=%s&ftContract=%s",
		pair, userAddress, info.Contract())
	if err := s.market.Get(ctx, endpoint, &offers); err != nil {
		return nil, opErr(op, KindTransport, err)
	}
	return &offers, nil
}

// GetUserOffers fetches the offers an account created on one pair.
func (s *SDK) GetUserOffers(ctx context.Context, pair, userAddress string) (*UserOffersResponse, error) {
	const op = "fetch user offers"

	info, ok := s.registry.TokenInfo(pair)
	if !ok {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", pair)
	}

	var offers UserOffersResponse
	endpoint := fmt.Sprintf("/token-pairs/%s/user-offers?userAddress=%s&ftContract=%s",
		pair, userAddress, info.Contract())
	if err := s.market.Get(ctx, endpoint, &offers); err != nil {
		return nil, opErr(op, KindTransport, err)
	}
	return &offers, nil
}
