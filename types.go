// Package stxswap is a client SDK for a peer-to-peer STX/token swap
// marketplace. It wraps the marketplace REST API for order-book queries and
// builds, signs and broadcasts the contract calls that drive the offer
// lifecycle.
package stxswap

// Status is the lifecycle state the marketplace indexer reports for an offer.
type Status string

// Offer statuses.
const (
	StatusOpen       Status = "open"
	StatusPrivate    Status = "private"
	StatusDone       Status = "done"
	StatusCancelling Status = "cancelling"
	StatusProcessing Status = "processing"
	StatusRepricing  Status = "re-pricing"
	StatusMakeBid    Status = "make-bid"
	StatusMakeAsk    Status = "make-ask"
	StatusTakeBid    Status = "take-bid"
	StatusTakeAsk    Status = "take-ask"
)

// Bid is a marketplace bid record: the maker escrows STX and asks for tokens.
// For a bid the in-leg is STX and the out-leg is the token contract.
type Bid struct {
	ID           int64   `json:"id"`
	InContract   string  `json:"in_contract"`
	Ustx         uint64  `json:"ustx"`
	InDecimals   int     `json:"in_decimals"`
	STXSender    string  `json:"stxSender"`
	STXSenderBNS *string `json:"stxSenderBns"`
	FTSender     *string `json:"ftSender"`
	FTSenderBNS  *string `json:"ftSenderBns"`
	OutContract  string  `json:"out_contract"`
	Amount       uint64  `json:"amount"`
	OutDecimals  int     `json:"out_decimals"`
	Fees         string  `json:"fees"`
	Open         bool    `json:"open"`
	When         int64   `json:"when"`
	Status       Status  `json:"status"`
	TxID         *string `json:"txId"`
	ProcessedAt  *int64  `json:"processedAt"`
}

// Ask is a marketplace ask record: the maker escrows tokens and asks for STX.
// For an ask the in-leg is the token contract and the out-leg is STX.
type Ask struct {
	ID           int64   `json:"id"`
	InContract   string  `json:"in_contract"`
	Amount       uint64  `json:"amount"`
	InDecimals   int     `json:"in_decimals"`
	FTSender     string  `json:"ftSender"`
	FTSenderBNS  *string `json:"ftSenderBns"`
	STXSender    *string `json:"stxSender"`
	STXSenderBNS *string `json:"stxSenderBns"`
	OutContract  string  `json:"out_contract"`
	Ustx         uint64  `json:"ustx"`
	OutDecimals  int     `json:"out_decimals"`
	Fees         string  `json:"fees"`
	Open         bool    `json:"open"`
	When         int64   `json:"when"`
	Status       Status  `json:"status"`
	TxID         *string `json:"txId"`
	ProcessedAt  *int64  `json:"processedAt"`
}

// OrderBook is the filtered and price-sorted book for one trading pair.
// Bids are sorted by unit price descending, asks ascending.
type OrderBook struct {
	Bids []Bid `json:"bids"`
	Asks []Ask `json:"asks"`
}

// OrderType discriminates the two sides of a mixed order feed.
type OrderType string

// Order sides.
const (
	OrderTypeBid OrderType = "Bid"
	OrderTypeAsk OrderType = "Ask"
)

// DisplayOrder is one entry of a mixed pending-order feed, tagged with its
// side at the decoding boundary. Exactly one of Bid and Ask is set,
// matching Type.
type DisplayOrder struct {
	Type          OrderType `json:"type"`
	Market        string    `json:"market"`
	DisplayAmount string    `json:"displayAmount"`
	DisplayPrice  string    `json:"displayPrice"`
	Bid           *Bid      `json:"bid,omitempty"`
	Ask           *Ask      `json:"ask,omitempty"`
}

// PrivateOffersResponse groups offers addressed privately to one account.
type PrivateOffersResponse struct {
	PrivateBids []Bid `json:"privateBids"`
	PrivateAsks []Ask `json:"privateAsks"`
}

// UserOffersResponse groups offers created by one account.
type UserOffersResponse struct {
	UserBids []Bid `json:"userBids"`
	UserAsks []Ask `json:"userAsks"`
}

// bidPage and askPage are the REST envelope for per-pair book endpoints.
type bidPage struct {
	Results []Bid `json:"results"`
}

type askPage struct {
	Results []Ask `json:"results"`
}
