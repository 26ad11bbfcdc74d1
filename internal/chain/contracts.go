package chain

// Contract identifies a deployed contract.
type Contract struct {
	Address string
	Name    string
}

// String renders the contract as "address.name".
func (c Contract) String() string { return c.Address + "." + c.Name }

// Marketplace deployer on mainnet.
const marketplaceDeployer = "SP1WTA0YRXYNPMK69AY26P6XHQHFWVNPRD0RV3QHS"

// Fixed marketplace contracts. BID and ASK escrow the principal legs; YIN and
// YANG hold the bid-side (STX) and ask-side (token) fees. Bid and ask swap IDs
// are independent sequences scoped to their own contract.
var (
	BidContract  = Contract{Address: marketplaceDeployer, Name: "stx-bids-v1"}
	AskContract  = Contract{Address: marketplaceDeployer, Name: "stx-asks-v1"}
	YinContract  = Contract{Address: marketplaceDeployer, Name: "yin-fees-v1"}
	YangContract = Contract{Address: marketplaceDeployer, Name: "yang-fees-v1"}
)

// Contract function names shared by the BID and ASK families.
const (
	FnOffer       = "offer"
	FnCancel      = "cancel"
	FnSubmitSwap  = "submit-swap"
	FnReprice     = "re-price"
	FnGetSwap     = "get-swap"
	FnGetDecimals = "get-decimals"
)
