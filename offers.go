package stxswap

import (
	"context"
	"errors"
	"fmt"

	"stxswap/internal/account"
	"stxswap/internal/chain"
	"stxswap/internal/clarity"
	"stxswap/internal/observability"
	"stxswap/internal/token"
)

// CreateOfferRequest creates a new bid or ask. STXAmount and TokenAmount are
// display amounts; GasFee is in ustx. Recipient, when set, addresses the
// offer to a single counterparty; Expiry, when set, is the block height past
// which the offer lapses.
type CreateOfferRequest struct {
	Pair         string
	STXAmount    float64
	TokenAmount  float64
	GasFee       uint64
	Recipient    string
	Expiry       uint64
	AccountIndex int
	Mnemonic     string
}

// SwapRequest targets an existing swap by ID. Pair is validated against the
// listed markets; the token itself is resolved from the swap's on-chain
// record, never from Pair.
type SwapRequest struct {
	SwapID       uint64
	Pair         string
	GasFee       uint64
	AccountIndex int
	Mnemonic     string
}

// RepriceBidRequest changes the token amount a bid demands.
type RepriceBidRequest struct {
	SwapID         uint64
	Pair           string
	NewTokenAmount float64
	GasFee         uint64
	AccountIndex   int
	Mnemonic       string
}

// RepriceAskRequest changes the STX amount an ask demands.
type RepriceAskRequest struct {
	SwapID       uint64
	Pair         string
	NewSTXAmount float64
	GasFee       uint64
	AccountIndex int
	Mnemonic     string
}

// OfferDetails echoes the resolved parameters of a lifecycle transaction.
type OfferDetails struct {
	Pair           string
	Address        string
	TokenDecimals  int
	Ustx           uint64
	Amount         uint64
	MarketplaceFee uint64
	FeeDisplay     string
	GasFee         uint64
	Recipient      string
	Expiry         uint64
}

// TxResult is a broadcast lifecycle transaction.
type TxResult struct {
	TxID    string
	Details OfferDetails
}

// SwapDetails is the formatted on-chain state of one swap.
type SwapDetails struct {
	SwapID        uint64
	Contract      string
	Pair          string
	Ustx          uint64
	Amount        uint64
	STXSender     string
	FTSender      string
	FTContract    string
	Open          bool
	ExpiredHeight uint64
	TokenDecimals int
	TokenSymbol   string
	STXDisplay    string
	TokenDisplay  string
}

// CreateBidOffer escrows STX against a demanded token amount. The sender's
// STX outflow is bounded by the principal plus the tiered marketplace fee.
func (s *SDK) CreateBidOffer(ctx context.Context, req CreateOfferRequest) (*TxResult, error) {
	const op = "create bid offer"

	info, ok := s.registry.TokenInfo(req.Pair)
	if !ok {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	if req.STXAmount <= 0 || req.TokenAmount <= 0 {
		return nil, opErrf(op, KindValidation, "offer amounts must be positive")
	}

	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	ustx := token.ToMicroUnits(req.STXAmount, token.STXDecimals)
	amount := token.ToMicroUnits(req.TokenAmount, decimals)
	fees := token.CalculateBidFees(ustx)

	call := &chain.ContractCall{
		Network:           s.network,
		Contract:          chain.BidContract,
		FunctionName:      chain.FnOffer,
		Args:              offerArgs(clarity.UInt(ustx), clarity.UInt(amount), info, req.Recipient, req.Expiry),
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeDeny,
		PostConditions: []chain.PostCondition{
			chain.NewSTXPostCondition(chain.StandardPrincipal(acct.Address), chain.SentLe, ustx+fees),
		},
	}

	result, err := s.broadcast(ctx, op, call, acct, "bid", "create")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:           req.Pair,
			Address:        acct.Address,
			TokenDecimals:  decimals,
			Ustx:           ustx,
			Amount:         amount,
			MarketplaceFee: fees,
			FeeDisplay:     token.FormatAmount(fees, token.STXDecimals, "STX"),
			GasFee:         req.GasFee,
			Recipient:      req.Recipient,
			Expiry:         req.Expiry,
		},
	}, nil
}

// CreateAskOffer escrows tokens against a demanded STX amount. The sender's
// token outflow is bounded by the principal plus the flat marketplace fee.
func (s *SDK) CreateAskOffer(ctx context.Context, req CreateOfferRequest) (*TxResult, error) {
	const op = "create ask offer"

	info, ok := s.registry.TokenInfo(req.Pair)
	if !ok {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	if req.STXAmount <= 0 || req.TokenAmount <= 0 {
		return nil, opErrf(op, KindValidation, "offer amounts must be positive")
	}

	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	ustx := token.ToMicroUnits(req.STXAmount, token.STXDecimals)
	amount := token.ToMicroUnits(req.TokenAmount, decimals)
	fees := token.CalculateAskFees(amount)

	call := &chain.ContractCall{
		Network:           s.network,
		Contract:          chain.AskContract,
		FunctionName:      chain.FnOffer,
		Args:              offerArgs(clarity.UInt(amount), clarity.UInt(ustx), info, req.Recipient, req.Expiry),
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeDeny,
		PostConditions: []chain.PostCondition{
			chain.NewFTPostCondition(chain.StandardPrincipal(acct.Address), chain.SentLe, amount+fees, assetOf(info)),
		},
	}

	result, err := s.broadcast(ctx, op, call, acct, "ask", "create")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:           req.Pair,
			Address:        acct.Address,
			TokenDecimals:  decimals,
			Ustx:           ustx,
			Amount:         amount,
			MarketplaceFee: fees,
			FeeDisplay:     token.FormatAmount(fees, decimals, info.Symbol),
			GasFee:         req.GasFee,
			Recipient:      req.Recipient,
			Expiry:         req.Expiry,
		},
	}, nil
}

// CancelBid refunds a bid's escrowed STX to its creator. Only the creator
// may cancel; the check runs before anything is signed.
func (s *SDK) CancelBid(ctx context.Context, req SwapRequest) (*TxResult, error) {
	const op = "cancel bid offer"

	if !s.registry.IsSupportedPair(req.Pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}

	swap, err := s.reader.GetSwap(ctx, chain.BidContract, req.SwapID, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	if swap.STXSender != acct.Address {
		return nil, opErrf(op, KindUnauthorized,
			"only the bid creator (%s) can cancel this bid", swap.STXSender)
	}

	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	fees := token.CalculateBidFees(swap.Ustx)
	call := &chain.ContractCall{
		Network:           s.network,
		Contract:          chain.BidContract,
		FunctionName:      chain.FnCancel,
		Args:              swapArgs(req.SwapID, info),
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeDeny,
		PostConditions: []chain.PostCondition{
			// Exact refund of the escrowed principal, bounded fee refund.
			chain.NewSTXPostCondition(chain.ContractPrincipal(chain.BidContract), chain.SentEq, swap.Ustx),
			chain.NewSTXPostCondition(chain.ContractPrincipal(chain.YinContract), chain.SentLe, fees),
		},
	}

	result, err := s.broadcast(ctx, op, call, acct, "bid", "cancel")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:           req.Pair,
			Address:        acct.Address,
			TokenDecimals:  decimals,
			Ustx:           swap.Ustx,
			Amount:         swap.Amount,
			MarketplaceFee: fees,
			FeeDisplay:     token.FormatAmount(fees, token.STXDecimals, "STX"),
			GasFee:         req.GasFee,
		},
	}, nil
}

// CancelAsk refunds an ask's escrowed tokens to its creator. Only the
// creator may cancel; the check runs before anything is signed. The fee
// refund binds to the registry's canonical asset name for the token.
func (s *SDK) CancelAsk(ctx context.Context, req SwapRequest) (*TxResult, error) {
	const op = "cancel ask offer"

	if !s.registry.IsSupportedPair(req.Pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}

	swap, err := s.reader.GetSwap(ctx, chain.AskContract, req.SwapID, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	if swap.FTSender != acct.Address {
		return nil, opErrf(op, KindUnauthorized,
			"only the ask creator (%s) can cancel this ask", swap.FTSender)
	}

	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	fees := token.CalculateAskFees(swap.Amount)
	asset := assetOf(info)
	call := &chain.ContractCall{
		Network:           s.network,
		Contract:          chain.AskContract,
		FunctionName:      chain.FnCancel,
		Args:              swapArgs(req.SwapID, info),
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeDeny,
		PostConditions: []chain.PostCondition{
			chain.NewFTPostCondition(chain.ContractPrincipal(chain.AskContract), chain.SentEq, swap.Amount, asset),
			chain.NewFTPostCondition(chain.ContractPrincipal(chain.YangContract), chain.SentLe, fees, asset),
		},
	}

	result, err := s.broadcast(ctx, op, call, acct, "ask", "cancel")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:           req.Pair,
			Address:        acct.Address,
			TokenDecimals:  decimals,
			Ustx:           swap.Ustx,
			Amount:         swap.Amount,
			MarketplaceFee: fees,
			FeeDisplay:     token.FormatAmount(fees, decimals, info.Symbol),
			GasFee:         req.GasFee,
		},
	}, nil
}

// SubmitBid fills an open bid: the caller sends the demanded tokens and
// receives the escrowed STX. Anyone may fill; there is no ownership check.
func (s *SDK) SubmitBid(ctx context.Context, req SwapRequest) (*TxResult, error) {
	const op = "submit bid swap"

	if !s.registry.IsSupportedPair(req.Pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}

	swap, err := s.reader.GetSwap(ctx, chain.BidContract, req.SwapID, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	fees := token.CalculateBidFees(swap.Ustx)
	call := &chain.ContractCall{
		Network:           s.network,
		Contract:          chain.BidContract,
		FunctionName:      chain.FnSubmitSwap,
		Args:              swapArgs(req.SwapID, info),
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeDeny,
		PostConditions: []chain.PostCondition{
			chain.NewFTPostCondition(chain.StandardPrincipal(acct.Address), chain.SentEq, swap.Amount, assetOf(info)),
			chain.NewSTXPostCondition(chain.ContractPrincipal(chain.BidContract), chain.SentEq, swap.Ustx),
			chain.NewSTXPostCondition(chain.ContractPrincipal(chain.YinContract), chain.SentLe, fees),
		},
	}

	result, err := s.broadcast(ctx, op, call, acct, "bid", "submit")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:           req.Pair,
			Address:        acct.Address,
			TokenDecimals:  decimals,
			Ustx:           swap.Ustx,
			Amount:         swap.Amount,
			MarketplaceFee: fees,
			FeeDisplay:     token.FormatAmount(fees, token.STXDecimals, "STX"),
			GasFee:         req.GasFee,
		},
	}, nil
}

// SubmitAsk fills an open ask: the caller sends the demanded STX and
// receives the escrowed tokens. Anyone may fill; there is no ownership check.
func (s *SDK) SubmitAsk(ctx context.Context, req SwapRequest) (*TxResult, error) {
	const op = "submit ask swap"

	if !s.registry.IsSupportedPair(req.Pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}

	swap, err := s.reader.GetSwap(ctx, chain.AskContract, req.SwapID, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	fees := token.CalculateAskFees(swap.Amount)
	asset := assetOf(info)
	call := &chain.ContractCall{
		Network:           s.network,
		Contract:          chain.AskContract,
		FunctionName:      chain.FnSubmitSwap,
		Args:              swapArgs(req.SwapID, info),
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeDeny,
		PostConditions: []chain.PostCondition{
			chain.NewSTXPostCondition(chain.StandardPrincipal(acct.Address), chain.SentEq, swap.Ustx),
			chain.NewFTPostCondition(chain.ContractPrincipal(chain.AskContract), chain.SentEq, swap.Amount, asset),
			chain.NewFTPostCondition(chain.ContractPrincipal(chain.YangContract), chain.SentLe, fees, asset),
		},
	}

	result, err := s.broadcast(ctx, op, call, acct, "ask", "submit")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:           req.Pair,
			Address:        acct.Address,
			TokenDecimals:  decimals,
			Ustx:           swap.Ustx,
			Amount:         swap.Amount,
			MarketplaceFee: fees,
			FeeDisplay:     token.FormatAmount(fees, decimals, info.Symbol),
			GasFee:         req.GasFee,
		},
	}, nil
}

// RepriceBid changes the token amount an open bid demands. Only the creator
// may re-price. Re-pricing moves no assets, so the call carries no
// post-conditions and runs in allow mode.
func (s *SDK) RepriceBid(ctx context.Context, req RepriceBidRequest) (*TxResult, error) {
	const op = "re-price bid offer"

	if !s.registry.IsSupportedPair(req.Pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	if req.NewTokenAmount <= 0 {
		return nil, opErrf(op, KindValidation, "new token amount must be positive")
	}
	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}

	swap, err := s.reader.GetSwap(ctx, chain.BidContract, req.SwapID, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	if swap.STXSender != acct.Address {
		return nil, opErrf(op, KindUnauthorized,
			"only the bid creator (%s) can re-price this bid", swap.STXSender)
	}

	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	newAmount := token.ToMicroUnits(req.NewTokenAmount, decimals)

	call := &chain.ContractCall{
		Network:      s.network,
		Contract:     chain.BidContract,
		FunctionName: chain.FnReprice,
		Args: []clarity.Value{
			clarity.UInt(req.SwapID), clarity.UInt(newAmount), ftArg(info),
		},
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeAllow,
	}

	result, err := s.broadcast(ctx, op, call, acct, "bid", "reprice")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:          req.Pair,
			Address:       acct.Address,
			TokenDecimals: decimals,
			Ustx:          swap.Ustx,
			Amount:        newAmount,
			GasFee:        req.GasFee,
		},
	}, nil
}

// RepriceAsk changes the STX amount an open ask demands. Only the creator
// may re-price. Re-pricing moves no assets, so the call carries no
// post-conditions and runs in allow mode.
func (s *SDK) RepriceAsk(ctx context.Context, req RepriceAskRequest) (*TxResult, error) {
	const op = "re-price ask offer"

	if !s.registry.IsSupportedPair(req.Pair) {
		return nil, opErrf(op, KindValidation, "unsupported trading pair: %s", req.Pair)
	}
	if req.NewSTXAmount <= 0 {
		return nil, opErrf(op, KindValidation, "new STX amount must be positive")
	}
	acct, nonce, err := s.signingContext(ctx, op, req.Mnemonic, req.AccountIndex)
	if err != nil {
		return nil, err
	}

	swap, err := s.reader.GetSwap(ctx, chain.AskContract, req.SwapID, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	if swap.FTSender != acct.Address {
		return nil, opErrf(op, KindUnauthorized,
			"only the ask creator (%s) can re-price this ask", swap.FTSender)
	}

	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, acct.Address)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}
	newUstx := token.ToMicroUnits(req.NewSTXAmount, token.STXDecimals)

	call := &chain.ContractCall{
		Network:      s.network,
		Contract:     chain.AskContract,
		FunctionName: chain.FnReprice,
		Args: []clarity.Value{
			clarity.UInt(req.SwapID), clarity.UInt(newUstx), ftArg(info),
		},
		Nonce:             nonce,
		Fee:               req.GasFee,
		PostConditionMode: chain.PostConditionModeAllow,
	}

	result, err := s.broadcast(ctx, op, call, acct, "ask", "reprice")
	if err != nil {
		return nil, err
	}
	return &TxResult{
		TxID: result.TxID,
		Details: OfferDetails{
			Pair:          req.Pair,
			Address:       acct.Address,
			TokenDecimals: decimals,
			Ustx:          newUstx,
			Amount:        swap.Amount,
			GasFee:        req.GasFee,
		},
	}, nil
}

// GetBid reads a bid's on-chain state and formats it for display. A missing
// swap returns (nil, nil); only transport and decoding failures are errors.
func (s *SDK) GetBid(ctx context.Context, swapID uint64) (*SwapDetails, error) {
	return s.getSwap(ctx, "fetch bid", chain.BidContract, swapID)
}

// GetAsk reads an ask's on-chain state and formats it for display. A missing
// swap returns (nil, nil); only transport and decoding failures are errors.
func (s *SDK) GetAsk(ctx context.Context, swapID uint64) (*SwapDetails, error) {
	return s.getSwap(ctx, "fetch ask", chain.AskContract, swapID)
}

func (s *SDK) getSwap(ctx context.Context, op string, contract chain.Contract, swapID uint64) (*SwapDetails, error) {
	swap, err := s.reader.GetSwap(ctx, contract, swapID, s.defaultAddress)
	if errors.Is(err, chain.ErrSwapNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, opErr(op, KindTransport, err)
	}

	// Token metadata comes from the swap's own contract reference, not from
	// any caller-supplied pair.
	info, err := s.registry.TokenInfoFromContract(swap.FTContract)
	if err != nil {
		return nil, opErr(op, KindValidation, err)
	}
	decimals, err := s.reader.TokenDecimals(ctx, info, s.defaultAddress)
	if err != nil {
		return nil, opErr(op, chainErrKind(err), err)
	}

	return &SwapDetails{
		SwapID:        swapID,
		Contract:      contract.String(),
		Pair:          s.registry.MarketPair(swap.FTContract),
		Ustx:          swap.Ustx,
		Amount:        swap.Amount,
		STXSender:     swap.STXSender,
		FTSender:      swap.FTSender,
		FTContract:    swap.FTContract,
		Open:          swap.Open,
		ExpiredHeight: swap.ExpiredHeight,
		TokenDecimals: decimals,
		TokenSymbol:   info.Symbol,
		STXDisplay:    token.FormatAmount(swap.Ustx, token.STXDecimals, "STX"),
		TokenDisplay:  token.FormatAmount(swap.Amount, decimals, info.Symbol),
	}, nil
}

// signingContext derives the signing account and fetches a fresh nonce.
func (s *SDK) signingContext(ctx context.Context, op, mnemonic string, accountIndex int) (*account.Account, uint64, error) {
	acct, err := s.deriver.DeriveChildAccount(s.network, mnemonic, accountIndex)
	if err != nil {
		return nil, 0, opErr(op, KindValidation, fmt.Errorf("derive account: %w", err))
	}
	nonce, err := s.nonces.NextNonce(ctx, acct.Address)
	if err != nil {
		return nil, 0, opErr(op, KindTransport, fmt.Errorf("fetch nonce: %w", err))
	}
	return acct, nonce, nil
}

// broadcast signs and submits the call, records metrics and logs the result.
func (s *SDK) broadcast(ctx context.Context, op string, call *chain.ContractCall, acct *account.Account, side, operation string) (*chain.BroadcastResult, error) {
	result, err := s.sender.SignAndBroadcast(ctx, call, acct.PrivateKey)
	if err != nil {
		var rejected *chain.RejectedError
		if errors.As(err, &rejected) {
			s.logger.Printf("[TX] %s %s rejected: reason=%s reason_data=%s",
				side, operation, rejected.Reason, rejected.ReasonData)
		}
		return nil, opErr(op, chainErrKind(err), err)
	}
	observability.RecordOffer(side, operation)
	s.logger.Printf("[TX] %s %s broadcast: txid=%s contract=%s nonce=%d", side, operation, result.TxID, call.Contract, call.Nonce)
	return result, nil
}

// assetOf builds the post-condition asset reference for a token. The asset
// name always comes from the canonical registry entry.
func assetOf(info *token.Info) chain.Asset {
	return chain.Asset{
		ContractAddress: info.ContractAddress,
		ContractName:    info.ContractName,
		AssetName:       info.AssetName,
	}
}

// ftArg is the token-trait argument shared by every lifecycle call.
func ftArg(info *token.Info) clarity.Value {
	return clarity.ContractPrincipal{Address: info.ContractAddress, Name: info.ContractName}
}

// offerArgs builds the argument list for a new offer: the escrowed leg, the
// demanded leg, the token trait, and the optional counterparty and expiry.
func offerArgs(escrowed, demanded clarity.UInt, info *token.Info, recipient string, expiry uint64) []clarity.Value {
	var recipientArg clarity.Value = clarity.None{}
	if recipient != "" {
		recipientArg = clarity.Some{Value: clarity.StandardPrincipal(recipient)}
	}
	var expiryArg clarity.Value = clarity.None{}
	if expiry != 0 {
		expiryArg = clarity.Some{Value: clarity.UInt(expiry)}
	}
	return []clarity.Value{escrowed, demanded, ftArg(info), recipientArg, expiryArg}
}

// swapArgs builds the argument list for cancel and submit calls.
func swapArgs(swapID uint64, info *token.Info) []clarity.Value {
	return []clarity.Value{clarity.UInt(swapID), ftArg(info)}
}
