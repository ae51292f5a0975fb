package missions

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"hashhunt/pkg/game/leveling"
)

// DefaultSlippage is used when SwapParams.Slippage is zero
const DefaultSlippage = 1.0

// SwapParams are the user inputs of a swap
type SwapParams struct {
	Src      string
	Dst      string
	Amount   string
	Slippage float64
}

// SwapResult is a completed swap
type SwapResult struct {
	Quote    Quote
	Tx       SwapTx
	Approved bool // an approval transaction was sent first
	Outcome  Outcome
}

func (p SwapParams) validate() (*big.Int, float64, error) {
	amount, err := ParseAmount(p.Amount)
	if err != nil {
		return nil, 0, err
	}
	if strings.EqualFold(p.Src, p.Dst) {
		return nil, 0, ErrSameToken
	}
	slippage := p.Slippage
	if slippage == 0 {
		slippage = DefaultSlippage
	}
	if slippage < 0 || slippage > 50 {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidSlippage, slippage)
	}
	return amount, slippage, nil
}

// BasicSwap quotes, approves if needed, swaps, and awards the swap reward to c
func (s *Service) BasicSwap(ctx context.Context, c leveling.Character, p SwapParams) (SwapResult, error) {
	res, err := s.swap(ctx, p, nil)
	if err != nil {
		return res, err
	}
	res.Outcome, err = s.Complete(c, KindSwap)
	return res, err
}

func (s *Service) swap(ctx context.Context, p SwapParams, protocols []string) (SwapResult, error) {
	amount, slippage, err := p.validate()
	if err != nil {
		return SwapResult{}, err
	}
	from, chainID, err := s.address()
	if err != nil {
		return SwapResult{}, err
	}

	req := QuoteRequest{ChainID: chainID, Src: p.Src, Dst: p.Dst, Amount: amount, Protocols: protocols}
	quote, err := s.client.Quote(ctx, req)
	if err != nil {
		return SwapResult{}, apiError("quote", err)
	}

	approved, err := s.ensureAllowance(ctx, chainID, p.Src, from, amount)
	if err != nil {
		return SwapResult{}, err
	}

	tx, err := s.client.Swap(ctx, SwapRequest{QuoteRequest: req, From: from, Slippage: slippage})
	if err != nil {
		return SwapResult{}, apiError("swap", err)
	}
	s.log.Debug("swap sent",
		zap.String("src", p.Src),
		zap.String("dst", p.Dst),
		zap.String("amount", amount.String()),
		zap.String("tx", tx.Hash))

	return SwapResult{Quote: quote, Tx: tx, Approved: approved}, nil
}

func (s *Service) ensureAllowance(ctx context.Context, chainID int, token, owner string, amount *big.Int) (bool, error) {
	if strings.EqualFold(token, NativeToken) {
		return false, nil
	}
	allowance, err := s.client.Allowance(ctx, chainID, token, owner)
	if err != nil {
		return false, apiError("allowance", err)
	}
	if allowance.Cmp(amount) >= 0 {
		return false, nil
	}
	if _, err := s.client.Approve(ctx, chainID, token, owner, amount); err != nil {
		return false, apiError("approve", err)
	}
	return true, nil
}

// AdvancedSwapParams compares several protocol routes before swapping
type AdvancedSwapParams struct {
	SwapParams
	Routes [][]string
}

// DefaultRoutes are compared when AdvancedSwapParams.Routes is empty
var DefaultRoutes = [][]string{
	{"UNISWAP_V3"},
	{"CURVE"},
	{"BALANCER_V2", "SUSHI"},
	{"PMM", "UNISWAP_V2"},
}

// RouteQuote is the quote obtained for one route
type RouteQuote struct {
	Protocols []string
	Quote     Quote
	Err       error
}

// AdvancedSwapResult is a completed multi-route swap
type AdvancedSwapResult struct {
	SwapResult
	Routes []RouteQuote
	Best   int // index into Routes
}

// AdvancedSwap quotes every route, swaps through the one returning the most, and awards the
// advanced swap reward to c
func (s *Service) AdvancedSwap(ctx context.Context, c leveling.Character, p AdvancedSwapParams) (AdvancedSwapResult, error) {
	return s.advancedSwap(ctx, c, p, KindAdvancedSwap)
}

// Boss is an advanced swap that pays the boss reward
func (s *Service) Boss(ctx context.Context, c leveling.Character, p AdvancedSwapParams) (AdvancedSwapResult, error) {
	return s.advancedSwap(ctx, c, p, KindBoss)
}

func (s *Service) advancedSwap(ctx context.Context, c leveling.Character, p AdvancedSwapParams, kind Kind) (AdvancedSwapResult, error) {
	amount, _, err := p.validate()
	if err != nil {
		return AdvancedSwapResult{}, err
	}
	_, chainID, err := s.address()
	if err != nil {
		return AdvancedSwapResult{}, err
	}
	routes := p.Routes
	if len(routes) == 0 {
		routes = DefaultRoutes
	}

	res := AdvancedSwapResult{Best: -1}
	for _, protocols := range routes {
		q, err := s.client.Quote(ctx, QuoteRequest{ChainID: chainID, Src: p.Src, Dst: p.Dst, Amount: amount, Protocols: protocols})
		rq := RouteQuote{Protocols: protocols, Quote: q}
		if err != nil {
			rq.Err = apiError("quote", err)
			s.log.Debug("route quote failed", zap.Strings("protocols", protocols), zap.Error(err))
		} else if res.Best < 0 || q.DstAmount.Cmp(res.Routes[res.Best].Quote.DstAmount) > 0 {
			res.Best = len(res.Routes)
		}
		res.Routes = append(res.Routes, rq)
		if err := ctx.Err(); err != nil {
			return res, contextError(err)
		}
	}
	if res.Best < 0 {
		if len(res.Routes) > 0 {
			return res, res.Routes[0].Err
		}
		return res, ErrNoRoutes
	}

	swapRes, err := s.swap(ctx, p.SwapParams, res.Routes[res.Best].Protocols)
	if err != nil {
		return res, err
	}
	res.SwapResult = swapRes
	res.Outcome, err = s.Complete(c, kind)
	return res, err
}
