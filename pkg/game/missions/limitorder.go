package missions

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"hashhunt/pkg/game/leveling"
)

// DefaultOrderExpiry is used when LimitOrderParams.Expiry is zero
const DefaultOrderExpiry = 24 * time.Hour

// LimitOrderParams are the user inputs of a limit order
type LimitOrderParams struct {
	MakerAsset   string
	TakerAsset   string
	MakingAmount string
	TakingAmount string
	Expiry       time.Duration // from now
}

// LimitOrderResult is an order accepted by the orderbook
type LimitOrderResult struct {
	Order    LimitOrder
	Approved bool
	Outcome  Outcome
}

// LimitOrder approves the maker asset if needed, posts the order, and awards the limit order
// reward to c
func (s *Service) LimitOrder(ctx context.Context, c leveling.Character, p LimitOrderParams) (LimitOrderResult, error) {
	making, err := ParseAmount(p.MakingAmount)
	if err != nil {
		return LimitOrderResult{}, err
	}
	taking, err := ParseAmount(p.TakingAmount)
	if err != nil {
		return LimitOrderResult{}, err
	}
	if strings.EqualFold(p.MakerAsset, p.TakerAsset) {
		return LimitOrderResult{}, ErrSameToken
	}
	expiry := p.Expiry
	if expiry == 0 {
		expiry = DefaultOrderExpiry
	}
	if expiry < 0 {
		return LimitOrderResult{}, ErrExpired
	}
	maker, chainID, err := s.address()
	if err != nil {
		return LimitOrderResult{}, err
	}

	approved, err := s.ensureAllowance(ctx, chainID, p.MakerAsset, maker, making)
	if err != nil {
		return LimitOrderResult{}, err
	}

	order, err := s.client.CreateLimitOrder(ctx, LimitOrderRequest{
		ChainID:      chainID,
		Maker:        maker,
		MakerAsset:   p.MakerAsset,
		TakerAsset:   p.TakerAsset,
		MakingAmount: making,
		TakingAmount: taking,
		Expiry:       time.Now().Add(expiry),
	})
	if err != nil {
		return LimitOrderResult{}, apiError("limit order", err)
	}
	s.log.Debug("limit order posted", zap.String("hash", order.Hash))

	res := LimitOrderResult{Order: order, Approved: approved}
	res.Outcome, err = s.Complete(c, KindLimitOrder)
	return res, err
}
