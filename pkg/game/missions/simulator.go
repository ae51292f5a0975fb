package missions

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NativeToken needs no allowance
const NativeToken = "ETH"

// ErrUnknownToken is returned by the simulator for symbols it has no price for
var ErrUnknownToken = errors.New("unknown token")

// prices in micro-dollars
var simulatedPrices = map[string]int64{
	"ETH":   3_000_000_000,
	"WETH":  3_000_000_000,
	"WBTC":  60_000_000_000,
	"USDC":  1_000_000,
	"USDT":  1_000_000,
	"DAI":   1_000_000,
	"1INCH": 400_000,
	"LINK":  15_000_000,
}

// fees in basis points per protocol
var simulatedFees = map[string]int64{
	"UNISWAP_V3":  30,
	"UNISWAP_V2":  30,
	"SUSHI":       30,
	"CURVE":       4,
	"BALANCER_V2": 20,
	"PMM":         10,
}

const defaultFeeBps = 25

// Simulator is an in-process Client with a fixed price table. It never touches the network.
type Simulator struct {
	Now func() time.Time

	mu         sync.Mutex
	allowances map[string]*big.Int
	orders     []LimitOrder
	failures   map[string]error
	Shared     map[string]bool // platform+address pairs that VerifyShare accepts; nil accepts all
}

// NewSimulator returns a simulator with empty allowances
func NewSimulator() *Simulator {
	return &Simulator{
		Now:        time.Now,
		allowances: make(map[string]*big.Int),
		failures:   make(map[string]error),
	}
}

// FailNext makes the next call to op ("quote", "allowance", "approve", "swap",
// "limit-order", "verify-share") return err
func (s *Simulator) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Simulator) takeFailure(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

// Orders returns the limit orders accepted so far
func (s *Simulator) Orders() []LimitOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LimitOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

func price(symbol string) (int64, error) {
	p, ok := simulatedPrices[strings.ToUpper(symbol)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
	}
	return p, nil
}

func feeFor(protocols []string) int64 {
	if len(protocols) == 0 {
		return defaultFeeBps
	}
	var total int64
	for _, p := range protocols {
		fee, ok := simulatedFees[p]
		if !ok {
			fee = defaultFeeBps
		}
		total += fee
	}
	// splitting across protocols averages their fees
	return total / int64(len(protocols))
}

func convert(amount *big.Int, src, dst string, protocols []string) (*big.Int, error) {
	ps, err := price(src)
	if err != nil {
		return nil, err
	}
	pd, err := price(dst)
	if err != nil {
		return nil, err
	}
	out := new(big.Int).Mul(amount, big.NewInt(ps))
	out.Quo(out, big.NewInt(pd))
	out.Mul(out, big.NewInt(10_000-feeFor(protocols)))
	out.Quo(out, big.NewInt(10_000))
	return out, nil
}

// Quote implements Client
func (s *Simulator) Quote(ctx context.Context, req QuoteRequest) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}
	if err := s.takeFailure("quote"); err != nil {
		return Quote{}, err
	}
	dst, err := convert(req.Amount, req.Src, req.Dst, req.Protocols)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Src:       req.Src,
		Dst:       req.Dst,
		SrcAmount: new(big.Int).Set(req.Amount),
		DstAmount: dst,
		Protocols: append([]string(nil), req.Protocols...),
		Gas:       uint64(120_000 + 40_000*len(req.Protocols)),
	}, nil
}

func allowanceKey(chainID int, token, owner string) string {
	return fmt.Sprintf("%d:%s:%s", chainID, strings.ToUpper(token), strings.ToLower(owner))
}

// Allowance implements Client
func (s *Simulator) Allowance(ctx context.Context, chainID int, token, owner string) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.takeFailure("allowance"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.allowances[allowanceKey(chainID, token, owner)]; ok {
		return new(big.Int).Set(a), nil
	}
	return new(big.Int), nil
}

// Approve implements Client
func (s *Simulator) Approve(ctx context.Context, chainID int, token, owner string, amount *big.Int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.takeFailure("approve"); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowances[allowanceKey(chainID, token, owner)] = new(big.Int).Set(amount)
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

// Swap implements Client
func (s *Simulator) Swap(ctx context.Context, req SwapRequest) (SwapTx, error) {
	if err := ctx.Err(); err != nil {
		return SwapTx{}, err
	}
	if err := s.takeFailure("swap"); err != nil {
		return SwapTx{}, err
	}
	dst, err := convert(req.Amount, req.Src, req.Dst, req.Protocols)
	if err != nil {
		return SwapTx{}, err
	}
	return SwapTx{
		Hash:         "0x" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		DstAmount:    dst,
		MinDstAmount: applySlippage(dst, req.Slippage),
	}, nil
}

// CreateLimitOrder implements Client
func (s *Simulator) CreateLimitOrder(ctx context.Context, req LimitOrderRequest) (LimitOrder, error) {
	if err := ctx.Err(); err != nil {
		return LimitOrder{}, err
	}
	if err := s.takeFailure("limit-order"); err != nil {
		return LimitOrder{}, err
	}
	if _, err := price(req.MakerAsset); err != nil {
		return LimitOrder{}, err
	}
	if _, err := price(req.TakerAsset); err != nil {
		return LimitOrder{}, err
	}
	order := LimitOrder{
		Hash:      "0x" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Request:   req,
		CreatedAt: s.Now(),
	}
	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()
	return order, nil
}

// VerifyShare implements Client
func (s *Simulator) VerifyShare(ctx context.Context, req ShareRequest) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := s.takeFailure("verify-share"); err != nil {
		return false, err
	}
	if s.Shared == nil {
		return true, nil
	}
	return s.Shared[req.Platform+":"+strings.ToLower(req.Address)], nil
}
