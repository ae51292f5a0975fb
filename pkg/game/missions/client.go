package missions

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Wallet is the connected account. Connection and chain switching happen elsewhere.
type Wallet interface {
	Address() string
	ChainID() int
}

// StaticWallet is a Wallet with fixed values
type StaticWallet struct {
	Addr  string
	Chain int
}

// Address implements Wallet
func (w StaticWallet) Address() string { return w.Addr }

// ChainID implements Wallet
func (w StaticWallet) ChainID() int { return w.Chain }

// QuoteRequest asks for the output of swapping Amount of Src into Dst
type QuoteRequest struct {
	ChainID   int
	Src       string
	Dst       string
	Amount    *big.Int
	Protocols []string // empty lets the router choose
}

// Quote is the router's answer to a QuoteRequest
type Quote struct {
	Src       string
	Dst       string
	SrcAmount *big.Int
	DstAmount *big.Int
	Protocols []string
	Gas       uint64
}

// SwapRequest executes a quoted swap from the wallet address
type SwapRequest struct {
	QuoteRequest
	From     string
	Slippage float64 // percent
}

// SwapTx is a submitted swap transaction
type SwapTx struct {
	Hash         string
	DstAmount    *big.Int
	MinDstAmount *big.Int
}

// LimitOrderRequest describes a maker order
type LimitOrderRequest struct {
	ChainID      int
	Maker        string
	MakerAsset   string
	TakerAsset   string
	MakingAmount *big.Int
	TakingAmount *big.Int
	Expiry       time.Time
}

// LimitOrder is an order accepted by the orderbook
type LimitOrder struct {
	Hash      string
	Request   LimitOrderRequest
	CreatedAt time.Time
}

// ShareRequest asks whether the wallet owner posted on a social platform
type ShareRequest struct {
	Platform string
	Address  string
}

// Client is the swap, allowance, orderbook and social verification API
type Client interface {
	Quote(ctx context.Context, req QuoteRequest) (Quote, error)
	Allowance(ctx context.Context, chainID int, token, owner string) (*big.Int, error)
	Approve(ctx context.Context, chainID int, token, owner string, amount *big.Int) (string, error)
	Swap(ctx context.Context, req SwapRequest) (SwapTx, error)
	CreateLimitOrder(ctx context.Context, req LimitOrderRequest) (LimitOrder, error)
	VerifyShare(ctx context.Context, req ShareRequest) (bool, error)
}

// APIError wraps a failed collaborator call. The flow can be retried by running it again.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// apiError wraps err from op. A cancelled or expired context is reported as ErrCancelled or
// ErrTimedOut instead, since the collaborator did not fail.
func apiError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return contextError(err)
	}
	return &APIError{Op: op, Err: err}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimedOut
	}
	return ErrCancelled
}
