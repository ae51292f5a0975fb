package gameplay

import (
	"context"
	"errors"
	"time"

	"hashhunt/pkg/game/i18n"
	"hashhunt/pkg/game/leveling"
	"hashhunt/pkg/game/missions"
	"hashhunt/pkg/game/state"
	"hashhunt/pkg/game/zones"
)

// MissionTimeout bounds a single mission run, excluding the share countdown
const MissionTimeout = 30 * time.Second

// MissionParams are the inputs a front-end collects before running a mission
type MissionParams struct {
	Swap       missions.SwapParams
	Routes     [][]string
	LimitOrder missions.LimitOrderParams
	Share      missions.ShareParams
}

// DefaultParams are the guided values offered when a mission starts
func DefaultParams() MissionParams {
	return MissionParams{
		Swap: missions.SwapParams{
			Src:      "USDC",
			Dst:      "1INCH",
			Amount:   "100000000",
			Slippage: missions.DefaultSlippage,
		},
		LimitOrder: missions.LimitOrderParams{
			MakerAsset:   "1INCH",
			TakerAsset:   "USDC",
			MakingAmount: "250000000",
			TakingAmount: "110000000",
			Expiry:       missions.DefaultOrderExpiry,
		},
		Share: missions.ShareParams{Platform: missions.Platforms[0]},
	}
}

// BeginMission takes the pending request and marks the game busy. The returned character is a
// copy, so the mission can run on another goroutine while the game keeps rendering.
func BeginMission(g *state.Game) (state.Request, leveling.Character, bool) {
	if g.Pending == nil || g.Character == nil || g.Busy {
		return state.Request{}, leveling.Character{}, false
	}
	req := *g.Pending
	g.Pending = nil
	g.Busy = true
	logMessage(g, i18n.T("MISSION_RUNNING", RequestName(req)))
	return req, *g.Character, true
}

// MissionContext derives the context a mission runs under and records its cancel func in
// g.CancelMission. Non-share missions are bounded by timeout (MissionTimeout when zero); shares
// run until their countdown ends or the player cancels. FinishMission releases it.
func MissionContext(parent context.Context, g *state.Game, req state.Request, timeout time.Duration) context.Context {
	if timeout <= 0 {
		timeout = MissionTimeout
	}
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if req.Share {
		ctx, cancel = context.WithCancel(parent)
	} else {
		ctx, cancel = context.WithTimeout(parent, timeout)
	}
	g.CancelMission = cancel
	return ctx
}

// CancelMission asks the running mission to stop. The mission still ends through FinishMission,
// which reports the cancellation.
func CancelMission(g *state.Game) bool {
	if !g.Busy || g.CancelMission == nil {
		return false
	}
	g.CancelMission()
	logMessage(g, i18n.T("MISSION_CANCELLING"))
	return true
}

// RequestName is the display name of the mission req starts
func RequestName(req state.Request) string {
	if req.Share {
		return i18n.T("MISSION_SHARE")
	}
	kind, ok := missions.KindForZone(req.Zone.Type)
	if !ok {
		return req.Zone.Name
	}
	return i18n.T(missionKey(kind))
}

// RunMission runs the flow for req. It touches no game state and is safe to call off the render
// goroutine; onTick reports the share countdown.
func RunMission(ctx context.Context, svc *missions.Service, c leveling.Character, req state.Request, p MissionParams, onTick func(remaining int)) (missions.Outcome, error) {
	if req.Share {
		return svc.Share(ctx, c, p.Share, onTick)
	}

	switch req.Zone.Type {
	case zones.TypeSwap:
		res, err := svc.BasicSwap(ctx, c, p.Swap)
		return res.Outcome, err
	case zones.TypeAdvancedSwap:
		res, err := svc.AdvancedSwap(ctx, c, missions.AdvancedSwapParams{SwapParams: p.Swap, Routes: p.Routes})
		return res.Outcome, err
	case zones.TypeBoss:
		res, err := svc.Boss(ctx, c, missions.AdvancedSwapParams{SwapParams: p.Swap, Routes: p.Routes})
		return res.Outcome, err
	case zones.TypeLimitOrder:
		res, err := svc.LimitOrder(ctx, c, p.LimitOrder)
		return res.Outcome, err
	case zones.TypeChest:
		return svc.OpenChest(c)
	}
	return missions.Outcome{}, errors.New("zone " + req.Zone.Key() + " starts no mission")
}

// FinishMission applies a mission result to the game on the render goroutine
func FinishMission(g *state.Game, req state.Request, out missions.Outcome, err error) {
	g.Busy = false
	g.Countdown = 0
	if g.CancelMission != nil {
		g.CancelMission()
		g.CancelMission = nil
	}
	if err != nil {
		ReportMissionError(g, req, err)
		return
	}
	ApplyOutcome(g, out)
}

// ApplyOutcome copies a completed mission into the game and starts the level-up sequence when
// a level was gained
func ApplyOutcome(g *state.Game, out missions.Outcome) {
	c := out.Character
	g.Character = &c
	g.Progress = out.Progress
	g.Shares = out.Shares

	if out.Kind == missions.KindChest {
		logMessage(g, i18n.T("CHEST_OPENED", out.Exp))
	} else {
		logMessage(g, i18n.T("MISSION_COMPLETE", i18n.T(missionKey(out.Kind)), out.Exp))
	}
	if out.LeveledUp() {
		logMessage(g, i18n.T("LEVEL_GAINED", c.Level))
		g.LevelUp.Start(c.Level, nil)
	}
}

// ReportMissionError logs why a mission did not complete. Re-running the request retries it.
func ReportMissionError(g *state.Game, req state.Request, err error) {
	var apiErr *missions.APIError
	switch {
	case errors.Is(err, missions.ErrCancelled), errors.Is(err, context.Canceled):
		logMessage(g, i18n.T("MISSION_CANCELLED"))
	case errors.Is(err, missions.ErrTimedOut), errors.Is(err, context.DeadlineExceeded):
		logMessage(g, i18n.T("MISSION_TIMED_OUT"))
	case errors.Is(err, missions.ErrNotVerified):
		logMessage(g, i18n.T("SHARE_NOT_VERIFIED"))
	case errors.Is(err, missions.ErrWalletNotConnected):
		logMessage(g, i18n.T("WALLET_NOT_CONNECTED"))
	case errors.As(err, &apiErr):
		logMessage(g, i18n.T("MISSION_API_FAILED", apiErr.Op, apiErr.Err))
	default:
		logMessage(g, i18n.T("MISSION_FAILED", err))
	}
}

func missionKey(k missions.Kind) string {
	switch k {
	case missions.KindSwap:
		return "MISSION_SWAP"
	case missions.KindAdvancedSwap:
		return "MISSION_ADVANCED_SWAP"
	case missions.KindLimitOrder:
		return "MISSION_LIMIT_ORDER"
	case missions.KindShare:
		return "MISSION_SHARE"
	case missions.KindBoss:
		return "MISSION_BOSS"
	}
	return "MISSION_CHEST"
}
