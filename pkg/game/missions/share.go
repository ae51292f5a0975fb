package missions

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hashhunt/pkg/game/leveling"
)

// Platforms a share can be posted to
var Platforms = []string{"twitter", "telegram", "discord"}

// ShareParams names the platform the user posted to
type ShareParams struct {
	Platform string
}

// Share waits out the verification countdown, calling onTick with the seconds left, then asks the
// client to verify the post and awards the share reward to c. Cancelling ctx during the countdown
// returns ErrCancelled (ErrTimedOut for a deadline) without touching storage.
func (s *Service) Share(ctx context.Context, c leveling.Character, p ShareParams, onTick func(remaining int)) (Outcome, error) {
	addr, _, err := s.address()
	if err != nil {
		return Outcome{}, err
	}

	ticker := time.NewTicker(s.shareTick)
	defer ticker.Stop()
	for remaining := s.shareTicks; remaining > 0; {
		if onTick != nil {
			onTick(remaining)
		}
		select {
		case <-ctx.Done():
			s.log.Debug("share cancelled", zap.Int("remaining", remaining))
			return Outcome{}, contextError(ctx.Err())
		case <-ticker.C:
			remaining--
		}
	}
	if onTick != nil {
		onTick(0)
	}

	ok, err := s.client.VerifyShare(ctx, ShareRequest{Platform: p.Platform, Address: addr})
	if err != nil {
		return Outcome{}, apiError("verify share", err)
	}
	if !ok {
		return Outcome{}, ErrNotVerified
	}
	return s.Complete(c, KindShare)
}

// OpenChest awards the chest reward. Callers only open a chest on its first visit.
func (s *Service) OpenChest(c leveling.Character) (Outcome, error) {
	return s.Complete(c, KindChest)
}
