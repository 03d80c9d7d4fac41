package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/vidhyutcables/player-card/internal/roster"
)

// ErrMissingSharedAssets is returned before any composition when a batch
// arrives without its required org portrait or logo reference.
var ErrMissingSharedAssets = errors.New("org portrait and logo references are required")

// ComposeBatch renders every player strictly in input order, one at a time,
// each card fully finished before the next starts. Sequential on purpose:
// dozens of full-size surfaces composed concurrently would chew memory for
// no benefit, and one-at-a-time completion is what lets the caller report
// progress per card.
//
// fn is invoked once per player with the finished card or the per-card
// error; returning a non-nil error from fn stops the batch. A failed card
// never touches another card's inputs, so continuing is always safe.
func (c *Compositor) ComposeBatch(ctx context.Context, players []roster.Player, shared SharedAssets, fn func(RenderedCard, error) error) error {
	if shared.OrgPortraitRef == "" || shared.LogoRef == "" {
		return ErrMissingSharedAssets
	}
	for _, p := range players {
		if err := ctx.Err(); err != nil {
			return err
		}
		rc, err := c.Compose(ctx, p, shared.OrgPortraitRef, shared.LogoRef)
		if err != nil {
			err = fmt.Errorf("card %s: %w", p.ID, err)
		}
		if cbErr := fn(rc, err); cbErr != nil {
			return cbErr
		}
	}
	return nil
}
