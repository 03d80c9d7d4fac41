// Package card renders one finished 600x850 trading-card PNG per player:
// shield silhouette, violet gradient backdrop, photo with fade, rating
// column, org portrait and logo badges, adaptive-fit name and stat rows.
package card

// SharedAssets are the batch-level image references. Both are required;
// the driver must reject a batch before composing if either is empty.
type SharedAssets struct {
	OrgPortraitRef string
	LogoRef        string
}

// RenderedCard is one finished card, keyed by the player's batch ID.
// Story is filled in later by the scout collaborator; the compositor
// never writes it.
type RenderedCard struct {
	PlayerID string
	Name     string
	PNG      []byte
	Story    string
}
