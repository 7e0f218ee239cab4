package game

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/panel"
)

// CardFilter narrows the card album.
type CardFilter struct {
	Series    string
	Rarity    string
	Search    string
	OnlyOwned bool
}

// DefaultCardFilter matches every card.
func DefaultCardFilter() CardFilter {
	return CardFilter{Series: FilterAll, Rarity: FilterAll}
}

// RarityStat is the completion of one rarity tier.
type RarityStat struct {
	Rarity     domain.Rarity
	Total      int
	Owned      int
	Percentage float64
}

// CollectionStats summarises album completion.
type CollectionStats struct {
	Total      int
	Owned      int
	Completion float64
	ByRarity   []RarityStat
}

// Cards is the collectible card album.
type Cards struct {
	env    Env
	banner panel.Banner

	mu     sync.RWMutex
	owned  []domain.PlayerCard
	all    []domain.CollectibleCard
	filter CardFilter
}

// NewCards creates the album with no filters.
func NewCards(env Env) *Cards {
	return &Cards{env: env, filter: DefaultCardFilter()}
}

// Load fetches the owned cards and the full catalog concurrently, keeping
// whichever of the two succeeded.
func (c *Cards) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		owned, err := c.env.API.GetCardCollection(ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.owned = owned
		c.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		all, err := c.env.API.GetAllCards(ctx)
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.all = all
		c.mu.Unlock()
		return nil
	})
	err := g.Wait()
	c.banner.Set(err)
	return err
}

// Banner returns the inline error.
func (c *Cards) Banner() string { return c.banner.Message() }

// SetFilter replaces the filters. Empty series or rarity means FilterAll.
func (c *Cards) SetFilter(f CardFilter) {
	if f.Series == "" {
		f.Series = FilterAll
	}
	if f.Rarity == "" {
		f.Rarity = FilterAll
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

// Filter returns the active filters.
func (c *Cards) Filter() CardFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

func (c *Cards) ownedLocked(cardID int) (domain.PlayerCard, bool) {
	for _, pc := range c.owned {
		if pc.CardID == cardID {
			return pc, true
		}
	}
	return domain.PlayerCard{}, false
}

// Owned returns the player's stack of a card.
func (c *Cards) Owned(cardID int) (domain.PlayerCard, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ownedLocked(cardID)
}

// Series lists the card series in catalog order.
func (c *Cards) Series() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, card := range c.all {
		if !seen[card.CardSeries] {
			seen[card.CardSeries] = true
			out = append(out, card.CardSeries)
		}
	}
	return out
}

// Visible returns the catalog cards passing the filters.
func (c *Cards) Visible() []domain.CollectibleCard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f := c.filter
	out := make([]domain.CollectibleCard, 0, len(c.all))
	for _, card := range c.all {
		_, owned := c.ownedLocked(card.ID)
		if (f.Series == FilterAll || card.CardSeries == f.Series) &&
			(f.Rarity == FilterAll || string(card.Rarity) == f.Rarity) &&
			matches(f.Search, card.Name, card.Description) &&
			(!f.OnlyOwned || owned) {
			out = append(out, card)
		}
	}
	return out
}

// Stats computes completion overall and per rarity.
func (c *Cards) Stats() CollectionStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := CollectionStats{Total: len(c.all)}
	byRarity := make(map[domain.Rarity]*RarityStat, len(domain.Rarities))
	for _, r := range domain.Rarities {
		stats.ByRarity = append(stats.ByRarity, RarityStat{Rarity: r})
	}
	for i := range stats.ByRarity {
		byRarity[stats.ByRarity[i].Rarity] = &stats.ByRarity[i]
	}

	for _, card := range c.all {
		_, owned := c.ownedLocked(card.ID)
		if owned {
			stats.Owned++
		}
		if rs := byRarity[card.Rarity]; rs != nil {
			rs.Total++
			if owned {
				rs.Owned++
			}
		}
	}

	stats.Completion = percentage(stats.Owned, stats.Total)
	for i := range stats.ByRarity {
		stats.ByRarity[i].Percentage = percentage(stats.ByRarity[i].Owned, stats.ByRarity[i].Total)
	}
	return stats
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
