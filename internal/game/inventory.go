package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// InventoryCategories are the category filter values, FilterAll first.
var InventoryCategories = []string{
	FilterAll,
	string(domain.ItemTypeWeapon),
	string(domain.ItemTypeArmor),
	string(domain.ItemTypeAccessory),
	string(domain.ItemTypeCollectible),
	string(domain.ItemTypeSpecial),
}

// ItemFilter narrows a list of items or cards.
type ItemFilter struct {
	Category string
	Rarity   string
	Search   string
}

// DefaultItemFilter matches everything.
func DefaultItemFilter() ItemFilter {
	return ItemFilter{Category: FilterAll, Rarity: FilterAll}
}

func (f ItemFilter) match(it domain.Item) bool {
	return (f.Category == FilterAll || string(it.ItemType) == f.Category) &&
		(f.Rarity == FilterAll || string(it.Rarity) == f.Rarity) &&
		matches(f.Search, it.Name, it.Description)
}

// Inventory lists, equips and sells the player's items.
type Inventory struct {
	env    Env
	guard  panel.Guard
	banner panel.Banner

	mu      sync.RWMutex
	entries []domain.InventoryEntry
	filter  ItemFilter
}

// NewInventory creates the panel with no filters.
func NewInventory(env Env) *Inventory {
	return &Inventory{env: env, entries: []domain.InventoryEntry{}, filter: DefaultItemFilter()}
}

// Load fetches the inventory.
func (inv *Inventory) Load(ctx context.Context) error {
	entries, err := inv.env.API.GetInventory(ctx)
	if err != nil {
		inv.banner.Set(err)
		logger.FromContext(ctx).Warn("Failed to load inventory", "error", err)
		return err
	}
	inv.banner.Clear()
	inv.mu.Lock()
	inv.entries = entries
	inv.mu.Unlock()
	return nil
}

// Banner returns the inline error.
func (inv *Inventory) Banner() string { return inv.banner.Message() }

// SetFilter replaces the filters. Empty category or rarity means FilterAll.
func (inv *Inventory) SetFilter(f ItemFilter) {
	if f.Category == "" {
		f.Category = FilterAll
	}
	if f.Rarity == "" {
		f.Rarity = FilterAll
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.filter = f
}

// Filter returns the active filters.
func (inv *Inventory) Filter() ItemFilter {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.filter
}

// Entries returns every loaded entry.
func (inv *Inventory) Entries() []domain.InventoryEntry {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]domain.InventoryEntry, len(inv.entries))
	copy(out, inv.entries)
	return out
}

// Visible returns the entries passing the filters.
func (inv *Inventory) Visible() []domain.InventoryEntry {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]domain.InventoryEntry, 0, len(inv.entries))
	for _, e := range inv.entries {
		if inv.filter.match(e.Item) {
			out = append(out, e)
		}
	}
	return out
}

// Entry returns a loaded entry by id.
func (inv *Inventory) Entry(id int) (domain.InventoryEntry, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	for _, e := range inv.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.InventoryEntry{}, false
}

// Equip toggles an entry. The row flips locally once the backend accepts.
func (inv *Inventory) Equip(ctx context.Context, id int) error {
	return inv.guard.Run(func() error {
		resp, err := inv.env.API.EquipItem(ctx, id)
		if err != nil {
			return inv.env.fail(ctx, "equip", err)
		}
		inv.mu.Lock()
		for i := range inv.entries {
			if inv.entries[i].ID == id {
				inv.entries[i].IsEquipped = !inv.entries[i].IsEquipped
			}
		}
		inv.mu.Unlock()
		inv.env.OnPlayerUpdate.Push(resp.Player)
		return nil
	})
}

// SellPrompt is the confirmation asked before selling an entry.
const SellPrompt = "Tem certeza que deseja vender este item?"

// Sell asks for confirmation, sells the entry and drops it from the list.
func (inv *Inventory) Sell(ctx context.Context, id int) error {
	if !inv.env.UI.Confirm(ctx, SellPrompt) {
		return domain.ErrCancelled
	}
	return inv.guard.Run(func() error {
		resp, err := inv.env.API.SellItem(ctx, id)
		if err != nil {
			return inv.env.fail(ctx, "sell", err)
		}
		inv.mu.Lock()
		for i := range inv.entries {
			if inv.entries[i].ID == id {
				inv.entries = append(inv.entries[:i:i], inv.entries[i+1:]...)
				break
			}
		}
		inv.mu.Unlock()
		inv.env.OnPlayerUpdate.Push(resp.Player)

		logger.FromContext(ctx).Info("Inventory item sold", "entry_id", id, "sale_price", resp.SalePrice.String())
		inv.env.UI.Alert(ctx, fmt.Sprintf("Item vendido por %s DOOF!", resp.SalePrice))
		return nil
	})
}
