package game

import (
	"context"
	"fmt"

	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/panel"
)

// ShopCategory is a storefront tab.
type ShopCategory string

const (
	ShopWeapons     ShopCategory = "weapons"
	ShopArmors      ShopCategory = "armors"
	ShopAccessories ShopCategory = "accessories"
)

// ShopCategories lists the tabs in display order.
var ShopCategories = []ShopCategory{ShopWeapons, ShopArmors, ShopAccessories}

// Label returns the tab label.
func (c ShopCategory) Label() string {
	switch c {
	case ShopWeapons:
		return "Armas"
	case ShopArmors:
		return "Armaduras"
	case ShopAccessories:
		return "Acessórios"
	default:
		return string(c)
	}
}

// ShopItem is one entry of the built-in equipment catalog.
type ShopItem struct {
	ID          int
	Name        string
	Category    ShopCategory
	Power       int
	Defense     int
	Effect      string
	Price       domain.Decimal
	Description string
}

// Bonus describes what the item grants.
func (i ShopItem) Bonus() string {
	switch {
	case i.Power > 0:
		return fmt.Sprintf("Poder: +%d", i.Power)
	case i.Defense > 0:
		return fmt.Sprintf("Defesa: +%d", i.Defense)
	case i.Effect != "":
		return "Efeito: " + i.Effect
	}
	return ""
}

// Catalog is the fixed storefront. Purchases are settled locally; no
// backend endpoint exists for them.
var Catalog = []ShopItem{
	{ID: 1, Name: "Espada Básica", Category: ShopWeapons, Power: 5, Price: "0.0000001", Description: "Uma espada simples, mas eficaz."},
	{ID: 2, Name: "Machado de Guerra", Category: ShopWeapons, Power: 10, Price: "0.0000005", Description: "Um machado pesado que causa dano extra."},
	{ID: 3, Name: "Adaga Envenenada", Category: ShopWeapons, Power: 15, Price: "0.000001", Description: "Uma adaga rápida com veneno que causa dano ao longo do tempo."},
	{ID: 4, Name: "Espada Lendária", Category: ShopWeapons, Power: 25, Price: "0.00001", Description: "Uma espada forjada por deuses antigos."},
	{ID: 5, Name: "Armadura de Couro", Category: ShopArmors, Defense: 5, Price: "0.0000001", Description: "Proteção básica para aventureiros iniciantes."},
	{ID: 6, Name: "Cota de Malha", Category: ShopArmors, Defense: 10, Price: "0.0000005", Description: "Oferece boa proteção contra ataques físicos."},
	{ID: 7, Name: "Armadura de Placas", Category: ShopArmors, Defense: 15, Price: "0.000001", Description: "Armadura pesada que oferece excelente proteção."},
	{ID: 8, Name: "Armadura Divina", Category: ShopArmors, Defense: 25, Price: "0.00001", Description: "Forjada com materiais celestiais, quase impenetrável."},
	{ID: 9, Name: "Anel da Sorte", Category: ShopAccessories, Effect: "Aumenta chance de crítico", Price: "0.0000002", Description: "Um anel que traz sorte nas batalhas."},
	{ID: 10, Name: "Amuleto de Vida", Category: ShopAccessories, Effect: "Regeneração de HP", Price: "0.0000005", Description: "Regenera vida lentamente durante o combate."},
	{ID: 11, Name: "Colar de Mana", Category: ShopAccessories, Effect: "Aumenta poder mágico", Price: "0.000001", Description: "Amplifica seus poderes mágicos."},
	{ID: 12, Name: "Coroa do Rei", Category: ShopAccessories, Effect: "Todos atributos +10", Price: "0.00002", Description: "Um item lendário que pertenceu a um rei antigo."},
}

// Shop sells catalog items against the wallet balance.
type Shop struct {
	env   Env
	guard panel.Guard
}

// NewShop creates the shop.
func NewShop(env Env) *Shop {
	return &Shop{env: env}
}

// Items returns the catalog entries of a tab.
func (s *Shop) Items(category ShopCategory) []ShopItem {
	var out []ShopItem
	for _, it := range Catalog {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// Find returns a catalog entry by id.
func (s *Shop) Find(id int) (ShopItem, bool) {
	for _, it := range Catalog {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

// CanAfford compares the balance with the price exactly.
func (s *Shop) CanAfford(item ShopItem) bool {
	p, err := s.env.player()
	if err != nil {
		return false
	}
	cmp, err := p.WalletBalance.Cmp(item.Price)
	return err == nil && cmp >= 0
}

// Buy subtracts the price from the balance, adds any power bonus and
// pushes the updated player.
func (s *Shop) Buy(ctx context.Context, id int) error {
	item, ok := s.Find(id)
	if !ok {
		return fmt.Errorf("%w: shop item %d", domain.ErrNotFound, id)
	}
	p, err := s.env.player()
	if err != nil {
		return err
	}

	return s.guard.Run(func() error {
		balance, err := p.WalletBalance.Value()
		if err != nil {
			return s.env.fail(ctx, "buy", err)
		}
		price, err := item.Price.Value()
		if err != nil {
			return s.env.fail(ctx, "buy", err)
		}
		if balance.LessThan(price) {
			s.env.UI.Alert(ctx, "Saldo insuficiente para comprar este item!")
			return fmt.Errorf("%w: %s costs %s", domain.ErrInsufficientFunds, item.Name, item.Price)
		}

		updated := p.Clone()
		updated.WalletBalance = domain.DecimalFrom(balance.Sub(price))
		updated.Power += item.Power
		s.env.OnPlayerUpdate.Push(updated)

		logger.FromContext(ctx).Info("Shop item bought", "player_id", p.ID, "item_id", item.ID)
		s.env.UI.Alert(ctx, fmt.Sprintf("Item %s comprado com sucesso!", item.Name))
		return nil
	})
}
