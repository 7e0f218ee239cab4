package admin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/format"
)

func itoa(n int) string { return strconv.Itoa(n) }

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// UserForm edits an account. Users are never created here.
type UserForm struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

// UsersSchema configures the users panel.
var UsersSchema = Schema[domain.User, UserForm]{
	Resource: client.ResourceUsers,
	Noun:     Noun{Name: "usuário"},
	Defaults: func() UserForm { return UserForm{} },
	FromRow: func(u domain.User) UserForm {
		return UserForm{Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin, IsActive: u.IsActive}
	},
	Columns: []string{"ID", "Username", "Email", "Admin", "Ativo"},
	Cells: func(u domain.User) []string {
		return []string{itoa(u.ID), u.Username, u.Email, yesNo(u.IsAdmin), yesNo(u.IsActive)}
	},
	RowID:          func(u domain.User) int { return u.ID },
	ReadOnlyCreate: true,
}

// ItemForm edits a catalog item. Attributes are typed as JSON text and
// parsed into an object when the form is sent.
type ItemForm struct {
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	ItemType      domain.ItemType `json:"item_type" validate:"required,oneof=weapon armor accessory collectible consumable special"`
	Rarity        domain.Rarity   `json:"rarity" validate:"required,oneof=common rare epic legendary mythic"`
	BasePrice     domain.Decimal  `json:"base_price"`
	CurrentPrice  domain.Decimal  `json:"current_price"`
	RequiredLevel int             `json:"required_level" validate:"gte=1"`
	RequiredPhase int             `json:"required_phase" validate:"gte=1"`
	IsTradeable   bool            `json:"is_tradeable"`
	IsSellable    bool            `json:"is_sellable"`
	Attributes    string          `json:"attributes"`
	DropRate      float64         `json:"drop_rate" validate:"gte=0,lte=1"`
	MaxStack      int             `json:"max_stack" validate:"gte=1"`
	ImageURL      string          `json:"image_url"`
	IsActive      bool            `json:"is_active"`
}

// DefaultItemForm is the blank item form.
func DefaultItemForm() ItemForm {
	return ItemForm{
		ItemType:      domain.ItemTypeWeapon,
		Rarity:        domain.RarityCommon,
		BasePrice:     domain.ZeroDecimal,
		CurrentPrice:  domain.ZeroDecimal,
		RequiredLevel: 1,
		RequiredPhase: 1,
		IsTradeable:   true,
		IsSellable:    true,
		Attributes:    "{}",
		DropRate:      0.1,
		MaxStack:      1,
		IsActive:      true,
	}
}

// itemBody is the wire form of ItemForm.
type itemBody struct {
	ItemForm
	Attributes map[string]any `json:"attributes"`
}

func itemFormBody(f ItemForm) (any, error) {
	if err := validateDecimals(f.BasePrice, f.CurrentPrice); err != nil {
		return nil, err
	}
	attrs := map[string]any{}
	if text := strings.TrimSpace(f.Attributes); text != "" {
		dec := json.NewDecoder(strings.NewReader(text))
		dec.UseNumber()
		if err := dec.Decode(&attrs); err != nil {
			return nil, fmt.Errorf("%w: attributes must be a JSON object: %v", domain.ErrInvalidInput, err)
		}
	}
	return itemBody{ItemForm: f, Attributes: attrs}, nil
}

// ItemsSchema configures the items panel.
var ItemsSchema = Schema[domain.Item, ItemForm]{
	Resource: client.ResourceItems,
	Noun:     Noun{Name: "item"},
	Defaults: DefaultItemForm,
	FromRow: func(it domain.Item) ItemForm {
		attrs := "{}"
		if len(it.Attributes) > 0 {
			if raw, err := json.Marshal(it.Attributes); err == nil {
				attrs = string(raw)
			}
		}
		return ItemForm{
			Name:          it.Name,
			Description:   it.Description,
			ItemType:      it.ItemType,
			Rarity:        it.Rarity,
			BasePrice:     it.BasePrice,
			CurrentPrice:  it.CurrentPrice,
			RequiredLevel: it.RequiredLevel,
			RequiredPhase: it.RequiredPhase,
			IsTradeable:   it.IsTradeable,
			IsSellable:    it.IsSellable,
			Attributes:    attrs,
			DropRate:      it.DropRate,
			MaxStack:      it.MaxStack,
			ImageURL:      it.ImageURL,
			IsActive:      it.IsActive,
		}
	},
	Columns: []string{"ID", "Nome", "Tipo", "Raridade", "Preço", "Ativo"},
	Cells: func(it domain.Item) []string {
		return []string{itoa(it.ID), it.Name, string(it.ItemType), it.Rarity.Label(), format.Balance(it.CurrentPrice), yesNo(it.IsActive)}
	},
	RowID: func(it domain.Item) int { return it.ID },
	Body:  itemFormBody,
}

// MonsterForm edits a monster.
type MonsterForm struct {
	Name            string         `json:"name" validate:"required"`
	Description     string         `json:"description"`
	MonsterType     string         `json:"monster_type" validate:"required,oneof=zombie animal robot mutant elemental"`
	Health          int            `json:"health" validate:"gte=1"`
	Attack          int            `json:"attack" validate:"gte=0"`
	Defense         int            `json:"defense" validate:"gte=0"`
	Speed           int            `json:"speed" validate:"gte=0"`
	XPReward        int            `json:"xp_reward" validate:"gte=0"`
	DooficoinReward domain.Decimal `json:"dooficoin_reward"`
	ImageURL        string         `json:"image_url"`
	IsActive        bool           `json:"is_active"`
	ScenarioID      *int           `json:"scenario_id"`
}

// DefaultMonsterForm is the blank monster form.
func DefaultMonsterForm() MonsterForm {
	return MonsterForm{
		MonsterType:     "zombie",
		Health:          100,
		Attack:          10,
		Defense:         5,
		Speed:           5,
		XPReward:        10,
		DooficoinReward: "0.00000000000000000000000000000000001",
		IsActive:        true,
	}
}

// MonstersSchema configures the monsters panel.
var MonstersSchema = Schema[domain.Monster, MonsterForm]{
	Resource: client.ResourceMonsters,
	Noun:     Noun{Name: "monstro"},
	Defaults: DefaultMonsterForm,
	FromRow: func(m domain.Monster) MonsterForm {
		return MonsterForm{
			Name:            m.Name,
			Description:     m.Description,
			MonsterType:     m.MonsterType,
			Health:          m.Health,
			Attack:          m.Attack,
			Defense:         m.Defense,
			Speed:           m.Speed,
			XPReward:        m.XPReward,
			DooficoinReward: m.DooficoinReward,
			ImageURL:        m.ImageURL,
			IsActive:        m.IsActive,
			ScenarioID:      m.ScenarioID,
		}
	},
	Columns: []string{"ID", "Nome", "Tipo", "Vida", "Ataque", "Recompensa", "Ativo"},
	Cells: func(m domain.Monster) []string {
		return []string{itoa(m.ID), m.Name, m.MonsterType, itoa(m.Health), itoa(m.Attack), format.DoofiCoin(m.DooficoinReward), yesNo(m.IsActive)}
	},
	RowID: func(m domain.Monster) int { return m.ID },
	Body: func(f MonsterForm) (any, error) {
		return f, validateDecimals(f.DooficoinReward)
	},
}

// ScenarioForm edits a scenario. Coordinates stay decimal text.
type ScenarioForm struct {
	Name                      string         `json:"name" validate:"required"`
	Description               string         `json:"description"`
	Country                   string         `json:"country" validate:"required"`
	City                      string         `json:"city"`
	LocationName              string         `json:"location_name"`
	Latitude                  domain.Decimal `json:"latitude"`
	Longitude                 domain.Decimal `json:"longitude"`
	PhaseNumber               int            `json:"phase_number" validate:"gte=1"`
	ScenarioType              string         `json:"scenario_type" validate:"required,oneof=forest desert mountain city ocean volcano space"`
	DifficultyLevel           int            `json:"difficulty_level" validate:"gte=1"`
	InitialMonsters           int            `json:"initial_monsters" validate:"gte=1"`
	MonsterIncreasePercentage float64        `json:"monster_increase_percentage" validate:"gte=0"`
	AmbientColor              string         `json:"ambient_color" validate:"omitempty,hexcolor"`
	ImageURL                  string         `json:"image_url"`
	IsActive                  bool           `json:"is_active"`
}

// DefaultScenarioForm is the blank scenario form.
func DefaultScenarioForm() ScenarioForm {
	return ScenarioForm{
		PhaseNumber:               1,
		ScenarioType:              "forest",
		DifficultyLevel:           1,
		InitialMonsters:           domain.ArenaInitialMonstersPerPhase,
		MonsterIncreasePercentage: 0.25,
		AmbientColor:              "#000000",
		IsActive:                  true,
	}
}

// ScenariosSchema configures the scenarios panel.
var ScenariosSchema = Schema[domain.Scenario, ScenarioForm]{
	Resource: client.ResourceScenarios,
	Noun:     Noun{Name: "cenário"},
	Defaults: DefaultScenarioForm,
	FromRow: func(s domain.Scenario) ScenarioForm {
		return ScenarioForm{
			Name:                      s.Name,
			Description:               s.Description,
			Country:                   s.Country,
			City:                      s.City,
			LocationName:              s.LocationName,
			Latitude:                  s.Latitude,
			Longitude:                 s.Longitude,
			PhaseNumber:               s.PhaseNumber,
			ScenarioType:              s.ScenarioType,
			DifficultyLevel:           s.DifficultyLevel,
			InitialMonsters:           s.InitialMonsters,
			MonsterIncreasePercentage: s.MonsterIncreasePercentage,
			AmbientColor:              s.AmbientColor,
			ImageURL:                  s.ImageURL,
			IsActive:                  s.IsActive,
		}
	},
	Columns: []string{"ID", "Nome", "País", "Cidade", "Fase", "Tipo", "Ativo"},
	Cells: func(s domain.Scenario) []string {
		return []string{itoa(s.ID), s.Name, s.Country, s.City, itoa(s.PhaseNumber), s.ScenarioType, yesNo(s.IsActive)}
	},
	RowID: func(s domain.Scenario) int { return s.ID },
}

// CardForm edits a collectible card.
type CardForm struct {
	Name             string        `json:"name" validate:"required"`
	Description      string        `json:"description"`
	CardSeries       string        `json:"card_series" validate:"required"`
	CardNumber       int           `json:"card_number" validate:"gte=1"`
	Rarity           domain.Rarity `json:"rarity" validate:"required,oneof=common rare epic legendary mythic"`
	AvailableInPhase int           `json:"available_in_phase" validate:"gte=1"`
	DropRate         float64       `json:"drop_rate" validate:"gte=0,lte=1"`
	ImageURL         string        `json:"image_url"`
	BackgroundColor  string        `json:"background_color" validate:"omitempty,hexcolor"`
	IsActive         bool          `json:"is_active"`
}

// DefaultCardForm is the blank card form.
func DefaultCardForm() CardForm {
	return CardForm{
		CardNumber:       1,
		Rarity:           domain.RarityCommon,
		AvailableInPhase: 1,
		DropRate:         0.05,
		BackgroundColor:  "#FFFFFF",
		IsActive:         true,
	}
}

// CardsSchema configures the cards panel.
var CardsSchema = Schema[domain.CollectibleCard, CardForm]{
	Resource: client.ResourceCards,
	Noun:     Noun{Name: "carta", Feminine: true},
	Defaults: DefaultCardForm,
	FromRow: func(c domain.CollectibleCard) CardForm {
		return CardForm{
			Name:             c.Name,
			Description:      c.Description,
			CardSeries:       c.CardSeries,
			CardNumber:       c.CardNumber,
			Rarity:           c.Rarity,
			AvailableInPhase: c.AvailableInPhase,
			DropRate:         c.DropRate,
			ImageURL:         c.ImageURL,
			BackgroundColor:  c.BackgroundColor,
			IsActive:         c.IsActive,
		}
	},
	Columns: []string{"ID", "Nome", "Série", "Número", "Raridade", "Fase", "Ativo"},
	Cells: func(c domain.CollectibleCard) []string {
		return []string{itoa(c.ID), c.Name, c.CardSeries, itoa(c.CardNumber), c.Rarity.Label(), itoa(c.AvailableInPhase), yesNo(c.IsActive)}
	},
	RowID: func(c domain.CollectibleCard) int { return c.ID },
}

// ShopItemForm edits a storefront listing.
type ShopItemForm struct {
	ItemID             int            `json:"item_id" validate:"gte=1"`
	Price              domain.Decimal `json:"price" validate:"required"`
	DiscountPercentage float64        `json:"discount_percentage" validate:"gte=0,lte=100"`
	IsFeatured         bool           `json:"is_featured"`
	IsAvailable        bool           `json:"is_available"`
	StockQuantity      *int           `json:"stock_quantity" validate:"omitempty,gte=0"`
	RequiredLevel      int            `json:"required_level" validate:"gte=1"`
	RequiredPhase      int            `json:"required_phase" validate:"gte=1"`
}

// DefaultShopItemForm is the blank listing form.
func DefaultShopItemForm() ShopItemForm {
	return ShopItemForm{
		Price:         domain.ZeroDecimal,
		IsAvailable:   true,
		RequiredLevel: 1,
		RequiredPhase: 1,
	}
}

// ShopItemsSchema configures the shop listings panel.
var ShopItemsSchema = Schema[domain.ShopItem, ShopItemForm]{
	Resource: client.ResourceShopItems,
	Noun:     Noun{Name: "item da loja"},
	Defaults: DefaultShopItemForm,
	FromRow: func(s domain.ShopItem) ShopItemForm {
		return ShopItemForm{
			ItemID:             s.ItemID,
			Price:              s.Price,
			DiscountPercentage: s.DiscountPercentage,
			IsFeatured:         s.IsFeatured,
			IsAvailable:        s.IsAvailable,
			StockQuantity:      s.StockQuantity,
			RequiredLevel:      s.RequiredLevel,
			RequiredPhase:      s.RequiredPhase,
		}
	},
	Columns: []string{"ID", "Item", "Preço", "Desconto", "Destaque", "Disponível"},
	Cells: func(s domain.ShopItem) []string {
		name := itoa(s.ItemID)
		if s.Item != nil {
			name = s.Item.Name
		}
		return []string{itoa(s.ID), name, format.Balance(s.Price), format.Percent(s.DiscountPercentage / 100), yesNo(s.IsFeatured), yesNo(s.IsAvailable)}
	},
	RowID: func(s domain.ShopItem) int { return s.ID },
	Body: func(f ShopItemForm) (any, error) {
		return f, validateDecimals(f.Price)
	},
}

// PlayerForm edits the game-side counters of a player.
type PlayerForm struct {
	Level         int            `json:"level" validate:"gte=1"`
	Health        int            `json:"health" validate:"gte=0,lte=100"`
	Power         int            `json:"power" validate:"gte=0,lte=100"`
	CurrentPhase  int            `json:"current_phase" validate:"gte=1"`
	WalletBalance domain.Decimal `json:"wallet_balance"`
}

// DefaultPlayerForm is the blank player form.
func DefaultPlayerForm() PlayerForm {
	return PlayerForm{
		Level:         1,
		Health:        domain.MaxHealth,
		CurrentPhase:  domain.DefaultPhase,
		WalletBalance: domain.ZeroDecimal,
	}
}

// PlayersSchema configures the players panel.
var PlayersSchema = Schema[domain.Player, PlayerForm]{
	Resource: client.ResourcePlayers,
	Noun:     Noun{Name: "jogador"},
	Defaults: DefaultPlayerForm,
	FromRow: func(p domain.Player) PlayerForm {
		return PlayerForm{
			Level:         p.Level,
			Health:        p.Health,
			Power:         p.Power,
			CurrentPhase:  p.Phase(),
			WalletBalance: p.WalletBalance,
		}
	},
	Columns: []string{"ID", "Username", "Nível", "Fase", "Saldo", "Monstros"},
	Cells: func(p domain.Player) []string {
		return []string{itoa(p.ID), p.Username, itoa(p.Level), itoa(p.Phase()), format.Balance(p.WalletBalance), itoa(p.MonstersKilled)}
	},
	RowID:          func(p domain.Player) int { return p.ID },
	ReadOnlyCreate: true,
	Body: func(f PlayerForm) (any, error) {
		return f, validateDecimals(f.WalletBalance)
	},
}

// validateDecimals rejects amounts that are not decimal text. Empty values
// pass; the backend applies its own default.
func validateDecimals(values ...domain.Decimal) error {
	for _, v := range values {
		if v.IsEmpty() {
			continue
		}
		if _, err := v.Value(); err != nil {
			return err
		}
	}
	return nil
}
