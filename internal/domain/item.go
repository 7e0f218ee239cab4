package domain

// ItemType categorises items.
type ItemType string

const (
	ItemTypeWeapon      ItemType = "weapon"
	ItemTypeArmor       ItemType = "armor"
	ItemTypeAccessory   ItemType = "accessory"
	ItemTypeCollectible ItemType = "collectible"
	ItemTypeConsumable  ItemType = "consumable"
	ItemTypeSpecial     ItemType = "special"
)

// ItemTypes lists the item types accepted by the admin item form.
var ItemTypes = []ItemType{
	ItemTypeWeapon,
	ItemTypeArmor,
	ItemTypeAccessory,
	ItemTypeCollectible,
	ItemTypeConsumable,
	ItemTypeSpecial,
}

// Label returns the Portuguese category label used by the inventory tabs.
func (t ItemType) Label() string {
	switch t {
	case ItemTypeWeapon:
		return "Armas"
	case ItemTypeArmor:
		return "Armaduras"
	case ItemTypeAccessory:
		return "Acessórios"
	case ItemTypeCollectible:
		return "Colecionáveis"
	case ItemTypeConsumable:
		return "Consumíveis"
	case ItemTypeSpecial:
		return "Especiais"
	default:
		return string(t)
	}
}

// Rarity is the ordinal tier shared by items and cards.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// Rarities lists rarities from lowest to highest.
var Rarities = []Rarity{
	RarityCommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
}

// Rank returns the ordinal position of the rarity, or -1 when unknown.
func (r Rarity) Rank() int {
	for i, v := range Rarities {
		if v == r {
			return i
		}
	}
	return -1
}

// Label returns the Portuguese display name.
func (r Rarity) Label() string {
	switch r {
	case RarityCommon:
		return "Comum"
	case RarityRare:
		return "Raro"
	case RarityEpic:
		return "Épico"
	case RarityLegendary:
		return "Lendário"
	case RarityMythic:
		return "Mítico"
	default:
		return string(r)
	}
}

// Color returns the hex display color.
func (r Rarity) Color() string {
	switch r {
	case RarityRare:
		return "#3B82F6"
	case RarityEpic:
		return "#8B5CF6"
	case RarityLegendary:
		return "#F59E0B"
	case RarityMythic:
		return "#EF4444"
	default:
		return "#9CA3AF"
	}
}

// Item is a catalog entry.
type Item struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	ItemType      ItemType       `json:"item_type"`
	Rarity        Rarity         `json:"rarity"`
	BasePrice     Decimal        `json:"base_price"`
	CurrentPrice  Decimal        `json:"current_price"`
	RequiredLevel int            `json:"required_level"`
	RequiredPhase int            `json:"required_phase"`
	IsTradeable   bool           `json:"is_tradeable"`
	IsSellable    bool           `json:"is_sellable"`
	DropRate      float64        `json:"drop_rate"`
	MaxStack      int            `json:"max_stack"`
	Attributes    map[string]any `json:"attributes"`
	ImageURL      string         `json:"image_url"`
	IsActive      bool           `json:"is_active"`
}

// InventoryEntry is one stack in a player's inventory.
type InventoryEntry struct {
	ID         int  `json:"id"`
	Item       Item `json:"item"`
	Quantity   int  `json:"quantity"`
	IsEquipped bool `json:"is_equipped"`
}

// ShopItem is a storefront listing managed through /api/admin/shop-items.
type ShopItem struct {
	ID                 int     `json:"id"`
	ItemID             int     `json:"item_id"`
	Item               *Item   `json:"item,omitempty"`
	Price              Decimal `json:"price"`
	DiscountPercentage float64 `json:"discount_percentage"`
	IsFeatured         bool    `json:"is_featured"`
	IsAvailable        bool    `json:"is_available"`
	StockQuantity      *int    `json:"stock_quantity"`
	RequiredLevel      int     `json:"required_level"`
	RequiredPhase      int     `json:"required_phase"`
}
