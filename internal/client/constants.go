package client

import "time"

// Route templates. They double as metric labels, so ids stay as placeholders.
const (
	RouteUsers          = "/api/users"
	RoutePlayer         = "/api/game/player/{id}"
	RoutePlayerCreate   = "/api/game/player/create"
	RouteKillMonster    = "/api/game/player/{id}/kill-monster"
	RouteSelfEliminate  = "/api/game/player/{id}/self-eliminate"
	RouteDie            = "/api/game/player/{id}/die"
	RouteProfile        = "/api/profile"
	RouteProfileUpdate  = "/api/profile/update"
	RouteProfileStats   = "/api/profile/stats"
	RouteScenarioList   = "/api/scenarios/list"
	RouteCountries      = "/api/scenarios/countries"
	RoutePlayerProgress = "/api/scenarios/player-progress"
	RouteScenarioStart  = "/api/scenarios/{id}/start"
	RouteInventory      = "/api/inventory"
	RouteInventoryEquip = "/api/inventory/{id}/equip"
	RouteInventorySell  = "/api/inventory/{id}/sell"
	RouteCardCollection = "/api/cards/collection"
	RouteCardsAll       = "/api/cards/all"
	RouteMiningStatus   = "/api/mining/status"
	RouteMiningStats    = "/api/mining/statistics"
	RouteMiningStart    = "/api/mining/start"
	RouteMiningStop     = "/api/mining/stop"
	RouteLeaderboard    = "/api/level/leaderboard/{category}"

	RouteAdminDashboard    = "/api/admin/dashboard"
	RouteAdminSettings     = "/api/admin/settings"
	RouteAdminAdSense      = "/api/admin/adsense/config"
	RouteAdminAdUnits      = "/api/admin/adsense/ad-units"
	RouteAdminAdUnit       = "/api/admin/adsense/ad-units/{id}"
	RouteAdminSecurityLogs = "/api/admin/security-logs"
	RouteAdminUserBan      = "/api/admin/users/{id}/ban"
	RouteAdminUserUnban    = "/api/admin/users/{id}/unban"
	RouteAdminPlayerAction = "/api/admin/players/{id}/{action}"
)

// Query parameters
const (
	ParamPage     = "page"
	ParamPerPage  = "per_page"
	ParamName     = "name"
	ParamUsername = "username"
	ParamSearch   = "search"
	ParamType     = "type"
	ParamLimit    = "limit"
)

const (
	DefaultTimeout = 10 * time.Second

	// ScenarioListPageSize is the page size the scenario browser requests.
	ScenarioListPageSize = 50
	// LeaderboardLimit is the number of rows requested per category.
	LeaderboardLimit = 50

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Headers
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	ContentTypeJSON     = "application/json"
)
