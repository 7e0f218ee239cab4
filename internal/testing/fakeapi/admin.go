package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dooficoin/doofigame/internal/domain"
)

// collection describes a generic admin CRUD collection.
type collection struct {
	name        string
	listKey     string
	filterParam string
	filterField string
}

var collections = []collection{
	{name: "users", listKey: "users", filterParam: "username", filterField: "username"},
	{name: "items", listKey: "items", filterParam: "name", filterField: "name"},
	{name: "monsters", listKey: "monsters", filterParam: "name", filterField: "name"},
	{name: "scenarios", listKey: "scenarios", filterParam: "name", filterField: "name"},
	{name: "cards", listKey: "cards", filterParam: "name", filterField: "name"},
	{name: "shop-items", listKey: "shop_items", filterParam: "name", filterField: "name"},
	{name: "players", listKey: "players", filterParam: "username", filterField: "username"},
}

func (s *Server) adminRoutes(r chi.Router) {
	r.Use(s.requireAdmin)

	r.Get("/dashboard", s.handleDashboard)
	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handlePutSettings)

	r.Get("/adsense/config", s.handleGetAdSense)
	r.Put("/adsense/config", s.handlePutAdSense)
	r.Get("/adsense/ad-units", s.handleListAdUnits)
	r.Post("/adsense/ad-units", s.handleCreateAdUnit)
	r.Put("/adsense/ad-units/{id}", s.handleUpdateAdUnit)
	r.Delete("/adsense/ad-units/{id}", s.handleDeleteAdUnit)

	r.Get("/security-logs", s.handleSecurityLogs)

	r.Post("/users/{id}/ban", s.handleBan(false))
	r.Post("/users/{id}/unban", s.handleBan(true))
	r.Post("/players/{id}/{action}", s.handleGrant)

	for _, c := range collections {
		r.Get("/"+c.name, s.handleList(c))
		r.Post("/"+c.name, s.handleCreate(c))
		r.Put("/"+c.name+"/{id}", s.handleUpdate(c))
		r.Delete("/"+c.name+"/{id}", s.handleDelete(c))
	}
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		p := s.currentPlayerLocked(r)
		s.mu.Unlock()
		if p == nil || !p.IsAdmin {
			writeError(w, http.StatusForbidden, "Acesso negado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func paginate(r *http.Request, total int) (page, perPage, start, end, pages int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 20
	}
	pages = (total + perPage - 1) / perPage
	start = (page - 1) * perPage
	if start > total {
		start = total
	}
	end = start + perPage
	if end > total {
		end = total
	}
	return page, perPage, start, end, pages
}

func (s *Server) handleList(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := strings.ToLower(r.URL.Query().Get(c.filterParam))

		s.mu.Lock()
		rows := []map[string]any{}
		for _, row := range s.collections[c.name] {
			value, _ := row[c.filterField].(string)
			if filter == "" || strings.Contains(strings.ToLower(value), filter) {
				rows = append(rows, row)
			}
		}
		s.mu.Unlock()

		page, _, start, end, pages := paginate(r, len(rows))
		writeJSON(w, http.StatusOK, map[string]any{
			c.listKey:            rows[start:end],
			"total_" + c.listKey: len(rows),
			"total_pages":        pages,
			"current_page":       page,
		})
	}
}

func (s *Server) handleCreate(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var row map[string]any
		if err := decodeBody(r, &row); err != nil {
			writeError(w, http.StatusBadRequest, "Missing or invalid field: body")
			return
		}
		if name, ok := row[c.filterField].(string); ok && name == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Missing or invalid field: '%s'", c.filterField))
			return
		}

		s.mu.Lock()
		row["id"] = s.newID()
		s.collections[c.name] = append(s.collections[c.name], row)
		s.mu.Unlock()

		writeJSON(w, http.StatusCreated, row)
	}
}

func (s *Server) findRowLocked(name string, id int) (int, map[string]any) {
	for i, row := range s.collections[name] {
		if rowID(row) == id {
			return i, row
		}
	}
	return -1, nil
}

func rowID(row map[string]any) int {
	switch v := row["id"].(type) {
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case float64:
		return int(v)
	}
	return 0
}

func (s *Server) handleUpdate(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := pathID(r)
		var patch map[string]any
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "Missing or invalid field: body")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		_, row := s.findRowLocked(c.name, id)
		if row == nil {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		for k, v := range patch {
			if k != "id" {
				row[k] = v
			}
		}
		writeJSON(w, http.StatusOK, row)
	}
}

func (s *Server) handleDelete(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := pathID(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		i, row := s.findRowLocked(c.name, id)
		if row == nil {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		rows := s.collections[c.name]
		s.collections[c.name] = append(rows[:i:i], rows[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted successfully"})
	}
}

func (s *Server) handleBan(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := pathID(r)

		s.mu.Lock()
		defer s.mu.Unlock()
		_, row := s.findRowLocked("users", id)
		if row == nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		row["is_active"] = active
		verb := "banned"
		if active {
			verb = "unbanned"
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("User %v %s successfully", row["username"], verb)})
	}
}

func (s *Server) handleGrant(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var body struct {
		ItemID   int `json:"item_id"`
		CardID   int `json:"card_id"`
		Quantity int `json:"quantity"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, row := s.findRowLocked("players", id); row == nil {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	action := chi.URLParam(r, "action")
	switch action {
	case "give-item", "remove-item", "give-card", "remove-card":
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("%s x%d ok", action, body.Quantity)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.dashboard)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.GameSettings
	if err := decodeBody(r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	writeJSON(w, http.StatusOK, map[string]any{"message": "Settings updated", "settings": settings})
}

func (s *Server) handleGetAdSense(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adsense == nil {
		writeError(w, http.StatusNotFound, "AdSense config not found")
		return
	}
	writeJSON(w, http.StatusOK, s.adsense)
}

func (s *Server) handlePutAdSense(w http.ResponseWriter, r *http.Request) {
	var cfg domain.AdSenseConfig
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adsense = &cfg
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleListAdUnits(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.adUnits))
}

func (s *Server) handleCreateAdUnit(w http.ResponseWriter, r *http.Request) {
	var unit domain.AdUnit
	if err := decodeBody(r, &unit); err != nil || unit.Name == "" {
		writeError(w, http.StatusBadRequest, "Missing or invalid field: 'name'")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	unit.ID = s.newID()
	s.adUnits = append(s.adUnits, unit)
	writeJSON(w, http.StatusCreated, unit)
}

func (s *Server) handleUpdateAdUnit(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var unit domain.AdUnit
	if err := decodeBody(r, &unit); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.adUnits {
		if s.adUnits[i].ID == id {
			unit.ID = id
			s.adUnits[i] = unit
			writeJSON(w, http.StatusOK, unit)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Ad unit not found")
}

func (s *Server) handleDeleteAdUnit(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.adUnits {
		if s.adUnits[i].ID == id {
			s.adUnits = append(s.adUnits[:i:i], s.adUnits[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Ad unit deleted successfully"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Ad unit not found")
}

func (s *Server) handleSecurityLogs(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(r.URL.Query().Get("search"))
	logType := r.URL.Query().Get("type")

	s.mu.Lock()
	logs := []domain.SecurityLog{}
	for _, l := range s.logs {
		if logType != "" && string(l.LogType) != logType {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(l.Message), search) {
			continue
		}
		logs = append(logs, l)
	}
	s.mu.Unlock()

	page, _, start, end, pages := paginate(r, len(logs))
	writeJSON(w, http.StatusOK, map[string]any{
		"logs":         logs[start:end],
		"total_logs":   len(logs),
		"total_pages":  pages,
		"current_page": page,
	})
}
