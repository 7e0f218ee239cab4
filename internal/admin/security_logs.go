package admin

import (
	"context"
	"sync"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/pagination"
	"github.com/dooficoin/doofigame/internal/panel"
)

// SecurityLogsPanel is the read-only, paginated security log view.
type SecurityLogsPanel struct {
	api    *client.Client
	banner panel.Banner

	mu     sync.RWMutex
	pager  *pagination.Pager
	filter client.SecurityLogFilter
	logs   []domain.SecurityLog
	total  int
}

// NewSecurityLogsPanel creates the panel with the "all" type filter.
func NewSecurityLogsPanel(api *client.Client, perPage int) *SecurityLogsPanel {
	return &SecurityLogsPanel{
		api:    api,
		pager:  pagination.New(perPage),
		filter: client.SecurityLogFilter{Type: domain.SecurityLogAll},
		logs:   []domain.SecurityLog{},
	}
}

// Load fetches the current page.
func (p *SecurityLogsPanel) Load(ctx context.Context) error {
	p.mu.RLock()
	page, perPage, filter := p.pager.Page(), p.pager.PerPage(), p.filter
	p.mu.RUnlock()

	result, err := p.api.ListSecurityLogs(ctx, page, perPage, filter)
	if err != nil {
		p.banner.Set(err)
		return err
	}
	p.banner.Clear()

	p.mu.Lock()
	p.logs = result.Items
	p.total = result.Total
	p.pager.SetTotal(result.TotalPages)
	p.mu.Unlock()
	return nil
}

// SetSearch changes the text search, returns to page 1 and reloads.
func (p *SecurityLogsPanel) SetSearch(ctx context.Context, search string) error {
	p.mu.Lock()
	p.filter.Search = search
	p.pager.Reset()
	p.mu.Unlock()
	return p.Load(ctx)
}

// SetType changes the type filter, returns to page 1 and reloads.
func (p *SecurityLogsPanel) SetType(ctx context.Context, t domain.SecurityLogType) error {
	p.mu.Lock()
	p.filter.Type = t
	p.pager.Reset()
	p.mu.Unlock()
	return p.Load(ctx)
}

// Filter returns the active filters.
func (p *SecurityLogsPanel) Filter() client.SecurityLogFilter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filter
}

// NextPage moves forward and reloads. On the last page nothing happens.
func (p *SecurityLogsPanel) NextPage(ctx context.Context) error {
	p.mu.Lock()
	moved := p.pager.Next()
	p.mu.Unlock()
	if !moved {
		return nil
	}
	return p.Load(ctx)
}

// PrevPage moves back and reloads. On page 1 nothing happens.
func (p *SecurityLogsPanel) PrevPage(ctx context.Context) error {
	p.mu.Lock()
	moved := p.pager.Prev()
	p.mu.Unlock()
	if !moved {
		return nil
	}
	return p.Load(ctx)
}

// Page returns the current page, total pages and the navigation state.
func (p *SecurityLogsPanel) Page() (page, totalPages int, canPrev, canNext bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pager.Page(), p.pager.TotalPages(), p.pager.CanPrev(), p.pager.CanNext()
}

// Logs returns the loaded entries.
func (p *SecurityLogsPanel) Logs() []domain.SecurityLog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.SecurityLog, len(p.logs))
	copy(out, p.logs)
	return out
}

// Total returns the entry count reported by the backend.
func (p *SecurityLogsPanel) Total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Banner returns the inline error.
func (p *SecurityLogsPanel) Banner() string { return p.banner.Message() }
