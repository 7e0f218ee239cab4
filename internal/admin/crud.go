// Package admin implements the back-office panels: paginated CRUD tables
// over the admin collections plus the settings, AdSense, security log and
// dashboard views. Panels own only form and listing state; every change
// goes to the backend and is followed by a re-fetch of the current page.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
	"github.com/dooficoin/doofigame/internal/logger"
	"github.com/dooficoin/doofigame/internal/pagination"
	"github.com/dooficoin/doofigame/internal/panel"
)

var validate = validator.New()

// Noun names a resource in user-facing messages.
type Noun struct {
	Name     string
	Feminine bool
}

func (n Noun) capitalized() string {
	return titleFirst(n.Name)
}

func (n Noun) participle(masc string) string {
	if n.Feminine {
		return masc[:len(masc)-1] + "a"
	}
	return masc
}

func (n Noun) demonstrative() string {
	if n.Feminine {
		return "esta"
	}
	return "este"
}

// SavedMessage is the alert shown after a successful create or update.
func (n Noun) SavedMessage(created bool) string {
	verb := "atualizado"
	if created {
		verb = "criado"
	}
	return fmt.Sprintf("%s %s com sucesso!", n.capitalized(), n.participle(verb))
}

// SaveFailedMessage is the alert shown when a create or update fails.
func (n Noun) SaveFailedMessage(created bool, err error) string {
	verb := "atualizar"
	if created {
		verb = "criar"
	}
	return fmt.Sprintf("Erro ao %s %s: %s", verb, n.Name, err.Error())
}

// DeletePrompt is the confirmation question before a delete.
func (n Noun) DeletePrompt() string {
	return fmt.Sprintf("Tem certeza que deseja deletar %s %s?", n.demonstrative(), n.Name)
}

// DeletedMessage is the alert shown after a delete.
func (n Noun) DeletedMessage() string {
	return fmt.Sprintf("%s %s com sucesso!", n.capitalized(), n.participle("deletado"))
}

// DeleteFailedMessage is the alert shown when a delete fails.
func (n Noun) DeleteFailedMessage(err error) string {
	return fmt.Sprintf("Erro ao deletar %s: %s", n.Name, err.Error())
}

// Schema parameterises a CRUD panel over rows of type T edited through forms
// of type F.
type Schema[T any, F any] struct {
	Resource client.Resource
	Noun     Noun
	// Defaults returns the blank form.
	Defaults func() F
	// FromRow fills the form from an existing row.
	FromRow func(T) F
	// RowID extracts the primary key.
	RowID func(T) int
	// Columns and Cells render a row as a table line.
	Columns []string
	Cells   func(T) []string
	// Body converts the form to the request body. Nil sends the form as is.
	Body func(F) (any, error)
	// ReadOnlyCreate disables the create action (users are created by
	// registering, not from the back office).
	ReadOnlyCreate bool
}

// Panel is a paginated CRUD table with a single edit form.
type Panel[T any, F any] struct {
	api    *client.Client
	schema Schema[T, F]
	ui     panel.UI

	guard  panel.Guard
	banner panel.Banner

	mu        sync.RWMutex
	pager     *pagination.Pager
	filter    string
	rows      []T
	total     int
	form      F
	editingID int
	creating  bool
}

// NewPanel creates a panel on page 1 with a blank form.
func NewPanel[T any, F any](api *client.Client, schema Schema[T, F], ui panel.UI, perPage int) *Panel[T, F] {
	return &Panel[T, F]{
		api:    api,
		schema: schema,
		ui:     ui,
		pager:  pagination.New(perPage),
		rows:   []T{},
		form:   schema.Defaults(),
	}
}

// Resource returns the collection the panel manages.
func (p *Panel[T, F]) Resource() client.Resource { return p.schema.Resource }

// Noun returns the display noun of the resource.
func (p *Panel[T, F]) Noun() Noun { return p.schema.Noun }

// Load fetches the current page with the current filter. On failure the
// previous rows stay and the banner shows the error.
func (p *Panel[T, F]) Load(ctx context.Context) error {
	p.mu.RLock()
	params := p.pager.Params(map[string]string{p.schema.Resource.FilterParam: p.filter})
	p.mu.RUnlock()

	page, err := client.ListResource[T](ctx, p.api, p.schema.Resource, params)
	if err != nil {
		p.banner.Set(err)
		logger.FromContext(ctx).Warn("Failed to load admin listing", "resource", p.schema.Resource.Name, "error", err)
		return err
	}
	p.banner.Clear()

	p.mu.Lock()
	p.rows = page.Items
	p.total = page.Total
	p.pager.SetTotal(page.TotalPages)
	p.mu.Unlock()
	return nil
}

// SetFilter changes the text filter, returns to page 1 and reloads.
func (p *Panel[T, F]) SetFilter(ctx context.Context, filter string) error {
	p.mu.Lock()
	p.filter = filter
	p.pager.Reset()
	p.mu.Unlock()
	return p.Load(ctx)
}

// Filter returns the text filter.
func (p *Panel[T, F]) Filter() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filter
}

// NextPage moves forward and reloads. On the last page nothing happens.
func (p *Panel[T, F]) NextPage(ctx context.Context) error {
	p.mu.Lock()
	moved := p.pager.Next()
	p.mu.Unlock()
	if !moved {
		return nil
	}
	return p.Load(ctx)
}

// PrevPage moves back and reloads. On page 1 nothing happens.
func (p *Panel[T, F]) PrevPage(ctx context.Context) error {
	p.mu.Lock()
	moved := p.pager.Prev()
	p.mu.Unlock()
	if !moved {
		return nil
	}
	return p.Load(ctx)
}

// Page returns the current page, total pages and the navigation state.
func (p *Panel[T, F]) Page() (page, totalPages int, canPrev, canNext bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pager.Page(), p.pager.TotalPages(), p.pager.CanPrev(), p.pager.CanNext()
}

// Rows returns a copy of the loaded rows.
func (p *Panel[T, F]) Rows() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]T, len(p.rows))
	copy(out, p.rows)
	return out
}

// Total returns the row count reported by the backend.
func (p *Panel[T, F]) Total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Columns returns the table headers.
func (p *Panel[T, F]) Columns() []string { return p.schema.Columns }

// Table returns the loaded rows rendered as cells.
func (p *Panel[T, F]) Table() [][]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([][]string, 0, len(p.rows))
	for _, r := range p.rows {
		out = append(out, p.schema.Cells(r))
	}
	return out
}

// Row finds a loaded row by id.
func (p *Panel[T, F]) Row(id int) (T, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, r := range p.rows {
		if p.schema.RowID(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Banner returns the inline error, "" when the last load succeeded.
func (p *Panel[T, F]) Banner() string { return p.banner.Message() }

// Form returns a copy of the form.
func (p *Panel[T, F]) Form() F {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.form
}

// EditForm applies fn to the form in place.
func (p *Panel[T, F]) EditForm(fn func(*F)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.form)
}

// Editing reports the edit state: the row id being edited, or creating.
func (p *Panel[T, F]) Editing() (id int, creating bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.editingID, p.creating
}

// Active reports whether the form is open.
func (p *Panel[T, F]) Active() bool {
	id, creating := p.Editing()
	return id != 0 || creating
}

// StartCreate opens a blank form.
func (p *Panel[T, F]) StartCreate() error {
	if p.schema.ReadOnlyCreate {
		return fmt.Errorf("%w: %s cannot be created here", domain.ErrInvalidInput, p.schema.Resource.Name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.creating = true
	p.editingID = 0
	p.form = p.schema.Defaults()
	return nil
}

// StartEdit opens the form filled from row.
func (p *Panel[T, F]) StartEdit(row T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.creating = false
	p.editingID = p.schema.RowID(row)
	p.form = p.schema.FromRow(row)
}

// StartEditID opens the form for a loaded row.
func (p *Panel[T, F]) StartEditID(id int) error {
	row, ok := p.Row(id)
	if !ok {
		return fmt.Errorf("%w: %s %d is not on this page", domain.ErrNotFound, p.schema.Noun.Name, id)
	}
	p.StartEdit(row)
	return nil
}

// Cancel closes the form and resets it to the defaults.
func (p *Panel[T, F]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

func (p *Panel[T, F]) resetLocked() {
	p.creating = false
	p.editingID = 0
	p.form = p.schema.Defaults()
}

// Save validates the form and sends it: POST when creating, PUT when
// editing. On success the form resets and the current page is reloaded; on
// failure the form is kept so the user can fix it.
func (p *Panel[T, F]) Save(ctx context.Context) error {
	return p.guard.Run(func() error {
		p.mu.RLock()
		form := p.form
		id, creating := p.editingID, p.creating
		p.mu.RUnlock()

		if id == 0 && !creating {
			return fmt.Errorf("%w: no form open", domain.ErrInvalidInput)
		}

		err := p.send(ctx, form, id, creating)
		if err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, p.schema.Noun.SaveFailedMessage(creating, err))
			logger.FromContext(ctx).Warn("Admin save failed", "resource", p.schema.Resource.Name, "id", id, "error", err)
			return err
		}

		logger.FromContext(ctx).Info("Admin row saved", "resource", p.schema.Resource.Name, "id", id, "created", creating)
		p.ui.Alert(ctx, p.schema.Noun.SavedMessage(creating))
		p.mu.Lock()
		p.resetLocked()
		p.mu.Unlock()
		return p.Load(ctx)
	})
}

func (p *Panel[T, F]) send(ctx context.Context, form F, id int, creating bool) error {
	if err := validate.Struct(form); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var body any = form
	if p.schema.Body != nil {
		b, err := p.schema.Body(form)
		if err != nil {
			return err
		}
		body = b
	}

	if creating {
		_, err := client.CreateResource[T](ctx, p.api, p.schema.Resource, body)
		return err
	}
	_, err := client.UpdateResource[T](ctx, p.api, p.schema.Resource, id, body)
	return err
}

// Delete asks for confirmation and deletes the row only on a yes. A
// declined prompt returns domain.ErrCancelled without any request.
func (p *Panel[T, F]) Delete(ctx context.Context, id int) error {
	if !p.ui.Confirm(ctx, p.schema.Noun.DeletePrompt()) {
		return domain.ErrCancelled
	}
	return p.guard.Run(func() error {
		if err := p.api.DeleteResource(ctx, p.schema.Resource, id); err != nil {
			p.banner.Set(err)
			p.ui.Alert(ctx, p.schema.Noun.DeleteFailedMessage(err))
			return err
		}
		logger.FromContext(ctx).Info("Admin row deleted", "resource", p.schema.Resource.Name, "id", id)
		p.ui.Alert(ctx, p.schema.Noun.DeletedMessage())
		return p.Load(ctx)
	})
}

// mutateRow applies fn to the loaded row with id, leaving other rows alone.
func (p *Panel[T, F]) mutateRow(id int, fn func(*T)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.rows {
		if p.schema.RowID(p.rows[i]) == id {
			fn(&p.rows[i])
			return
		}
	}
}
