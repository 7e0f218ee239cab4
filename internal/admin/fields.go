package admin

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dooficoin/doofigame/internal/client"
	"github.com/dooficoin/doofigame/internal/domain"
)

// Field is one named form value as text.
type Field struct {
	Name  string
	Value string
}

// Table is the panel surface shared by every CRUD panel regardless of its
// row and form types. Front ends drive panels through it.
type Table interface {
	Resource() client.Resource
	Noun() Noun
	Load(ctx context.Context) error
	SetFilter(ctx context.Context, filter string) error
	Filter() string
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Page() (page, totalPages int, canPrev, canNext bool)
	Total() int
	Columns() []string
	Table() [][]string
	Banner() string
	StartCreate() error
	StartEditID(id int) error
	Active() bool
	Editing() (id int, creating bool)
	FormFields() []Field
	SetField(name, value string) error
	Cancel()
	Save(ctx context.Context) error
	Delete(ctx context.Context, id int) error
}

var _ Table = (*Panel[domain.Item, ItemForm])(nil)

// FormFields lists the form values by their wire names.
func (p *Panel[T, F]) FormFields() []Field {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return formFields(p.form)
}

// SetField assigns a form value by wire name, parsing value into the
// field's type. Decimal fields keep value verbatim once it parses.
func (p *Panel[T, F]) SetField(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.editingID == 0 && !p.creating {
		return fmt.Errorf("%w: no form open", domain.ErrInvalidInput)
	}
	return setFormField(&p.form, name, value)
}

var decimalType = reflect.TypeOf(domain.Decimal(""))

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func formFields(form any) []Field {
	v := reflect.ValueOf(form)
	t := v.Type()
	out := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		if name == "" {
			continue
		}
		out = append(out, Field{Name: name, Value: fieldText(v.Field(i))})
	}
	return out
}

func fieldText(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return ""
		}
		return fieldText(v.Elem())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}

func setFormField(form any, name, value string) error {
	v := reflect.ValueOf(form).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if jsonName(t.Field(i)) != name {
			continue
		}
		if err := assign(v.Field(i), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, name, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, name)
}

func assign(field reflect.Value, value string) error {
	if field.Type() == decimalType {
		d, err := domain.NewDecimal(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	switch field.Kind() {
	case reflect.Pointer:
		if value == "" {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		elem := reflect.New(field.Type().Elem())
		if err := assign(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "s", "sim", "y", "yes", "on":
		return true, nil
	case "n", "não", "nao", "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// FormFields lists the settings by wire name.
func (p *SettingsPanel) FormFields() []Field {
	return formFields(p.Form())
}

// SetField assigns one setting by wire name.
func (p *SettingsPanel) SetField(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return setFormField(&p.form, name, value)
}

// ConfigFields lists the AdSense config form by wire name.
func (p *AdSensePanel) ConfigFields() []Field {
	return formFields(p.ConfigForm())
}

// SetConfigField opens the config form and assigns one value.
func (p *AdSensePanel) SetConfigField(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editingConfig = true
	return setFormField(&p.configForm, name, value)
}

// UnitFields lists the ad unit form by wire name.
func (p *AdSensePanel) UnitFields() []Field {
	return formFields(p.UnitForm())
}

// SetUnitField assigns one ad unit value. A unit form must be open.
func (p *AdSensePanel) SetUnitField(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.editingUnit == 0 && !p.creatingUnit {
		return fmt.Errorf("%w: no ad unit form open", domain.ErrInvalidInput)
	}
	return setFormField(&p.unitForm, name, value)
}
