package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/carelinehq/careadmin/internal/crud"
	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// Rules maps struct field names to validator tag expressions for one
// named validation group.
type Rules map[string]string

// Gateway applies named rule-sets to candidate entity states. Groups are
// named per operation (e.g. "facility_add" vs "facility_edit") so add-only
// and edit-only constraints can differ.
type Gateway struct {
	validate *validator.Validate

	mu    sync.RWMutex
	rules map[reflect.Type]map[string]Rules
}

func New() *Gateway {
	return &Gateway{
		validate: validator.New(),
		rules:    make(map[reflect.Type]map[string]Rules),
	}
}

// Register binds a rule-set to an entity type and group name. Wiring-time
// programmer errors (duplicate group, non-struct prototype) panic.
func (g *Gateway) Register(prototype any, group string, rules Rules) {
	t := baseType(reflect.TypeOf(prototype))
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("validation: prototype for group %q is not a struct", group))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	groups, ok := g.rules[t]
	if !ok {
		groups = make(map[string]Rules)
		g.rules[t] = groups
	}
	if _, dup := groups[group]; dup {
		panic(fmt.Sprintf("validation: group %q already registered for %s", group, t.Name()))
	}
	groups[group] = rules
}

// Validate evaluates the entity against the named group and returns the
// field-error list, empty when valid. Unknown groups validate nothing.
func (g *Gateway) Validate(entity any, group string) []crud.FieldError {
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return []crud.FieldError{{Field: "", Code: "nil", Message: "entity is nil"}}
		}
		v = v.Elem()
	}

	g.mu.RLock()
	rules := g.rules[v.Type()][group]
	g.mu.RUnlock()

	var out []crud.FieldError
	for field, tag := range rules {
		fv := v.FieldByName(field)
		if !fv.IsValid() {
			out = append(out, crud.FieldError{
				Field:   field,
				Code:    "unknown_field",
				Message: fmt.Sprintf("no field %s on %s", field, v.Type().Name()),
			})
			continue
		}

		value := fv.Interface()
		if fv.Kind() == reflect.Pointer && !fv.IsNil() {
			value = fv.Elem().Interface()
		}

		if err := g.validate.Var(value, tag); err != nil {
			var verrs validator.ValidationErrors
			code := "invalid"
			if ok := asValidationErrors(err, &verrs); ok && len(verrs) > 0 {
				code = verrs[0].Tag()
			}
			out = append(out, crud.FieldError{
				Field:   fieldKey(field),
				Code:    code,
				Message: fmt.Sprintf("%s failed %s validation", fieldKey(field), code),
			})
		}
	}
	return out
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// fieldKey converts a Go field name to its snake_case wire name.
func fieldKey(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Module wires the validation gateway.
var Module = fx.Module("validation",
	fx.Provide(
		New,
		func(g *Gateway) crud.Validator { return g },
	),
)
