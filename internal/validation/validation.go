// Package validation implementa la compuerta de entrada del sistema: un
// esquema explícito (campo -> restricciones) aplicado una sola vez en el
// borde HTTP, antes de cualquier lógica de negocio. Campos desconocidos se
// rechazan (no se descartan en silencio) para exponer bugs del cliente.
package validation

import (
	"encoding/json"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jcastillo/asistente-api/internal/domain"
)

// Kind tipo de dato esperado para un campo.
type Kind int

const (
	KindString Kind = iota
	KindEmail
)

// Field declara las restricciones de un campo del payload. MinLen y MaxLen
// cuentan caracteres (runes); MaxBytes cuenta bytes, para límites que son
// genuinamente de bytes como el tope de 72 de bcrypt.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	MinLen   int // 0 = sin mínimo, en caracteres
	MaxLen   int // 0 = sin máximo, en caracteres
	MaxBytes int // 0 = sin máximo, en bytes
}

// Schema es la lista ordenada de campos admitidos en un payload.
type Schema struct {
	Fields []Field
}

// Values es el DTO tipado producido por Validate: solo campos declarados,
// inmutable por convención (los handlers leen, nunca escriben).
type Values map[string]string

// Get devuelve el valor del campo, o "" si el campo opcional no vino.
func (v Values) Get(name string) string { return v[name] }

// Has indica si el payload traía el campo.
func (v Values) Has(name string) bool { _, ok := v[name]; return ok }

// Validate aplica el esquema sobre el cuerpo JSON crudo. Devuelve un Values
// nuevo con los campos declarados, o *domain.ValidationError con todas las
// violaciones encontradas (no corta en la primera). Nunca muta la entrada.
func Validate(schema Schema, raw []byte) (Values, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, domain.NewValidationError(domain.FieldViolation{
			Field: "body", Constraint: "debe ser un objeto JSON",
		})
	}

	declared := make(map[string]Field, len(schema.Fields))
	for _, f := range schema.Fields {
		declared[f.Name] = f
	}

	var violations []domain.FieldViolation

	// Campos desconocidos: rechazo explícito, en orden estable para tests.
	var unknown []string
	for name := range payload {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		violations = append(violations, domain.FieldViolation{
			Field: name, Constraint: "campo no reconocido",
		})
	}

	out := make(Values, len(schema.Fields))
	for _, f := range schema.Fields {
		rawVal, present := payload[f.Name]
		if !present {
			if f.Required {
				violations = append(violations, domain.FieldViolation{
					Field: f.Name, Constraint: "requerido",
				})
			}
			continue
		}
		var s string
		if err := json.Unmarshal(rawVal, &s); err != nil {
			violations = append(violations, domain.FieldViolation{
				Field: f.Name, Constraint: "debe ser string",
			})
			continue
		}
		if vs := checkConstraints(f, s); len(vs) > 0 {
			violations = append(violations, vs...)
			continue
		}
		out[f.Name] = s
	}

	if len(violations) > 0 {
		return nil, domain.NewValidationError(violations...)
	}
	return out, nil
}

func checkConstraints(f Field, s string) []domain.FieldViolation {
	var violations []domain.FieldViolation
	if f.Required && strings.TrimSpace(s) == "" {
		return append(violations, domain.FieldViolation{
			Field: f.Name, Constraint: "no puede estar vacío",
		})
	}
	if f.MinLen > 0 && utf8.RuneCountInString(s) < f.MinLen {
		violations = append(violations, domain.FieldViolation{
			Field: f.Name, Constraint: minLenMsg(f.MinLen),
		})
	}
	if f.MaxLen > 0 && utf8.RuneCountInString(s) > f.MaxLen {
		violations = append(violations, domain.FieldViolation{
			Field: f.Name, Constraint: maxLenMsg(f.MaxLen),
		})
	}
	if f.MaxBytes > 0 && len(s) > f.MaxBytes {
		violations = append(violations, domain.FieldViolation{
			Field: f.Name, Constraint: "máximo " + strconv.Itoa(f.MaxBytes) + " bytes",
		})
	}
	if f.Kind == KindEmail && !validEmail(s) {
		violations = append(violations, domain.FieldViolation{
			Field: f.Name, Constraint: "formato de email inválido",
		})
	}
	return violations
}

// validEmail acepta solo direcciones simples (sin display name ni grupos).
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

func minLenMsg(n int) string {
	return "mínimo " + strconv.Itoa(n) + " caracteres"
}

func maxLenMsg(n int) string {
	return "máximo " + strconv.Itoa(n) + " caracteres"
}
