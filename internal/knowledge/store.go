package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"autovest/internal/domain"
)

var (
	ErrSealed   = errors.New("knowledge store sealed")
	ErrConflict = errors.New("conflicting fact redefinition")
	ErrEmptyKey = errors.New("fact category and subject are required")
)

// Store guarda hechos indexados por clave y conserva el orden de inserción
// por categoría. Tras Seal sólo admite lecturas, por lo que puede
// compartirse entre goroutines sin locks.
type Store struct {
	facts  map[string]domain.Fact
	order  map[string][]string
	sealed bool
}

// NewStore crea un almacén vacío y mutable.
func NewStore() *Store {
	return &Store{
		facts: make(map[string]domain.Fact),
		order: make(map[string][]string),
	}
}

// Key arma la clave canónica de un hecho.
func Key(category, subject string) string {
	return category + ":" + subject
}

// Add registra un hecho. Repetir exactamente el mismo hecho no tiene efecto;
// redefinirlo con otro texto es un error.
func (s *Store) Add(category, subject, text string) error {
	if s.sealed {
		return ErrSealed
	}
	category = strings.TrimSpace(category)
	subject = strings.TrimSpace(subject)
	if category == "" || subject == "" {
		return ErrEmptyKey
	}

	key := Key(category, subject)
	if existing, ok := s.facts[key]; ok {
		if existing.Text == text {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflict, key)
	}

	s.facts[key] = domain.Fact{Key: key, Category: category, Subject: subject, Text: text}
	s.order[category] = append(s.order[category], key)
	return nil
}

// Seal congela el almacén.
func (s *Store) Seal() { s.sealed = true }

// Sealed indica si el almacén ya no acepta escrituras.
func (s *Store) Sealed() bool { return s.sealed }

// Get busca un hecho por clave exacta.
func (s *Store) Get(key string) (domain.Fact, bool) {
	f, ok := s.facts[key]
	return f, ok
}

// Category devuelve los hechos de una categoría en orden de inserción.
func (s *Store) Category(category string) []domain.Fact {
	keys := s.order[category]
	out := make([]domain.Fact, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.facts[k])
	}
	return out
}

// Len devuelve la cantidad de hechos.
func (s *Store) Len() int { return len(s.facts) }
