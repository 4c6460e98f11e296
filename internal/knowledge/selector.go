package knowledge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"autovest/internal/domain"
)

// DefaultKeys se consultan cuando ningún trigger produjo hechos.
var DefaultKeys = []string{
	"investment-principle:diversification",
	"investment-principle:compounding",
	"investment-principle:risk-return",
}

// Selection es el resultado de una selección: los hechos en orden, las claves
// consultadas (incluye los fallos) y las que no existen en el almacén.
type Selection struct {
	Facts    []domain.Fact
	Keys     []string
	Triggers []string
	Misses   []string
}

// Selector mapea una consulta a hechos del almacén mediante triggers CEL.
// No guarda estado por consulta.
type Selector struct {
	store    *Store
	triggers []Trigger
	logger   *zap.Logger
}

// NewSelector compila los triggers y devuelve un selector listo para usar.
// Con triggers vacío usa DefaultTriggers.
func NewSelector(store *Store, logger *zap.Logger, triggers ...Trigger) (*Selector, error) {
	if store == nil {
		return nil, fmt.Errorf("knowledge selector: nil store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(triggers) == 0 {
		triggers = DefaultTriggers()
	}

	env, err := NewTriggerEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	compiled := make([]Trigger, len(triggers))
	for i, t := range triggers {
		if err := t.Compile(env); err != nil {
			return nil, err
		}
		compiled[i] = t
	}

	return &Selector{store: store, triggers: compiled, logger: logger}, nil
}

// Select devuelve los hechos relevantes para la consulta. Nunca devuelve
// una selección vacía si el almacén contiene las claves por defecto.
func (s *Selector) Select(query string) Selection {
	q := strings.ToLower(query)

	var sel Selection
	for i := range s.triggers {
		t := &s.triggers[i]
		ok, err := t.Matches(q)
		if err != nil {
			s.logger.Warn("trigger evaluation failed", zap.String("trigger", t.Name), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		sel.Triggers = append(sel.Triggers, t.Name)
		for _, key := range t.Keys {
			s.resolve(key, &sel)
		}
	}

	if len(sel.Facts) == 0 {
		for _, key := range DefaultKeys {
			s.resolve(key, &sel)
		}
	}
	return sel
}

func (s *Selector) resolve(key string, sel *Selection) {
	sel.Keys = append(sel.Keys, key)

	if category, ok := strings.CutSuffix(key, ":*"); ok {
		facts := s.store.Category(category)
		if len(facts) == 0 {
			s.miss(key, sel)
			return
		}
		sel.Facts = append(sel.Facts, facts...)
		return
	}

	f, ok := s.store.Get(key)
	if !ok {
		s.miss(key, sel)
		return
	}
	sel.Facts = append(sel.Facts, f)
}

func (s *Selector) miss(key string, sel *Selection) {
	sel.Misses = append(sel.Misses, key)
	s.logger.Warn("knowledge key not found", zap.String("key", key))
}

// FormatForPrompt lista los hechos numerados para el prompt.
func FormatForPrompt(facts []domain.Fact) string {
	if len(facts) == 0 {
		return "No specific knowledge found. Provide general investment advice."
	}
	var b strings.Builder
	b.WriteString("Relevant Financial Knowledge:\n")
	for i, f := range facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Text)
	}
	return b.String()
}
