package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/uz_ai_bot/internal/ports"
)

// Registry — модели, один раз связанные с бэкендом при старте. После NewRegistry не меняется.
type Registry struct {
	backend    Backend
	order      []ports.ModelID
	generators map[ports.ModelID]ports.Generator
}

func NewRegistry(specs []ports.ModelSpec, backend Backend) (*Registry, error) {
	if backend == nil {
		return nil, fmt.Errorf("registry: backend is nil")
	}

	r := &Registry{backend: backend, generators: make(map[ports.ModelID]ports.Generator, len(specs))}
	for _, s := range specs {
		if s.ID == ports.ModelNone {
			return nil, fmt.Errorf("registry: spec %q has no model id", s.Key)
		}
		if _, dup := r.generators[s.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate model %s", s.ID)
		}
		if strings.TrimSpace(s.RemoteName) == "" {
			return nil, fmt.Errorf("registry: model %s has no remote name", s.ID)
		}
		r.order = append(r.order, s.ID)
		r.generators[s.ID] = &generator{spec: s, backend: backend}
	}

	for _, id := range ports.AllModels {
		if _, ok := r.generators[id]; !ok {
			return nil, fmt.Errorf("registry: model %s is not configured", id)
		}
	}

	return r, nil
}

func (r *Registry) Get(id ports.ModelID) (ports.Generator, bool) {
	g, ok := r.generators[id]
	return g, ok
}

func (r *Registry) Specs() []ports.ModelSpec {
	out := make([]ports.ModelSpec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.generators[id].Spec())
	}
	return out
}

// CheckAll — проверка загрузки моделей при старте. Ошибка должна останавливать процесс.
func (r *Registry) CheckAll(ctx context.Context) error {
	for _, id := range r.order {
		spec := r.generators[id].Spec()
		if err := r.backend.Check(ctx, spec.RemoteName); err != nil {
			return fmt.Errorf("model %s (%s) not available: %w", id, spec.RemoteName, err)
		}
	}
	return nil
}

type generator struct {
	spec    ports.ModelSpec
	backend Backend
}

func (g *generator) Spec() ports.ModelSpec { return g.spec }

func (g *generator) Generate(ctx context.Context, text string) (string, error) {
	prompt := g.spec.PromptPrefix + text

	out, err := g.backend.Generate(ctx, g.spec.RemoteName, prompt, g.spec.Params)
	if err != nil {
		return "", &InferenceFault{Model: g.spec.ID, Err: err}
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", &InferenceFault{Model: g.spec.ID, Err: ErrEmptyOutput}
	}
	return out, nil
}
