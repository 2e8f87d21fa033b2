// Package agents drives ZeroDB's multi-agent features: task orchestration,
// inter-agent coordination, learning feedback, state checkpoints and swarms.
package agents

import (
	"context"

	"github.com/ainative/zerodb-go/http"
	"github.com/ainative/zerodb-go/internal/route"
	"github.com/ainative/zerodb-go/validation"
)

// Services bundles the agent sub-services.
type Services struct {
	Orchestration *Orchestration
	Coordination  *Coordination
	Learning      *Learning
	State         *State
	Swarm         *Swarm
}

// NewServices creates every agent service over r. A nil validator selects the default.
func NewServices(r http.Requester, v *validation.Validator) *Services {
	b := base{r: r, v: validation.OrDefault(v)}
	return &Services{
		Orchestration: &Orchestration{b},
		Coordination:  &Coordination{b},
		Learning:      &Learning{b},
		State:         &State{b},
		Swarm:         &Swarm{b},
	}
}

type base struct {
	r http.Requester
	v *validation.Validator
}

func (b base) post(ctx context.Context, path string, req, out any) error {
	if req != nil {
		if err := b.v.Struct(req); err != nil {
			return err
		}
	}
	return b.r.Post(ctx, path, req, out)
}

func (b base) list(ctx context.Context, path string, query, out any) error {
	if err := b.v.Struct(query); err != nil {
		return err
	}
	return b.r.Get(ctx, path, out, http.WithQuery(validation.Query(query)))
}

func path(service string, segments ...string) string {
	return route.Path(append([]string{service}, segments...)...)
}
