package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/plein/internal/core/ports"
)

// NodeID is the unique identifier for the run store Graft node.
const NodeID graft.ID = "adapter.run_store"

func init() {
	graft.Register(graft.Node[ports.RunStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RunStoreOpener, error) {
			return Opener{}, nil
		},
	})
}
