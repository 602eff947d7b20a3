package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkroot/internal/core/ports"
)

const NodeID graft.ID = "adapter.build_info_store"

func init() {
	graft.Register(graft.Node[ports.BuildInfoStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.BuildInfoStoreOpener, error) {
			return Open, nil
		},
	})
}
