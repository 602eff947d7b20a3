package dpkg

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mkroot/internal/core/ports"
)

// NodeID is the graft node of the package database.
const NodeID graft.ID = "adapter.dpkg.database"

// AdminDirEnv overrides DefaultAdminDir.
const AdminDirEnv = "MKROOT_DPKG_ADMINDIR"

func init() {
	graft.Register(graft.Node[ports.PackageDatabase]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageDatabase, error) {
			adminDir := DefaultAdminDir
			if dir := os.Getenv(AdminDirEnv); dir != "" {
				adminDir = dir
			}
			return NewDatabase(adminDir), nil
		},
	})
}
