package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

// deleteStored removes stored bytes once the database no longer references
// them. Failures leave an orphaned file and are only logged.
func (h *Orchestrator) deleteStored(ctx context.Context, storage ports.FileStorage, refs ...kernel.FileRef) {
	for _, ref := range refs {
		if ref.IsZero() {
			continue
		}
		if err := storage.Delete(ctx, ref.Key()); err != nil {
			h.log.Warn().Err(err).Str("key", ref.Key()).Msg("stored file not deleted")
		}
	}
}
