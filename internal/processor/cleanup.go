package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves a processed document out of the inbox
func (p *implProcessor) moveToArchived(ctx context.Context, docPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(docPath))
	p.logger.Info(ctx, "Archiving document: %s -> %s", docPath, destPath)

	if err := os.Rename(docPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}

// writeArtifact writes data next to its final name first so readers never
// see a partial file
func writeArtifact(path string, data []byte) error {
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
