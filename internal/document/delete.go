package document

import (
	"context"
	"fmt"

	"github.com/jpl-au/quilter/extension"
)

// Delete permanently removes exactly (user, filename).
func (s *Service) Delete(ctx context.Context, user, filename string) error {
	user, filename, err := s.key(user, filename)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, user, filename); err != nil {
		return fmt.Errorf("delete %s/%s: %w", user, filename, err)
	}
	s.fireEvent(extension.NetlistDeleteEvent{User: user, Filename: filename})
	return nil
}
