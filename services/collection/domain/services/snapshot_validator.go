package services

import (
	"fmt"
	"strings"

	"github.com/mamecholeye-lab/Rmam/services/collection/domain"
	"github.com/mamecholeye-lab/Rmam/services/collection/domain/models"
)

// ValidateSnapshot checks a snapshot read from storage or supplied by a user
// before it is restored.
//
// Rules:
//   - item ids are positive and unique
//   - every item has a non-empty group
//   - registry names are non-blank and unique
func ValidateSnapshot(s *models.Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: snapshot cannot be nil", domain.ErrInvalidSnapshot)
	}

	ids := make(map[int]struct{}, len(s.Websites))
	for i, item := range s.Websites {
		if item.ID <= 0 {
			return fmt.Errorf("%w: item at position %d has id %d", domain.ErrInvalidSnapshot, i, item.ID)
		}
		if _, dup := ids[item.ID]; dup {
			return fmt.Errorf("%w: duplicate item id %d", domain.ErrInvalidSnapshot, item.ID)
		}
		ids[item.ID] = struct{}{}

		if item.Group == "" {
			return fmt.Errorf("%w: item %d has no group", domain.ErrInvalidSnapshot, item.ID)
		}
	}

	names := make(map[string]struct{}, len(s.Groups))
	for _, g := range s.Groups {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("%w: blank group name", domain.ErrInvalidSnapshot)
		}
		if _, dup := names[g]; dup {
			return fmt.Errorf("%w: duplicate group %q", domain.ErrInvalidSnapshot, g)
		}
		names[g] = struct{}{}
	}

	return nil
}
