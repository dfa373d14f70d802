package validators

import (
	"context"
	"fmt"

	"github.com/ivolkov/go-vault-sync/models"
)

// SnapshotValidator checks a vault snapshot for structural integrity:
// every record carries a non-empty ID, IDs are unique within their
// collection, and field values carry a well-formed composite key.
//
// It deliberately does not validate payload content (titles, passwords,
// notes): the vault is the user's data and the engine stores what it is
// given. Only properties the merge engine relies on are enforced.
type SnapshotValidator struct{}

// NewSnapshotValidator returns a Validator for vault snapshots.
func NewSnapshotValidator() Validator {
	return &SnapshotValidator{}
}

// Validate implements [Validator] for [models.VaultSnapshot] values and
// pointers. Other types are rejected.
func (v *SnapshotValidator) Validate(ctx context.Context, obj any) error {
	switch value := obj.(type) {
	case models.VaultSnapshot:
		return v.validateSnapshot(ctx, &value)
	case *models.VaultSnapshot:
		return v.validateSnapshot(ctx, value)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrValidation, obj)
	}
}

func (v *SnapshotValidator) validateSnapshot(_ context.Context, snap *models.VaultSnapshot) error {
	itemIDs := make(map[string]struct{}, len(snap.Items))
	for _, item := range snap.Items {
		if item.ID == "" {
			return fmt.Errorf("%w: item with empty id", ErrValidation)
		}
		if _, exists := itemIDs[item.ID]; exists {
			return fmt.Errorf("%w: duplicate item id %q", ErrValidation, item.ID)
		}
		itemIDs[item.ID] = struct{}{}
	}

	fieldKeys := make(map[string]struct{}, len(snap.FieldValues))
	for _, field := range snap.FieldValues {
		if field.ID == "" {
			return fmt.Errorf("%w: field value with empty id", ErrValidation)
		}
		if field.ItemID == "" {
			return fmt.Errorf("%w: field value %q without item id", ErrValidation, field.ID)
		}
		if field.FieldKey == "" {
			return fmt.Errorf("%w: field value %q without field key", ErrValidation, field.ID)
		}
		if field.Position < 0 {
			return fmt.Errorf("%w: field value %q with negative position", ErrValidation, field.ID)
		}

		key := fmt.Sprintf("%s\x00%s\x00%d", field.ItemID, field.FieldKey, field.Position)
		if _, exists := fieldKeys[key]; exists {
			return fmt.Errorf("%w: duplicate field value for item %q key %q position %d",
				ErrValidation, field.ItemID, field.FieldKey, field.Position)
		}
		fieldKeys[key] = struct{}{}
	}

	if err := validateUniqueIDs("folder", folderIDs(snap)); err != nil {
		return err
	}
	if err := validateUniqueIDs("tag", tagIDs(snap)); err != nil {
		return err
	}

	return nil
}

func folderIDs(snap *models.VaultSnapshot) []string {
	ids := make([]string, 0, len(snap.Folders))
	for _, folder := range snap.Folders {
		ids = append(ids, folder.ID)
	}
	return ids
}

func tagIDs(snap *models.VaultSnapshot) []string {
	ids := make([]string, 0, len(snap.Tags))
	for _, tag := range snap.Tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

func validateUniqueIDs(kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: %s with empty id", ErrValidation, kind)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("%w: duplicate %s id %q", ErrValidation, kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
