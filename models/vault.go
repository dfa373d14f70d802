package models

// VaultSnapshot is the decrypted form of the whole vault: one slice per
// syncable table. The snapshot is serialized as a unit, encrypted, and
// stored/uploaded with replace-whole-blob semantics; individual tables are
// never persisted separately.
type VaultSnapshot struct {
	Items           []CredentialItem `json:"items"`
	FieldValues     []FieldValue     `json:"field_values"`
	Folders         []Folder         `json:"folders"`
	Tags            []Tag            `json:"tags"`
	ItemTags        []ItemTagLink    `json:"item_tags"`
	Attachments     []Attachment     `json:"attachments"`
	OTPSecrets      []OTPSecret      `json:"otp_secrets"`
	Passkeys        []Passkey        `json:"passkeys"`
	CustomFieldDefs []CustomFieldDef `json:"custom_field_defs"`
	FieldHistory    []FieldHistory   `json:"field_history"`
	Logos           []Logo           `json:"logos"`
}

// NewVaultSnapshot returns an empty snapshot with all tables initialised.
func NewVaultSnapshot() *VaultSnapshot {
	return &VaultSnapshot{}
}

// Clone returns a copy of the snapshot with fresh backing arrays for every
// table. Records are value types, so element assignment on the copy never
// touches the original; this is what lets the pruner rewrite an outgoing
// snapshot without mutating the caller's live replica.
func (v *VaultSnapshot) Clone() *VaultSnapshot {
	if v == nil {
		return nil
	}
	return &VaultSnapshot{
		Items:           append([]CredentialItem(nil), v.Items...),
		FieldValues:     append([]FieldValue(nil), v.FieldValues...),
		Folders:         append([]Folder(nil), v.Folders...),
		Tags:            append([]Tag(nil), v.Tags...),
		ItemTags:        append([]ItemTagLink(nil), v.ItemTags...),
		Attachments:     append([]Attachment(nil), v.Attachments...),
		OTPSecrets:      append([]OTPSecret(nil), v.OTPSecrets...),
		Passkeys:        append([]Passkey(nil), v.Passkeys...),
		CustomFieldDefs: append([]CustomFieldDef(nil), v.CustomFieldDefs...),
		FieldHistory:    append([]FieldHistory(nil), v.FieldHistory...),
		Logos:           append([]Logo(nil), v.Logos...),
	}
}

// FindItem returns a pointer into the Items table for the given record ID,
// or nil if no such item exists.
func (v *VaultSnapshot) FindItem(id string) *CredentialItem {
	for i := range v.Items {
		if v.Items[i].ID == id {
			return &v.Items[i]
		}
	}
	return nil
}
