package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	surrealdb_models "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserID is a typed ID for users
type UserID struct {
	uuid uuid.UUID
}

func NewUserID() UserID {
	return UserID{uuid: uuid.New()}
}

func NewUserIDFromUUID(id uuid.UUID) UserID {
	return UserID{uuid: id}
}

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user ID: %w", err)
	}
	return UserID{uuid: id}, nil
}

func (u UserID) UUID() uuid.UUID { return u.uuid }
func (u UserID) String() string  { return u.uuid.String() }
func (u UserID) IsZero() bool    { return u.uuid == uuid.Nil }

func (u UserID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "users",
		ID:    u.uuid.String(),
	}
}

func (u UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.uuid.String())
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	u.uuid = id
	return nil
}

func (u UserID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"users", u.uuid.String()},
	})
}

func (u *UserID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "users", &u.uuid)
}

func (u UserID) Value() (driver.Value, error) {
	if u.IsZero() {
		return nil, nil
	}
	return u.uuid.String(), nil
}

func (u *UserID) Scan(value any) error {
	return scanUUID(value, &u.uuid)
}

func (UserID) GormDataType() string { return "uuid" }

// ProfileID is a typed ID for portfolio profiles
type ProfileID struct {
	uuid uuid.UUID
}

func NewProfileID() ProfileID {
	return ProfileID{uuid: uuid.New()}
}

func NewProfileIDFromUUID(id uuid.UUID) ProfileID {
	return ProfileID{uuid: id}
}

func ParseProfileID(s string) (ProfileID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProfileID{}, fmt.Errorf("invalid profile ID: %w", err)
	}
	return ProfileID{uuid: id}, nil
}

func (p ProfileID) UUID() uuid.UUID { return p.uuid }
func (p ProfileID) String() string  { return p.uuid.String() }
func (p ProfileID) IsZero() bool    { return p.uuid == uuid.Nil }

func (p ProfileID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "profiles",
		ID:    p.uuid.String(),
	}
}

func (p ProfileID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.uuid.String())
}

func (p *ProfileID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	p.uuid = id
	return nil
}

func (p ProfileID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"profiles", p.uuid.String()},
	})
}

func (p *ProfileID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "profiles", &p.uuid)
}

func (p ProfileID) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	return p.uuid.String(), nil
}

func (p *ProfileID) Scan(value any) error {
	return scanUUID(value, &p.uuid)
}

func (ProfileID) GormDataType() string { return "uuid" }

// ContactInfoID is a typed ID for contact info records
type ContactInfoID struct {
	uuid uuid.UUID
}

func NewContactInfoID() ContactInfoID {
	return ContactInfoID{uuid: uuid.New()}
}

func NewContactInfoIDFromUUID(id uuid.UUID) ContactInfoID {
	return ContactInfoID{uuid: id}
}

func ParseContactInfoID(s string) (ContactInfoID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ContactInfoID{}, fmt.Errorf("invalid contact info ID: %w", err)
	}
	return ContactInfoID{uuid: id}, nil
}

func (c ContactInfoID) UUID() uuid.UUID { return c.uuid }
func (c ContactInfoID) String() string  { return c.uuid.String() }
func (c ContactInfoID) IsZero() bool    { return c.uuid == uuid.Nil }

func (c ContactInfoID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "contact_infos",
		ID:    c.uuid.String(),
	}
}

func (c ContactInfoID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.uuid.String())
}

func (c *ContactInfoID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	c.uuid = id
	return nil
}

func (c ContactInfoID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"contact_infos", c.uuid.String()},
	})
}

func (c *ContactInfoID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "contact_infos", &c.uuid)
}

func (c ContactInfoID) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.uuid.String(), nil
}

func (c *ContactInfoID) Scan(value any) error {
	return scanUUID(value, &c.uuid)
}

func (ContactInfoID) GormDataType() string { return "uuid" }

// ProjectID is a typed ID for projects
type ProjectID struct {
	uuid uuid.UUID
}

func NewProjectID() ProjectID {
	return ProjectID{uuid: uuid.New()}
}

func NewProjectIDFromUUID(id uuid.UUID) ProjectID {
	return ProjectID{uuid: id}
}

func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, fmt.Errorf("invalid project ID: %w", err)
	}
	return ProjectID{uuid: id}, nil
}

func (p ProjectID) UUID() uuid.UUID { return p.uuid }
func (p ProjectID) String() string  { return p.uuid.String() }
func (p ProjectID) IsZero() bool    { return p.uuid == uuid.Nil }

func (p ProjectID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "projects",
		ID:    p.uuid.String(),
	}
}

func (p ProjectID) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.uuid.String())
}

func (p *ProjectID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	p.uuid = id
	return nil
}

func (p ProjectID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"projects", p.uuid.String()},
	})
}

func (p *ProjectID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "projects", &p.uuid)
}

func (p ProjectID) Value() (driver.Value, error) {
	if p.IsZero() {
		return nil, nil
	}
	return p.uuid.String(), nil
}

func (p *ProjectID) Scan(value any) error {
	return scanUUID(value, &p.uuid)
}

func (ProjectID) GormDataType() string { return "uuid" }

// SkillID is a typed ID for skills
type SkillID struct {
	uuid uuid.UUID
}

func NewSkillID() SkillID {
	return SkillID{uuid: uuid.New()}
}

func NewSkillIDFromUUID(id uuid.UUID) SkillID {
	return SkillID{uuid: id}
}

func ParseSkillID(s string) (SkillID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SkillID{}, fmt.Errorf("invalid skill ID: %w", err)
	}
	return SkillID{uuid: id}, nil
}

func (s SkillID) UUID() uuid.UUID { return s.uuid }
func (s SkillID) String() string  { return s.uuid.String() }
func (s SkillID) IsZero() bool    { return s.uuid == uuid.Nil }

func (s SkillID) RecordID() surrealdb_models.RecordID {
	return surrealdb_models.RecordID{
		Table: "skills",
		ID:    s.uuid.String(),
	}
}

func (s SkillID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.uuid.String())
}

func (s *SkillID) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return err
	}
	s.uuid = id
	return nil
}

func (s SkillID) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{
		Number:  8,
		Content: []any{"skills", s.uuid.String()},
	})
}

func (s *SkillID) UnmarshalCBOR(data []byte) error {
	return unmarshalCBORID(data, "skills", &s.uuid)
}

func (s SkillID) Value() (driver.Value, error) {
	if s.IsZero() {
		return nil, nil
	}
	return s.uuid.String(), nil
}

func (s *SkillID) Scan(value any) error {
	return scanUUID(value, &s.uuid)
}

func (SkillID) GormDataType() string { return "uuid" }

// Helper functions

// scanUUID is a helper for implementing sql.Scanner interface for PostgreSQL/GORM
func scanUUID(value any, target *uuid.UUID) error {
	if value == nil {
		*target = uuid.Nil
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*target = id
	case []byte:
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*target = id
	default:
		return fmt.Errorf("cannot scan type %T into UUID", value)
	}
	return nil
}

// unmarshalCBORID is a helper for unmarshaling SurrealDB RecordID from CBOR.
// SurrealDB uses CBOR tag 8 to identify RecordID types in its binary protocol.
// The RecordID is encoded as [table_name, id_string] within the tag.
func unmarshalCBORID(data []byte, expectedTable string, target *uuid.UUID) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}

	// Check if this is a CBOR tag (major type 6)
	majorType := data[0] >> 5
	if majorType != 6 {
		return fmt.Errorf("expected CBOR tag for RecordID, got major type %d", majorType)
	}

	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("failed to unmarshal CBOR tag: %w", err)
	}

	// SurrealDB uses tag 8 for RecordID
	if tag.Number != 8 {
		return fmt.Errorf("expected RecordID tag (8), got %d", tag.Number)
	}

	arr, ok := tag.Content.([]any)
	if !ok || len(arr) != 2 {
		return fmt.Errorf("invalid RecordID format: expected [table, id] array")
	}

	table, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: table name must be string")
	}

	if table != expectedTable {
		return fmt.Errorf("expected table %s, got %s", expectedTable, table)
	}

	idStr, ok := arr[1].(string)
	if !ok {
		return fmt.Errorf("invalid RecordID format: ID must be string")
	}

	parsedUUID, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid UUID in RecordID: %w", err)
	}

	*target = parsedUUID
	return nil
}
