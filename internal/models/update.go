package models

import (
	"encoding/json"
	"errors"

	"huddle/internal/domain"
)

// Optional* fields distinguish three PATCH states: absent from the
// payload (Set=false), explicit null (Set=true, Valid=false), and a
// concrete value (Set=true, Valid=true). This keeps partial updates an
// explicit structure rather than ad-hoc map mutation.

type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

type OptionalInt struct {
	Set   bool
	Valid bool
	Value int
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

var (
	ErrInvalidGender    = errors.New("invalid gender")
	ErrInvalidAge       = errors.New("age out of range")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrNotNullableField = errors.New("field cannot be null")
)

// ProfileUpdate is the tri-state update set for PATCH /me/profile.
type ProfileUpdate struct {
	Username  OptionalString `json:"username"`
	Bio       OptionalString `json:"bio"`
	Age       OptionalInt    `json:"age"`
	AreaLabel OptionalString `json:"area_label"`
	Gender    OptionalString `json:"gender"`
}

// Changes validates the update and returns the column set to apply.
// An empty map means the payload carried no recognized field.
func (p *ProfileUpdate) Changes() (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	if p.Username.Set {
		if !p.Username.Valid || p.Username.Value == "" {
			return nil, ErrEmptyUsername
		}
		changes["username"] = p.Username.Value
	}
	if p.Bio.Set {
		if p.Bio.Valid {
			changes["bio"] = p.Bio.Value
		} else {
			changes["bio"] = nil
		}
	}
	if p.Age.Set {
		if p.Age.Valid {
			if p.Age.Value < 13 || p.Age.Value > 120 {
				return nil, ErrInvalidAge
			}
			changes["age"] = p.Age.Value
		} else {
			changes["age"] = nil
		}
	}
	if p.AreaLabel.Set {
		if p.AreaLabel.Valid {
			changes["area_label"] = p.AreaLabel.Value
		} else {
			changes["area_label"] = nil
		}
	}
	if p.Gender.Set {
		if !p.Gender.Valid {
			return nil, ErrNotNullableField
		}
		if !domain.ValidGender(p.Gender.Value) {
			return nil, ErrInvalidGender
		}
		changes["gender"] = p.Gender.Value
	}
	return changes, nil
}
