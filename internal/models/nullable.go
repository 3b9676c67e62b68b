package models

import "encoding/json"

// NullableString represents a string field that can distinguish between:
// - Field absent in JSON: Set=false, Valid=false, Value=""
// - Field present with null: Set=true, Valid=false, Value=""
// - Field present with value: Set=true, Valid=true, Value="the value"
//
// This is needed because Go's standard JSON unmarshaling treats both
// "field absent" and "field: null" as nil for pointer types.
type NullableString struct {
	Value string
	Valid bool // true if Value is not null
	Set   bool // true if field was present in JSON
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableString.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true // Field was present in JSON

	if string(data) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = s
	ns.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableString.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.Value)
}

// ToPtr converts NullableString to *string for use with existing code.
// Returns nil if Valid is false, otherwise returns pointer to Value.
func (ns NullableString) ToPtr() *string {
	if !ns.Valid {
		return nil
	}
	return &ns.Value
}

// NullableBool represents a three-state boolean:
// - Valid=false: unknown / not recorded (serialized as null)
// - Valid=true: Value holds the recorded state
type NullableBool struct {
	Value bool
	Valid bool
	Set   bool
}

// BoolValue returns a valid NullableBool holding b.
func BoolValue(b bool) NullableBool {
	return NullableBool{Value: b, Valid: true, Set: true}
}

// UnmarshalJSON implements custom JSON unmarshaling for NullableBool.
func (nb *NullableBool) UnmarshalJSON(data []byte) error {
	nb.Set = true

	if string(data) == "null" {
		nb.Valid = false
		nb.Value = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	nb.Value = b
	nb.Valid = true
	return nil
}

// MarshalJSON implements custom JSON marshaling for NullableBool.
func (nb NullableBool) MarshalJSON() ([]byte, error) {
	if !nb.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(nb.Value)
}

// ToPtr converts NullableBool to *bool.
func (nb NullableBool) ToPtr() *bool {
	if !nb.Valid {
		return nil
	}
	return &nb.Value
}
