package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"wiki-quiz/internal/domain"
)

// columnBytes normalises what Oracle CLOB columns scan as.
func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}

func isEmptyJSON(b []byte) bool {
	return len(b) == 0 || string(b) == "null"
}

// StringSlice stores a []string as a JSON array.
type StringSlice []string

// Value implements the driver.Valuer interface. nil is stored as "[]".
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface. NULL, "" and "null" scan as empty.
func (s *StringSlice) Scan(value interface{}) error {
	b, err := columnBytes(value)
	if err != nil {
		return fmt.Errorf("StringSlice Scan: %w", err)
	}
	if isEmptyJSON(b) {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// KeyEntitiesColumn stores domain.KeyEntities as a JSON object.
type KeyEntitiesColumn domain.KeyEntities

func (k KeyEntitiesColumn) Value() (driver.Value, error) {
	e := domain.KeyEntities(k)
	if e.People == nil {
		e.People = []string{}
	}
	if e.Organizations == nil {
		e.Organizations = []string{}
	}
	if e.Locations == nil {
		e.Locations = []string{}
	}
	jsonData, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (k *KeyEntitiesColumn) Scan(value interface{}) error {
	b, err := columnBytes(value)
	if err != nil {
		return fmt.Errorf("KeyEntitiesColumn Scan: %w", err)
	}
	e := domain.NewKeyEntities()
	if !isEmptyJSON(b) {
		if err := json.Unmarshal(b, &e); err != nil {
			return err
		}
	}
	*k = KeyEntitiesColumn(e)
	return nil
}

// QuestionList stores validated questions as a JSON array.
type QuestionList []domain.QuestionRecord

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (q *QuestionList) Scan(value interface{}) error {
	b, err := columnBytes(value)
	if err != nil {
		return fmt.Errorf("QuestionList Scan: %w", err)
	}
	if isEmptyJSON(b) {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(b, q)
}
