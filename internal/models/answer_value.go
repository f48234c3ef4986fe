package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

const (
	AnswerKindNone     = "none"
	AnswerKindText     = "text"
	AnswerKindChoice   = "choice"
	AnswerKindSequence = "sequence"
)

// AnswerValue is a tagged variant for submitted and correct answers.
// Kind decides which field carries the payload: Text for text/choice,
// Items for sequence, neither for none.
type AnswerValue struct {
	Kind  string   `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

func NoAnswer() AnswerValue {
	return AnswerValue{Kind: AnswerKindNone}
}

func TextAnswer(text string) AnswerValue {
	return AnswerValue{Kind: AnswerKindText, Text: text}
}

func ChoiceAnswer(option string) AnswerValue {
	return AnswerValue{Kind: AnswerKindChoice, Text: option}
}

func SequenceAnswer(items []string) AnswerValue {
	return AnswerValue{Kind: AnswerKindSequence, Items: items}
}

func (v AnswerValue) IsNone() bool {
	return v.Kind == "" || v.Kind == AnswerKindNone
}

func (v AnswerValue) Value() (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan rejects malformed stored JSON instead of falling back to an
// empty value, so corruption surfaces as a storage failure.
func (v *AnswerValue) Scan(src interface{}) error {
	if src == nil {
		*v = NoAnswer()
		return nil
	}

	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("answer value: unsupported column type %T", src)
	}

	if len(data) == 0 {
		*v = NoAnswer()
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("answer value: malformed stored JSON: %w", err)
	}
	if v.Kind == "" {
		v.Kind = AnswerKindNone
	}
	return nil
}

// StringList is a JSON-encoded ordered list of ids.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("string list: unsupported column type %T", src)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}
	if err := json.Unmarshal(data, (*[]string)(l)); err != nil {
		return fmt.Errorf("string list: malformed stored JSON: %w", err)
	}
	return nil
}
