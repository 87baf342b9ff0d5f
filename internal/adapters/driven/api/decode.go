package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// validator is implemented by domain entities with required fields.
type validator interface {
	Validate() error
}

// decode unmarshals body into out and validates the result.
func decode(body []byte, out any) *Error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindDecode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	if err := validate(out); err != nil {
		return &Error{Kind: KindDecode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	return nil
}

// validate runs Validate on out, or on each element when out points to a slice.
func validate(out any) error {
	if v, ok := out.(validator); ok {
		return v.Validate()
	}

	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return nil
	}

	for i := 0; i < rv.Len(); i++ {
		if v, ok := elementValidator(rv.Index(i)); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func elementValidator(item reflect.Value) (validator, bool) {
	if item.Kind() == reflect.Pointer {
		if item.IsNil() {
			return nil, false
		}
		v, ok := item.Interface().(validator)
		return v, ok
	}
	if item.CanAddr() {
		v, ok := item.Addr().Interface().(validator)
		return v, ok
	}
	return nil, false
}
