package binder

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// bindFields fills the fields of the struct behind target that carry tag.
// lookup returns the raw values for a tag name; fields with no values keep
// their current content.
func bindFields(target any, tag string, lookup func(name string) []string, bindErr error) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %w", bindErr, ErrInvalidTarget)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tagName(sf, tag)
		if name == "" {
			continue
		}
		values := lookup(name)
		if len(values) == 0 {
			continue
		}
		if err := assign(rv.Field(i), values); err != nil {
			return fmt.Errorf("%w: %s: %v", bindErr, name, err)
		}
	}

	return nil
}

// tagName returns the parameter name for sf, or "" if sf is not bound.
func tagName(sf reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
	if name == "-" {
		return ""
	}
	return name
}

func assign(field reflect.Value, values []string) error {
	switch {
	case field.Kind() == reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assign(field.Elem(), values)

	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() != reflect.Uint8:
		var items []string
		for _, v := range values {
			for item := range strings.SplitSeq(v, ",") {
				items = append(items, strings.TrimSpace(item))
			}
		}
		slice := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(slice.Index(i), []string{item}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	return assignScalar(field, values[0])
}

func assignScalar(field reflect.Value, raw string) error {
	if field.CanAddr() && field.Addr().Type().Implements(textUnmarshalerType) {
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", raw)
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
