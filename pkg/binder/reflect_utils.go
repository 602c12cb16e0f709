package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// wildcard is the tag name that binds every value of a source.
const wildcard = "*"

// targetStruct returns the struct behind v, which must be a non-nil pointer.
func targetStruct(v any, bindErr error) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}
	return rv, nil
}

// bindToStruct binds values to the struct fields carrying tagName.
// Fields without the tag are left alone.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv, err := targetStruct(v, bindErr)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		paramName, skip := parseFieldTag(fieldType, tagName)
		if skip {
			continue
		}

		if paramName == wildcard {
			if err := setWildcard(field, fieldType.Type, values); err != nil {
				return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
			}
			continue
		}

		fieldValues, exists := values[paramName]
		if !exists || len(fieldValues) == 0 {
			continue
		}

		if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
		}
	}

	return nil
}

// parseFieldTag returns the parameter name from the field's tag.
// Untagged and "-" fields are skipped.
func parseFieldTag(field reflect.StructField, tagName string) (paramName string, skip bool) {
	tag := field.Tag.Get(tagName)
	if tag == "" || tag == "-" {
		return "", true
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return "", true
	}
	return name, false
}

// setWildcard stores every value into a map field. Supported field types are
// url.Values, map[string][]string and map[string]string (first value wins).
func setWildcard(field reflect.Value, fieldType reflect.Type, values map[string][]string) error {
	if fieldType.Kind() != reflect.Map || fieldType.Key().Kind() != reflect.String {
		return fmt.Errorf("wildcard binding needs a string-keyed map, got %s", fieldType)
	}

	out := reflect.MakeMapWithSize(fieldType, len(values))
	switch elem := fieldType.Elem(); {
	case elem.Kind() == reflect.String:
		for k, vs := range values {
			v := ""
			if len(vs) > 0 {
				v = vs[0]
			}
			out.SetMapIndex(reflect.ValueOf(k), reflect.ValueOf(v).Convert(elem))
		}
	case elem.Kind() == reflect.Slice && elem.Elem().Kind() == reflect.String:
		for k, vs := range values {
			out.SetMapIndex(reflect.ValueOf(k), reflect.ValueOf(append([]string(nil), vs...)).Convert(elem))
		}
	default:
		return fmt.Errorf("unsupported wildcard map value type %s", elem)
	}

	field.Set(out)
	return nil
}

// setFieldValue sets the field value from string values.
func setFieldValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	if fieldType.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), values)
	}

	if fieldType.Kind() == reflect.Slice {
		return setSliceValue(field, fieldType, values)
	}

	if len(values) == 0 {
		return nil
	}
	value := values[0]

	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, fieldType.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			// checkboxes post "on"
			switch strings.ToLower(value) {
			case "on", "yes":
				b = true
			case "off", "no", "":
				b = false
			default:
				return fmt.Errorf("invalid bool value %q", value)
			}
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue sets slice field values from string values.
func setSliceValue(field reflect.Value, fieldType reflect.Type, values []string) error {
	elemType := fieldType.Elem()
	slice := reflect.MakeSlice(fieldType, len(values), len(values))

	for i, value := range values {
		if err := setFieldValue(slice.Index(i), elemType, []string{value}); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}
