package lang

import (
	"encoding"
	"log/slog"
	"reflect"
	"strconv"

	"fortio.org/safecast"
)

// isScalar reports whether dst points to a type parseLiteral can fill: a
// string, bool, integer or float, or a type implementing
// [encoding.TextUnmarshaler].
func isScalar(dst any) bool {
	switch dst.(type) {
	case *string, *bool,
		*int, *int8, *int16, *int32, *int64,
		*uint, *uint8, *uint16, *uint32, *uint64,
		*float32, *float64,
		encoding.TextUnmarshaler:
		return true
	}

	return false
}

// parseLiteral parses the literal s into the value dst points to.
func parseLiteral(s string, dst any) error {
	var err error

	switch d := dst.(type) {
	case *string:
		*d = s
	case *bool:
		*d, err = strconv.ParseBool(s)
	case *int:
		*d, err = parseSigned[int](s)
	case *int8:
		*d, err = parseSigned[int8](s)
	case *int16:
		*d, err = parseSigned[int16](s)
	case *int32:
		*d, err = parseSigned[int32](s)
	case *int64:
		*d, err = parseSigned[int64](s)
	case *uint:
		*d, err = parseUnsigned[uint](s)
	case *uint8:
		*d, err = parseUnsigned[uint8](s)
	case *uint16:
		*d, err = parseUnsigned[uint16](s)
	case *uint32:
		*d, err = parseUnsigned[uint32](s)
	case *uint64:
		*d, err = parseUnsigned[uint64](s)
	case *float32:
		var f float64

		f, err = strconv.ParseFloat(s, 32)
		*d = float32(f)
	case *float64:
		*d, err = strconv.ParseFloat(s, 64)
	case encoding.TextUnmarshaler:
		err = d.UnmarshalText([]byte(s))
	default:
		return ErrInvalidLiteral.With(
			slog.String("literal", s),
			slog.String("type", typeName(dst)),
			slog.String("reason", "unsupported type"))
	}

	if err != nil {
		return ErrInvalidLiteral.Wrap(err).With(
			slog.String("literal", s),
			slog.String("type", typeName(dst)))
	}

	return nil
}

func parseSigned[T int | int8 | int16 | int32 | int64](s string) (T, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return safecast.Conv[T](v)
}

func parseUnsigned[T uint | uint8 | uint16 | uint32 | uint64](s string) (T, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return safecast.Conv[T](v)
}

// typeName returns the name of the type ptr points to.
func typeName(ptr any) string {
	t := reflect.TypeOf(ptr)
	if t == nil {
		return "nil"
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.String()
}
