package dynamic

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/goliatone/go-cssgen/pkg/css"
)

var appenderType = reflect.TypeFor[css.Appender]()

// leaf renders one reflected value. A value carrying the rendering
// capability uses it; otherwise primitives are formatted the way CSS spells
// them, and anything else is an error.
type leaf struct {
	v reflect.Value
}

func (l leaf) AppendCSS(dest *css.Writer) error {
	v := l.v

	for {
		if v.Type().Implements(appenderType) {
			if v.Kind() == reflect.Pointer && v.IsNil() {
				return fmt.Errorf("dynamic: cannot render nil %s", v.Type())
			}
			return v.Interface().(css.Appender).AppendCSS(dest)
		}
		if v.CanAddr() && v.Addr().Type().Implements(appenderType) {
			return v.Addr().Interface().(css.Appender).AppendCSS(dest)
		}

		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return fmt.Errorf("dynamic: cannot render nil %s", v.Type())
			}
			v = v.Elem()
			continue

		case reflect.String:
			return dest.WriteString(v.String())

		case reflect.Bool:
			return dest.WriteString(strconv.FormatBool(v.Bool()))

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return dest.WriteString(strconv.FormatInt(v.Int(), 10))

		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return dest.WriteString(strconv.FormatUint(v.Uint(), 10))

		case reflect.Float32:
			return dest.WriteString(strconv.FormatFloat(v.Float(), 'f', -1, 32))

		case reflect.Float64:
			return dest.WriteString(strconv.FormatFloat(v.Float(), 'f', -1, 64))

		default:
			return fmt.Errorf("dynamic: cannot render %s value", v.Type())
		}
	}
}
