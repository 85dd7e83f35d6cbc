package ensure

import (
	"fmt"
	"strconv"
	"unicode/utf16"

	"golang.org/x/exp/constraints"
)

// Wide is UTF-16 text as handed out by wide-character platform APIs.
// It is transcoded to UTF-8 when captured; a NUL ends the text.
type Wide []uint16

func render(v any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("<unrenderable %T>", v)
		}
	}()

	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return signed(x)
	case int8:
		return signed(x)
	case int16:
		return signed(x)
	case int32:
		return signed(x)
	case int64:
		return signed(x)
	case uint:
		return unsigned(x)
	case uint8:
		return unsigned(x)
	case uint16:
		return unsigned(x)
	case uint32:
		return unsigned(x)
	case uint64:
		return unsigned(x)
	case uintptr:
		return unsigned(x)
	case float32:
		return float(x, 32)
	case float64:
		return float(x, 64)
	case Wide:
		return narrow(x)
	case []uint16:
		return narrow(x)
	case []rune:
		return string(x)
	case []byte:
		return string(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%+v", v)
}

func signed[T constraints.Signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func unsigned[T constraints.Unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func float[T constraints.Float](v T, bits int) string {
	return strconv.FormatFloat(float64(v), 'g', -1, bits)
}

func narrow(w []uint16) string {
	for i, c := range w {
		if c == 0 {
			w = w[:i]
			break
		}
	}
	return string(utf16.Decode(w))
}
