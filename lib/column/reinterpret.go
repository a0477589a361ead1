package column

import "net"

// TryReinterpret is the registry's try_reinterpret<T>() operation: a
// fallible, no-decode coercion of col's stored rows into another native
// representation of the same wire bytes (an IPv4 column viewed as raw
// uint32s or net.IPs, a Date32 column viewed as DateTime). It returns
// ok=false when col exposes no such coercion for T, or when a value falls
// outside T's representable range.
func TryReinterpret[T any](col Interface) (result T, ok bool) {
	switch c := col.(type) {
	case *IPv4:
		switch any(result).(type) {
		case []uint32:
			v, ok2 := c.reinterpretUint32()
			if !ok2 {
				return result, false
			}
			return any(v).(T), true
		case []net.IP:
			v := make([]net.IP, c.Rows())
			for i := range v {
				v[i] = c.row(i)
			}
			return any(v).(T), true
		case []string:
			v, ok2 := c.reinterpretIPStrings()
			if !ok2 {
				return result, false
			}
			return any(v).(T), true
		}
	case *Date32:
		switch any(result).(type) {
		case *DateTime:
			v, ok2 := c.reinterpretDateTime()
			if !ok2 {
				return result, false
			}
			return any(v).(T), true
		}
	}
	return result, false
}
