package cose

// Map is a raw, label-indexed COSE key map as it travels on the wire.
// Integer-valued attributes may arrive as int64 or as a typed
// enumeration depending on who built the map.
type Map map[int64]any

func GetAttr[T ~int64](m Map, attr int64) T {
	switch v := m[attr].(type) {
	case int64:
		return T(v)
	case T:
		return v
	default:
		return 0
	}
}

func (m Map) Kty() KeyType {
	return GetAttr[KeyType](m, AttrKty)
}

func (m Map) Kid() []byte {
	v, _ := m[AttrKid].([]byte)
	return v
}

func (m Map) Alg() Algorithm {
	return GetAttr[Algorithm](m, AttrAlg)
}

func (m Map) Bytes(attr int64) []byte {
	v, _ := m[attr].([]byte)
	return v
}
