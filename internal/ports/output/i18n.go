package output

// T renders localized user-facing messages.
type T interface {
	T(locale, key string, data map[string]any) string
}
