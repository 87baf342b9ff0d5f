package driven

// ConfigStore holds persisted bdlens settings under dotted keys such as
// "api.base_url" or "upload.check_pdf". Getters return the zero value when a
// key is unset or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set writes the value through to storage.
	Set(key string, value any) error

	// Keys lists the set keys, sorted.
	Keys() []string

	Save() error
	Load() error

	// Path is where the settings live, or ":memory:".
	Path() string
}
