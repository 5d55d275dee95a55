package prefs

// Map is the recommended bundle type for related user preferences: a plain
// string-to-string map with save/load conveniences. It round-trips under
// every codec, including XML.
type Map map[string]string

// NewMap creates an empty preferences map
func NewMap() Map {
	return make(Map)
}

// Save stores the map under key for the given application
func (m Map) Save(app AppInfo, key string) error {
	return Save(app, key, m)
}

// LoadMap reads a preferences map saved under key for the given application
func LoadMap(app AppInfo, key string) (Map, error) {
	var m Map
	if err := Load(app, key, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the value for a field and whether it was present
func (m Map) Get(field string) (string, bool) {
	v, ok := m[field]
	return v, ok
}

// Set stores a field value
func (m Map) Set(field, value string) {
	m[field] = value
}
