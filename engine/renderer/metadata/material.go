package metadata

/**
 * @brief A shader material shared by the post-process passes. A material
 * exposes a number of technique passes (e.g. the depth-of-field material has
 * one per sub-pass); full-screen quads select one by index.
 */
type Material struct {
	/** @brief Generated id, unique per loaded instance. */
	ID string
	/** @brief The lookup Name of this material. */
	Name string
	/** @brief Number of technique passes the material's effect exposes. */
	PassCount int

	properties map[string]interface{}
}

func NewMaterial(id, name string, passCount int) *Material {
	return &Material{
		ID:         id,
		Name:       name,
		PassCount:  passCount,
		properties: make(map[string]interface{}),
	}
}

// SetProperty injects an opaque uniform value by conventional key
// (e.g. "cocParams", "bloomParams").
func (m *Material) SetProperty(key string, value interface{}) {
	if m.properties == nil {
		m.properties = make(map[string]interface{})
	}
	m.properties[key] = value
}

func (m *Material) Property(key string) (interface{}, bool) {
	v, ok := m.properties[key]
	return v, ok
}
