package collection

import "gopkg.in/yaml.v3"

// The persisted form is a flat YAML sequence of records. YAML is a
// superset of JSON, so arrays exported from the browser build of the
// vault decode unchanged.

func encode(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	return yaml.Marshal(c)
}

func decode(data []byte) (Collection, error) {
	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}
