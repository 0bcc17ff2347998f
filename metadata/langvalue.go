package metadata

import "strings"

// LangValue extracts a single display string from a lang-value field,
// preferring text in the given language.
//
// Maps yield their @value (or @id, the value of linked resources).  Lists yield
// the first value in the preferred language, else the first value found.
func LangValue(value interface{}, lang string) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		if s, ok := v["@value"].(string); ok && s != "" {
			return s
		}
		s, _ := v["@id"].(string)
		return s
	case []interface{}:
		var other []string
		for _, item := range v {
			switch i := item.(type) {
			case map[string]interface{}:
				val, _ := i["@value"].(string)
				if l, _ := i["@language"].(string); l == lang && val != "" {
					return val
				}
				id, _ := i["@id"].(string)
				other = append(other, val, id)
			case string:
				other = append(other, i)
			}
		}
		for _, s := range other {
			if s != "" {
				return s
			}
		}
	}
	return ""
}

// MetadataValue returns the value of the first metadata entry whose label
// matches key, ignoring case.  Returns nil if there is no such entry.
func MetadataValue(items interface{}, key string) interface{} {
	list, ok := items.([]interface{})
	if !ok {
		return nil
	}

	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if strings.EqualFold(LangValue(m["label"], "en"), key) {
			return m["value"]
		}
	}
	return nil
}
