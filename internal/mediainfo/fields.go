package mediainfo

// appendField skips empty values so absent metadata leaves no blank line.
func appendField(fields []Field, name, value string) []Field {
	if value == "" {
		return fields
	}
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = value
			return fields
		}
	}
	return append(fields, Field{Name: name, Value: value})
}
