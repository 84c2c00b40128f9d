package types

// ObjectSchema describes how a single delimited cell decodes into a
// structured value. Members are ordered; positional notation assigns the
// i-th segment to the i-th member.
type ObjectSchema struct {
	Name        string
	Description string
	// Separator splits the cell into segments (default ",").
	Separator string
	// KeyValueSeparator splits a segment into key and value (default ":").
	// Its presence anywhere in the cell selects key-value notation.
	KeyValueSeparator string
	Members           []Member
}

// Member is one named, scalar-typed slot of an object schema.
type Member struct {
	Key  string
	Type Kind
}

// MemberType returns the scalar kind declared for key.
func (s *ObjectSchema) MemberType(key string) (Kind, bool) {
	for _, m := range s.Members {
		if m.Key == key {
			return m.Type, true
		}
	}
	return KindInvalid, false
}

// SchemaLookup resolves object schema names during conversion.
// The schema registry is the production implementation.
type SchemaLookup interface {
	Schema(name string) (*ObjectSchema, bool)
}
