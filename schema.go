package recstore

// nowDefault marks a column default that resolves to the creation instant.
type nowDefault struct{}

func (nowDefault) String() string { return "NOW" }

// Now is the column default meaning "the time the record is created".
var Now = nowDefault{}

// Column declares one field of a table.
type Column struct {
	Name string
	Type Type

	// NotNull documents a required column. The engine does not reject nulls;
	// callers use Schema.MissingRequired to validate input before Create.
	NotNull bool

	// Default is used when Create omits the column. It is either a static
	// scalar or Now. A nil Default means the column has no default.
	Default any

	PrimaryKey    bool
	AutoIncrement bool
}

// HasDefault reports whether the column declares a default.
func (c Column) HasDefault() bool { return c.Default != nil }

// Schema is the ordered set of columns of a table.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from column declarations.
// A column repeated by name replaces the earlier declaration in place.
func NewSchema(columns ...Column) *Schema {
	s := &Schema{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if i, ok := s.index[c.Name]; ok {
			s.columns[i] = c
			continue
		}
		s.index[c.Name] = len(s.columns)
		s.columns = append(s.columns, c)
	}
	return s
}

// Columns returns the columns in declaration order.
func (s *Schema) Columns() []Column {
	if s == nil {
		return nil
	}
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	if s == nil {
		return Column{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Has reports whether the schema declares name.
func (s *Schema) Has(name string) bool {
	_, ok := s.Column(name)
	return ok
}

// Names returns the column names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// MissingRequired lists NotNull columns without a default that data leaves
// null or absent. Engine-assigned primary keys are never reported.
func (s *Schema) MissingRequired(data Data) []string {
	if s == nil {
		return nil
	}
	var missing []string
	for _, c := range s.columns {
		if !c.NotNull || c.HasDefault() || c.PrimaryKey || c.AutoIncrement {
			continue
		}
		if ValueOf(data[c.Name]).IsNull() {
			missing = append(missing, c.Name)
		}
	}
	return missing
}
