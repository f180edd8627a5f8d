package atom

import "github.com/rawbytedev/atom/pkg/uris"

// Types holds the mapped URIDs of the atom types, for building and dumping
// atoms. The core traversal never consults it.
type Types struct {
	Int      URID
	Long     URID
	Float    URID
	Double   URID
	Bool     URID
	URID     URID
	String   URID
	Path     URID
	URI      URID
	Literal  URID
	Chunk    URID
	Tuple    URID
	Vector   URID
	Object   URID
	Resource URID
	Blank    URID
	Property URID
	Sequence URID
	Event    URID

	Units UnitMap
}

// NewTypes maps every atom type URI through m.
func NewTypes(m Mapper) Types {
	return Types{
		Int:      m.Map(uris.AtomInt),
		Long:     m.Map(uris.AtomLong),
		Float:    m.Map(uris.AtomFloat),
		Double:   m.Map(uris.AtomDouble),
		Bool:     m.Map(uris.AtomBool),
		URID:     m.Map(uris.AtomURID),
		String:   m.Map(uris.AtomString),
		Path:     m.Map(uris.AtomPath),
		URI:      m.Map(uris.AtomURIType),
		Literal:  m.Map(uris.AtomLiteral),
		Chunk:    m.Map(uris.AtomChunk),
		Tuple:    m.Map(uris.AtomTuple),
		Vector:   m.Map(uris.AtomVector),
		Object:   m.Map(uris.AtomObject),
		Resource: m.Map(uris.AtomResource),
		Blank:    m.Map(uris.AtomBlank),
		Property: m.Map(uris.AtomProperty),
		Sequence: m.Map(uris.AtomSequence),
		Event:    m.Map(uris.AtomEvent),
		Units: UnitMap{
			Frame: m.Map(uris.AtomFrameTime),
			Beat:  m.Map(uris.AtomBeatTime),
		},
	}
}

// IsObject reports whether t is one of the object types (Object, Resource,
// Blank).
func (ts Types) IsObject(t URID) bool {
	return t != 0 && (t == ts.Object || t == ts.Resource || t == ts.Blank)
}

// IsString reports whether t uses the NUL-terminated string layout.
func (ts Types) IsString(t URID) bool {
	return t != 0 && (t == ts.String || t == ts.Path || t == ts.URI)
}
