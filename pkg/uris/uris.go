// Package uris lists the URIs of the atom, time, urid and midi vocabularies.
// It is static data; nothing here maps or interprets a URI.
package uris

const (
	CoreURI    = "http://lv2plug.in/ns/lv2core"
	CorePrefix = CoreURI + "#"

	AtomURI    = "http://lv2plug.in/ns/ext/atom"
	AtomPrefix = AtomURI + "#"

	TimeURI    = "http://lv2plug.in/ns/ext/time"
	TimePrefix = TimeURI + "#"

	URIDURI    = "http://lv2plug.in/ns/ext/urid"
	URIDPrefix = URIDURI + "#"

	MIDIURI    = "http://lv2plug.in/ns/ext/midi"
	MIDIPrefix = MIDIURI + "#"
)

// atom# classes and properties.
const (
	AtomAtom          = AtomPrefix + "Atom"
	AtomAtomPort      = AtomPrefix + "AtomPort"
	AtomBlank         = AtomPrefix + "Blank"
	AtomBool          = AtomPrefix + "Bool"
	AtomChunk         = AtomPrefix + "Chunk"
	AtomDouble        = AtomPrefix + "Double"
	AtomEvent         = AtomPrefix + "Event"
	AtomFloat         = AtomPrefix + "Float"
	AtomInt           = AtomPrefix + "Int"
	AtomLiteral       = AtomPrefix + "Literal"
	AtomLong          = AtomPrefix + "Long"
	AtomNumber        = AtomPrefix + "Number"
	AtomObject        = AtomPrefix + "Object"
	AtomPath          = AtomPrefix + "Path"
	AtomProperty      = AtomPrefix + "Property"
	AtomResource      = AtomPrefix + "Resource"
	AtomSequence      = AtomPrefix + "Sequence"
	AtomSound         = AtomPrefix + "Sound"
	AtomString        = AtomPrefix + "String"
	AtomTuple         = AtomPrefix + "Tuple"
	AtomURIType       = AtomPrefix + "URI"
	AtomURID          = AtomPrefix + "URID"
	AtomVector        = AtomPrefix + "Vector"
	AtomAtomTransfer  = AtomPrefix + "atomTransfer"
	AtomBeatTime      = AtomPrefix + "beatTime"
	AtomBufferType    = AtomPrefix + "bufferType"
	AtomChildType     = AtomPrefix + "childType"
	AtomEventTransfer = AtomPrefix + "eventTransfer"
	AtomFrameTime     = AtomPrefix + "frameTime"
	AtomSupports      = AtomPrefix + "supports"
	AtomTimeUnit      = AtomPrefix + "timeUnit"
)

// time# classes and properties.
const (
	TimeTime            = TimePrefix + "Time"
	TimePosition        = TimePrefix + "Position"
	TimeRate            = TimePrefix + "Rate"
	TimePositionProp    = TimePrefix + "position"
	TimeBarBeat         = TimePrefix + "barBeat"
	TimeBar             = TimePrefix + "bar"
	TimeBeat            = TimePrefix + "beat"
	TimeBeatUnit        = TimePrefix + "beatUnit"
	TimeBeatsPerBar     = TimePrefix + "beatsPerBar"
	TimeBeatsPerMinute  = TimePrefix + "beatsPerMinute"
	TimeFrame           = TimePrefix + "frame"
	TimeFramesPerSecond = TimePrefix + "framesPerSecond"
	TimeSpeed           = TimePrefix + "speed"
)

// urid# features.
const (
	URIDMap   = URIDPrefix + "map"
	URIDUnmap = URIDPrefix + "unmap"
)

// midi# classes.
const (
	MIDIEvent = MIDIPrefix + "MidiEvent"
)

// Atom lists every atom# URI.
var Atom = []string{
	AtomAtom, AtomAtomPort, AtomBlank, AtomBool, AtomChunk, AtomDouble,
	AtomEvent, AtomFloat, AtomInt, AtomLiteral, AtomLong, AtomNumber,
	AtomObject, AtomPath, AtomProperty, AtomResource, AtomSequence,
	AtomSound, AtomString, AtomTuple, AtomURIType, AtomURID, AtomVector,
	AtomAtomTransfer, AtomBeatTime, AtomBufferType, AtomChildType,
	AtomEventTransfer, AtomFrameTime, AtomSupports, AtomTimeUnit,
}

// Time lists every time# URI.
var Time = []string{
	TimeTime, TimePosition, TimeRate, TimePositionProp, TimeBarBeat, TimeBar,
	TimeBeat, TimeBeatUnit, TimeBeatsPerBar, TimeBeatsPerMinute, TimeFrame,
	TimeFramesPerSecond, TimeSpeed,
}
