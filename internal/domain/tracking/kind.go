// Package tracking holds the catalog of punch flows (tracking modes) and the
// positional resolver that picks the next expected punch for a project day.
package tracking

// Kind identifies a single punch type.
type Kind string

const (
	KindHomeDeparture    Kind = "HOME_DEPARTURE"
	KindHomeArrival      Kind = "HOME_ARRIVAL"
	KindCompanyArrival   Kind = "COMPANY_ARRIVAL"
	KindCompanyDeparture Kind = "COMPANY_DEPARTURE"
	KindClientArrival    Kind = "CLIENT_ARRIVAL"
	KindClientDeparture  Kind = "CLIENT_DEPARTURE"
	KindHotelArrival     Kind = "HOTEL_ARRIVAL"

	// KindHotelDeparture is both a current flow step and a legacy record type.
	// Its legacy label takes precedence when labels are resolved.
	KindHotelDeparture Kind = "HOTEL_DEPARTURE"

	// Legacy kinds, recorded before tracking modes existed.
	KindEntry Kind = "ENTRY"
	KindExit  Kind = "EXIT"
)

var knownKinds = map[Kind]struct{}{
	KindHomeDeparture:    {},
	KindHomeArrival:      {},
	KindCompanyArrival:   {},
	KindCompanyDeparture: {},
	KindClientArrival:    {},
	KindClientDeparture:  {},
	KindHotelArrival:     {},
	KindHotelDeparture:   {},
	KindEntry:            {},
	KindExit:             {},
}

// Valid reports whether k is one of the known punch kinds.
func (k Kind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsLegacy reports whether k only exists for records made before tracking modes.
func (k Kind) IsLegacy() bool {
	return k == KindEntry || k == KindExit
}

func (k Kind) String() string {
	return string(k)
}

// Mode names one of the catalogued punch flows.
type Mode string

const (
	ModeSimple          Mode = "SIMPLE"
	ModeDayToDay        Mode = "DAY_TO_DAY"
	ModeCompanyToClient Mode = "COMPANY_TO_CLIENT"
	ModeHomeToClient    Mode = "HOME_TO_CLIENT"
	ModeHotelToClient   Mode = "HOTEL_TO_CLIENT"
	ModeClientWithHotel Mode = "CLIENT_WITH_HOTEL"
	ModeWithHotel       Mode = "WITH_HOTEL" // renamed to CLIENT_WITH_HOTEL
	ModeLegacy          Mode = "LEGACY"
)

// RenamedModes maps retired mode names to the mode that replaced them.
var RenamedModes = map[Mode]Mode{
	ModeWithHotel: ModeClientWithHotel,
}

func (m Mode) String() string {
	return string(m)
}
