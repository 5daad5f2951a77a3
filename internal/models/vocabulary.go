package models

// Kind tags the vehicle variants of the fleet.
type Kind string

const (
	KindCar        Kind = "car"
	KindMotorcycle Kind = "motorcycle"
	KindBicycle    Kind = "bicycle"
	KindUtilityVan Kind = "utility_van"
	KindCampingCar Kind = "camping_car"
)

// Kinds lists every vehicle variant.
var Kinds = []Kind{KindCar, KindMotorcycle, KindBicycle, KindUtilityVan, KindCampingCar}

// IsValidKind checks if a kind is one of the fleet variants
func IsValidKind(k Kind) bool {
	switch k {
	case KindCar, KindMotorcycle, KindBicycle, KindUtilityVan, KindCampingCar:
		return true
	default:
		return false
	}
}

// License is a driving-permit category.
type License string

const (
	LicenseAM License = "AM"
	LicenseA1 License = "A1"
	LicenseA2 License = "A2"
	LicenseA  License = "A"
	LicenseB  License = "B"
	LicenseBE License = "BE"
	LicenseC1 License = "C1"
	LicenseC  License = "C"
	LicenseD  License = "D"
)

var LicenseCategories = []License{
	LicenseAM, LicenseA1, LicenseA2, LicenseA, LicenseB, LicenseBE, LicenseC1, LicenseC, LicenseD,
}

const (
	TransmissionAutomatic = "automatique"
	TransmissionManual    = "manuelle"
)

var Transmissions = []string{TransmissionAutomatic, TransmissionManual}

var Fuels = []string{"essence", "diesel", "electrique", "hybride", "gpl"}

// Category labels accepted per vehicle kind.
var (
	CarCategories        = []string{"citadine", "compacte", "berline", "break", "suv", "monospace", "cabriolet"}
	MotorcycleCategories = []string{"roadster", "sportive", "trail", "custom", "routiere", "scooter"}
	BicycleCategories    = []string{"ville", "vtt", "route", "vtc", "cargo", "pliant"}
	UtilityVanCategories = []string{"fourgonnette", "fourgon", "camionnette", "benne", "plateau"}
	CampingCarCategories = []string{"van", "capucine", "profile", "integral"}
)

// RentalStatus is the free-form lifecycle label of a rental. Any value may be
// written at any time; there is no transition graph.
type RentalStatus string

const (
	RentalPending    RentalStatus = "en_attente"
	RentalValidated  RentalStatus = "validee"
	RentalInProgress RentalStatus = "en_cours"
	RentalCompleted  RentalStatus = "terminee"
	RentalCancelled  RentalStatus = "annulee"
)

var RentalStatuses = []RentalStatus{RentalPending, RentalValidated, RentalInProgress, RentalCompleted, RentalCancelled}

func deref[V any](p *V) V {
	var zero V
	if p == nil {
		return zero
	}
	return *p
}
