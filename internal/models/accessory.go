package models

// Accessory is an optional extra booked with a rental. Each accessory is
// tagged with the vehicle kind it fits.
type Accessory string

const (
	AccessoryGPS          Accessory = "gps"
	AccessoryBabySeat     Accessory = "siege_bebe"
	AccessorySnowChains   Accessory = "chaines_neige"
	AccessoryBikeRack     Accessory = "porte_velo"
	AccessoryHelmet       Accessory = "casque"
	AccessoryGloves       Accessory = "gants"
	AccessoryTopCase      Accessory = "top_case"
	AccessoryLock         Accessory = "antivol"
	AccessoryBasket       Accessory = "panier"
	AccessoryChildSeat    Accessory = "siege_enfant"
	AccessoryHandTruck    Accessory = "diable"
	AccessoryStraps       Accessory = "sangles"
	AccessoryAwning       Accessory = "auvent"
	AccessoryRearBikeRack Accessory = "velo_arriere"
)

// Accessories lists every accessory in a stable order.
var Accessories = []Accessory{
	AccessoryGPS, AccessoryBabySeat, AccessorySnowChains, AccessoryBikeRack,
	AccessoryHelmet, AccessoryGloves, AccessoryTopCase,
	AccessoryLock, AccessoryBasket, AccessoryChildSeat,
	AccessoryHandTruck, AccessoryStraps,
	AccessoryAwning, AccessoryRearBikeRack,
}

var accessoryKinds = map[Accessory]Kind{
	AccessoryGPS:          KindCar,
	AccessoryBabySeat:     KindCar,
	AccessorySnowChains:   KindCar,
	AccessoryBikeRack:     KindCar,
	AccessoryHelmet:       KindMotorcycle,
	AccessoryGloves:       KindMotorcycle,
	AccessoryTopCase:      KindMotorcycle,
	AccessoryLock:         KindBicycle,
	AccessoryBasket:       KindBicycle,
	AccessoryChildSeat:    KindBicycle,
	AccessoryHandTruck:    KindUtilityVan,
	AccessoryStraps:       KindUtilityVan,
	AccessoryAwning:       KindCampingCar,
	AccessoryRearBikeRack: KindCampingCar,
}

// Kind returns the vehicle kind the accessory is meant for, or "" if unknown.
func (a Accessory) Kind() Kind {
	return accessoryKinds[a]
}

// Fits reports whether the accessory can be booked with a vehicle of kind.
func (a Accessory) Fits(kind Kind) bool {
	return IsValidKind(kind) && a.Kind() == kind
}

// AccessoriesFor returns the accessories compatible with kind.
func AccessoriesFor(kind Kind) []Accessory {
	var out []Accessory
	for _, a := range Accessories {
		if accessoryKinds[a] == kind {
			out = append(out, a)
		}
	}
	return out
}
