package catalog

import (
	"nakliye/internal/formshape"
)

// Freight types.
const (
	FreightCommercial  formshape.Kind = "Ticari"
	FreightResidential formshape.Kind = "Evden Eve"
	FreightEmptyTruck  formshape.Kind = "Boş Araç"
)

// Hero slide layouts.
const (
	SlideCentered        formshape.Kind = "centered"
	SlideLeftAligned     formshape.Kind = "left-aligned"
	SlideWithInput       formshape.Kind = "with-input"
	SlideTitleOnly       formshape.Kind = "title-only"
	SlideVideoBackground formshape.Kind = "video-background"
	SlideSplit           formshape.Kind = "split"
)

// Keys shared by every freight type.
const (
	KeyTitle               = "title"
	KeyContactPerson       = "contactPerson"
	KeyMobilePhone         = "mobilePhone"
	KeyEmail               = "email"
	KeyCompanyName         = "companyName"
	KeyOriginCountry       = "originCountry"
	KeyOriginCity          = "originCity"
	KeyOriginDistrict      = "originDistrict"
	KeyDestinationCountry  = "destinationCountry"
	KeyDestinationCity     = "destinationCity"
	KeyDestinationDistrict = "destinationDistrict"
	KeyLoadingDate         = "loadingDate"
	KeyDescription         = "description"
	KeyIsActive            = "isActive"
)

// Keys shared by every hero slide layout.
const (
	KeySlideTitle  = "title"
	KeySlideActive = "isActive"
	KeySlideOrder  = "order"
)

var freightShared = []string{
	KeyTitle,
	KeyContactPerson,
	KeyMobilePhone,
	KeyEmail,
	KeyCompanyName,
	KeyOriginCountry,
	KeyOriginCity,
	KeyOriginDistrict,
	KeyDestinationCountry,
	KeyDestinationCity,
	KeyDestinationDistrict,
	KeyLoadingDate,
	KeyDescription,
	KeyIsActive,
}

var slideShared = []string{KeySlideTitle, KeySlideActive, KeySlideOrder}

func buildFreightSchema(t map[string][]formshape.Option) (*formshape.Schema, error) {
	return formshape.NewSchema("freight", freightShared,
		formshape.Variant{Kind: FreightCommercial, Fields: []formshape.Field{
			{Key: "cargoType", Type: formshape.Choice, Required: true, Options: t[TableCargoTypes]},
			{Key: "vehicleNeeded", Type: formshape.Choice, Required: true, Options: t[TableVehicleTypes]},
			{Key: "loadingType", Type: formshape.Choice, Required: true, Options: t[TableLoadingTypes]},
			{Key: "cargoForm", Type: formshape.Choice, Required: true, Options: t[TableCargoForms]},
			{Key: "cargoWeight", Type: formshape.Number, Required: true, Positive: true},
			{Key: "cargoWeightUnit", Type: formshape.Choice, Required: true, Options: t[TableWeightUnits], Default: "ton"},
			{Key: "isContinuousLoad", Type: formshape.Bool},
		}},
		formshape.Variant{Kind: FreightResidential, Fields: []formshape.Field{
			{Key: "residentialTransportType", Type: formshape.Choice, Required: true, Options: t[TableResidentialTransportTypes]},
			{Key: "residentialPlaceType", Type: formshape.Choice, Required: true, Options: t[TableResidentialPlaceTypes]},
			{Key: "residentialElevatorStatus", Type: formshape.Choice, Required: true, Options: t[TableResidentialElevatorStatuses]},
			{Key: "residentialFloorLevel", Type: formshape.Choice, Required: true, Options: t[TableResidentialFloorLevels]},
		}},
		formshape.Variant{Kind: FreightEmptyTruck, Fields: []formshape.Field{
			{Key: "emptyVehicleType", Type: formshape.Choice, Required: true, Options: t[TableVehicleTypes]},
			{Key: "serviceType", Type: formshape.Choice, Required: true, Options: t[TableServiceTypes]},
			{Key: "vehicleStatedCapacity", Type: formshape.Number, Required: true, Positive: true},
			{Key: "vehicleStatedCapacityUnit", Type: formshape.Choice, Required: true, Options: t[TableCapacityUnits], Default: "ton"},
		}},
	)
}

func buildHeroSlideSchema(t map[string][]formshape.Option) (*formshape.Schema, error) {
	title := formshape.Field{Key: KeySlideTitle, Type: formshape.Text, Required: true}
	subtitle := formshape.Field{Key: "subtitle", Type: formshape.Text}
	buttonText := formshape.Field{Key: "buttonText", Type: formshape.Text}
	buttonLink := formshape.Field{Key: "buttonLink", Type: formshape.Text}

	return formshape.NewSchema("hero-slide", slideShared,
		formshape.Variant{Kind: SlideCentered, Fields: []formshape.Field{
			title, subtitle, buttonText, buttonLink,
			{Key: "backgroundImageUrl", Type: formshape.Text, Required: true},
		}},
		formshape.Variant{Kind: SlideLeftAligned, Fields: []formshape.Field{
			title, subtitle, buttonText, buttonLink,
			{Key: "imageUrl", Type: formshape.Text, Required: true},
		}},
		formshape.Variant{Kind: SlideWithInput, Fields: []formshape.Field{
			title, subtitle,
			{Key: "inputPlaceholder", Type: formshape.Text, Required: true},
			{Key: "buttonText", Type: formshape.Text, Required: true},
		}},
		formshape.Variant{Kind: SlideTitleOnly, Fields: []formshape.Field{
			title,
		}},
		formshape.Variant{Kind: SlideVideoBackground, Fields: []formshape.Field{
			title, subtitle,
			{Key: "videoUrl", Type: formshape.Text, Required: true},
			buttonText, buttonLink,
		}},
		formshape.Variant{Kind: SlideSplit, Fields: []formshape.Field{
			title, subtitle,
			{Key: "imageUrl", Type: formshape.Text, Required: true},
			{Key: "imagePosition", Type: formshape.Choice, Required: true, Options: t[TableImagePositions], Default: "right"},
			buttonText, buttonLink,
		}},
	)
}
