package service

import (
	"fmt"

	"nakliye/internal/catalog"
	"nakliye/internal/formshape"
	"nakliye/internal/location"
)

// Form names exposed to the front-end.
const (
	FormFreight   = "freight"
	FormHeroSlide = "hero-slide"
)

type KindDescriptor struct {
	Kind   formshape.Kind    `json:"kind"`
	Fields []formshape.Field `json:"fields"`
}

type FormDescriptor struct {
	Name   string           `json:"name"`
	Shared []string         `json:"shared"`
	Kinds  []KindDescriptor `json:"kinds"`
}

type KindChangeRequest struct {
	Kind  string          `json:"kind" binding:"required"`
	State formshape.State `json:"state"`
}

type ValidateFormRequest struct {
	State formshape.State `json:"state"`
}

type CountryChangeRequest struct {
	Country string           `json:"country" binding:"required,countrycode"`
	Address location.Address `json:"address"`
}

type CityChangeRequest struct {
	City    string           `json:"city"`
	Address location.Address `json:"address"`
}

type NormalizeAddressResponse struct {
	Address location.Address `json:"address"`
	Cleared []string         `json:"cleared"`
}

// ReferenceService exposes the catalog and both resolvers to the forms.
type ReferenceService interface {
	Countries() []location.Country
	Cities(country string) location.CityChoices
	Districts(country, city string) []string
	Options() map[string][]formshape.Option
	Option(table string) ([]formshape.Option, error)

	Form(name string) (FormDescriptor, error)
	Fields(form, kind string) (KindDescriptor, error)
	ChangeKind(form string, req KindChangeRequest) (formshape.State, error)
	ValidateForm(form string, st formshape.State) error

	CountryChanged(req CountryChangeRequest) location.Address
	CityChanged(req CityChangeRequest) location.Address
	NormalizeAddress(a location.Address) NormalizeAddressResponse
}

type referenceService struct {
	cat *catalog.Catalog
}

func NewReferenceService(cat *catalog.Catalog) ReferenceService {
	return &referenceService{cat: cat}
}

func (s *referenceService) Countries() []location.Country {
	return s.cat.Locations().Countries()
}

func (s *referenceService) Cities(country string) location.CityChoices {
	return s.cat.Locations().CitiesFor(country)
}

func (s *referenceService) Districts(country, city string) []string {
	d := s.cat.Locations().DistrictsFor(country, city)
	if d == nil {
		d = []string{}
	}
	return d
}

func (s *referenceService) Options() map[string][]formshape.Option {
	return s.cat.Tables()
}

func (s *referenceService) Option(table string) ([]formshape.Option, error) {
	opts, ok := s.cat.Table(table)
	if !ok {
		return nil, fmt.Errorf("%w: option table %q", ErrNotFound, table)
	}
	return opts, nil
}

func (s *referenceService) schema(form string) (*formshape.Schema, error) {
	switch form {
	case FormFreight:
		return s.cat.FreightSchema(), nil
	case FormHeroSlide:
		return s.cat.HeroSlideSchema(), nil
	}
	return nil, fmt.Errorf("%w: form %q", ErrNotFound, form)
}

func (s *referenceService) Form(name string) (FormDescriptor, error) {
	schema, err := s.schema(name)
	if err != nil {
		return FormDescriptor{}, err
	}
	desc := FormDescriptor{Name: schema.Name(), Shared: schema.Shared()}
	for _, k := range schema.Kinds() {
		desc.Kinds = append(desc.Kinds, KindDescriptor{Kind: k, Fields: schema.FieldsFor(k)})
	}
	return desc, nil
}

func (s *referenceService) Fields(form, kind string) (KindDescriptor, error) {
	schema, err := s.schema(form)
	if err != nil {
		return KindDescriptor{}, err
	}
	k := formshape.Kind(kind)
	if !schema.Known(k) {
		return KindDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return KindDescriptor{Kind: k, Fields: schema.FieldsFor(k)}, nil
}

func (s *referenceService) ChangeKind(form string, req KindChangeRequest) (formshape.State, error) {
	schema, err := s.schema(form)
	if err != nil {
		return formshape.State{}, err
	}
	k := formshape.Kind(req.Kind)
	if !schema.Known(k) {
		return formshape.State{}, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	return schema.OnKindChanged(k, req.State), nil
}

func (s *referenceService) ValidateForm(form string, st formshape.State) error {
	schema, err := s.schema(form)
	if err != nil {
		return err
	}
	if !schema.Known(st.Kind) {
		return fmt.Errorf("%w: %q", ErrUnknownKind, st.Kind)
	}
	return schema.Validate(st)
}

func (s *referenceService) CountryChanged(req CountryChangeRequest) location.Address {
	return s.cat.Locations().OnCountryChanged(req.Country, req.Address)
}

func (s *referenceService) CityChanged(req CityChangeRequest) location.Address {
	return s.cat.Locations().OnCityChanged(req.City, req.Address)
}

func (s *referenceService) NormalizeAddress(a location.Address) NormalizeAddressResponse {
	n := s.cat.Locations().Normalize(a)
	cleared := changedParts("address", a, n)
	if cleared == nil {
		cleared = []string{}
	}
	return NormalizeAddressResponse{Address: n, Cleared: cleared}
}
