package service

// Live feed event types.
const (
	EventListingCreated    = "listing.created"
	EventOfferCreated      = "offer.created"
	EventCompanyRegistered = "company.registered"
)

// EventPublisher pushes events to connected admin dashboards.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
