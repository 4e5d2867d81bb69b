package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "homestay/internal/domain/listings"
	domainpricing "homestay/internal/domain/pricing"
	"homestay/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("agg_listing")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlistings.Listing) error {
	doc := newListingDocument(l)
	filter := bson.M{"_id": doc.ID, "version": l.Version}
	doc.Version = l.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	l.Version = doc.Version
	return nil
}

type listingDocument struct {
	ID            string           `bson:"_id"`
	Host          string           `bson:"host"`
	Title         string           `bson:"title"`
	Description   string           `bson:"description"`
	State         string           `bson:"state"`
	GuestsLimit   int              `bson:"guests_limit"`
	Currency      string           `bson:"currency"`
	BaseNightly   int64            `bson:"base_nightly"`
	BaseGuests    int              `bson:"base_guests"`
	ExtraGuestFee int64            `bson:"extra_guest_fee"`
	Periods       []periodDocument `bson:"periods"`
	Version       int64            `bson:"version"`
	CreatedAt     int64            `bson:"created_at"`
	UpdatedAt     int64            `bson:"updated_at"`
}

type periodDocument struct {
	Name    string `bson:"name"`
	Start   int64  `bson:"start"`
	End     int64  `bson:"end"`
	Nightly int64  `bson:"nightly"`
}

func newListingDocument(l *domainlistings.Listing) listingDocument {
	periods := make([]periodDocument, 0, len(l.Periods))
	for _, p := range l.Periods {
		periods = append(periods, periodDocument{
			Name:    p.Name,
			Start:   p.Start.UnixMilli(),
			End:     p.End.UnixMilli(),
			Nightly: p.Nightly.Amount,
		})
	}
	return listingDocument{
		ID:            string(l.ID),
		Host:          string(l.Host),
		Title:         l.Title,
		Description:   l.Description,
		State:         string(l.State),
		GuestsLimit:   l.GuestsLimit,
		Currency:      l.BaseNightly.Currency,
		BaseNightly:   l.BaseNightly.Amount,
		BaseGuests:    l.BaseGuests,
		ExtraGuestFee: l.ExtraGuestFee.Amount,
		Periods:       periods,
		Version:       l.Version,
		CreatedAt:     l.CreatedAt.UnixMilli(),
		UpdatedAt:     l.UpdatedAt.UnixMilli(),
	}
}

func (d listingDocument) toAggregate() *domainlistings.Listing {
	periods := make([]domainpricing.PeriodPricing, 0, len(d.Periods))
	for _, p := range d.Periods {
		periods = append(periods, domainpricing.PeriodPricing{
			Name:    p.Name,
			Start:   timestampToTime(p.Start),
			End:     timestampToTime(p.End),
			Nightly: money.Money{Amount: p.Nightly, Currency: d.Currency},
		})
	}
	return &domainlistings.Listing{
		ID:            domainlistings.ListingID(d.ID),
		Host:          domainlistings.HostID(d.Host),
		Title:         d.Title,
		Description:   d.Description,
		State:         domainlistings.ListingState(d.State),
		GuestsLimit:   d.GuestsLimit,
		BaseNightly:   money.Money{Amount: d.BaseNightly, Currency: d.Currency},
		BaseGuests:    d.BaseGuests,
		ExtraGuestFee: money.Money{Amount: d.ExtraGuestFee, Currency: d.Currency},
		Periods:       periods,
		Version:       d.Version,
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainlistings.ListingRepository = (*ListingRepository)(nil)
