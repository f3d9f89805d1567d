// Package mongostore implements repository.Store on MongoDB.  Documents use
// the same snake_case field names as the JSON API and are keyed by the
// string "id" field, not by _id.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

const (
	colPhysicalUnits = "physical_units"
	colVirtualUnits  = "virtual_units"
	colBookings      = "bookings"
	colImages        = "image_assets"
	colContent       = "content_blocks"
	colBanners       = "banners"
	colCustomers     = "customers"
	colLoyalty       = "loyalty_transactions"
	colPayments      = "payment_transactions"
	colAPIKeys       = "api_keys"
	colEvents        = "analytics_events"
)

// Store wraps a database handle.
type Store struct {
	db *mongo.Database
}

var _ repository.Store = (*Store)(nil)

// New returns a Store over db.  Call EnsureIndexes once before serving
// traffic; the booking guarantee depends on it.
func New(db *mongo.Database) *Store { return &Store{db: db} }

// bookingDoc adds the blocking flag the partial unique index keys on.
type bookingDoc struct {
	model.Booking `bson:",inline"`
	Blocking      bool `bson:"blocking"`
}

// EnsureIndexes creates the unique indexes the store relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}
	plan := map[string][]mongo.IndexModel{
		colPhysicalUnits: {unique(bson.D{{Key: "id", Value: 1}})},
		colVirtualUnits: {
			unique(bson.D{{Key: "id", Value: 1}}),
			{Keys: bson.D{{Key: "unit_type", Value: 1}}},
		},
		colBookings: {
			unique(bson.D{{Key: "id", Value: 1}}),
			{Keys: bson.D{{Key: "customer_email", Value: 1}}},
			{
				Keys: bson.D{{Key: "physical_unit_id", Value: 1}},
				Options: options.Index().
					SetName("uq_blocking_physical_unit").
					SetUnique(true).
					SetPartialFilterExpression(bson.D{{Key: "blocking", Value: true}}),
			},
		},
		colImages:    {unique(bson.D{{Key: "id", Value: 1}})},
		colContent:   {unique(bson.D{{Key: "key", Value: 1}})},
		colBanners:   {unique(bson.D{{Key: "id", Value: 1}})},
		colCustomers: {unique(bson.D{{Key: "id", Value: 1}}), unique(bson.D{{Key: "email", Value: 1}})},
		colLoyalty:   {{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}}},
		colPayments:  {unique(bson.D{{Key: "session_id", Value: 1}})},
		colAPIKeys:   {unique(bson.D{{Key: "service", Value: 1}, {Key: "key_name", Value: 1}})},
		colEvents:    {{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: 1}}}},
	}
	for col, models := range plan {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes on %s: %w", col, err)
		}
	}
	return nil
}

func (s *Store) c(name string) *mongo.Collection { return s.db.Collection(name) }

func byID(id string) bson.D { return bson.D{{Key: "id", Value: id}} }

// findOne decodes the first match into out, mapping "no documents" to
// repository.ErrNotFound.
func (s *Store) findOne(ctx context.Context, col string, filter any, out any) error {
	err := s.c(col).FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func byCreated() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
}

func matchedOrNotFound(res *mongo.UpdateResult, err error) error {
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func deletedOrNotFound(res *mongo.DeleteResult, err error) error {
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nowUTC() time.Time { return time.Now().UTC() }

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// ---- catalog ----

func (s *Store) CreatePhysicalUnit(ctx context.Context, u *model.PhysicalUnit) error {
	_, err := s.c(colPhysicalUnits).InsertOne(ctx, u)
	return err
}

func (s *Store) GetPhysicalUnit(ctx context.Context, id string) (*model.PhysicalUnit, error) {
	var u model.PhysicalUnit
	if err := s.findOne(ctx, colPhysicalUnits, byID(id), &u); err != nil {
		return nil, err
	}
	u.Amenities = nonNil(u.Amenities)
	return &u, nil
}

func (s *Store) ListPhysicalUnits(ctx context.Context) ([]model.PhysicalUnit, error) {
	out, err := findAll[model.PhysicalUnit](ctx, s.c(colPhysicalUnits), bson.D{}, byCreated())
	for i := range out {
		out[i].Amenities = nonNil(out[i].Amenities)
	}
	return out, err
}

func (s *Store) CreateVirtualUnit(ctx context.Context, u *model.VirtualUnit) error {
	_, err := s.c(colVirtualUnits).InsertOne(ctx, u)
	return err
}

func (s *Store) GetVirtualUnit(ctx context.Context, id string) (*model.VirtualUnit, error) {
	var u model.VirtualUnit
	if err := s.findOne(ctx, colVirtualUnits, byID(id), &u); err != nil {
		return nil, err
	}
	u.Amenities = nonNil(u.Amenities)
	return &u, nil
}

func (s *Store) ListVirtualUnits(ctx context.Context, unitType model.UnitType) ([]model.VirtualUnit, error) {
	filter := bson.D{}
	if unitType != "" {
		filter = bson.D{{Key: "unit_type", Value: unitType}}
	}
	out, err := findAll[model.VirtualUnit](ctx, s.c(colVirtualUnits), filter, byCreated())
	for i := range out {
		out[i].Amenities = nonNil(out[i].Amenities)
	}
	return out, err
}

func (s *Store) SetVirtualUnitImage(ctx context.Context, id, imageURL string) error {
	return matchedOrNotFound(s.c(colVirtualUnits).UpdateOne(ctx, byID(id),
		bson.D{{Key: "$set", Value: bson.D{{Key: "image_url", Value: imageURL}}}}))
}

// ---- bookings ----

// InsertBookingIfUnblocked leans on the partial unique index: a second
// document with blocking=true for the same physical_unit_id fails with a
// duplicate key error, which is reported as a conflict.
func (s *Store) InsertBookingIfUnblocked(ctx context.Context, b *model.Booking) error {
	doc := bookingDoc{Booking: *b, Blocking: b.Status.Blocking()}
	_, err := s.c(colBookings).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	return err
}

func (s *Store) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	var doc bookingDoc
	if err := s.findOne(ctx, colBookings, byID(id), &doc); err != nil {
		return nil, err
	}
	return &doc.Booking, nil
}

func (s *Store) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.listBookings(ctx, bson.D{})
}

func (s *Store) ListBookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	pattern := "^" + regexp.QuoteMeta(email) + "$"
	return s.listBookings(ctx, bson.D{{Key: "customer_email", Value: bson.D{
		{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"},
	}}})
}

func (s *Store) listBookings(ctx context.Context, filter bson.D) ([]model.Booking, error) {
	docs, err := findAll[bookingDoc](ctx, s.c(colBookings), filter, byCreated())
	if err != nil {
		return nil, err
	}
	out := make([]model.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Booking)
	}
	return out, nil
}

func (s *Store) BlockingPhysicalUnitIDs(ctx context.Context) (map[string]struct{}, error) {
	filter := bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: model.BlockingStatuses}}}}
	vals, err := s.c(colBookings).Distinct(ctx, "physical_unit_id", filter)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if id, ok := v.(string); ok {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// ---- images ----

func (s *Store) ListImages(ctx context.Context, category string) ([]model.ImageAsset, error) {
	filter := bson.D{}
	if category != "" {
		filter = bson.D{{Key: "category", Value: category}}
	}
	out, err := findAll[model.ImageAsset](ctx, s.c(colImages), filter, byCreated())
	for i := range out {
		out[i].Tags = nonNil(out[i].Tags)
	}
	return out, err
}

func (s *Store) CreateImage(ctx context.Context, img *model.ImageAsset) error {
	_, err := s.c(colImages).InsertOne(ctx, img)
	return err
}

func (s *Store) ReplaceImage(ctx context.Context, img *model.ImageAsset) error {
	res, err := s.c(colImages).ReplaceOne(ctx, byID(img.ID), img)
	return matchedOrNotFound(res, err)
}

func (s *Store) DeleteImage(ctx context.Context, id string) error {
	return deletedOrNotFound(s.c(colImages).DeleteOne(ctx, byID(id)))
}

// ---- content ----

func (s *Store) ListContent(ctx context.Context) ([]model.ContentBlock, error) {
	return findAll[model.ContentBlock](ctx, s.c(colContent), bson.D{},
		options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
}

func (s *Store) GetContent(ctx context.Context, key string) (*model.ContentBlock, error) {
	var b model.ContentBlock
	if err := s.findOne(ctx, colContent, bson.D{{Key: "key", Value: key}}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Store) PutContent(ctx context.Context, block *model.ContentBlock) error {
	_, err := s.c(colContent).ReplaceOne(ctx, bson.D{{Key: "key", Value: block.Key}}, block,
		options.Replace().SetUpsert(true))
	return err
}

func (s *Store) ListBanners(ctx context.Context) ([]model.Banner, error) {
	return findAll[model.Banner](ctx, s.c(colBanners), bson.D{}, byCreated())
}

func (s *Store) CreateBanner(ctx context.Context, b *model.Banner) error {
	_, err := s.c(colBanners).InsertOne(ctx, b)
	return err
}

func (s *Store) DeleteBanner(ctx context.Context, id string) error {
	return deletedOrNotFound(s.c(colBanners).DeleteOne(ctx, byID(id)))
}

// ---- customers ----

func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	_, err := s.c(colCustomers).InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	return err
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := s.findOne(ctx, colCustomers, byID(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var c model.Customer
	if err := s.findOne(ctx, colCustomers, bson.D{{Key: "email", Value: email}}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context, f repository.CustomerFilter) ([]model.Customer, error) {
	filter := bson.D{}
	if f.CustomerType != "" {
		filter = append(filter, bson.E{Key: "customer_type", Value: f.CustomerType})
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		rx := bson.D{{Key: "$regex", Value: regexp.QuoteMeta(term)}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "first_name", Value: rx}},
			bson.D{{Key: "last_name", Value: rx}},
			bson.D{{Key: "email", Value: rx}},
			bson.D{{Key: "company", Value: rx}},
		}})
	}
	return findAll[model.Customer](ctx, s.c(colCustomers), filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ApplyCustomerDelta guards the balance in the filter so the $inc and the
// overdraw check are one atomic document update.
func (s *Store) ApplyCustomerDelta(ctx context.Context, id string, d repository.CustomerDelta) (*model.Customer, error) {
	filter := bson.D{{Key: "id", Value: id}, {Key: "loyalty_points", Value: bson.D{{Key: "$gte", Value: -d.Points}}}}
	update := bson.D{{Key: "$inc", Value: bson.D{
		{Key: "loyalty_points", Value: d.Points},
		{Key: "lifetime_points", Value: d.Lifetime},
		{Key: "lifetime_value", Value: d.Value},
		{Key: "total_bookings", Value: d.Bookings},
	}}}
	var c model.Customer
	err := s.c(colCustomers).FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, getErr := s.GetCustomer(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, repository.ErrInsufficientPoints
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) AddLoyaltyTransaction(ctx context.Context, t *model.LoyaltyTransaction) error {
	_, err := s.c(colLoyalty).InsertOne(ctx, t)
	return err
}

func (s *Store) ListLoyaltyTransactions(ctx context.Context, customerID string) ([]model.LoyaltyTransaction, error) {
	return findAll[model.LoyaltyTransaction](ctx, s.c(colLoyalty), bson.D{{Key: "customer_id", Value: customerID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ---- payments ----

func (s *Store) CreatePayment(ctx context.Context, p *model.PaymentTransaction) error {
	_, err := s.c(colPayments).InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrConflict
	}
	return err
}

func (s *Store) GetPaymentBySession(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var p model.PaymentTransaction
	if err := s.findOne(ctx, colPayments, bson.D{{Key: "session_id", Value: sessionID}}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, sessionID, status, paymentStatus string) error {
	return matchedOrNotFound(s.c(colPayments).UpdateOne(ctx, bson.D{{Key: "session_id", Value: sessionID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "payment_status", Value: paymentStatus},
			{Key: "updated_at", Value: nowUTC()},
		}}}))
}

func (s *Store) MarkPointsAwarded(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.c(colPayments).UpdateOne(ctx,
		bson.D{{Key: "session_id", Value: sessionID}, {Key: "points_awarded", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "points_awarded", Value: true}}}})
	if err != nil {
		return false, err
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}
	if _, err := s.GetPaymentBySession(ctx, sessionID); err != nil {
		return false, err
	}
	return false, nil
}

// ---- integrations ----

func (s *Store) ListAPIKeys(ctx context.Context) ([]model.APIKey, error) {
	return findAll[model.APIKey](ctx, s.c(colAPIKeys), bson.D{},
		options.Find().SetSort(bson.D{{Key: "service", Value: 1}, {Key: "key_name", Value: 1}}))
}

func (s *Store) UpsertAPIKey(ctx context.Context, k *model.APIKey) error {
	filter := bson.D{{Key: "service", Value: k.Service}, {Key: "key_name", Value: k.KeyName}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "sealed_value", Value: k.SealedValue},
			{Key: "environment", Value: k.Environment},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "id", Value: k.ID},
			{Key: "created_at", Value: k.CreatedAt},
		}},
	}
	var stored model.APIKey
	err := s.c(colAPIKeys).FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(&stored)
	if err != nil {
		return err
	}
	k.ID = stored.ID
	k.CreatedAt = stored.CreatedAt
	return nil
}

func (s *Store) DeleteAPIKey(ctx context.Context, id string) error {
	return deletedOrNotFound(s.c(colAPIKeys).DeleteOne(ctx, byID(id)))
}

// ---- events ----

func (s *Store) AppendEvent(ctx context.Context, e *model.AnalyticsEvent) error {
	_, err := s.c(colEvents).InsertOne(ctx, e)
	return err
}

func (s *Store) ListSessionEvents(ctx context.Context, sessionID string) ([]model.AnalyticsEvent, error) {
	return findAll[model.AnalyticsEvent](ctx, s.c(colEvents), bson.D{{Key: "session_id", Value: sessionID}}, byCreated())
}

// ---- lifecycle ----

func (s *Store) ResetCatalog(ctx context.Context) error {
	for _, col := range []string{colBookings, colVirtualUnits, colPhysicalUnits, colImages} {
		if _, err := s.c(col).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("clear %s: %w", col, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
