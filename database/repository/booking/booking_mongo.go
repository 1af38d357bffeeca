package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"serendibgo/database"
	"serendibgo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) GetByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for user %s: %w", userID, err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"paymentIntentId": intentID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking for intent %s: %w", intentID, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) SetPaymentIntentID(ctx context.Context, bookingID, intentID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// The intent id is written once; subsequent attempts must not overwrite it.
	filter := bson.M{
		"id": bookingID,
		"$or": []bson.M{
			{"paymentIntentId": bson.M{"$exists": false}},
			{"paymentIntentId": ""},
		},
	}
	update := bson.M{"$set": bson.M{
		"paymentIntentId": intentID,
		"updatedAt":       time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error attaching intent to booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s already has a payment intent attached", bookingID)
	}
	return nil
}

func (r *MongoBookingRepo) MarkPaid(ctx context.Context, intentID string, amountPaid float64, paidAt time.Time) (*models.Booking, bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// Atomic conditional transition: whichever of the confirm path and the
	// webhook path lands first wins; the loser observes no match here and
	// falls back to reading the already-paid booking.
	filter := bson.M{
		"paymentIntentId": intentID,
		"paymentStatus":   bson.M{"$ne": models.PaymentStatusPaid},
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"status":        models.BookingStatusConfirmed,
		"amountPaid":    amountPaid,
		"paymentDate":   paidAt,
		"updatedAt":     time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		existing, getErr := r.GetByPaymentIntentID(ctx, intentID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error marking booking paid for intent %s: %w", intentID, err)
	}
	return &booking, true, nil
}

func (r *MongoBookingRepo) MarkFailed(ctx context.Context, intentID string) (*models.Booking, bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// A failed event only moves a pending payment to failed. It never
	// regresses a paid or refunded booking, and it does not touch status.
	filter := bson.M{
		"paymentIntentId": intentID,
		"paymentStatus":   models.PaymentStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentStatusFailed,
		"updatedAt":     time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		existing, getErr := r.GetByPaymentIntentID(ctx, intentID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error marking booking failed for intent %s: %w", intentID, err)
	}
	return &booking, true, nil
}

func (r *MongoBookingRepo) MarkRefunded(ctx context.Context, bookingID string, refundAmount float64) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentStatusRefunded,
		"status":        models.BookingStatusCancelled,
		"refundAmount":  refundAmount,
		"updatedAt":     time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error marking booking %s refunded: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
