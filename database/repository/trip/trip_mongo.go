package tripRepo

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

// MongoTripRepo implements TripRepository using MongoDB.
type MongoTripRepo struct {
	coll *mongo.Collection
}

// NewMongoTripRepo creates a new instance of TripRepository using MongoDB.
func NewMongoTripRepo() TripRepository {
	repo := &MongoTripRepo{coll: database.Collection("customtrips")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create trip indexes: %v\n", err)
	}
	return repo
}

// newContext derives a bounded context for a single repository call.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoTripRepo) Create(ctx context.Context, trip *models.TripRequest) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("error creating trip request: %w", err)
	}
	return nil
}

func (r *MongoTripRepo) GetByID(ctx context.Context, id string) (*models.TripRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var trip models.TripRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&trip)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching trip request %s: %w", id, err)
	}
	return &trip, nil
}

func (r *MongoTripRepo) GetByCustomer(ctx context.Context, customerID, status string) ([]models.TripRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"customerId": customerID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *MongoTripRepo) GetByStatus(ctx context.Context, status string) ([]models.TripRequest, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *MongoTripRepo) find(ctx context.Context, filter bson.M) ([]models.TripRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying trip requests: %w", err)
	}
	defer cur.Close(ctx)

	var trips []models.TripRequest
	if err := cur.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("error decoding trip requests: %w", err)
	}
	return trips, nil
}

func (r *MongoTripRepo) UpdateAssignment(ctx context.Context, id string, assignment models.StaffAssignment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"staffAssignment": assignment,
		"updatedAt":       time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating trip assignment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoTripRepo) UpdateStatus(ctx context.Context, id, status string, approval *models.ApprovalDetails) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if approval != nil {
		set["approvalDetails"] = approval
	}
	update := bson.M{"$set": set}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating trip status %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoTripRepo) SetBookingID(ctx context.Context, id, bookingID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// Conditional on no booking being linked yet: the back-reference is
	// written exactly once.
	filter := bson.M{
		"id": id,
		"$or": []bson.M{
			{"bookingId": bson.M{"$exists": false}},
			{"bookingId": ""},
		},
	}
	update := bson.M{"$set": bson.M{
		"bookingId": bookingID,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error linking booking to trip %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trip %s already has a booking linked", id)
	}
	return nil
}

func (r *MongoTripRepo) MarkConfirmedPaid(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	// Safe to re-run: once the trip is confirmed and paid the filter no
	// longer matches and the update is a no-op.
	filter := bson.M{
		"id": id,
		"$or": []bson.M{
			{"status": bson.M{"$ne": models.TripStatusConfirmed}},
			{"paymentStatus": bson.M{"$ne": models.TripPaymentPaid}},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":        models.TripStatusConfirmed,
		"paymentStatus": models.TripPaymentPaid,
		"updatedAt":     time.Now().UTC(),
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error marking trip %s confirmed/paid: %w", id, err)
	}
	return nil
}

func (r *MongoTripRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("error aggregating trip counts: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding trip counts: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}

func (r *MongoTripRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting trip request %s: %w", id, err)
	}
	return nil
}
