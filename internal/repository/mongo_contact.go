package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Raghunath-Kunigiri/American-Nursing-College/internal/models"
	apperrors "github.com/Raghunath-Kunigiri/American-Nursing-College/pkg/errors"
)

// MongoContactRepository stores inquiries in the contacts collection.
type MongoContactRepository struct {
	collection *mongo.Collection
}

func NewMongoContactRepository(db *mongo.Database) *MongoContactRepository {
	return &MongoContactRepository{collection: db.Collection("contacts")}
}

func (r *MongoContactRepository) Insert(ctx context.Context, contact *models.Contact) (string, error) {
	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, contact); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	return contact.ID.Hex(), nil
}

func (r *MongoContactRepository) FindByID(ctx context.Context, id string) (*models.Contact, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("Contact not found")
	}
	var contact models.Contact
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NotFound("Contact not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	return &contact, nil
}

var contactSortFields = map[string]string{
	"createdAt": "createdAt",
	"name":      "name",
	"status":    "status",
}

func (r *MongoContactRepository) List(ctx context.Context, q ContactListQuery) (*ContactPage, error) {
	filter := bson.M{"isActive": true}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.InquiryType != "" {
		filter["inquiryType"] = q.InquiryType
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}
	if q.Search != "" {
		regex := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"email": regex},
			{"phone": regex},
		}
	}

	sortField, ok := contactSortFields[q.SortBy]
	if !ok {
		sortField = "createdAt"
	}
	direction := -1
	if q.Order == "asc" {
		direction = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: direction}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	defer cursor.Close(ctx)

	contacts := []*models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}

	return &ContactPage{Contacts: contacts, Pagination: NewPagination(q.Page, q.Limit, total)}, nil
}

func (r *MongoContactRepository) Save(ctx context.Context, contact *models.Contact) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": contact.ID}, contact)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Contact not found")
	}
	return nil
}

func (r *MongoContactRepository) FollowUps(ctx context.Context, cutoff time.Time) ([]*models.Contact, error) {
	filter := bson.M{
		"followUpRequired": true,
		"followUpDate":     bson.M{"$lte": cutoff},
		"status":           bson.M{"$nin": bson.A{"Resolved", "Closed"}},
		"isActive":         true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "followUpDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	defer cursor.Close(ctx)

	contacts := []*models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	return contacts, nil
}

func (r *MongoContactRepository) Statistics(ctx context.Context) (*ContactStats, error) {
	overviewPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "isActive", Value: true}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalContacts", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "newContacts", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$status", "New"}}}, 1, 0}},
			}}}},
			{Key: "resolvedContacts", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$status", "Resolved"}}}, 1, 0}},
			}}}},
			{Key: "avgResponseTime", Value: bson.D{{Key: "$avg", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$ne", Value: bson.A{"$response.respondedAt", nil}}},
					bson.D{{Key: "$subtract", Value: bson.A{"$response.respondedAt", "$createdAt"}}},
					nil,
				}},
			}}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, overviewPipeline)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	defer cursor.Close(ctx)

	var overviews []ContactOverview
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}

	stats := &ContactStats{InquiryDistribution: []GroupCount{}}
	if len(overviews) > 0 {
		stats.Overview = overviews[0]
	}

	inquiryPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "isActive", Value: true}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$inquiryType"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	inquiryCursor, err := r.collection.Aggregate(ctx, inquiryPipeline)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}
	defer inquiryCursor.Close(ctx)

	if err := inquiryCursor.All(ctx, &stats.InquiryDistribution); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, "contacts store unavailable", err)
	}

	return stats, nil
}
